package security

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeadersMiddleware sets the response headers an API serving assessment data
// should always carry. Reports and reflections are sensitive, so anything
// under a token-scoped or report path also tells clients not to store it.
func HeadersMiddleware() gin.HandlerFunc {
	hsts := os.Getenv("ENABLE_HSTS") == "true"

	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if hsts {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		if sensitivePath(c.Request.URL.Path) {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}

// sensitivePath reports whether the path serves per-person assessment data.
func sensitivePath(path string) bool {
	if strings.HasPrefix(path, "/evaluations") {
		return strings.HasSuffix(path, "/report") || strings.HasSuffix(path, "/reflections")
	}
	return false
}
