package transport

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/auth"
	"github.com/nonprofitedge/assessments/internal/database"
	"github.com/nonprofitedge/assessments/internal/monitoring"
	"github.com/nonprofitedge/assessments/internal/ratelimit"
	"github.com/nonprofitedge/assessments/internal/security"
)

// RouterConfig holds the pieces the router wires together beyond the handler
// set itself.
type RouterConfig struct {
	AllowedOrigins []string
	ReportLimit    int // per-IP per-minute ceiling on report endpoints
	TrustedProxies []string

	// AdminToken guards the rate-limit administration routes. When empty the
	// routes are not registered at all.
	AdminToken string
}

// adminAuth requires the configured shared secret on operator routes.
func adminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-Admin-Token")
		if presented == "" {
			presented, _ = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// NewRouter builds the Gin engine with the full middleware stack and route
// table.
func NewRouter(
	h *Handler,
	issuer *auth.TokenIssuer,
	limiter *ratelimit.RateLimiter,
	db *database.DB,
	redisEnabled bool,
	cfg RouterConfig,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.TrustedProxies) > 0 {
		_ = router.SetTrustedProxies(cfg.TrustedProxies)
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(security.HeadersMiddleware())
	router.Use(monitoring.MonitoringMiddleware(h.metrics, h.logger))
	router.Use(apperrors.ErrorHandler())
	router.Use(limiter.IPRateLimitMiddleware())

	// Report reads are the expensive path; cache them per evaluation. Token
	// scoped routes like /evaluations/reflections stay out of the cache.
	cached := h.reportCache.Middleware(h.metrics, "/evaluations")

	router.GET("/health", h.HandleHealth(db, redisEnabled))
	router.GET("/metrics", h.HandleMetrics)
	router.GET("/cache/stats", h.HandleCacheStats)
	router.GET("/rate-limit/status", limiter.HandleRateLimitStatus())

	instruments := router.Group("/instruments")
	{
		instruments.GET("", h.HandleListInstruments)
		instruments.GET("/:id", h.HandleGetInstrument)
		instruments.POST("/:id/score", h.HandleScore)
	}

	reportLimit := cfg.ReportLimit
	if reportLimit <= 0 {
		reportLimit = 10
	}

	evaluations := router.Group("/evaluations")
	{
		evaluations.POST("", h.HandleCreateEvaluation)
		evaluations.GET("/:id/status", cached, h.HandleEvaluationStatus)
		evaluations.GET("/:id/report",
			limiter.EndpointRateLimitMiddleware("board-report", reportLimit),
			cached,
			h.HandleBoardReport)

		evaluations.POST("/submit",
			issuer.Middleware(auth.KindRater),
			limiter.RaterRateLimitMiddleware(),
			h.HandleRaterSubmit)

		evaluations.POST("/self",
			issuer.Middleware(auth.KindSubject),
			h.HandleSelfSubmit)

		evaluations.GET("/reflections",
			issuer.Middleware(auth.KindSubject),
			h.HandleSelfReflections)
	}

	if cfg.AdminToken != "" {
		admin := router.Group("/admin", adminAuth(cfg.AdminToken))
		{
			admin.GET("/rate-limits", limiter.HandleAdminRateLimits())
			admin.POST("/rate-limits/reset/:raterID", limiter.HandleAdminResetRater())
			admin.POST("/rate-limits/invalidate-ip/:ip", limiter.HandleAdminInvalidateIP())
		}
	}

	return router
}
