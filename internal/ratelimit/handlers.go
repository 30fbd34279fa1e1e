package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleRateLimitStatus returns the current limits for the requesting client.
func (rl *RateLimiter) HandleRateLimitStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"ip": c.ClientIP(),
			"limits": gin.H{
				"ip_per_minute": gin.H{
					"limit":  rl.config.IPLimitPerMin,
					"period": "1 minute",
				},
				"submissions_per_hour": gin.H{
					"limit":  rl.config.SubmitLimitPerHour,
					"period": "1 hour",
				},
			},
			"timestamp": time.Now().Format(time.RFC3339),
		}

		if raterID, exists := c.Get("rater_id"); exists {
			if raterIDStr, ok := raterID.(string); ok {
				status["rater_id"] = raterIDStr
			}
		}

		c.JSON(http.StatusOK, status)
	}
}

// HandleAdminRateLimits returns rate limit state for operators.
func (rl *RateLimiter) HandleAdminRateLimits() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		keyCount, err := rl.GetKeyCount(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to get key count",
			})
			return
		}

		var rateLimitMetrics map[string]interface{}
		if rl.metrics != nil {
			rateLimitMetrics = rl.metrics.GetRateLimitStats()
		}

		c.JSON(http.StatusOK, gin.H{
			"total_keys":    keyCount,
			"limiter_stats": rl.GetStats(),
			"metrics":       rateLimitMetrics,
			"timestamp":     time.Now().Format(time.RFC3339),
		})
	}
}

// HandleAdminResetRater clears rate limit state for one rater.
func (rl *RateLimiter) HandleAdminResetRater() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		raterID := c.Param("raterID")

		if raterID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "rater ID is required",
			})
			return
		}

		if err := rl.InvalidateRater(ctx, raterID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to reset rate limit",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "rate limit reset successfully",
			"rater_id":  raterID,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// HandleAdminInvalidateIP clears rate limit state for one IP.
func (rl *RateLimiter) HandleAdminInvalidateIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.Param("ip")

		if ip == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "IP address is required",
			})
			return
		}

		if err := rl.InvalidateIP(ctx, ip); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to invalidate IP rate limits",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "IP rate limits invalidated successfully",
			"ip":        ip,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
