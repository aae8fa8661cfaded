package middleware

import (
	"time"

	"github.com/dylanm29799/HowAreYou/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequestLogMiddleware writes one RequestLog row per API request after the
// handler has run. Failures to record the trail never fail the request.
func RequestLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		c.Next()

		entry := models.RequestLog{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Status:     c.Writer.Status(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			DurationMs: time.Since(started).Milliseconds(),
		}

		_ = db.Create(&entry).Error
	}
}
