package api

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"kitchenmate/internal/monitoring"
)

// RequestLogger logs each request and records it in the metrics collector
func RequestLogger(logger *log.Logger, metrics *monitoring.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)

		keyvals := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
		}
		switch {
		case status >= 500:
			logger.Error("request", keyvals...)
		case status >= 400:
			logger.Warn("request", keyvals...)
		default:
			logger.Info("request", keyvals...)
		}
	}
}
