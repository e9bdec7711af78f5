package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"

	"github.com/jezhtech/fc-fleet-sub002/pkg/common"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
	"go.uber.org/zap"
)

// RequestTimeout aborts requests that run longer than the given duration
// and responds with 504 Gateway Timeout.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(d),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			logger.WithContext(c.Request.Context()).Warn("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Duration("timeout", d),
			)
			common.ErrorResponse(c, http.StatusGatewayTimeout, "The request took too long to process")
		}),
	)
}
