package http_access_middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ModeReadOnly = "RO"

// ReadOnlyBadGatewayMiddleware rejects catalog writes on replicas started
// with HTTP_MODE=RO so the gateway retries them on the primary.
func ReadOnlyBadGatewayMiddleware(mode string) gin.HandlerFunc {
	readOnly := strings.EqualFold(mode, ModeReadOnly)
	return func(c *gin.Context) {
		if !readOnly {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Bad Gateway",
			"message": "Write operations not allowed on read-only instance",
			"code":    "READ_ONLY_INSTANCE",
		})
		c.Abort()
	}
}
