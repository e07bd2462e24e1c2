package http_auth_middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
)

// TokenValidator is served by the local auth service or by the remote
// auth client.
type TokenValidator interface {
	ValidateToken(token string) (bool, error)
}

type Middleware struct {
	validator TokenValidator
	logger    *slog.Logger
}

func New(
	validator TokenValidator,
) *Middleware {
	return &Middleware{
		validator: validator,
		logger:    slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	const header = http_common.AdminTokenHeader
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(header)
		if t == "" {
			m.logger.Warn(fmt.Sprintf("no %s header", header), slog.String("path", ctx.FullPath()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", header),
			})
			ctx.Abort()
			return
		}

		valid, err := m.validator.ValidateToken(t)
		if err != nil {
			m.logger.Error("internal error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}
		if !valid {
			m.logger.Warn("invalid token", slog.String("path", ctx.FullPath()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid token",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
