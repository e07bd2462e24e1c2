package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
	service_simple_auth "github.com/humanbelnik/catalog/internal/service/auth/simple"
)

type Service interface {
	Auth(code string) (string, error)
	ValidateToken(token string) (bool, error)
	Revoke(token string) error
}

type Controller struct {
	service Service
	logger  *slog.Logger
}

func New(
	service Service,
) *Controller {
	return &Controller{
		service: service,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("", c.auth)
	auth.POST("/validate", c.validate)
	auth.DELETE("", c.revoke)
}

// AuthRequestDTO DTO для запроса аутентификации
type AuthRequestDTO struct {
	Code string `json:"code" binding:"required" example:"secret123"`
}

// ValidateRequestDTO токен для проверки
type ValidateRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

// ValidateResponseDTO результат проверки токена
type ValidateResponseDTO struct {
	Valid bool `json:"valid"`
}

// Auth выполняет аутентификацию администратора
// @Summary Аутентификация администратора
// @Description Проверяет код и возвращает токен в заголовке X-admin-token для доступа к операциям каталога
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body AuthRequestDTO true "Данные для аутентификации"
// @Success 202
// @Header 202 {string} X-admin-token "Токен для доступа к операциям каталога"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 403 {object} http_common.ErrorResponse "Неверный код аутентификации"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth [post]
func (c *Controller) auth(ctx *gin.Context) {
	var req AuthRequestDTO

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", "error", err)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request format",
		})
		return
	}

	token, err := c.service.Auth(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service_simple_auth.ErrWrongCode):
			c.logger.Warn("wrong code")
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "forbidden",
			})
		default:
			c.logger.Error("internal auth error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header(http_common.AdminTokenHeader, token)
	ctx.Status(http.StatusAccepted)
}

// @Summary Проверка токена
// @Description Используется другими экземплярами сервиса
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body ValidateRequestDTO true "Токен"
// @Success 200 {object} ValidateResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Router /auth/validate [post]
func (c *Controller) validate(ctx *gin.Context) {
	var req ValidateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request format",
		})
		return
	}

	valid, err := c.service.ValidateToken(req.Token)
	if err != nil {
		c.logger.Error("token validation failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.JSON(http.StatusOK, ValidateResponseDTO{Valid: valid})
}

// @Summary Выход
// @Description Отзывает токен из заголовка X-admin-token
// @Tags Auth operations
// @Param X-admin-token header string true "Токен"
// @Success 204
// @Failure 401 {object} http_common.ErrorResponse
// @Router /auth [delete]
func (c *Controller) revoke(ctx *gin.Context) {
	token := ctx.GetHeader(http_common.AdminTokenHeader)
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "no " + http_common.AdminTokenHeader + " header",
		})
		return
	}

	if err := c.service.Revoke(token); err != nil {
		c.logger.Error("token revoke failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
