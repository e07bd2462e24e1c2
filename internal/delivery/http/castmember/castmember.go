package http_castmember

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
	"github.com/humanbelnik/catalog/internal/model"
	usecase_castmember "github.com/humanbelnik/catalog/internal/usecase/castmember"
)

type Usecase interface {
	Create(ctx context.Context, in usecase_castmember.CreateInput) (*usecase_castmember.Output, error)
	Update(ctx context.Context, in usecase_castmember.UpdateInput) (*usecase_castmember.Output, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*usecase_castmember.Output, error)
	List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*usecase_castmember.Output], error)
}

// CreateCastMemberRequestDTO type: 1 режиссёр, 2 актёр
type CreateCastMemberRequestDTO struct {
	Name string `json:"name" binding:"required" example:"Андрей Тарковский"`
	Type int    `json:"type" binding:"required" example:"1"`
}

// UpdateCastMemberRequestDTO отсутствующие поля не меняются
type UpdateCastMemberRequestDTO struct {
	Name *string `json:"name" example:"Анатолий Солоницын"`
	Type *int    `json:"type" example:"2"`
}

// CastMemberResponseDTO участник съёмок
type CastMemberResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" example:"Андрей Тарковский"`
	Type      int       `json:"type" example:"1"`
	CreatedAt time.Time `json:"created_at"`
}

func ConvertFromOutput(out *usecase_castmember.Output) CastMemberResponseDTO {
	return CastMemberResponseDTO{
		ID:        out.ID,
		Name:      out.Name,
		Type:      int(out.Type),
		CreatedAt: out.CreatedAt,
	}
}

type Controller struct {
	uc           Usecase
	authRequired gin.HandlerFunc
	logger       *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc Usecase, authRequired gin.HandlerFunc, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:           uc,
		authRequired: authRequired,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	members := router.Group("/cast_members")
	members.GET("", c.listCastMembers)
	members.GET("/:id", c.getCastMember)
	members.POST("", c.authRequired, c.createCastMember)
	members.PUT("/:id", c.authRequired, c.updateCastMember)
	members.DELETE("/:id", c.authRequired, c.deleteCastMember)
}

// @Summary Создание участника съёмок
// @Tags CastMembers
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body CreateCastMemberRequestDTO true "Участник"
// @Success 201 {object} CastMemberResponseDTO
// @Failure 422 {object} http_common.ErrorResponse "Неверное имя или тип"
// @Router /cast_members [post]
func (c *Controller) createCastMember(ctx *gin.Context) {
	var req CreateCastMemberRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	out, err := c.uc.Create(ctx.Request.Context(), usecase_castmember.CreateInput{
		Name: req.Name,
		Type: model.CastMemberType(req.Type),
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, ConvertFromOutput(out))
}

// @Summary Список участников съёмок
// @Tags CastMembers
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Param search query string false "Поиск по имени"
// @Param sort query string false "name | created_at"
// @Param dir query string false "asc | desc"
// @Success 200 {object} http_common.PageResponse[CastMemberResponseDTO]
// @Router /cast_members [get]
func (c *Controller) listCastMembers(ctx *gin.Context) {
	in, err := http_common.ParseSearch(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
		return
	}

	page, err := c.uc.List(ctx.Request.Context(), in)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, http_common.NewPage(page, ConvertFromOutput))
}

// @Summary Участник съёмок по ID
// @Tags CastMembers
// @Produce json
// @Param id path string true "ID участника"
// @Success 200 {object} CastMemberResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /cast_members/{id} [get]
func (c *Controller) getCastMember(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	out, err := c.uc.Get(ctx.Request.Context(), id)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Обновление участника съёмок
// @Tags CastMembers
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "ID участника"
// @Param request body UpdateCastMemberRequestDTO true "Изменения"
// @Success 200 {object} CastMemberResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse
// @Router /cast_members/{id} [put]
func (c *Controller) updateCastMember(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateCastMemberRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	in := usecase_castmember.UpdateInput{ID: id, Name: req.Name}
	if req.Type != nil {
		t := model.CastMemberType(*req.Type)
		in.Type = &t
	}

	out, err := c.uc.Update(ctx.Request.Context(), in)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Удаление участника съёмок
// @Tags CastMembers
// @Security AdminToken
// @Param id path string true "ID участника"
// @Success 204
// @Failure 404 {object} http_common.ErrorResponse
// @Router /cast_members/{id} [delete]
func (c *Controller) deleteCastMember(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.uc.Delete(ctx.Request.Context(), id); err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
