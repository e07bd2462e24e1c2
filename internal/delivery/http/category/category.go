package http_category

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
	"github.com/humanbelnik/catalog/internal/model"
	usecase_category "github.com/humanbelnik/catalog/internal/usecase/category"
)

type Usecase interface {
	Create(ctx context.Context, in usecase_category.CreateInput) (*usecase_category.Output, error)
	Update(ctx context.Context, in usecase_category.UpdateInput) (*usecase_category.Output, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*usecase_category.Output, error)
	List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*usecase_category.Output], error)
}

// CreateCategoryRequestDTO запрос на создание категории
type CreateCategoryRequestDTO struct {
	Name        string `json:"name" binding:"required" example:"Фильмы"`
	Description string `json:"description" example:"Полнометражные фильмы"`
	IsActive    *bool  `json:"is_active" example:"true"`
}

// UpdateCategoryRequestDTO запрос на обновление категории, отсутствующие поля не меняются
type UpdateCategoryRequestDTO struct {
	Name        *string `json:"name" example:"Сериалы"`
	Description *string `json:"description" example:"Многосерийные"`
	IsActive    *bool   `json:"is_active" example:"false"`
}

// CategoryResponseDTO категория
type CategoryResponseDTO struct {
	ID          uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string    `json:"name" example:"Фильмы"`
	Description string    `json:"description" example:"Полнометражные фильмы"`
	IsActive    bool      `json:"is_active" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
}

func ConvertFromOutput(out *usecase_category.Output) CategoryResponseDTO {
	return CategoryResponseDTO{
		ID:          out.ID,
		Name:        out.Name,
		Description: out.Description,
		IsActive:    out.IsActive,
		CreatedAt:   out.CreatedAt,
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
	categories := router.Group("/categories")
	categories.GET("", c.listCategories)
	categories.GET("/:id", c.getCategory)
	categories.POST("", c.authRequired, c.createCategory)
	categories.PUT("/:id", c.authRequired, c.updateCategory)
	categories.DELETE("/:id", c.authRequired, c.deleteCategory)
}

// @Summary Создание категории
// @Tags Categories
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body CreateCategoryRequestDTO true "Категория"
// @Success 201 {object} CategoryResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse
// @Router /categories [post]
func (c *Controller) createCategory(ctx *gin.Context) {
	var req CreateCategoryRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	out, err := c.uc.Create(ctx.Request.Context(), usecase_category.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, ConvertFromOutput(out))
}

// @Summary Список категорий
// @Tags Categories
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Param search query string false "Поиск по имени"
// @Param sort query string false "name | created_at"
// @Param dir query string false "asc | desc"
// @Success 200 {object} http_common.PageResponse[CategoryResponseDTO]
// @Failure 400 {object} http_common.ErrorResponse
// @Router /categories [get]
func (c *Controller) listCategories(ctx *gin.Context) {
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

// @Summary Категория по ID
// @Tags Categories
// @Produce json
// @Param id path string true "ID категории"
// @Success 200 {object} CategoryResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /categories/{id} [get]
func (c *Controller) getCategory(ctx *gin.Context) {
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

// @Summary Обновление категории
// @Tags Categories
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "ID категории"
// @Param request body UpdateCategoryRequestDTO true "Изменения"
// @Success 200 {object} CategoryResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse
// @Router /categories/{id} [put]
func (c *Controller) updateCategory(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	out, err := c.uc.Update(ctx.Request.Context(), usecase_category.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Удаление категории
// @Tags Categories
// @Security AdminToken
// @Param id path string true "ID категории"
// @Success 204
// @Failure 404 {object} http_common.ErrorResponse
// @Router /categories/{id} [delete]
func (c *Controller) deleteCategory(ctx *gin.Context) {
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
