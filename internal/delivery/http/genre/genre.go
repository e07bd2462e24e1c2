package http_genre

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
	"github.com/humanbelnik/catalog/internal/model"
	usecase_genre "github.com/humanbelnik/catalog/internal/usecase/genre"
)

type Usecase interface {
	Create(ctx context.Context, in usecase_genre.CreateInput) (*usecase_genre.Output, error)
	Update(ctx context.Context, in usecase_genre.UpdateInput) (*usecase_genre.Output, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*usecase_genre.Output, error)
	List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*usecase_genre.Output], error)
}

// CreateGenreRequestDTO запрос на создание жанра
type CreateGenreRequestDTO struct {
	Name         string   `json:"name" binding:"required" example:"Драма"`
	IsActive     *bool    `json:"is_active" example:"true"`
	CategoriesID []string `json:"categories_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateGenreRequestDTO отсутствующие поля не меняются, пустой categories_id очищает связи
type UpdateGenreRequestDTO struct {
	Name         *string  `json:"name" example:"Триллер"`
	IsActive     *bool    `json:"is_active" example:"false"`
	CategoriesID []string `json:"categories_id"`
}

// GenreResponseDTO жанр
type GenreResponseDTO struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name" example:"Драма"`
	IsActive     bool        `json:"is_active" example:"true"`
	CategoriesID []uuid.UUID `json:"categories_id"`
	CreatedAt    time.Time   `json:"created_at"`
}

func ConvertFromOutput(out *usecase_genre.Output) GenreResponseDTO {
	categories := out.CategoryIDs
	if categories == nil {
		categories = []uuid.UUID{}
	}
	return GenreResponseDTO{
		ID:           out.ID,
		Name:         out.Name,
		IsActive:     out.IsActive,
		CategoriesID: categories,
		CreatedAt:    out.CreatedAt,
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
	genres := router.Group("/genres")
	genres.GET("", c.listGenres)
	genres.GET("/:id", c.getGenre)
	genres.POST("", c.authRequired, c.createGenre)
	genres.PUT("/:id", c.authRequired, c.updateGenre)
	genres.DELETE("/:id", c.authRequired, c.deleteGenre)
}

// @Summary Создание жанра
// @Tags Genres
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body CreateGenreRequestDTO true "Жанр"
// @Success 201 {object} GenreResponseDTO
// @Failure 422 {object} http_common.ErrorResponse "Неизвестные категории или неверное имя"
// @Router /genres [post]
func (c *Controller) createGenre(ctx *gin.Context) {
	var req CreateGenreRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	categories, err := http_common.ParseIDs("categories_id", req.CategoriesID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	out, err := c.uc.Create(ctx.Request.Context(), usecase_genre.CreateInput{
		Name:        req.Name,
		IsActive:    isActive,
		CategoryIDs: categories,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, ConvertFromOutput(out))
}

// @Summary Список жанров
// @Tags Genres
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Param search query string false "Поиск по имени"
// @Param sort query string false "name | created_at"
// @Param dir query string false "asc | desc"
// @Success 200 {object} http_common.PageResponse[GenreResponseDTO]
// @Router /genres [get]
func (c *Controller) listGenres(ctx *gin.Context) {
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

// @Summary Жанр по ID
// @Tags Genres
// @Produce json
// @Param id path string true "ID жанра"
// @Success 200 {object} GenreResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /genres/{id} [get]
func (c *Controller) getGenre(ctx *gin.Context) {
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

// @Summary Обновление жанра
// @Tags Genres
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "ID жанра"
// @Param request body UpdateGenreRequestDTO true "Изменения"
// @Success 200 {object} GenreResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse
// @Router /genres/{id} [put]
func (c *Controller) updateGenre(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateGenreRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	categories, err := http_common.ParseIDs("categories_id", req.CategoriesID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	out, err := c.uc.Update(ctx.Request.Context(), usecase_genre.UpdateInput{
		ID:          id,
		Name:        req.Name,
		IsActive:    req.IsActive,
		CategoryIDs: categories,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Удаление жанра
// @Tags Genres
// @Security AdminToken
// @Param id path string true "ID жанра"
// @Success 204
// @Failure 404 {object} http_common.ErrorResponse
// @Router /genres/{id} [delete]
func (c *Controller) deleteGenre(ctx *gin.Context) {
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
