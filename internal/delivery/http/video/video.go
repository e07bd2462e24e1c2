package http_video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
	"github.com/humanbelnik/catalog/internal/model"
	usecase_video "github.com/humanbelnik/catalog/internal/usecase/video"
)

const defaultMaxUploadBytes int64 = 512 << 20

type Usecase interface {
	Create(ctx context.Context, in usecase_video.CreateInput) (*usecase_video.Output, error)
	Update(ctx context.Context, in usecase_video.UpdateInput) (*usecase_video.Output, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*usecase_video.Output, error)
	List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*usecase_video.Output], error)
	UploadMedias(ctx context.Context, id uuid.UUID, assets usecase_video.Assets) (*usecase_video.Output, error)
	UpdateMediaStatus(ctx context.Context, in usecase_video.MediaStatusInput) (*usecase_video.Output, error)
	AssetURL(ctx context.Context, id uuid.UUID, kind model.AssetKind) (string, error)
}

// fileFields multipart поля с файлами
var fileFields = []struct {
	field string
	kind  model.AssetKind
}{
	{"thumb_file", model.AssetThumb},
	{"thumb_half_file", model.AssetThumbHalf},
	{"banner_file", model.AssetBanner},
	{"video_file", model.AssetMedia},
	{"trailer_file", model.AssetTrailer},
}

// VideoRequestDTO тело создания и обновления видео, JSON или multipart/form-data
type VideoRequestDTO struct {
	Title         string   `json:"title" form:"title" example:"Сталкер"`
	Description   string   `json:"description" form:"description" example:"Экранизация повести Стругацких"`
	YearLaunched  int      `json:"year_launched" form:"year_launched" example:"1979"`
	Opened        bool     `json:"opened" form:"opened" example:"false"`
	Published     bool     `json:"published" form:"published" example:"true"`
	Duration      int      `json:"duration" form:"duration" example:"163"`
	Rating        string   `json:"rating" form:"rating" example:"12"`
	CategoriesID  []string `json:"categories_id" form:"categories_id"`
	GenresID      []string `json:"genres_id" form:"genres_id"`
	CastMembersID []string `json:"cast_members_id" form:"cast_members_id"`
	Version       *int     `json:"version" form:"version" example:"1"`
}

// MediaStatusRequestDTO результат кодирования
type MediaStatusRequestDTO struct {
	Kind         string `json:"kind" example:"media"`
	Status       string `json:"status" binding:"required" example:"completed"`
	EncodedPath  string `json:"encoded_path" example:"videos/550e8400/media-encoded/index.m3u8"`
	ErrorMessage string `json:"error_message"`
}

// MediaResponseDTO видеофайл и состояние его кодирования
type MediaResponseDTO struct {
	FilePath    string `json:"file_path"`
	EncodedPath string `json:"encoded_path"`
	Status      string `json:"status" example:"processing"`
}

// VideoResponseDTO видео
type VideoResponseDTO struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title" example:"Сталкер"`
	Description   string            `json:"description"`
	YearLaunched  int               `json:"year_launched" example:"1979"`
	Opened        bool              `json:"opened"`
	Published     bool              `json:"published"`
	Duration      int               `json:"duration" example:"163"`
	Rating        string            `json:"rating" example:"12"`
	CreatedAt     time.Time         `json:"created_at"`
	Version       int               `json:"version" example:"1"`
	CategoriesID  []uuid.UUID       `json:"categories_id"`
	GenresID      []uuid.UUID       `json:"genres_id"`
	CastMembersID []uuid.UUID       `json:"cast_members_id"`
	Thumb         string            `json:"thumb,omitempty"`
	ThumbHalf     string            `json:"thumb_half,omitempty"`
	Banner        string            `json:"banner,omitempty"`
	Video         *MediaResponseDTO `json:"video,omitempty"`
	Trailer       *MediaResponseDTO `json:"trailer,omitempty"`
}

// AssetURLResponseDTO временная ссылка на файл
type AssetURLResponseDTO struct {
	URL string `json:"url"`
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func convertMedia(m *usecase_video.MediaOutput) *MediaResponseDTO {
	if m == nil {
		return nil
	}
	return &MediaResponseDTO{
		FilePath:    m.FilePath,
		EncodedPath: m.EncodedPath,
		Status:      string(m.Status),
	}
}

func ConvertFromOutput(out *usecase_video.Output) VideoResponseDTO {
	return VideoResponseDTO{
		ID:            out.ID,
		Title:         out.Title,
		Description:   out.Description,
		YearLaunched:  out.YearLaunched,
		Opened:        out.Opened,
		Published:     out.Published,
		Duration:      out.Duration,
		Rating:        string(out.Rating),
		CreatedAt:     out.CreatedAt,
		Version:       out.Version,
		CategoriesID:  nonNil(out.CategoryIDs),
		GenresID:      nonNil(out.GenreIDs),
		CastMembersID: nonNil(out.CastMemberIDs),
		Thumb:         out.Thumb,
		ThumbHalf:     out.ThumbHalf,
		Banner:        out.Banner,
		Video:         convertMedia(out.Media),
		Trailer:       convertMedia(out.Trailer),
	}
}

type Controller struct {
	uc             Usecase
	authRequired   gin.HandlerFunc
	logger         *slog.Logger
	maxUploadBytes int64
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMaxUploadBytes(n int64) ControllerOption {
	return func(c *Controller) {
		if n > 0 {
			c.maxUploadBytes = n
		}
	}
}

func New(uc Usecase, authRequired gin.HandlerFunc, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:             uc,
		authRequired:   authRequired,
		logger:         slog.Default(),
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	videos := router.Group("/videos")
	videos.GET("", c.listVideos)
	videos.GET("/:id", c.getVideo)
	videos.GET("/:id/assets/:kind", c.getAssetURL)

	admin := videos.Group("", c.authRequired, c.limitBody)
	admin.POST("", c.createVideo)
	admin.PUT("/:id", c.updateVideo)
	admin.DELETE("/:id", c.deleteVideo)
	admin.POST("/:id/medias", c.uploadMedias)
	admin.PUT("/:id/media/status", c.updateMediaStatus)
}

func (c *Controller) limitBody(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	ctx.Next()
}

type parsedVideo struct {
	fields      model.VideoFields
	categories  []uuid.UUID
	genres      []uuid.UUID
	castMembers []uuid.UUID
	version     *int
	assets      usecase_video.Assets
}

// bindVideo accepts JSON or multipart bodies. Id and file errors are
// reported together as one validation error.
func (c *Controller) bindVideo(ctx *gin.Context) (*parsedVideo, bool) {
	var req VideoRequestDTO
	if err := ctx.ShouldBind(&req); err != nil {
		c.respondBodyError(ctx, err)
		return nil, false
	}

	var n model.Notification
	out := &parsedVideo{
		fields: model.VideoFields{
			Title:        req.Title,
			Description:  req.Description,
			YearLaunched: req.YearLaunched,
			Opened:       req.Opened,
			Published:    req.Published,
			Duration:     req.Duration,
			Rating:       model.Rating(req.Rating),
		},
		version: req.Version,
	}

	var err error
	out.categories, err = http_common.ParseIDs("categories_id", req.CategoriesID)
	n.Merge("categories_id", err)
	out.genres, err = http_common.ParseIDs("genres_id", req.GenresID)
	n.Merge("genres_id", err)
	out.castMembers, err = http_common.ParseIDs("cast_members_id", req.CastMembersID)
	n.Merge("cast_members_id", err)

	if ctx.ContentType() == binding.MIMEMultipartPOSTForm {
		out.assets, err = c.readAssets(ctx, &n)
		if err != nil {
			c.respondBodyError(ctx, err)
			return nil, false
		}
	}

	if err := n.Err(); err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return nil, false
	}
	return out, true
}

// readAssets loads every known file field, checking that the sniffed
// content matches the asset kind.
func (c *Controller) readAssets(ctx *gin.Context, n *model.Notification) (usecase_video.Assets, error) {
	var assets usecase_video.Assets
	form, err := ctx.MultipartForm()
	if err != nil {
		return assets, err
	}

	for _, ff := range fileFields {
		headers := form.File[ff.field]
		if len(headers) == 0 {
			continue
		}
		f, err := readFile(headers[0])
		if err != nil {
			return assets, err
		}

		want := "video/"
		if ff.kind.IsImage() {
			want = "image/"
		}
		if !strings.HasPrefix(f.ContentType, want) {
			n.Add(ff.field, fmt.Sprintf("expected %s* content, got %s", want, f.ContentType))
			continue
		}
		assets.Set(ff.kind, f)
	}
	return assets, nil
}

func readFile(h *multipart.FileHeader) (*model.File, error) {
	src, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &model.File{
		Name:        h.Filename,
		ContentType: mimetype.Detect(content).String(),
		Content:     content,
	}, nil
}

func (c *Controller) respondBodyError(ctx *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		ctx.JSON(http.StatusRequestEntityTooLarge, http_common.ErrorResponse{
			Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
		return
	}
	http_common.RespondBindError(ctx, c.logger, err)
}

// @Summary Создание видео
// @Description Принимает JSON или multipart/form-data с файлами thumb_file, thumb_half_file, banner_file, video_file, trailer_file
// @Tags Videos
// @Accept json,mpfd
// @Produce json
// @Security AdminToken
// @Param request body VideoRequestDTO true "Видео"
// @Success 201 {object} VideoResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Некорректный формат запроса"
// @Failure 413 {object} http_common.ErrorResponse "Слишком большой файл"
// @Failure 422 {object} http_common.ErrorResponse "Ошибки валидации"
// @Router /videos [post]
func (c *Controller) createVideo(ctx *gin.Context) {
	p, ok := c.bindVideo(ctx)
	if !ok {
		return
	}

	out, err := c.uc.Create(ctx.Request.Context(), usecase_video.CreateInput{
		Title:         p.fields.Title,
		Description:   p.fields.Description,
		YearLaunched:  p.fields.YearLaunched,
		Opened:        p.fields.Opened,
		Published:     p.fields.Published,
		Duration:      p.fields.Duration,
		Rating:        p.fields.Rating,
		CategoryIDs:   p.categories,
		GenreIDs:      p.genres,
		CastMemberIDs: p.castMembers,
		Assets:        p.assets,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, ConvertFromOutput(out))
}

// @Summary Обновление видео
// @Description Скалярные поля заменяются целиком. Отсутствующие списки связей не меняются, пустые очищают связи
// @Tags Videos
// @Accept json,mpfd
// @Produce json
// @Security AdminToken
// @Param id path string true "ID видео"
// @Param request body VideoRequestDTO true "Видео"
// @Success 200 {object} VideoResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse "Версия устарела"
// @Failure 422 {object} http_common.ErrorResponse
// @Router /videos/{id} [put]
func (c *Controller) updateVideo(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	p, ok := c.bindVideo(ctx)
	if !ok {
		return
	}

	out, err := c.uc.Update(ctx.Request.Context(), usecase_video.UpdateInput{
		ID:            id,
		Version:       p.version,
		Title:         p.fields.Title,
		Description:   p.fields.Description,
		YearLaunched:  p.fields.YearLaunched,
		Opened:        p.fields.Opened,
		Published:     p.fields.Published,
		Duration:      p.fields.Duration,
		Rating:        p.fields.Rating,
		CategoryIDs:   p.categories,
		GenreIDs:      p.genres,
		CastMemberIDs: p.castMembers,
		Assets:        p.assets,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Удаление видео
// @Tags Videos
// @Security AdminToken
// @Param id path string true "ID видео"
// @Success 204
// @Failure 404 {object} http_common.ErrorResponse
// @Router /videos/{id} [delete]
func (c *Controller) deleteVideo(ctx *gin.Context) {
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

// @Summary Видео по ID
// @Tags Videos
// @Produce json
// @Param id path string true "ID видео"
// @Success 200 {object} VideoResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /videos/{id} [get]
func (c *Controller) getVideo(ctx *gin.Context) {
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

// @Summary Список видео
// @Tags Videos
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Param search query string false "Поиск по названию"
// @Param sort query string false "title | year_launched | created_at"
// @Param dir query string false "asc | desc"
// @Success 200 {object} http_common.PageResponse[VideoResponseDTO]
// @Router /videos [get]
func (c *Controller) listVideos(ctx *gin.Context) {
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

// @Summary Загрузка файлов видео
// @Tags Videos
// @Accept mpfd
// @Produce json
// @Security AdminToken
// @Param id path string true "ID видео"
// @Param thumb_file formData file false "Обложка"
// @Param thumb_half_file formData file false "Уменьшенная обложка"
// @Param banner_file formData file false "Баннер"
// @Param video_file formData file false "Видео"
// @Param trailer_file formData file false "Трейлер"
// @Success 200 {object} VideoResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse
// @Router /videos/{id}/medias [post]
func (c *Controller) uploadMedias(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	var n model.Notification
	assets, err := c.readAssets(ctx, &n)
	if err != nil {
		c.respondBodyError(ctx, err)
		return
	}
	if err := n.Err(); err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	out, err := c.uc.UploadMedias(ctx.Request.Context(), id, assets)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Статус кодирования видеофайла
// @Tags Videos
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "ID видео"
// @Param request body MediaStatusRequestDTO true "Результат кодирования"
// @Success 200 {object} VideoResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse "Недопустимый переход статуса"
// @Router /videos/{id}/media/status [put]
func (c *Controller) updateMediaStatus(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	var req MediaStatusRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBindError(ctx, c.logger, err)
		return
	}

	out, err := c.uc.UpdateMediaStatus(ctx.Request.Context(), usecase_video.MediaStatusInput{
		VideoID:      id,
		Kind:         model.AssetKind(req.Kind),
		Status:       model.MediaStatus(strings.ToLower(req.Status)),
		EncodedPath:  req.EncodedPath,
		ErrorMessage: req.ErrorMessage,
	})
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromOutput(out))
}

// @Summary Временная ссылка на файл видео
// @Tags Videos
// @Produce json
// @Param id path string true "ID видео"
// @Param kind path string true "thumb | thumb_half | banner | media | trailer"
// @Success 200 {object} AssetURLResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /videos/{id}/assets/{kind} [get]
func (c *Controller) getAssetURL(ctx *gin.Context) {
	id, ok := http_common.ParseID(ctx, "id")
	if !ok {
		return
	}

	url, err := c.uc.AssetURL(ctx.Request.Context(), id, model.AssetKind(ctx.Param("kind")))
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, AssetURLResponseDTO{URL: url})
}
