package http_common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

const AdminTokenHeader = "X-admin-token"

type ErrorResponse struct {
	Message string             `json:"message" example:"validation failed"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

type PageMeta struct {
	Page    int `json:"page" example:"1"`
	PerPage int `json:"per_page" example:"15"`
	Total   int `json:"total" example:"42"`
}

type PageResponse[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

func NewPage[T, U any](out model.SearchOutput[T], conv func(T) U) PageResponse[U] {
	items := make([]U, len(out.Items))
	for i, it := range out.Items {
		items[i] = conv(it)
	}
	return PageResponse[U]{
		Items: items,
		Meta: PageMeta{
			Page:    out.Page,
			PerPage: out.PerPage,
			Total:   out.Total,
		},
	}
}

var jsonNamesOnce sync.Once

// UseJSONFieldNames makes binding errors report json names instead of Go ones.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(registerJSONNames)
}

func registerJSONNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// ParseSearch reads page, per_page, search, sort and dir. Paging is clamped
// by the repositories; only non-numeric values are rejected here.
func ParseSearch(ctx *gin.Context) (model.SearchInput, error) {
	in := model.SearchInput{
		Search:  ctx.Query("search"),
		OrderBy: ctx.Query("sort"),
		Order:   model.SearchOrder(strings.ToLower(ctx.Query("dir"))),
	}

	var err error
	if raw := ctx.Query("page"); raw != "" {
		if in.Page, err = strconv.Atoi(raw); err != nil {
			return in, fmt.Errorf("invalid page %q", raw)
		}
	}
	if raw := ctx.Query("per_page"); raw != "" {
		if in.PerPage, err = strconv.Atoi(raw); err != nil {
			return in, fmt.Errorf("invalid per_page %q", raw)
		}
	}
	return in, nil
}

// ParseID reads a uuid path parameter and answers 400 when it is malformed.
func ParseID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("invalid %s", param),
		})
		return uuid.Nil, false
	}
	return id, true
}

// ParseIDs converts raw ids; malformed ones become a validation error on field.
func ParseIDs(field string, raw []string) ([]uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	ids, invalid := model.ParseIDs(raw)
	if len(invalid) > 0 {
		var n model.Notification
		n.Add(field, fmt.Sprintf("invalid ids: %s", strings.Join(invalid, ", ")))
		return nil, n.Err()
	}
	return ids, nil
}

// RespondBindError answers a failed ShouldBind call.
func RespondBindError(ctx *gin.Context, logger *slog.Logger, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp := ErrorResponse{Message: model.ErrValidationFailed.Error()}
		for _, fe := range verrs {
			resp.Errors = append(resp.Errors, model.FieldError{
				Field:   fe.Field(),
				Message: ruleMessage(fe),
			})
		}
		ctx.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("field %s must be %s", typeErr.Field, typeErr.Type),
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format"})
	default:
		logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}
}

// RespondError maps use case errors to status codes.
func RespondError(ctx *gin.Context, logger *slog.Logger, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: model.ErrValidationFailed.Error(),
			Errors:  ve.Errors,
		})
	case errors.Is(err, model.ErrNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrDuplicate):
		ctx.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		logger.Error("internal error",
			slog.String("path", ctx.FullPath()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("should be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("should be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("should be one of [%s]", fe.Param())
	case "uuid", "uuid4":
		return "should be a uuid"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
