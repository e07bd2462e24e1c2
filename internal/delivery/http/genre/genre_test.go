//go:build !integration

package http_genre

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	usecase_genre "github.com/humanbelnik/catalog/internal/usecase/genre"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type usecaseMock struct {
	mock.Mock
}

func (m *usecaseMock) Create(ctx context.Context, in usecase_genre.CreateInput) (*usecase_genre.Output, error) {
	ret := m.Called(in)
	out, _ := ret.Get(0).(*usecase_genre.Output)
	return out, ret.Error(1)
}

func (m *usecaseMock) Update(ctx context.Context, in usecase_genre.UpdateInput) (*usecase_genre.Output, error) {
	ret := m.Called(in)
	out, _ := ret.Get(0).(*usecase_genre.Output)
	return out, ret.Error(1)
}

func (m *usecaseMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *usecaseMock) Get(ctx context.Context, id uuid.UUID) (*usecase_genre.Output, error) {
	ret := m.Called(id)
	out, _ := ret.Get(0).(*usecase_genre.Output)
	return out, ret.Error(1)
}

func (m *usecaseMock) List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*usecase_genre.Output], error) {
	ret := m.Called(in)
	return ret.Get(0).(model.SearchOutput[*usecase_genre.Output]), ret.Error(1)
}

type HTTPGenreUnitSuite struct {
	suite.Suite
}

func init() {
	gin.SetMode(gin.TestMode)
}

func do(uc Usecase, method, target, body string) *httptest.ResponseRecorder {
	engine := gin.New()
	New(uc, func(ctx *gin.Context) { ctx.Next() }).RegisterRoutes(engine.Group("/api/v1"))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func (s *HTTPGenreUnitSuite) TestCreate(t provider.T) {
	t.Parallel()
	c1 := uuid.New()

	testCases := []struct {
		name       string
		body       string
		setupMocks func(m *usecaseMock)
		status     int
	}{
		{
			name: "Should create genre with categories",
			body: `{"name":"Drama","categories_id":["` + c1.String() + `"]}`,
			setupMocks: func(m *usecaseMock) {
				m.On("Create", usecase_genre.CreateInput{Name: "Drama", IsActive: true, CategoryIDs: []uuid.UUID{c1}}).
					Return(&usecase_genre.Output{ID: uuid.New(), Name: "Drama", CategoryIDs: []uuid.UUID{c1}}, nil).Once()
			},
			status: http.StatusCreated,
		},
		{
			name:       "Should reject malformed category id",
			body:       `{"name":"Drama","categories_id":["nope"]}`,
			setupMocks: func(m *usecaseMock) {},
			status:     http.StatusUnprocessableEntity,
		},
		{
			name: "Should pass validation errors from the use case",
			body: `{"name":"Drama","categories_id":["` + c1.String() + `"]}`,
			setupMocks: func(m *usecaseMock) {
				var n model.Notification
				n.Add("categories_id", "related categories id (or ids) not found: "+c1.String())
				m.On("Create", mock.Anything).Return(nil, n.Err()).Once()
			},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			m := &usecaseMock{}
			tc.setupMocks(m)

			rec := do(m, http.MethodPost, "/api/v1/genres", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			m.AssertExpectations(t)
		})
	}
}

func (s *HTTPGenreUnitSuite) TestUpdateDistinguishesMissingFromEmptyCategories(t provider.T) {
	t.Parallel()
	id := uuid.New()

	testCases := []struct {
		name     string
		body     string
		expected []uuid.UUID
	}{
		{"Should keep categories when absent", `{"is_active":false}`, nil},
		{"Should clear categories when empty", `{"categories_id":[]}`, []uuid.UUID{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			m := &usecaseMock{}
			m.On("Update", mock.MatchedBy(func(in usecase_genre.UpdateInput) bool {
				return in.ID == id && (in.CategoryIDs == nil) == (tc.expected == nil)
			})).Return(&usecase_genre.Output{ID: id}, nil).Once()

			rec := do(m, http.MethodPut, "/api/v1/genres/"+id.String(), tc.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp GenreResponseDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotNil(t, resp.CategoriesID)
			m.AssertExpectations(t)
		})
	}
}

func (s *HTTPGenreUnitSuite) TestGetListDelete(t provider.T) {
	t.Parallel()
	id := uuid.New()
	m := &usecaseMock{}
	m.On("Get", id).Return(&usecase_genre.Output{ID: id, Name: "Drama"}, nil).Once()
	m.On("Delete", id).Return(model.ErrNotFound).Once()
	m.On("List", model.SearchInput{}).Return(model.SearchOutput[*usecase_genre.Output]{Page: 1, PerPage: 15}, nil).Once()

	rec := do(m, http.MethodGet, "/api/v1/genres/"+id.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(m, http.MethodDelete, "/api/v1/genres/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(m, http.MethodGet, "/api/v1/genres", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"meta":{"page":1,"per_page":15,"total":0}}`, rec.Body.String())
	m.AssertExpectations(t)
}

func TestHTTPGenreUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HTTPGenreUnitSuite))
}
