//go:build !integration

package http_castmember

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
	usecase_castmember "github.com/humanbelnik/catalog/internal/usecase/castmember"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type usecaseMock struct {
	mock.Mock
}

func (m *usecaseMock) Create(ctx context.Context, in usecase_castmember.CreateInput) (*usecase_castmember.Output, error) {
	ret := m.Called(in)
	out, _ := ret.Get(0).(*usecase_castmember.Output)
	return out, ret.Error(1)
}

func (m *usecaseMock) Update(ctx context.Context, in usecase_castmember.UpdateInput) (*usecase_castmember.Output, error) {
	ret := m.Called(in)
	out, _ := ret.Get(0).(*usecase_castmember.Output)
	return out, ret.Error(1)
}

func (m *usecaseMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *usecaseMock) Get(ctx context.Context, id uuid.UUID) (*usecase_castmember.Output, error) {
	ret := m.Called(id)
	out, _ := ret.Get(0).(*usecase_castmember.Output)
	return out, ret.Error(1)
}

func (m *usecaseMock) List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*usecase_castmember.Output], error) {
	ret := m.Called(in)
	return ret.Get(0).(model.SearchOutput[*usecase_castmember.Output]), ret.Error(1)
}

type HTTPCastMemberUnitSuite struct {
	suite.Suite
}

func init() {
	gin.SetMode(gin.TestMode)
}

func do(uc Usecase, method, target, body string) *httptest.ResponseRecorder {
	engine := gin.New()
	deny := func(ctx *gin.Context) {
		if ctx.GetHeader("X-admin-token") != "ok" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Next()
	}
	New(uc, deny).RegisterRoutes(engine.Group("/api/v1"))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-admin-token", "ok")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func (s *HTTPCastMemberUnitSuite) TestCreate(t provider.T) {
	t.Parallel()
	id := uuid.New()

	testCases := []struct {
		name       string
		body       string
		setupMocks func(m *usecaseMock)
		status     int
	}{
		{
			name: "Should create director",
			body: `{"name":"Andrei","type":1}`,
			setupMocks: func(m *usecaseMock) {
				m.On("Create", usecase_castmember.CreateInput{Name: "Andrei", Type: model.CastMemberTypeDirector}).
					Return(&usecase_castmember.Output{ID: id, Name: "Andrei", Type: model.CastMemberTypeDirector}, nil).Once()
			},
			status: http.StatusCreated,
		},
		{
			name: "Should map unknown type to validation failure",
			body: `{"name":"Andrei","type":7}`,
			setupMocks: func(m *usecaseMock) {
				var n model.Notification
				n.Add("type", "unknown cast member type 7")
				m.On("Create", usecase_castmember.CreateInput{Name: "Andrei", Type: 7}).Return(nil, n.Err()).Once()
			},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:       "Should reject string type",
			body:       `{"name":"Andrei","type":"actor"}`,
			setupMocks: func(m *usecaseMock) {},
			status:     http.StatusBadRequest,
		},
		{
			name:       "Should reject missing type",
			body:       `{"name":"Andrei"}`,
			setupMocks: func(m *usecaseMock) {},
			status:     http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			m := &usecaseMock{}
			tc.setupMocks(m)

			rec := do(m, http.MethodPost, "/api/v1/cast_members", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			m.AssertExpectations(t)
		})
	}
}

func (s *HTTPCastMemberUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()
	id := uuid.New()
	actor := model.CastMemberTypeActor

	m := &usecaseMock{}
	m.On("Update", usecase_castmember.UpdateInput{ID: id, Type: &actor}).
		Return(&usecase_castmember.Output{ID: id, Name: "Anatoly", Type: actor}, nil).Once()

	rec := do(m, http.MethodPut, "/api/v1/cast_members/"+id.String(), `{"type":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CastMemberResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Type)
	assert.Equal(t, "Anatoly", resp.Name)
	m.AssertExpectations(t)
}

func (s *HTTPCastMemberUnitSuite) TestGetListDelete(t provider.T) {
	t.Parallel()
	id := uuid.New()
	m := &usecaseMock{}
	m.On("Get", id).Return(nil, model.ErrNotFound).Once()
	m.On("Delete", id).Return(nil).Once()
	m.On("List", model.SearchInput{Search: "and"}).Return(model.SearchOutput[*usecase_castmember.Output]{
		Page: 1, PerPage: 15, Total: 1,
		Items: []*usecase_castmember.Output{{ID: id, Name: "Andrei", Type: model.CastMemberTypeDirector}},
	}, nil).Once()

	rec := do(m, http.MethodGet, "/api/v1/cast_members/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(m, http.MethodDelete, "/api/v1/cast_members/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(m, http.MethodGet, "/api/v1/cast_members?search=and", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []CastMemberResponseDTO `json:"items"`
		Meta  struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].Type)
	assert.Equal(t, 1, page.Meta.Total)

	rec = do(m, http.MethodGet, "/api/v1/cast_members/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.AssertExpectations(t)
}

func TestHTTPCastMemberUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HTTPCastMemberUnitSuite))
}
