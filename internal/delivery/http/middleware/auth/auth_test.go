//go:build !integration

package http_auth_middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type validatorFunc func(token string) (bool, error)

func (f validatorFunc) ValidateToken(token string) (bool, error) {
	return f(token)
}

type AuthMiddlewareUnitSuite struct {
	suite.Suite
}

func init() {
	gin.SetMode(gin.TestMode)
}

func (s *AuthMiddlewareUnitSuite) TestAuthRequired(t provider.T) {
	t.Parallel()

	validator := validatorFunc(func(token string) (bool, error) {
		switch token {
		case "good":
			return true, nil
		case "broken":
			return false, errors.New("redis is down")
		}
		return false, nil
	})

	testCases := []struct {
		name   string
		token  string
		status int
	}{
		{"Should pass valid token", "good", http.StatusNoContent},
		{"Should reject missing header", "", http.StatusUnauthorized},
		{"Should reject unknown token", "stale", http.StatusUnauthorized},
		{"Should answer internal error when validator fails", "broken", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			engine := gin.New()
			engine.DELETE("/videos/x", New(validator).AuthRequired(), func(ctx *gin.Context) {
				ctx.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodDelete, "/videos/x", nil)
			if tc.token != "" {
				req.Header.Set("X-admin-token", tc.token)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAuthMiddlewareUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(AuthMiddlewareUnitSuite))
}
