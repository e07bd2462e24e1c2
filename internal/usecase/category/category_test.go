//go:build !integration

package usecase_category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	repo_mocks "github.com/humanbelnik/catalog/internal/usecase/category/mocks/category/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseCategoryUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase    *Usecase
	repository *repo_mocks.Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	repository := repo_mocks.NewRepository(t)
	return &resources{
		usecase:    New(repository),
		repository: repository,
		ctx:        context.Background(),
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func (s *UsecaseCategoryUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       CreateInput
		setupMocks  func(r *resources)
		expectError bool
		errorType   error
	}{
		{
			name:  "Should create category",
			input: CreateInput{Name: "Movies", Description: "long ones", IsActive: true},
			setupMocks: func(r *resources) {
				r.repository.On("Insert", r.ctx, mock.AnythingOfType("*model.Category")).Return(nil).Once()
			},
		},
		{
			name:        "Should reject short name without touching the store",
			input:       CreateInput{Name: "ab"},
			setupMocks:  func(r *resources) {},
			expectError: true,
			errorType:   model.ErrValidationFailed,
		},
		{
			name:  "Should hide store failure behind ErrInternal",
			input: CreateInput{Name: "Movies"},
			setupMocks: func(r *resources) {
				r.repository.On("Insert", r.ctx, mock.Anything).Return(errors.New("conn reset")).Once()
			},
			expectError: true,
			errorType:   ErrInternal,
		},
		{
			name:  "Should pass duplicate through",
			input: CreateInput{Name: "Movies"},
			setupMocks: func(r *resources) {
				r.repository.On("Insert", r.ctx, mock.Anything).Return(model.ErrDuplicate).Once()
			},
			expectError: true,
			errorType:   model.ErrDuplicate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			out, err := r.usecase.Create(r.ctx, tc.input)
			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, out.ID)
				assert.Equal(t, tc.input.Name, out.Name)
				assert.Equal(t, tc.input.Description, out.Description)
				assert.Equal(t, tc.input.IsActive, out.IsActive)
			}
			r.repository.AssertExpectations(t)
		})
	}
}

func (s *UsecaseCategoryUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()

	existing := func() *model.Category {
		c, _ := model.NewCategory("Movies", "old", true)
		return c
	}

	testCases := []struct {
		name        string
		input       func(id uuid.UUID) UpdateInput
		setupMocks  func(r *resources, c *model.Category)
		expectError bool
		errorType   error
		check       func(t provider.T, out *Output)
	}{
		{
			name: "Should keep fields that were not supplied",
			input: func(id uuid.UUID) UpdateInput {
				return UpdateInput{ID: id, IsActive: boolPtr(false)}
			},
			setupMocks: func(r *resources, c *model.Category) {
				r.repository.On("Get", r.ctx, c.ID).Return(c, nil).Once()
				r.repository.On("Update", r.ctx, c).Return(nil).Once()
			},
			check: func(t provider.T, out *Output) {
				assert.Equal(t, "Movies", out.Name)
				assert.Equal(t, "old", out.Description)
				assert.False(t, out.IsActive)
			},
		},
		{
			name: "Should change name and description",
			input: func(id uuid.UUID) UpdateInput {
				return UpdateInput{ID: id, Name: strPtr("Series"), Description: strPtr("new")}
			},
			setupMocks: func(r *resources, c *model.Category) {
				r.repository.On("Get", r.ctx, c.ID).Return(c, nil).Once()
				r.repository.On("Update", r.ctx, c).Return(nil).Once()
			},
			check: func(t provider.T, out *Output) {
				assert.Equal(t, "Series", out.Name)
				assert.Equal(t, "new", out.Description)
				assert.True(t, out.IsActive)
			},
		},
		{
			name: "Should return not found",
			input: func(id uuid.UUID) UpdateInput {
				return UpdateInput{ID: id}
			},
			setupMocks: func(r *resources, c *model.Category) {
				r.repository.On("Get", r.ctx, c.ID).Return(nil, model.ErrNotFound).Once()
			},
			expectError: true,
			errorType:   model.ErrNotFound,
		},
		{
			name: "Should reject invalid name",
			input: func(id uuid.UUID) UpdateInput {
				return UpdateInput{ID: id, Name: strPtr("")}
			},
			setupMocks: func(r *resources, c *model.Category) {
				r.repository.On("Get", r.ctx, c.ID).Return(c, nil).Once()
			},
			expectError: true,
			errorType:   model.ErrValidationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			c := existing()
			tc.setupMocks(r, c)

			out, err := r.usecase.Update(r.ctx, tc.input(c.ID))
			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
			} else {
				require.NoError(t, err)
				tc.check(t, out)
			}
			r.repository.AssertExpectations(t)
		})
	}
}

func (s *UsecaseCategoryUnitSuite) TestGetDeleteList(t provider.T) {
	t.Parallel()
	r := initResources(t)
	c, err := model.NewCategory("Movies", "", true)
	require.NoError(t, err)
	missing := uuid.New()

	r.repository.On("Get", r.ctx, c.ID).Return(c, nil).Once()
	r.repository.On("Delete", r.ctx, missing).Return(model.ErrNotFound).Once()
	in := model.SearchInput{Search: "mov"}
	r.repository.On("Search", r.ctx, in).Return(model.SearchOutput[*model.Category]{
		Page: 1, PerPage: 15, Total: 1, Items: []*model.Category{c},
	}, nil).Once()

	out, err := r.usecase.Get(r.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, out.ID)

	assert.ErrorIs(t, r.usecase.Delete(r.ctx, missing), model.ErrNotFound)

	page, err := r.usecase.List(r.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Movies", page.Items[0].Name)

	r.repository.AssertExpectations(t)
}

func TestUsecaseCategoryUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCategoryUnitSuite))
}
