//go:build !integration

package usecase_genre

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	repo_mocks "github.com/humanbelnik/catalog/internal/usecase/genre/mocks/genre/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseGenreUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase    *Usecase
	repository *repo_mocks.Repository
	categories *repo_mocks.CategoryFinder
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	repository := repo_mocks.NewRepository(t)
	categories := repo_mocks.NewCategoryFinder(t)
	return &resources{
		usecase:    New(repository, categories),
		repository: repository,
		categories: categories,
		ctx:        context.Background(),
	}
}

func (s *UsecaseGenreUnitSuite) TestCreate(t provider.T) {
	t.Parallel()
	c1, c2 := uuid.New(), uuid.New()

	testCases := []struct {
		name        string
		input       CreateInput
		setupMocks  func(r *resources)
		expectError bool
		errorType   error
		errorFields []string
	}{
		{
			name:  "Should create genre with categories",
			input: CreateInput{Name: "Drama", IsActive: true, CategoryIDs: []uuid.UUID{c1, c2}},
			setupMocks: func(r *resources) {
				r.categories.On("IDsByIDs", r.ctx, []uuid.UUID{c1, c2}).Return([]uuid.UUID{c2, c1}, nil).Once()
				r.repository.On("Insert", r.ctx, mock.MatchedBy(func(g *model.Genre) bool {
					return assert.ObjectsAreEqual([]uuid.UUID{c1, c2}, g.Categories)
				})).Return(nil).Once()
			},
		},
		{
			name:  "Should skip category lookup without categories",
			input: CreateInput{Name: "Drama"},
			setupMocks: func(r *resources) {
				r.repository.On("Insert", r.ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "Should aggregate name and missing category errors",
			input: CreateInput{Name: "", CategoryIDs: []uuid.UUID{c1, c2}},
			setupMocks: func(r *resources) {
				r.categories.On("IDsByIDs", r.ctx, []uuid.UUID{c1, c2}).Return([]uuid.UUID{c1}, nil).Once()
			},
			expectError: true,
			errorType:   model.ErrValidationFailed,
			errorFields: []string{"name", "categories_id"},
		},
		{
			name:  "Should wrap lookup failure",
			input: CreateInput{Name: "Drama", CategoryIDs: []uuid.UUID{c1}},
			setupMocks: func(r *resources) {
				r.categories.On("IDsByIDs", r.ctx, []uuid.UUID{c1}).Return(nil, errors.New("boom")).Once()
			},
			expectError: true,
			errorType:   ErrInternal,
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
				if tc.errorFields != nil {
					var ve *model.ValidationError
					require.ErrorAs(t, err, &ve)
					fields := make([]string, len(ve.Errors))
					for i, fe := range ve.Errors {
						fields[i] = fe.Field
					}
					assert.Equal(t, tc.errorFields, fields)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.input.Name, out.Name)
				assert.ElementsMatch(t, tc.input.CategoryIDs, out.CategoryIDs)
			}
			r.repository.AssertExpectations(t)
			r.categories.AssertExpectations(t)
		})
	}
}

func (s *UsecaseGenreUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()
	c1 := uuid.New()

	testCases := []struct {
		name       string
		input      func(id uuid.UUID) UpdateInput
		setupMocks func(r *resources, g *model.Genre)
		expected   []uuid.UUID
	}{
		{
			name: "Should keep categories when none supplied",
			input: func(id uuid.UUID) UpdateInput {
				name := "Thriller"
				return UpdateInput{ID: id, Name: &name}
			},
			setupMocks: func(r *resources, g *model.Genre) {
				r.repository.On("Get", r.ctx, g.ID).Return(g, nil).Once()
				r.repository.On("Update", r.ctx, g).Return(nil).Once()
			},
			expected: []uuid.UUID{c1},
		},
		{
			name: "Should clear categories on empty set",
			input: func(id uuid.UUID) UpdateInput {
				return UpdateInput{ID: id, CategoryIDs: []uuid.UUID{}}
			},
			setupMocks: func(r *resources, g *model.Genre) {
				r.repository.On("Get", r.ctx, g.ID).Return(g, nil).Once()
				r.repository.On("Update", r.ctx, g).Return(nil).Once()
			},
			expected: []uuid.UUID{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			g, err := model.NewGenre("Drama", true)
			require.NoError(t, err)
			g.AddCategory(c1)
			tc.setupMocks(r, g)

			out, err := r.usecase.Update(r.ctx, tc.input(g.ID))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.CategoryIDs)
			r.repository.AssertExpectations(t)
		})
	}
}

func (s *UsecaseGenreUnitSuite) TestUpdateConflictPassesThrough(t provider.T) {
	t.Parallel()
	r := initResources(t)
	g, err := model.NewGenre("Drama", true)
	require.NoError(t, err)

	r.repository.On("Get", r.ctx, g.ID).Return(g, nil).Once()
	r.repository.On("Update", r.ctx, g).Return(model.ErrNotFound).Once()

	inactive := false
	_, err = r.usecase.Update(r.ctx, UpdateInput{ID: g.ID, IsActive: &inactive})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestUsecaseGenreUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseGenreUnitSuite))
}
