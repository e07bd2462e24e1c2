//go:build !integration

package infra_postgres_category

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/humanbelnik/catalog/internal/model/modeltest"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CategoryInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	mock sqlmock.Sqlmock
	repo *Repository
	ctx  context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return &resources{
		mock: mock,
		repo: New(sqlx.NewDb(db, "postgres")),
		ctx:  context.Background(),
	}
}

var columns = []string{"id", "name", "description", "is_active", "created_at"}

func (s *CategoryInfraUnitSuite) TestInsert(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources, c *model.Category)
		expectError bool
		errorType   error
	}{
		{
			name: "Should insert category",
			setupMocks: func(r *resources, c *model.Category) {
				r.mock.ExpectExec("INSERT INTO categories").
					WithArgs(c.ID, c.Name, c.Description, c.IsActive, c.CreatedAt).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "Should map unique violation to duplicate",
			setupMocks: func(r *resources, c *model.Category) {
				r.mock.ExpectExec("INSERT INTO categories").
					WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_pkey"})
			},
			expectError: true,
			errorType:   model.ErrDuplicate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			c := modeltest.NewCategory(modeltest.NewRand(1))
			tc.setupMocks(r, c)

			err := r.repo.Insert(r.ctx, c)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *CategoryInfraUnitSuite) TestGet(t provider.T) {
	t.Parallel()

	t.Run("Should load category", func(t provider.T) {
		r := initResources(t)
		c := modeltest.NewCategory(modeltest.NewRand(2))
		r.mock.ExpectQuery("SELECT (.+) FROM categories WHERE id").
			WithArgs(c.ID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(c.ID.String(), c.Name, c.Description, c.IsActive, c.CreatedAt))

		got, err := r.repo.Get(r.ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return not found for missing row", func(t provider.T) {
		r := initResources(t)
		id := uuid.New()
		r.mock.ExpectQuery("SELECT (.+) FROM categories").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := r.repo.Get(r.ctx, id)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func (s *CategoryInfraUnitSuite) TestUpdateAndDelete(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		rows        int64
		execErr     error
		run         func(r *resources, c *model.Category) error
		query       string
		expectError error
	}{
		{
			name:  "Should update existing category",
			rows:  1,
			query: "UPDATE categories",
			run:   func(r *resources, c *model.Category) error { return r.repo.Update(r.ctx, c) },
		},
		{
			name:        "Should report missing category on update",
			rows:        0,
			query:       "UPDATE categories",
			run:         func(r *resources, c *model.Category) error { return r.repo.Update(r.ctx, c) },
			expectError: model.ErrNotFound,
		},
		{
			name:  "Should delete existing category",
			rows:  1,
			query: "DELETE FROM categories",
			run:   func(r *resources, c *model.Category) error { return r.repo.Delete(r.ctx, c.ID) },
		},
		{
			name:        "Should report missing category on delete",
			rows:        0,
			query:       "DELETE FROM categories",
			run:         func(r *resources, c *model.Category) error { return r.repo.Delete(r.ctx, c.ID) },
			expectError: model.ErrNotFound,
		},
		{
			name:        "Should wrap driver failure",
			execErr:     errors.New("connection reset"),
			query:       "DELETE FROM categories",
			run:         func(r *resources, c *model.Category) error { return r.repo.Delete(r.ctx, c.ID) },
			expectError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			c := modeltest.NewCategory(modeltest.NewRand(3))
			exp := r.mock.ExpectExec(tc.query)
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tc.rows))
			}

			err := tc.run(r, c)

			switch {
			case tc.execErr != nil:
				assert.ErrorContains(t, err, "connection reset")
			case tc.expectError != nil:
				assert.ErrorIs(t, err, tc.expectError)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *CategoryInfraUnitSuite) TestSearch(t provider.T) {
	t.Parallel()

	t.Run("Should page filtered categories", func(t provider.T) {
		r := initResources(t)
		rnd := modeltest.NewRand(4)
		a, b := modeltest.NewCategory(rnd), modeltest.NewCategory(rnd)

		r.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories WHERE name ILIKE \$1`).
			WithArgs("%doc%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		r.mock.ExpectQuery(`SELECT (.+) FROM categories WHERE name ILIKE \$1 ORDER BY name DESC, id DESC LIMIT \$2 OFFSET \$3`).
			WithArgs("%doc%", 10, 10).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(a.ID.String(), a.Name, a.Description, a.IsActive, a.CreatedAt).
				AddRow(b.ID.String(), b.Name, b.Description, b.IsActive, b.CreatedAt))

		out, err := r.repo.Search(r.ctx, model.SearchInput{Page: 2, PerPage: 10, Search: "doc", OrderBy: "name", Order: model.OrderDesc})
		require.NoError(t, err)
		assert.Equal(t, 12, out.Total)
		assert.Equal(t, 2, out.Page)
		assert.Equal(t, []*model.Category{a, b}, out.Items)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should skip page query when nothing matches", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		out, err := r.repo.Search(r.ctx, model.SearchInput{})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Total)
		assert.Empty(t, out.Items)
		assert.Equal(t, model.DefaultPerPage, out.PerPage)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (s *CategoryInfraUnitSuite) TestIDsByIDs(t provider.T) {
	t.Parallel()
	r := initResources(t)
	rnd := modeltest.NewRand(5)
	ids := modeltest.IDs(rnd, 2)

	r.mock.ExpectQuery(`SELECT id FROM categories WHERE id IN \(\$1, \$2\)`).
		WithArgs(ids[0], ids[1]).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ids[1].String()))

	found, err := r.repo.IDsByIDs(r.ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ids[1]}, found)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestCategoryInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(CategoryInfraUnitSuite))
}
