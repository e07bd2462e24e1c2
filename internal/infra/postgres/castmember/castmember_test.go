//go:build !integration

package infra_postgres_castmember

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/humanbelnik/catalog/internal/model/modeltest"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CastMemberInfraUnitSuite struct {
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

func (s *CastMemberInfraUnitSuite) TestInsertAndGet(t provider.T) {
	t.Parallel()
	r := initResources(t)
	c := modeltest.NewCastMember(modeltest.NewRand(1))

	r.mock.ExpectExec("INSERT INTO cast_members").
		WithArgs(c.ID, c.Name, int(c.Type), c.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	r.mock.ExpectQuery("SELECT (.+) FROM cast_members WHERE id").
		WithArgs(c.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created_at"}).
			AddRow(c.ID.String(), c.Name, int(c.Type), c.CreatedAt))

	require.NoError(t, r.repo.Insert(r.ctx, c))
	got, err := r.repo.Get(r.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *CastMemberInfraUnitSuite) TestDelete(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources, id uuid.UUID)
		expectError bool
		errorType   error
	}{
		{
			name: "Should delete cast member",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectExec("DELETE FROM cast_members").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should report missing cast member",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectExec("DELETE FROM cast_members").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectError: true,
			errorType:   model.ErrNotFound,
		},
		{
			name: "Should wrap driver error",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectExec("DELETE FROM cast_members").WithArgs(id).WillReturnError(errors.New("boom"))
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			id := uuid.New()
			tc.setupMocks(r, id)

			err := r.repo.Delete(r.ctx, id)

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorType != nil {
					assert.ErrorIs(t, err, tc.errorType)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *CastMemberInfraUnitSuite) TestSearchOrdersByType(t provider.T) {
	t.Parallel()
	r := initResources(t)
	c := modeltest.NewCastMember(modeltest.NewRand(2))

	r.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cast_members WHERE name ILIKE \$1`).
		WithArgs(`%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	r.mock.ExpectQuery(`ORDER BY type ASC, id ASC LIMIT \$2 OFFSET \$3`).
		WithArgs(`%50\%%`, 5, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created_at"}).
			AddRow(c.ID.String(), c.Name, int(c.Type), c.CreatedAt))

	out, err := r.repo.Search(r.ctx, model.SearchInput{PerPage: 5, Search: "50%", OrderBy: "type"})
	require.NoError(t, err)
	assert.Equal(t, []*model.CastMember{c}, out.Items)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestCastMemberInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(CastMemberInfraUnitSuite))
}
