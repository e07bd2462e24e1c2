package repo_mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func NewRepository(t mock.TestingT) *Repository {
	m := &Repository{}
	m.Mock.Test(t)
	return m
}

func (_m *Repository) Insert(ctx context.Context, c *model.CastMember) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

func (_m *Repository) Get(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	ret := _m.Called(ctx, id)
	var r0 *model.CastMember
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.CastMember)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) Update(ctx context.Context, c *model.CastMember) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

func (_m *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *Repository) Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.CastMember], error) {
	ret := _m.Called(ctx, in)
	return ret.Get(0).(model.SearchOutput[*model.CastMember]), ret.Error(1)
}
