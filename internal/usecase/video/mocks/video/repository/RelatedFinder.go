package repo_mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RelatedFinder struct {
	mock.Mock
}

func NewRelatedFinder(t mock.TestingT) *RelatedFinder {
	m := &RelatedFinder{}
	m.Mock.Test(t)
	return m
}

func (_m *RelatedFinder) IDsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, ids)
	var r0 []uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.([]uuid.UUID)
	}
	return r0, ret.Error(1)
}
