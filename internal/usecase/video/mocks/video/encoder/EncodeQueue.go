package encoder_mocks

import (
	"context"

	"github.com/humanbelnik/catalog/internal/model"
	"github.com/stretchr/testify/mock"
)

type EncodeQueue struct {
	mock.Mock
}

func NewEncodeQueue(t mock.TestingT) *EncodeQueue {
	m := &EncodeQueue{}
	m.Mock.Test(t)
	return m
}

func (_m *EncodeQueue) Publish(ctx context.Context, req model.EncodeRequest) error {
	ret := _m.Called(ctx, req)
	return ret.Error(0)
}
