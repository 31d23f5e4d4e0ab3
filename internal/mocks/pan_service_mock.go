// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

type MockPanService struct {
	mock.Mock
}

func (m *MockPanService) List(ctx context.Context) ([]model.Pan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pan), args.Error(1)
}

func (m *MockPanService) Get(ctx context.Context, id int64) (*model.Pan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pan), args.Error(1)
}

func (m *MockPanService) Create(ctx context.Context, in model.PanInput) (*model.Pan, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pan), args.Error(1)
}

func (m *MockPanService) Update(ctx context.Context, id int64, patch model.PanPatch) (*model.Pan, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pan), args.Error(1)
}

func (m *MockPanService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPanService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
