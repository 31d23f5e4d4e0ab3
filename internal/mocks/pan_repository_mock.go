// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

type MockPanRepository struct {
	mock.Mock
}

func (m *MockPanRepository) List(ctx context.Context) ([]model.Pan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pan), args.Error(1)
}

func (m *MockPanRepository) GetByID(ctx context.Context, id int64) (*model.Pan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pan), args.Error(1)
}

func (m *MockPanRepository) Create(ctx context.Context, in model.PanInput) (*model.Pan, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pan), args.Error(1)
}

func (m *MockPanRepository) Update(ctx context.Context, pan model.Pan) (*model.Pan, error) {
	args := m.Called(ctx, pan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pan), args.Error(1)
}

func (m *MockPanRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPanRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
