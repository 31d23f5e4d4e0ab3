// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/service"
)

type MockPlanCalculator struct {
	mock.Mock
}

func (m *MockPlanCalculator) Calculate(ctx context.Context, in model.PlanInput) (model.Plan, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Plan), args.Error(1)
}

func (m *MockPlanCalculator) InvalidateCache(ctx context.Context) {
	m.Called(ctx)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) PlanForPan(ctx context.Context, req service.PanPlanRequest) (model.Plan, model.Pan, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Plan), args.Get(1).(model.Pan), args.Error(2)
}
