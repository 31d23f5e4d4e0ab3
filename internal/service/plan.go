package service

import (
	"context"
	"errors"
	"time"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/metrics"
	"github.com/brandonleon/carbsmart/internal/service/cache"
)

// PlanCalculator computes serving plans.
type PlanCalculator interface {
	Calculate(ctx context.Context, in model.PlanInput) (model.Plan, error)
	// InvalidateCache drops every cached plan.
	InvalidateCache(ctx context.Context)
}

// Option configures a PlanCalculatorService.
type Option func(*PlanCalculatorService)

// PlanCalculatorService implements PlanCalculator with an optional cache.
type PlanCalculatorService struct {
	maxServings int
	cache       cache.Cache
}

// NewPlanCalculatorService creates a calculator with the given options.
func NewPlanCalculatorService(opts ...Option) *PlanCalculatorService {
	s := &PlanCalculatorService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxServings caps the number of serving counts a single plan may
// consider. Zero keeps the search unbounded.
func WithMaxServings(n int) Option {
	return func(s *PlanCalculatorService) {
		if n > 0 {
			s.maxServings = n
		}
	}
}

// WithCache enables an in-memory cache with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *PlanCalculatorService) {
		if capacity > 0 {
			s.cache = cache.NewShardedCache(capacity, ttl, 16)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *PlanCalculatorService) {
		s.cache = c
	}
}

// Calculate computes the plan for in. Only successful plans are cached.
func (s *PlanCalculatorService) Calculate(ctx context.Context, in model.PlanInput) (model.Plan, error) {
	start := time.Now()
	key := in.Key()

	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, key); ok {
			metrics.RecordPlanCalculation(time.Since(start), "cached", p.Servings)
			return p, nil
		}
	}

	p, err := ComputePlan(in, s.maxServings)
	if err != nil {
		status := "error"
		if errors.Is(err, ErrInvalidInput) {
			status = "invalid_input"
		}
		metrics.RecordPlanCalculation(time.Since(start), status, 0)
		return model.Plan{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, p)
	}
	metrics.RecordPlanCalculation(time.Since(start), "success", p.Servings)
	return p, nil
}

// InvalidateCache clears the calculation cache.
func (s *PlanCalculatorService) InvalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Clear(ctx)
	}
}

// Stop releases the cache.
func (s *PlanCalculatorService) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// PanPlanRequest asks for a plan of a dish cooked in a registered pan.
type PanPlanRequest struct {
	PanID            int64
	GrossWeightGrams float64
	TotalCarbs       float64
	TargetMinGrams   float64
	TargetMaxGrams   float64
}

// PlanService resolves pans and plans dishes cooked in them.
type PlanService interface {
	PlanForPan(ctx context.Context, req PanPlanRequest) (model.Plan, model.Pan, error)
}

// PlanServiceImpl implements PlanService.
type PlanServiceImpl struct {
	pans       PanService
	calculator PlanCalculator
}

// NewPlanService creates a plan service.
func NewPlanService(pans PanService, calculator PlanCalculator) *PlanServiceImpl {
	return &PlanServiceImpl{pans: pans, calculator: calculator}
}

// PlanForPan looks up the pan's tare weight and computes the plan. It
// fails with ErrPanNotFound before any calculation when the pan is unknown.
func (s *PlanServiceImpl) PlanForPan(ctx context.Context, req PanPlanRequest) (model.Plan, model.Pan, error) {
	pan, err := s.pans.Get(ctx, req.PanID)
	if err != nil {
		return model.Plan{}, model.Pan{}, err
	}

	plan, err := s.calculator.Calculate(ctx, model.PlanInput{
		GrossWeightGrams: req.GrossWeightGrams,
		TareWeightGrams:  pan.WeightGrams,
		TotalCarbs:       req.TotalCarbs,
		TargetMinGrams:   req.TargetMinGrams,
		TargetMaxGrams:   req.TargetMaxGrams,
	})
	if err != nil {
		return model.Plan{}, *pan, err
	}
	return plan, *pan, nil
}
