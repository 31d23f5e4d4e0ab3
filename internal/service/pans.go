package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/brandonleon/carbsmart/internal/circuitbreaker"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/repository"
)

// PanService manages the pan library.
type PanService interface {
	List(ctx context.Context) ([]model.Pan, error)
	Get(ctx context.Context, id int64) (*model.Pan, error)
	Create(ctx context.Context, in model.PanInput) (*model.Pan, error)
	Update(ctx context.Context, id int64, patch model.PanPatch) (*model.Pan, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// PanServiceImpl implements PanService on top of a PanRepository.
type PanServiceImpl struct {
	repo repository.PanRepository
}

// NewPanService creates a pan service. A nil repository yields a service
// whose operations fail with ErrRepositoryNotConfigured.
func NewPanService(repo repository.PanRepository) *PanServiceImpl {
	return &PanServiceImpl{repo: repo}
}

func (s *PanServiceImpl) List(ctx context.Context) ([]model.Pan, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	pans, err := s.repo.List(ctx)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return pans, nil
}

// Get resolves a pan id. Unknown ids fail with ErrPanNotFound.
func (s *PanServiceImpl) Get(ctx context.Context, id int64) (*model.Pan, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if id <= 0 {
		return nil, ErrPanNotFound
	}
	pan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return pan, nil
}

func (s *PanServiceImpl) Create(ctx context.Context, in model.PanInput) (*model.Pan, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	in = in.Normalize()
	if err := validatePan(in.Name, in.WeightGrams); err != nil {
		return nil, err
	}
	pan, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return pan, nil
}

// Update applies patch to the pan. Fields the patch leaves nil keep their
// stored values.
func (s *PanServiceImpl) Update(ctx context.Context, id int64, patch model.PanPatch) (*model.Pan, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	next := patch.Apply(*current)
	if err := validatePan(next.Name, next.WeightGrams); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return updated, nil
}

func (s *PanServiceImpl) Delete(ctx context.Context, id int64) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	if id <= 0 {
		return ErrPanNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStoreError(err)
	}
	return nil
}

func (s *PanServiceImpl) Count(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, translateStoreError(err)
	}
	return n, nil
}

// Seed creates the given pans when the store is empty. It returns the
// number of pans created.
func (s *PanServiceImpl) Seed(ctx context.Context, pans []model.PanInput) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, in := range pans {
		if _, err := s.Create(ctx, in); err != nil {
			if errors.Is(err, ErrPanExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed pan %q: %w", in.Name, err)
		}
		created++
	}
	return created, nil
}

func validatePan(name string, weight float64) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > model.MaxPanNameLength {
		return invalid("Pan name must be between 1 and 200 characters")
	}
	if !(weight > 0) || math.IsInf(weight, 0) {
		return invalid("Pan weight must be positive")
	}
	return nil
}

func translateStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrPanNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrPanExists
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		return err
	}
}
