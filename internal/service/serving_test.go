package service

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

func TestChooseServings(t *testing.T) {
	tests := []struct {
		name       string
		weight     float64
		min, max   float64
		wantN      int
		wantWeight float64
	}{
		{"midpoint hit", 1000, 200, 300, 4, 250},
		{"only one in-range candidate", 1000, 150, 180, 6, 1000.0 / 6},
		{"dish lighter than min clamps to one serving", 50, 200, 300, 1, 50},
		{"inclusive min bound", 600, 300, 350, 2, 300},
		{"inclusive max bound", 900, 250, 300, 3, 300},
		{"equidistant in-range candidates prefer fewer servings", 600, 100, 400, 2, 300},
		{"closest out-of-range candidate", 1000, 300, 320, 3, 1000.0 / 3},
		{"single point range", 1000, 250, 250, 4, 250},
		{"range wider than weight", 100, 50, 1000, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, s, err := ChooseServings(tt.weight, tt.min, tt.max, 0)

			require.NoError(t, err)
			assert.Equal(t, tt.wantN, n)
			assert.InDelta(t, tt.wantWeight, s, 1e-9)
		})
	}
}

func TestChooseServings_Validation(t *testing.T) {
	tests := []struct {
		name       string
		weight     float64
		min, max   float64
		maxN       int
		wantReason string
	}{
		{"zero weight", 0, 200, 300, 0, ReasonNetWeightPositive},
		{"negative weight", -5, 200, 300, 0, ReasonNetWeightPositive},
		{"NaN weight", math.NaN(), 200, 300, 0, ReasonNetWeightPositive},
		{"infinite weight", math.Inf(1), 200, 300, 0, ReasonNetWeightPositive},
		{"zero min", 1000, 0, 300, 0, ReasonTargetRangePositive},
		{"negative max", 1000, 200, -1, 0, ReasonTargetRangePositive},
		{"NaN min", 1000, math.NaN(), 300, 0, ReasonTargetRangePositive},
		{"min above max", 1000, 300, 200, 0, ReasonTargetMinAboveMax},
		{"weight checked before range", -1, 300, 200, 0, ReasonNetWeightPositive},
		{"cap exceeded", 1000, 200, 300, 4, ReasonTargetRangeTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ChooseServings(tt.weight, tt.min, tt.max, tt.maxN)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, tt.wantReason, err.Error())
			assert.Equal(t, tt.wantReason, InputReason(err))
		})
	}
}

func TestChooseServings_CapAllowsExactCandidateCount(t *testing.T) {
	n, _, err := ChooseServings(1000, 200, 300, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

// bruteForce ranks every candidate by the documented keys.
func bruteForce(w, lo, hi float64) (int, float64) {
	maxN := int(math.Max(1, math.Ceil(w/lo)))
	mid := (lo + hi) / 2
	bestN, inRange := 0, false
	var bestKey [2]float64
	for n := 1; n <= maxN; n++ {
		s := w / float64(n)
		in := s >= lo && s <= hi
		dist := 0.0
		if s < lo {
			dist = lo - s
		} else if s > hi {
			dist = s - hi
		}
		key := [2]float64{dist, math.Abs(s - mid)}
		switch {
		case bestN == 0, in && !inRange:
			bestN, inRange, bestKey = n, in, key
		case in == inRange:
			if key[0] < bestKey[0] || (key[0] == bestKey[0] && key[1] < bestKey[1]) {
				bestN, bestKey = n, key
			}
		}
	}
	return bestN, w / float64(bestN)
}

func TestChooseServings_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		w := 1 + rng.Float64()*5000
		lo := 10 + rng.Float64()*400
		hi := lo + rng.Float64()*300

		n, s, err := ChooseServings(w, lo, hi, 0)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, n, 1)
		assert.InDelta(t, w/float64(n), s, 1e-9)

		wantN, _ := bruteForce(w, lo, hi)
		assert.Equalf(t, wantN, n, "w=%v lo=%v hi=%v", w, lo, hi)

		n2, s2, _ := ChooseServings(w, lo, hi, 0)
		assert.Equal(t, n, n2)
		assert.Equal(t, s, s2)
	}
}

func TestComputePlan(t *testing.T) {
	t.Run("full plan", func(t *testing.T) {
		p, err := ComputePlan(model.PlanInput{
			GrossWeightGrams: 1050, TareWeightGrams: 50, TotalCarbs: 80,
			TargetMinGrams: 200, TargetMaxGrams: 300,
		}, 0)

		require.NoError(t, err)
		assert.Equal(t, model.Plan{NetWeightGrams: 1000, Servings: 4, ServingWeightGrams: 250, CarbsPerServing: 20}, p)
	})

	t.Run("zero carbs", func(t *testing.T) {
		p, err := ComputePlan(model.PlanInput{
			GrossWeightGrams: 1500, TareWeightGrams: 500, TargetMinGrams: 200, TargetMaxGrams: 300,
		}, 0)

		require.NoError(t, err)
		assert.Equal(t, 0.0, p.CarbsPerServing)
	})

	tests := []struct {
		name       string
		in         model.PlanInput
		wantReason string
	}{
		{"pan heavier than total", model.PlanInput{GrossWeightGrams: 40, TareWeightGrams: 50, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTotalNotAboveTare},
		{"pan equal to total", model.PlanInput{GrossWeightGrams: 50, TareWeightGrams: 50, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTotalNotAboveTare},
		{"optimizer error propagates", model.PlanInput{GrossWeightGrams: 1050, TareWeightGrams: 50, TargetMinGrams: 300, TargetMaxGrams: 200}, ReasonTargetMinAboveMax},
		{"negative gross and tare", model.PlanInput{GrossWeightGrams: -10, TareWeightGrams: -100, TotalCarbs: 10, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTotalWeightPositive},
		{"zero gross", model.PlanInput{GrossWeightGrams: 0, TareWeightGrams: 50, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTotalWeightPositive},
		{"infinite gross", model.PlanInput{GrossWeightGrams: math.Inf(1), TareWeightGrams: 50, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTotalWeightPositive},
		{"negative tare", model.PlanInput{GrossWeightGrams: 1050, TareWeightGrams: -50, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTareWeightPositive},
		{"zero tare", model.PlanInput{GrossWeightGrams: 1050, TareWeightGrams: 0, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTareWeightPositive},
		{"nan tare", model.PlanInput{GrossWeightGrams: 1050, TareWeightGrams: math.NaN(), TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonTareWeightPositive},
		{"negative carbs", model.PlanInput{GrossWeightGrams: 1050, TareWeightGrams: 50, TotalCarbs: -80, TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonCarbsNegative},
		{"nan carbs", model.PlanInput{GrossWeightGrams: 1050, TareWeightGrams: 50, TotalCarbs: math.NaN(), TargetMinGrams: 200, TargetMaxGrams: 300}, ReasonCarbsNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePlan(tt.in, 0)

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.wantReason, InputReason(err))
		})
	}
}

func TestInputReason_NonInputError(t *testing.T) {
	assert.Equal(t, "", InputReason(errors.New("boom")))
	assert.Equal(t, "", InputReason(nil))
}
