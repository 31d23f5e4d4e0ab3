package service

import (
	"math"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// ChooseServings picks the number of servings n for a dish of netWeight
// grams so that netWeight/n falls in [targetMin, targetMax] and is as close
// as possible to the middle of that range.
//
// Candidates are n = 1..max(1, ceil(netWeight/targetMin)). An in-range
// candidate always beats an out-of-range one. Among in-range candidates the
// smallest |s-mid| wins; among out-of-range ones the smallest distance
// outside the range wins, then |s-mid|. Remaining ties go to the smaller n.
//
// maxServings caps the candidate count; when positive and exceeded the call
// fails instead of searching a truncated space. Zero means unlimited.
func ChooseServings(netWeight, targetMin, targetMax float64, maxServings int) (int, float64, error) {
	if !(netWeight > 0) || math.IsInf(netWeight, 0) {
		return 0, 0, invalid(ReasonNetWeightPositive)
	}
	if !(targetMin > 0) || !(targetMax > 0) || math.IsInf(targetMin, 0) || math.IsInf(targetMax, 0) {
		return 0, 0, invalid(ReasonTargetRangePositive)
	}
	if targetMin > targetMax {
		return 0, 0, invalid(ReasonTargetMinAboveMax)
	}

	limit := math.Ceil(netWeight / targetMin)
	if limit < 1 {
		limit = 1
	}
	if limit > math.MaxInt32 || (maxServings > 0 && limit > float64(maxServings)) {
		return 0, 0, invalid(ReasonTargetRangeTooSmall)
	}
	maxN := int(limit)
	mid := (targetMin + targetMax) / 2

	inN, outN := 0, 0
	var inS, outS float64
	inMid, outDist, outMid := math.Inf(1), math.Inf(1), math.Inf(1)

	for n := 1; n <= maxN; n++ {
		s := netWeight / float64(n)
		toMid := math.Abs(s - mid)

		if s >= targetMin && s <= targetMax {
			// n only grows, so a strict comparison keeps the smaller n on ties.
			if toMid < inMid {
				inN, inS, inMid = n, s, toMid
			}
			continue
		}
		if inN != 0 {
			continue
		}

		dist := targetMin - s
		if s > targetMax {
			dist = s - targetMax
		}
		if dist < outDist || (dist == outDist && toMid < outMid) {
			outN, outS, outDist, outMid = n, s, dist, toMid
		}
	}

	if inN != 0 {
		return inN, inS, nil
	}
	return outN, outS, nil
}

// ComputePlan derives the net weight of a dish from its gross and tare
// weights, chooses the servings and splits the carbohydrates evenly.
func ComputePlan(in model.PlanInput, maxServings int) (model.Plan, error) {
	switch {
	case !positive(in.GrossWeightGrams):
		return model.Plan{}, invalid(ReasonTotalWeightPositive)
	case !positive(in.TareWeightGrams):
		return model.Plan{}, invalid(ReasonTareWeightPositive)
	case !(in.TotalCarbs >= 0) || math.IsInf(in.TotalCarbs, 0):
		return model.Plan{}, invalid(ReasonCarbsNegative)
	}

	net := in.GrossWeightGrams - in.TareWeightGrams
	if !(net > 0) {
		return model.Plan{}, invalid(ReasonTotalNotAboveTare)
	}

	n, s, err := ChooseServings(net, in.TargetMinGrams, in.TargetMaxGrams, maxServings)
	if err != nil {
		return model.Plan{}, err
	}

	var perServing float64
	if n > 0 {
		perServing = in.TotalCarbs / float64(n)
	}

	return model.Plan{
		NetWeightGrams:     net,
		Servings:           n,
		ServingWeightGrams: s,
		CarbsPerServing:    perServing,
	}, nil
}

// positive rejects NaN and infinities along with values <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
