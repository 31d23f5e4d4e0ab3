// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model and carry the
// validation rules of the API.
package dto

import (
	"strings"
	"unicode/utf8"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CalcRequest is the body of POST /api/calc.
//
// Target bounds are optional and fall back to the configured defaults.
// Their positivity is checked by the planner, not by binding, so that a
// non-positive range surfaces as an invalid input rather than a malformed
// request.
//
// @Description Request to plan servings for a dish cooked in a registered pan
// @Example {"total_weight_grams": 1500, "pan_id": 1, "total_carbs": 120}
type CalcRequest struct {
	TotalWeightGrams float64  `json:"total_weight_grams" form:"total_weight_grams" binding:"required,gt=0" example:"1500"`
	PanID            int64    `json:"pan_id" form:"pan_id" binding:"required,gt=0" example:"1"`
	TotalCarbs       *float64 `json:"total_carbs" form:"total_carbs" binding:"required,gte=0" example:"120"`
	TargetMinGrams   *float64 `json:"target_min_grams,omitempty" form:"target_min_grams" example:"200"`
	TargetMaxGrams   *float64 `json:"target_max_grams,omitempty" form:"target_max_grams" example:"300"`
} // @name CalcRequest

// Targets returns the requested range, substituting defaults for missing bounds.
func (r *CalcRequest) Targets(defMin, defMax float64) (float64, float64) {
	return targets(r.TargetMinGrams, r.TargetMaxGrams, defMin, defMax)
}

// ServingPlanRequest is the body of POST /api/serving-plan. The tare weight
// is supplied directly instead of through a registered pan.
//
// @Description Request to plan servings from raw weights
// @Example {"total_weight_grams": 1500, "tare_weight_grams": 500, "total_carbs": 120, "target_min_grams": 200, "target_max_grams": 300}
type ServingPlanRequest struct {
	TotalWeightGrams float64  `json:"total_weight_grams" form:"total_weight_grams" binding:"required,gt=0" example:"1500"`
	TareWeightGrams  *float64 `json:"tare_weight_grams" form:"tare_weight_grams" binding:"required,gt=0" example:"500"`
	TotalCarbs       *float64 `json:"total_carbs" form:"total_carbs" binding:"required,gte=0" example:"120"`
	TargetMinGrams   *float64 `json:"target_min_grams,omitempty" form:"target_min_grams" example:"200"`
	TargetMaxGrams   *float64 `json:"target_max_grams,omitempty" form:"target_max_grams" example:"300"`
} // @name ServingPlanRequest

// ToInput converts the request into a planner input.
func (r *ServingPlanRequest) ToInput(defMin, defMax float64) model.PlanInput {
	minG, maxG := targets(r.TargetMinGrams, r.TargetMaxGrams, defMin, defMax)
	return model.PlanInput{
		GrossWeightGrams: r.TotalWeightGrams,
		TareWeightGrams:  *r.TareWeightGrams,
		TotalCarbs:       *r.TotalCarbs,
		TargetMinGrams:   minG,
		TargetMaxGrams:   maxG,
	}
}

func targets(minG, maxG *float64, defMin, defMax float64) (float64, float64) {
	lo, hi := defMin, defMax
	if minG != nil {
		lo = *minG
	}
	if maxG != nil {
		hi = *maxG
	}
	return lo, hi
}

// PanCreateRequest is the body of POST /api/pans.
//
// @Description Request to register a pan
// @Example {"name": "Dutch oven", "weight_grams": 2150.5, "capacity_label": "5 qt"}
type PanCreateRequest struct {
	Name          string  `json:"name" form:"name" binding:"required" example:"Dutch oven"`
	WeightGrams   float64 `json:"weight_grams" form:"weight_grams" binding:"required,gt=0" example:"2150.5"`
	CapacityLabel *string `json:"capacity_label,omitempty" form:"capacity_label" example:"5 qt"`
	Notes         *string `json:"notes,omitempty" form:"notes" example:"enamelled"`
} // @name PanCreateRequest

// Validate checks the rules binding tags cannot express.
func (r *PanCreateRequest) Validate() error {
	return validateName(r.Name)
}

// ToInput converts the request into a domain input. A null capacity label
// becomes the empty label.
func (r *PanCreateRequest) ToInput() model.PanInput {
	in := model.PanInput{
		Name:        r.Name,
		WeightGrams: r.WeightGrams,
		Notes:       r.Notes,
	}
	if r.CapacityLabel != nil {
		in.CapacityLabel = *r.CapacityLabel
	}
	return in.Normalize()
}

// PanUpdateRequest is the body of PUT/PATCH /api/pans/{id}. Only fields
// present in the document are changed.
//
// @Description Partial pan update; omitted fields are left unchanged
// @Example {"weight_grams": 2100}
type PanUpdateRequest struct {
	Name          Optional[string]  `json:"name" swaggertype:"string" example:"Dutch oven"`
	WeightGrams   Optional[float64] `json:"weight_grams" swaggertype:"number" example:"2100"`
	CapacityLabel Optional[string]  `json:"capacity_label" swaggertype:"string" example:"5 qt"`
	Notes         Optional[string]  `json:"notes" swaggertype:"string" example:"lid weighs 900 g"`
} // @name PanUpdateRequest

// Validate rejects nulls for required columns and out-of-range values.
func (r *PanUpdateRequest) Validate() error {
	if r.Name.Set {
		if r.Name.Value == nil {
			return &ValidationError{Field: "name", Message: "must not be null"}
		}
		if err := validateName(*r.Name.Value); err != nil {
			return err
		}
	}
	if r.WeightGrams.Set {
		if r.WeightGrams.Value == nil {
			return &ValidationError{Field: "weight_grams", Message: "must not be null"}
		}
		if *r.WeightGrams.Value <= 0 {
			return &ValidationError{Field: "weight_grams", Message: "must be greater than 0"}
		}
	}
	return nil
}

// ToPatch converts the request into a domain patch.
func (r *PanUpdateRequest) ToPatch() model.PanPatch {
	var p model.PanPatch
	if r.Name.Set {
		p.Name = r.Name.Value
	}
	if r.WeightGrams.Set {
		p.WeightGrams = r.WeightGrams.Value
	}
	if r.CapacityLabel.Set {
		label := ""
		if r.CapacityLabel.Value != nil {
			label = *r.CapacityLabel.Value
		}
		p.CapacityLabel = &label
	}
	if r.Notes.Set {
		if r.Notes.Value == nil {
			p.ClearNotes = true
		} else {
			p.Notes = r.Notes.Value
		}
	}
	return p
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > model.MaxPanNameLength {
		return &ValidationError{Field: "name", Message: "must be at most 200 characters"}
	}
	return nil
}
