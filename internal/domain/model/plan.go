package model

import "fmt"

// Default serving weight range in grams.
const (
	DefaultTargetMinGrams = 200.0
	DefaultTargetMaxGrams = 300.0
)

// PlanInput holds the measured weights of a dish and the desired serving range.
type PlanInput struct {
	GrossWeightGrams float64 `json:"total_weight_grams"`
	TareWeightGrams  float64 `json:"tare_weight_grams"`
	TotalCarbs       float64 `json:"total_carbs"`
	TargetMinGrams   float64 `json:"target_min_grams"`
	TargetMaxGrams   float64 `json:"target_max_grams"`
}

// Key returns a stable identifier for caching plans of identical inputs.
func (in PlanInput) Key() string {
	return fmt.Sprintf("%g|%g|%g|%g|%g",
		in.GrossWeightGrams, in.TareWeightGrams, in.TotalCarbs, in.TargetMinGrams, in.TargetMaxGrams)
}

// Plan is the result of dividing a dish into servings.
//
// @Description Serving plan for a cooked dish
// @Example {"net_weight_grams": 1000, "servings": 4, "serving_weight_grams": 250, "carbs_per_serving": 30}
type Plan struct {
	// NetWeightGrams is the dish weight without the pan
	NetWeightGrams float64 `json:"net_weight_grams" example:"1000"`
	// Servings is the recommended number of servings
	Servings int `json:"servings" example:"4"`
	// ServingWeightGrams is the weight of a single serving
	ServingWeightGrams float64 `json:"serving_weight_grams" example:"250"`
	// CarbsPerServing is the carbohydrate amount of a single serving
	CarbsPerServing float64 `json:"carbs_per_serving" example:"30"`
} // @name Plan
