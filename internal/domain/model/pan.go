// Package model defines the core domain entities for the carbsmart service.
package model

import (
	"strings"
	"time"
)

// MaxPanNameLength bounds Pan.Name.
const MaxPanNameLength = 200

// Pan is a registered cooking container whose tare weight is subtracted
// from the gross weight of a dish.
//
// @Description Registered pan with its tare weight
type Pan struct {
	ID            int64     `json:"id" db:"id" bson:"_id" example:"1"`
	Name          string    `json:"name" db:"name" bson:"name" example:"Dutch oven"`
	WeightGrams   float64   `json:"weight_grams" db:"weight_grams" bson:"weight_grams" example:"2150.5"`
	CapacityLabel string    `json:"capacity_label" db:"capacity_label" bson:"capacity_label" example:"5 qt"`
	Notes         *string   `json:"notes" db:"notes" bson:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
} // @name Pan

// DisplayName renders the pan as "name (capacity)" or just the name when
// no capacity label is set.
func (p Pan) DisplayName() string {
	if p.CapacityLabel == "" {
		return p.Name
	}
	return p.Name + " (" + p.CapacityLabel + ")"
}

// PanInput carries the fields of a new pan.
type PanInput struct {
	Name          string  `yaml:"name"`
	WeightGrams   float64 `yaml:"weight_grams"`
	CapacityLabel string  `yaml:"capacity_label"`
	Notes         *string `yaml:"notes"`
}

// Normalize trims surrounding whitespace from the text fields.
func (in PanInput) Normalize() PanInput {
	in.Name = strings.TrimSpace(in.Name)
	in.CapacityLabel = strings.TrimSpace(in.CapacityLabel)
	if in.Notes != nil {
		n := strings.TrimSpace(*in.Notes)
		in.Notes = &n
	}
	return in
}

// PanPatch describes a partial update. Nil pointers leave the stored value
// unchanged. ClearNotes removes the notes even when Notes is nil.
type PanPatch struct {
	Name          *string
	WeightGrams   *float64
	CapacityLabel *string
	Notes         *string
	ClearNotes    bool
}

// Empty reports whether the patch changes nothing.
func (p PanPatch) Empty() bool {
	return p.Name == nil && p.WeightGrams == nil && p.CapacityLabel == nil && p.Notes == nil && !p.ClearNotes
}

// Apply returns a copy of pan with the patch applied.
func (p PanPatch) Apply(pan Pan) Pan {
	if p.Name != nil {
		pan.Name = strings.TrimSpace(*p.Name)
	}
	if p.WeightGrams != nil {
		pan.WeightGrams = *p.WeightGrams
	}
	if p.CapacityLabel != nil {
		pan.CapacityLabel = strings.TrimSpace(*p.CapacityLabel)
	}
	switch {
	case p.ClearNotes:
		pan.Notes = nil
	case p.Notes != nil:
		n := strings.TrimSpace(*p.Notes)
		pan.Notes = &n
	}
	return pan
}
