package entity

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

// NaturalResource is a deposit on the map. Created at map generation, drawn
// down by extraction and (for renewable kinds) regenerated each tick, never
// destroyed — an exhausted deposit simply yields nothing.
type NaturalResource struct {
	ID     string               `json:"id"`
	Kind   catalog.ResourceKind `json:"kind"`
	Pos    world.Vec2           `json:"pos"`
	Radius float64              `json:"radius"` // extraction radius

	Total     float64 `json:"total"`
	Remaining float64 `json:"remaining"`

	ExtractRate float64 `json:"extract_rate"`
	RegenRate   float64 `json:"regen_rate"`

	// Weak back-reference to the extraction building working this deposit.
	// Cleared by building removal, looked up by id only.
	AssignedBuilding string `json:"assigned_building,omitempty"`
}

// NewNaturalResource creates a deposit from its catalog spec.
func NewNaturalResource(id string, kind catalog.ResourceKind, pos world.Vec2, amount float64) *NaturalResource {
	spec := catalog.ResourceKinds[kind]
	return &NaturalResource{
		ID:          id,
		Kind:        kind,
		Pos:         pos,
		Radius:      60,
		Total:       amount,
		Remaining:   amount,
		ExtractRate: spec.ExtractRate,
		RegenRate:   spec.RegenRate,
	}
}

// Produces returns the stockpile resource this deposit yields.
func (r *NaturalResource) Produces() catalog.Resource {
	return catalog.ResourceKinds[r.Kind].Produces
}

// Renewable reports whether the deposit regenerates.
func (r *NaturalResource) Renewable() bool {
	return catalog.ResourceKinds[r.Kind].Renewable
}
