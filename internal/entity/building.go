package entity

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

// Building is a map-placed structure, usually an extraction building working
// a deposit. Settlement amenities are tracked on the settlement itself; a
// Building record exists for structures with a map position.
type Building struct {
	ID    string               `json:"id"`
	Owner PlayerID             `json:"owner"`
	Type  catalog.BuildingType `json:"type"`
	Pos   world.Vec2           `json:"pos"`

	// Weak references, id-based.
	TargetResource string `json:"target_resource,omitempty"` // deposit being worked
	SettlementID   string `json:"settlement_id,omitempty"`   // owning settlement, if any

	Progress float64 `json:"progress"` // construction progress [0,1]
}

// NewBuilding creates an unbuilt structure at the given position.
func NewBuilding(id string, owner PlayerID, bt catalog.BuildingType, pos world.Vec2) *Building {
	return &Building{ID: id, Owner: owner, Type: bt, Pos: pos}
}

// Complete reports whether construction has finished.
func (b *Building) Complete() bool {
	return b.Progress >= 1
}
