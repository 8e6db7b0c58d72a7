// Package entity defines the plain data records owned by the simulation:
// settlements, deposits, roads, buildings, armies, battles, and players.
// All records are mutated exclusively by the engine; other packages hold
// id-based references, never owning pointers.
package entity

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

// PlayerID identifies a player. The empty id means neutral/ownerless.
type PlayerID string

// Neutral is the absence of an owner.
const Neutral PlayerID = ""

// TrainingOrder is a queued garrison training job inside a settlement.
type TrainingOrder struct {
	Unit      catalog.UnitType `json:"unit"`
	TicksLeft int              `json:"ticks_left"`
}

// Settlement is a population and economy node. Settlements are created at map
// generation, change hands through capture and revolt, and are never deleted.
type Settlement struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Pos     world.Vec2 `json:"pos"`
	Radius  float64    `json:"radius"`
	Owner   PlayerID   `json:"owner"`
	Capital bool       `json:"capital"`

	Population       int     `json:"population"`
	HousingCap       int     `json:"housing_cap"`
	Treasury         float64 `json:"treasury"`
	TaxRate          float64 `json:"tax_rate"`          // [0,1]
	PublicInvestment float64 `json:"public_investment"` // fraction of income spent on the public

	Stock map[catalog.Resource]float64 `json:"stock"`

	Contentment     float64 `json:"contentment"` // clamped to [0,100]
	Unrest          float64 `json:"unrest"`      // accumulator, >= 0
	RevoltThreshold float64 `json:"revolt_threshold"`

	Fortification int                          `json:"fortification"`
	Garrison      map[catalog.UnitType]int     `json:"garrison"`
	Buildings     map[catalog.BuildingType]int `json:"buildings"` // amenity type -> count
	Queue         []TrainingOrder              `json:"queue"`

	// Production this tick, per resource. Reset at the start of each
	// economy pass; read by the presentation layer.
	Production map[catalog.Resource]float64 `json:"production"`
}

// NewSettlement creates a settlement with sane economic defaults.
func NewSettlement(id, name string, pos world.Vec2, owner PlayerID, population int) *Settlement {
	return &Settlement{
		ID:              id,
		Name:            name,
		Pos:             pos,
		Radius:          40,
		Owner:           owner,
		Population:      population,
		HousingCap:      200,
		TaxRate:         0.2,
		RevoltThreshold: 100,
		Contentment:     70,
		Stock: map[catalog.Resource]float64{
			catalog.Food: 200, catalog.Wood: 100, catalog.Stone: 0, catalog.Iron: 0,
		},
		Garrison:   make(map[catalog.UnitType]int),
		Buildings:  make(map[catalog.BuildingType]int),
		Production: make(map[catalog.Resource]float64),
	}
}

// HasBuilding reports whether at least one amenity of the given type exists.
func (s *Settlement) HasBuilding(bt catalog.BuildingType) bool {
	return s.Buildings[bt] > 0
}

// GarrisonStrength returns the summed strength of the garrison.
func (s *Settlement) GarrisonStrength() float64 {
	total := 0.0
	for ut, n := range s.Garrison {
		total += catalog.Units[ut].Strength * float64(n)
	}
	return total
}

// CanAfford reports whether the stockpile covers the given cost.
func (s *Settlement) CanAfford(cost map[catalog.Resource]float64) bool {
	for res, amt := range cost {
		if s.Stock[res] < amt {
			return false
		}
	}
	return true
}

// Deduct removes the given cost from the stockpile. Callers must check
// CanAfford first; stocks saturate at zero regardless.
func (s *Settlement) Deduct(cost map[catalog.Resource]float64) {
	for res, amt := range cost {
		s.Stock[res] -= amt
		if s.Stock[res] < 0 {
			s.Stock[res] = 0
		}
	}
}
