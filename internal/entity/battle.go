package entity

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

// BattleParticipant is the shared capability of anything battle math can
// operate on: a free-roving army or a settlement's garrison pseudo-army.
type BattleParticipant interface {
	TotalStrength() float64
	TotalUnits() int
	Morale() float64
	ReduceMorale(loss float64)
	ApplyCasualties(n int) int
}

// Garrison is a settlement's defensive unit pool synthesized into a battle
// participant for the duration of a siege. It is created once when the siege
// starts and cached on the battle.
type Garrison struct {
	SettlementID string                   `json:"settlement_id"`
	Units        map[catalog.UnitType]int `json:"units"`
	MoraleVal    float64                  `json:"morale"`
}

// NewGarrison snapshots a settlement's garrison into a battle participant.
func NewGarrison(s *Settlement) *Garrison {
	units := make(map[catalog.UnitType]int, len(s.Garrison))
	for ut, n := range s.Garrison {
		units[ut] = n
	}
	return &Garrison{SettlementID: s.ID, Units: units, MoraleVal: 80}
}

// TotalStrength implements BattleParticipant.
func (g *Garrison) TotalStrength() float64 {
	total := 0.0
	for ut, n := range g.Units {
		total += catalog.Units[ut].Strength * float64(n)
	}
	return total
}

// TotalUnits implements BattleParticipant.
func (g *Garrison) TotalUnits() int {
	total := 0
	for _, n := range g.Units {
		total += n
	}
	return total
}

// Morale implements BattleParticipant.
func (g *Garrison) Morale() float64 { return g.MoraleVal }

// ReduceMorale implements BattleParticipant.
func (g *Garrison) ReduceMorale(loss float64) {
	g.MoraleVal -= loss
	if g.MoraleVal < 0 {
		g.MoraleVal = 0
	}
}

// ApplyCasualties implements BattleParticipant.
func (g *Garrison) ApplyCasualties(n int) int {
	return removeUnitsEvenly(g.Units, n)
}

// BattleKind distinguishes where a battle is fought.
type BattleKind string

const (
	BattleField BattleKind = "field"
	BattleRoad  BattleKind = "road"
	BattleSiege BattleKind = "siege"
)

// BattleStatus is the battle lifecycle state. Ongoing battles resolve one
// tick at a time until a terminal status is reached.
type BattleStatus string

const (
	BattleOngoing      BattleStatus = "ongoing"
	BattleAttackerWins BattleStatus = "attacker_wins"
	BattleDefenderWins BattleStatus = "defender_wins"
)

// Battle is an in-progress engagement. Created when opposing armies meet or
// an army reaches an enemy settlement; deleted once resolved.
type Battle struct {
	ID       string       `json:"id"`
	Kind     BattleKind   `json:"kind"`
	Location world.Vec2   `json:"location"`
	Status   BattleStatus `json:"status"`

	AttackerID string `json:"attacker_id"`
	// Field battles reference the defending army; sieges reference the
	// settlement and cache a garrison pseudo-army instead.
	DefenderID   string    `json:"defender_id,omitempty"`
	SettlementID string    `json:"settlement_id,omitempty"`
	Garrison     *Garrison `json:"garrison,omitempty"`

	AttackerStartStrength float64 `json:"attacker_start_strength"`
	DefenderStartStrength float64 `json:"defender_start_strength"`

	TerrainMod float64 `json:"terrain_mod"`
	FortMod    float64 `json:"fort_mod"`

	StartTick          uint64 `json:"start_tick"`
	AttackerCasualties int    `json:"attacker_casualties"`
	DefenderCasualties int    `json:"defender_casualties"`
}
