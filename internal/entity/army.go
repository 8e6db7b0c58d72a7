package entity

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

// Army is a mobile group of units. An army whose unit count reaches zero is
// removed from the world by the engine.
type Army struct {
	ID    string     `json:"id"`
	Owner PlayerID   `json:"owner"`
	Pos   world.Vec2 `json:"pos"`

	Units map[catalog.UnitType]int `json:"units"`

	MoraleVal float64 `json:"morale"`    // [0,100]
	Supplies  float64 `json:"supplies"`
	Condition float64 `json:"condition"` // [0,1]

	Dest     *world.Vec2  `json:"dest,omitempty"`
	Path     []world.Vec2 `json:"path,omitempty"`
	InBattle bool         `json:"in_battle"`
}

// NewArmy creates an army at the given position with full morale.
func NewArmy(id string, owner PlayerID, pos world.Vec2, units map[catalog.UnitType]int) *Army {
	cp := make(map[catalog.UnitType]int, len(units))
	for ut, n := range units {
		if n > 0 {
			cp[ut] = n
		}
	}
	return &Army{
		ID:        id,
		Owner:     owner,
		Pos:       pos,
		Units:     cp,
		MoraleVal: 100,
		Supplies:  100,
		Condition: 1,
	}
}

// TotalStrength returns the summed strength of all units.
func (a *Army) TotalStrength() float64 {
	total := 0.0
	for ut, n := range a.Units {
		total += catalog.Units[ut].Strength * float64(n)
	}
	return total
}

// TotalUnits returns the total unit count.
func (a *Army) TotalUnits() int {
	total := 0
	for _, n := range a.Units {
		total += n
	}
	return total
}

// Speed returns the count-weighted average unit speed. An empty army has
// speed zero.
func (a *Army) Speed() float64 {
	totalUnits := 0
	weighted := 0.0
	for ut, n := range a.Units {
		totalUnits += n
		weighted += catalog.Units[ut].Speed * float64(n)
	}
	if totalUnits == 0 {
		return 0
	}
	return weighted / float64(totalUnits)
}

// Morale implements BattleParticipant.
func (a *Army) Morale() float64 { return a.MoraleVal }

// ReduceMorale lowers morale, floored at zero.
func (a *Army) ReduceMorale(loss float64) {
	a.MoraleVal -= loss
	if a.MoraleVal < 0 {
		a.MoraleVal = 0
	}
}

// ApplyCasualties removes up to n units, spread roughly evenly across unit
// types, pruning emptied entries. Returns the number actually removed.
func (a *Army) ApplyCasualties(n int) int {
	return removeUnitsEvenly(a.Units, n)
}

// removeUnitsEvenly takes units round-robin across types in a stable order so
// casualties land roughly evenly. Shared by armies and garrisons.
func removeUnitsEvenly(units map[catalog.UnitType]int, n int) int {
	order := []catalog.UnitType{
		catalog.UnitMilitia, catalog.UnitSpearman, catalog.UnitArcher,
		catalog.UnitCavalry, catalog.UnitCatapult,
	}
	removed := 0
	for removed < n {
		progress := false
		for _, ut := range order {
			if removed >= n {
				break
			}
			if units[ut] > 0 {
				units[ut]--
				removed++
				progress = true
			}
		}
		if !progress {
			break // nothing left to remove
		}
	}
	for ut, c := range units {
		if c <= 0 {
			delete(units, ut)
		}
	}
	return removed
}
