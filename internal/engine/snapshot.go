// Read-only state snapshot for the presentation collaborator.
package engine

import (
	"github.com/veldtworks/marchlands/internal/entity"
)

// Snapshot is a marshal-ready view of the world at a tick boundary. Build it
// inside Engine.Do so no tick interleaves with the read; consumers must not
// hold onto the entity pointers across ticks.
type Snapshot struct {
	Tick   uint64      `json:"tick"`
	Seed   int64       `json:"seed"`
	Winner *GameResult `json:"winner,omitempty"`

	Players     []*entity.Player          `json:"players"`
	Settlements []*entity.Settlement      `json:"settlements"`
	Resources   []*entity.NaturalResource `json:"resources"`
	Roads       []RoadView                `json:"roads"`
	Buildings   []*entity.Building        `json:"buildings"`
	Armies      []ArmyView                `json:"armies"`
	Battles     []*entity.Battle          `json:"battles"`
}

// RoadView augments a road with its derived completion state.
type RoadView struct {
	*entity.Road
	TotalLength float64 `json:"total_length"`
	Complete    bool    `json:"complete"`
}

// ArmyView augments an army with its derived combat properties.
type ArmyView struct {
	*entity.Army
	TotalStrength float64 `json:"total_strength"`
	TotalUnits    int     `json:"total_units"`
	Speed         float64 `json:"speed"`
}

// Snapshot builds the current world view.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.LastTick,
		Seed:        s.Seed,
		Winner:      s.Winner,
		Players:     s.Players,
		Settlements: s.Settlements,
		Resources:   s.Resources,
		Buildings:   s.Buildings,
		Battles:     s.Battles,
	}
	for _, r := range s.Roads {
		snap.Roads = append(snap.Roads, RoadView{Road: r, TotalLength: r.TotalLength(), Complete: r.Complete()})
	}
	for _, a := range s.Armies {
		snap.Armies = append(snap.Armies, ArmyView{
			Army:          a,
			TotalStrength: a.TotalStrength(),
			TotalUnits:    a.TotalUnits(),
			Speed:         a.Speed(),
		})
	}
	return snap
}
