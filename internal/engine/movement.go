// Army movement and encounter detection.
package engine

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

// roadSpeed returns the catalog speed multiplier for a road.
func roadSpeed(r *entity.Road) float64 {
	return catalog.Roads[r.Type].SpeedMultiplier
}

// tickMovement advances every en-route army, then checks each army for at
// most one encounter: an enemy army first, an enemy settlement second.
func (s *Simulation) tickMovement(tick uint64) {
	for _, a := range s.Armies {
		if a.InBattle || a.Dest == nil {
			continue
		}
		s.moveArmy(a)
	}

	for _, a := range s.Armies {
		if a.InBattle {
			continue
		}
		s.checkEncounters(a, tick)
	}
}

// moveArmy advances one army toward its destination at road-adjusted speed,
// snapping and clearing the path when it arrives this tick.
func (s *Simulation) moveArmy(a *entity.Army) {
	speed := BaseSpeed * a.Speed() * s.terrainFactor(a.Pos)
	if speed <= 0 {
		return
	}

	dest := *a.Dest
	if world.Dist(a.Pos, dest) <= speed {
		a.Pos = dest
		a.Dest = nil
		a.Path = nil
		return
	}
	a.Pos = world.Toward(a.Pos, dest, speed)
}

// terrainFactor returns the speed multiplier at a position: the best
// completed road within tolerance, or the off-road penalty.
func (s *Simulation) terrainFactor(pos world.Vec2) float64 {
	best := OffRoadMultiplier
	for _, r := range s.Roads {
		if !r.Complete() {
			continue
		}
		if world.DistToPolyline(pos, r.Waypoints) > RoadTolerance {
			continue
		}
		if m := roadSpeed(r); m > best {
			best = m
		}
	}
	return best
}

// checkEncounters acts on the first qualifying encounter for an army:
// an opposing army within the encounter radius starts a field battle; failing
// that, an enemy settlement within its radius plus a margin starts a siege.
func (s *Simulation) checkEncounters(a *entity.Army, tick uint64) {
	for _, other := range s.Armies {
		if other.ID == a.ID || other.Owner == a.Owner || other.InBattle {
			continue
		}
		if world.Dist(a.Pos, other.Pos) <= EncounterRadius {
			s.startFieldBattle(a, other, tick)
			return
		}
	}

	for _, sett := range s.Settlements {
		if sett.Owner == a.Owner || sett.Owner == entity.Neutral {
			continue
		}
		if s.settlementUnderSiege(sett.ID) {
			continue
		}
		if world.Dist(a.Pos, sett.Pos) <= sett.Radius+SiegeMargin {
			s.startSiege(a, sett, tick)
			return
		}
	}
}

// settlementUnderSiege reports whether an ongoing siege already targets the
// settlement.
func (s *Simulation) settlementUnderSiege(settlementID string) bool {
	for _, b := range s.Battles {
		if b.SettlementID == settlementID && b.Status == entity.BattleOngoing {
			return true
		}
	}
	return false
}
