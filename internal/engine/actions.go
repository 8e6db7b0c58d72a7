// The action API. Both external input and the AI decision loop mutate the
// world exclusively through these methods. Every action validates its
// preconditions and either mutates state (possibly emitting an event) or
// emits an action_failed event and changes nothing.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

// failAction records a rejected action and returns it as an error for the
// caller. Rejections are never fatal; the action is simply a no-op.
func (s *Simulation) failAction(action, reason string) error {
	slog.Debug("action rejected", "action", action, "reason", reason)
	s.Emit(Event{
		Tick:        s.LastTick,
		Kind:        EventActionFailed,
		Description: fmt.Sprintf("%s: %s", action, reason),
		Meta:        map[string]any{"action": action, "reason": reason},
	})
	return fmt.Errorf("%s: %s", action, reason)
}

// techLocked reports whether a tech gate blocks the player. An empty gate
// never blocks.
func techLocked(p *entity.Player, gate catalog.TechID) bool {
	return gate != "" && (p == nil || !p.Researched[gate])
}

// BuildRoad starts construction of a road along the waypoints. The full cost
// is deducted up front from the owner's nearest settlement to the first
// waypoint. The returned road is incomplete with builtLength zero.
func (s *Simulation) BuildRoad(owner entity.PlayerID, waypoints []world.Vec2, rt catalog.RoadType) (*entity.Road, error) {
	const action = "buildRoad"
	p, ok := s.PlayerIndex[owner]
	if !ok {
		return nil, s.failAction(action, "unknown player")
	}
	spec, ok := catalog.Roads[rt]
	if !ok {
		return nil, s.failAction(action, "unknown road type")
	}
	if techLocked(p, spec.RequiresTech) {
		return nil, s.failAction(action, "technology not researched")
	}
	if len(waypoints) < 2 || world.PolylineLength(waypoints) <= 0 {
		return nil, s.failAction(action, "road needs at least two distinct waypoints")
	}

	road := entity.NewRoad(uuid.NewString(), owner, rt, waypoints)
	payer := s.nearestOwnedSettlement(owner, waypoints[0])
	if payer == nil {
		return nil, s.failAction(action, "no settlement to fund construction")
	}
	cost := road.TotalCost()
	if !payer.CanAfford(cost) {
		return nil, s.failAction(action, "insufficient resources")
	}
	payer.Deduct(cost)
	s.addRoad(road)
	return road, nil
}

// RemoveRoad removes a road. Removing an unknown id is a no-op.
func (s *Simulation) RemoveRoad(owner entity.PlayerID, roadID string) error {
	const action = "removeRoad"
	r, ok := s.RoadIndex[roadID]
	if !ok {
		return nil
	}
	if r.Owner != owner {
		return s.failAction(action, "road not owned by caller")
	}
	s.removeRoad(roadID)
	return nil
}

// BuildBuilding places an extraction building on the map, optionally
// assigning it a deposit to work. Cost comes from the owner's nearest
// settlement.
func (s *Simulation) BuildBuilding(owner entity.PlayerID, bt catalog.BuildingType, pos world.Vec2, resourceID string) (*entity.Building, error) {
	const action = "buildBuilding"
	p, ok := s.PlayerIndex[owner]
	if !ok {
		return nil, s.failAction(action, "unknown player")
	}
	spec, ok := catalog.Buildings[bt]
	if !ok {
		return nil, s.failAction(action, "unknown building type")
	}
	if spec.Amenity() {
		return nil, s.failAction(action, "amenities are built inside settlements")
	}
	if techLocked(p, spec.RequiresTech) {
		return nil, s.failAction(action, "technology not researched")
	}

	var res *entity.NaturalResource
	if resourceID != "" {
		res, ok = s.ResourceIndex[resourceID]
		if !ok {
			return nil, s.failAction(action, "unknown resource")
		}
		if res.Kind != spec.Extracts {
			return nil, s.failAction(action, "building cannot work that resource")
		}
		if res.AssignedBuilding != "" {
			return nil, s.failAction(action, "resource already worked")
		}
		if world.Dist(pos, res.Pos) > res.Radius {
			return nil, s.failAction(action, "building outside extraction radius")
		}
	}

	payer := s.nearestOwnedSettlement(owner, pos)
	if payer == nil {
		return nil, s.failAction(action, "no settlement to fund construction")
	}
	if !payer.CanAfford(spec.Cost) {
		return nil, s.failAction(action, "insufficient resources")
	}
	payer.Deduct(spec.Cost)

	b := entity.NewBuilding(uuid.NewString(), owner, bt, pos)
	b.SettlementID = payer.ID
	if res != nil {
		b.TargetResource = res.ID
		res.AssignedBuilding = b.ID
	}
	s.addBuilding(b)
	return b, nil
}

// BuildInSettlement constructs an amenity inside a settlement, deducting its
// cost from the settlement stockpile and applying effects immediately.
func (s *Simulation) BuildInSettlement(owner entity.PlayerID, settlementID string, bt catalog.BuildingType) error {
	const action = "buildInSettlement"
	sett, ok := s.SettlementIndex[settlementID]
	if !ok {
		return s.failAction(action, "unknown settlement")
	}
	if sett.Owner != owner {
		return s.failAction(action, "settlement not owned by caller")
	}
	spec, ok := catalog.Buildings[bt]
	if !ok || !spec.Amenity() {
		return s.failAction(action, "unknown amenity type")
	}
	if techLocked(s.PlayerIndex[owner], spec.RequiresTech) {
		return s.failAction(action, "technology not researched")
	}
	if !sett.CanAfford(spec.Cost) {
		return s.failAction(action, "insufficient resources")
	}

	sett.Deduct(spec.Cost)
	sett.Buildings[bt]++
	sett.HousingCap += spec.HousingBonus
	sett.Fortification += spec.FortBonus
	return nil
}

// RemoveBuilding removes a map building and clears its deposit's
// back-reference. Removing an unknown id is a no-op, not an error.
func (s *Simulation) RemoveBuilding(owner entity.PlayerID, buildingID string) error {
	const action = "removeBuilding"
	b, ok := s.BuildingIndex[buildingID]
	if !ok {
		return nil
	}
	if b.Owner != owner {
		return s.failAction(action, "building not owned by caller")
	}
	s.removeBuilding(buildingID)
	return nil
}

// CreateArmy raises a new army at a settlement, paying the unit cost from
// the settlement treasury.
func (s *Simulation) CreateArmy(owner entity.PlayerID, settlementID string, units map[catalog.UnitType]int) (*entity.Army, error) {
	const action = "createArmy"
	sett, ok := s.SettlementIndex[settlementID]
	if !ok {
		return nil, s.failAction(action, "unknown settlement")
	}
	if sett.Owner != owner {
		return nil, s.failAction(action, "settlement not owned by caller")
	}
	p := s.PlayerIndex[owner]

	total := 0
	for ut, n := range units {
		if n < 0 {
			return nil, s.failAction(action, "negative unit count")
		}
		spec, ok := catalog.Units[ut]
		if !ok {
			return nil, s.failAction(action, "unknown unit type")
		}
		if techLocked(p, spec.RequiresTech) {
			return nil, s.failAction(action, "technology not researched")
		}
		total += n
	}
	if total <= 0 {
		return nil, s.failAction(action, "army needs at least one unit")
	}

	cost := catalog.UnitCost(units)
	if sett.Treasury < cost {
		return nil, s.failAction(action, "insufficient treasury")
	}
	sett.Treasury -= cost

	a := entity.NewArmy(uuid.NewString(), owner, sett.Pos, units)
	s.addArmy(a)
	return a, nil
}

// MoveArmy orders an army to a destination. Only the owner may issue orders,
// and armies locked in battle cannot move.
func (s *Simulation) MoveArmy(owner entity.PlayerID, armyID string, dest world.Vec2) error {
	const action = "moveArmy"
	a, ok := s.ArmyIndex[armyID]
	if !ok {
		return s.failAction(action, "unknown army")
	}
	if a.Owner != owner {
		return s.failAction(action, "army not owned by caller")
	}
	if a.InBattle {
		return s.failAction(action, "army is engaged in battle")
	}
	a.Dest = &dest
	a.Path = []world.Vec2{a.Pos, dest}
	return nil
}

// SetTaxRate sets a settlement's tax rate, clamped to [0,1]. Owner only.
func (s *Simulation) SetTaxRate(owner entity.PlayerID, settlementID string, rate float64) error {
	const action = "setTaxRate"
	sett, ok := s.SettlementIndex[settlementID]
	if !ok {
		return s.failAction(action, "unknown settlement")
	}
	if sett.Owner != owner {
		return s.failAction(action, "settlement not owned by caller")
	}
	sett.TaxRate = clampf(rate, 0, 1)
	return nil
}

// SetPublicInvestment sets the fraction of settlement income directed to
// public works, clamped to [0,1]. Owner only.
func (s *Simulation) SetPublicInvestment(owner entity.PlayerID, settlementID string, fraction float64) error {
	const action = "setPublicInvestment"
	sett, ok := s.SettlementIndex[settlementID]
	if !ok {
		return s.failAction(action, "unknown settlement")
	}
	if sett.Owner != owner {
		return s.failAction(action, "settlement not owned by caller")
	}
	sett.PublicInvestment = clampf(fraction, 0, 1)
	return nil
}

// TrainUnit queues one garrison unit for training at a settlement with a
// barracks, paying its treasury cost up front.
func (s *Simulation) TrainUnit(owner entity.PlayerID, settlementID string, ut catalog.UnitType) error {
	const action = "trainUnit"
	sett, ok := s.SettlementIndex[settlementID]
	if !ok {
		return s.failAction(action, "unknown settlement")
	}
	if sett.Owner != owner {
		return s.failAction(action, "settlement not owned by caller")
	}
	if !sett.HasBuilding(catalog.BuildingBarracks) {
		return s.failAction(action, "settlement has no barracks")
	}
	spec, ok := catalog.Units[ut]
	if !ok {
		return s.failAction(action, "unknown unit type")
	}
	p := s.PlayerIndex[owner]
	if techLocked(p, spec.RequiresTech) {
		return s.failAction(action, "technology not researched")
	}
	if sett.Treasury < spec.Cost {
		return s.failAction(action, "insufficient treasury")
	}
	sett.Treasury -= spec.Cost
	sett.Queue = append(sett.Queue, entity.TrainingOrder{Unit: ut, TicksLeft: s.trainDuration(p)})
	return nil
}

// StartResearch sets a player's research target. Rejected when prerequisites
// are unmet or the technology is already researched or in progress.
// Switching to a different valid technology discards current progress.
func (s *Simulation) StartResearch(playerID entity.PlayerID, techID catalog.TechID) error {
	const action = "startResearch"
	p, ok := s.PlayerIndex[playerID]
	if !ok {
		return s.failAction(action, "unknown player")
	}
	tech, ok := catalog.Technologies[techID]
	if !ok {
		return s.failAction(action, "unknown technology")
	}
	if p.Researched[techID] {
		return s.failAction(action, "technology already researched")
	}
	if p.CurrentResearch == techID {
		return s.failAction(action, "technology already in progress")
	}
	if !catalog.PrereqsMet(techID, p.Researched) {
		return s.failAction(action, "prerequisites not met")
	}
	p.CurrentResearch = tech.ID
	p.ResearchProgress = 0
	return nil
}
