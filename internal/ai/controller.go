// Package ai implements the heuristic opponent. Each controller drives one
// AI player through the same action API external input uses, on a fixed
// activation cooldown rather than every tick. Its randomness comes from the
// general-purpose source: AI decisions are deliberately not reproducible,
// unlike map generation.
package ai

import (
	"math/rand"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/engine"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

const (
	// CooldownTicks is how often a controller activates.
	CooldownTicks = 10

	// militaryBias is the aggressiveness threshold above which research
	// choices favor military technologies.
	militaryBias = 0.5

	housingPressure = 0.8 // queue a house past this fraction of capacity
	resourceRange   = 400 // how far from a settlement the AI will develop
	armyChance      = 0.25
	minArmyTreasury = 300
	patrolRadius    = 120
)

// Controller is the per-player decision loop.
type Controller struct {
	sim    *engine.Simulation
	player *entity.Player
	rng    *rand.Rand
	next   uint64 // next activation tick
}

// NewController creates a controller for one AI player. Controllers for
// different players are staggered so they do not all act on the same tick.
func NewController(sim *engine.Simulation, player *entity.Player, offset int) *Controller {
	return &Controller{
		sim:    sim,
		player: player,
		rng:    rand.New(rand.NewSource(rand.Int63())),
		next:   uint64(offset % CooldownTicks),
	}
}

// Step runs one activation if the cooldown has elapsed. Called by the engine
// inside the tick, after victory evaluation.
func (c *Controller) Step(tick uint64) {
	if tick < c.next {
		return
	}
	c.next = tick + CooldownTicks

	c.chooseResearch()
	c.developSettlements()
	c.developResources()
	c.raiseArmies()
	c.commandArmies()
}

// chooseResearch picks a prerequisite-satisfied technology when idle,
// biased toward military techs for aggressive players.
func (c *Controller) chooseResearch() {
	if c.player.CurrentResearch != "" {
		return
	}

	var candidates, military []catalog.TechID
	for id, tech := range catalog.Technologies {
		if c.player.Researched[id] || !catalog.PrereqsMet(id, c.player.Researched) {
			continue
		}
		candidates = append(candidates, id)
		if tech.Military {
			military = append(military, id)
		}
	}
	if len(candidates) == 0 {
		return
	}

	pool := candidates
	if c.player.Aggressiveness > militaryBias && len(military) > 0 {
		pool = military
	}
	c.sim.StartResearch(c.player.ID, pool[c.rng.Intn(len(pool))])
}

// developSettlements queues housing under population pressure and a single
// barracks per settlement when affordable.
func (c *Controller) developSettlements() {
	for _, sett := range c.ownedSettlements() {
		if float64(sett.Population) > housingPressure*float64(sett.HousingCap) &&
			sett.CanAfford(catalog.Buildings[catalog.BuildingHouse].Cost) {
			c.sim.BuildInSettlement(c.player.ID, sett.ID, catalog.BuildingHouse)
		}
		if !sett.HasBuilding(catalog.BuildingBarracks) &&
			sett.CanAfford(catalog.Buildings[catalog.BuildingBarracks].Cost) {
			c.sim.BuildInSettlement(c.player.ID, sett.ID, catalog.BuildingBarracks)
		}
	}
}

// developResources claims one nearby unworked deposit per activation:
// a connecting road first, then the matching extraction building.
func (c *Controller) developResources() {
	for _, sett := range c.ownedSettlements() {
		if sett.Stock[catalog.Wood] < 60 {
			continue
		}
		for _, res := range c.sim.Resources {
			if res.AssignedBuilding != "" || res.Remaining <= 0 {
				continue
			}
			if world.Dist(sett.Pos, res.Pos) > resourceRange {
				continue
			}
			spec := catalog.ResourceKinds[res.Kind]
			if spec.RequiresTech != "" && !c.player.Researched[spec.RequiresTech] {
				continue
			}
			bt, ok := catalog.ExtractionBuildingFor(res.Kind)
			if !ok {
				continue
			}

			if !c.hasRoadTo(sett, res.Pos) {
				c.sim.BuildRoad(c.player.ID, []world.Vec2{sett.Pos, res.Pos}, catalog.RoadDirt)
				return // one construction action per activation
			}
			c.sim.BuildBuilding(c.player.ID, bt, res.Pos, res.ID)
			return
		}
	}
}

// hasRoadTo reports whether any of the player's roads runs between the
// settlement and the target position.
func (c *Controller) hasRoadTo(sett *entity.Settlement, pos world.Vec2) bool {
	for _, r := range c.sim.Roads {
		if r.Owner != c.player.ID {
			continue
		}
		if world.DistToPolyline(pos, r.Waypoints) <= engine.RoadProximity &&
			world.DistToPolyline(sett.Pos, r.Waypoints) <= sett.Radius+engine.RoadProximity {
			return true
		}
	}
	return false
}

// raiseArmies occasionally raises a small force at a barracks settlement
// with treasury to spare.
func (c *Controller) raiseArmies() {
	if c.rng.Float64() >= armyChance {
		return
	}
	for _, sett := range c.ownedSettlements() {
		if !sett.HasBuilding(catalog.BuildingBarracks) || sett.Treasury < minArmyTreasury {
			continue
		}
		units := map[catalog.UnitType]int{
			catalog.UnitMilitia:  8,
			catalog.UnitSpearman: 4,
		}
		if _, err := c.sim.CreateArmy(c.player.ID, sett.ID, units); err == nil {
			return
		}
	}
}

// commandArmies sends idle armies at the enemy or out on patrol, weighted by
// aggressiveness.
func (c *Controller) commandArmies() {
	owned := c.ownedSettlements()
	for _, a := range c.sim.Armies {
		if a.Owner != c.player.ID || a.InBattle || a.Dest != nil {
			continue
		}
		if c.rng.Float64() < c.player.Aggressiveness {
			if target := c.nearestEnemySettlement(a.Pos); target != nil {
				c.sim.MoveArmy(c.player.ID, a.ID, target.Pos)
				continue
			}
		}
		if len(owned) == 0 {
			continue
		}
		home := owned[c.rng.Intn(len(owned))]
		offset := world.Vec2{
			X: (c.rng.Float64() - 0.5) * 2 * patrolRadius,
			Y: (c.rng.Float64() - 0.5) * 2 * patrolRadius,
		}
		c.sim.MoveArmy(c.player.ID, a.ID, home.Pos.Add(offset))
	}
}

func (c *Controller) ownedSettlements() []*entity.Settlement {
	var out []*entity.Settlement
	for _, sett := range c.sim.Settlements {
		if sett.Owner == c.player.ID {
			out = append(out, sett)
		}
	}
	return out
}

func (c *Controller) nearestEnemySettlement(pos world.Vec2) *entity.Settlement {
	var best *entity.Settlement
	bestDist := 0.0
	for _, sett := range c.sim.Settlements {
		if sett.Owner == c.player.ID || sett.Owner == entity.Neutral {
			continue
		}
		d := world.Dist(pos, sett.Pos)
		if best == nil || d < bestDist {
			best = sett
			bestDist = d
		}
	}
	return best
}
