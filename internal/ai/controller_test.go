package ai

import (
	"testing"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/engine"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

func newTestWorld(t *testing.T) (*engine.Simulation, *entity.Player) {
	t.Helper()
	p1 := entity.NewPlayer("ai-1", "AI One", "#c00", true)
	p2 := entity.NewPlayer("p2", "Player Two", "#00c", false)
	sim := engine.NewSimulation(1, world.GenResult{}, []*entity.Player{p1, p2})
	return sim, p1
}

func addSettlement(sim *engine.Simulation, id string, owner entity.PlayerID, pos world.Vec2, pop int) *entity.Settlement {
	sett := entity.NewSettlement(id, id, pos, owner, pop)
	sim.Settlements = append(sim.Settlements, sett)
	sim.SettlementIndex[sett.ID] = sett
	return sett
}

func TestControllerRespectsCooldown(t *testing.T) {
	sim, p := newTestWorld(t)
	addSettlement(sim, "s1", p.ID, world.Vec2{}, 100)

	c := NewController(sim, p, 5)
	c.Step(3)
	if p.CurrentResearch != "" {
		t.Fatalf("controller acted before its activation tick")
	}
	c.Step(5)
	if p.CurrentResearch == "" {
		t.Fatalf("controller should act on its activation tick")
	}

	// The next activation is a full cooldown away.
	target := p.CurrentResearch
	p.CurrentResearch = ""
	c.Step(6)
	if p.CurrentResearch != "" {
		t.Fatalf("controller acted during cooldown")
	}
	c.Step(15)
	if p.CurrentResearch == "" {
		t.Fatalf("controller should act again after the cooldown, last target %s", target)
	}
}

func TestControllerStartsValidResearch(t *testing.T) {
	sim, p := newTestWorld(t)
	addSettlement(sim, "s1", p.ID, world.Vec2{}, 100)

	c := NewController(sim, p, 0)
	c.Step(0)

	if p.CurrentResearch == "" {
		t.Fatalf("idle controller should pick a research target")
	}
	if !catalog.PrereqsMet(p.CurrentResearch, p.Researched) {
		t.Fatalf("controller picked %s with unmet prerequisites", p.CurrentResearch)
	}
}

func TestAggressiveControllerFavorsMilitaryTech(t *testing.T) {
	sim, p := newTestWorld(t)
	p.Aggressiveness = 0.9
	// Ironworking's prerequisite, so a military option is on the table.
	p.Researched[catalog.TechMasonry] = true
	addSettlement(sim, "s1", p.ID, world.Vec2{}, 100)

	c := NewController(sim, p, 0)
	c.Step(0)

	tech, ok := catalog.Technologies[p.CurrentResearch]
	if !ok || !tech.Military {
		t.Fatalf("aggressive controller picked %s, want a military tech", p.CurrentResearch)
	}
}

func TestControllerBuildsBarracks(t *testing.T) {
	sim, p := newTestWorld(t)
	sett := addSettlement(sim, "s1", p.ID, world.Vec2{}, 100)
	sett.Stock[catalog.Wood] = 500
	sett.Stock[catalog.Stone] = 500

	c := NewController(sim, p, 0)
	c.Step(0)

	if !sett.HasBuilding(catalog.BuildingBarracks) {
		t.Fatalf("controller should raise a barracks when affordable")
	}
}

func TestControllerRoadsTowardDeposits(t *testing.T) {
	sim, p := newTestWorld(t)
	sett := addSettlement(sim, "s1", p.ID, world.Vec2{}, 100)
	sett.Stock[catalog.Wood] = 500
	sett.Stock[catalog.Stone] = 500

	res := entity.NewNaturalResource("d1", catalog.Forest, world.Vec2{X: 200}, 3000)
	sim.Resources = append(sim.Resources, res)
	sim.ResourceIndex[res.ID] = res

	c := NewController(sim, p, 0)
	c.Step(0)
	if len(sim.Roads) != 1 {
		t.Fatalf("controller should start a road to the deposit, roads = %d", len(sim.Roads))
	}

	// Once the road is done, the next activation claims the deposit.
	sim.Roads[0].BuiltLength = sim.Roads[0].TotalLength()
	c.Step(CooldownTicks)
	if res.AssignedBuilding == "" {
		t.Fatalf("controller should build the extraction building once connected")
	}
}

func TestControllerLeavesGatedDepositsAlone(t *testing.T) {
	sim, p := newTestWorld(t)
	sett := addSettlement(sim, "s1", p.ID, world.Vec2{}, 100)
	sett.Stock[catalog.Wood] = 500

	res := entity.NewNaturalResource("d1", catalog.IronDeposit, world.Vec2{X: 200}, 1500)
	sim.Resources = append(sim.Resources, res)
	sim.ResourceIndex[res.ID] = res

	c := NewController(sim, p, 0)
	c.Step(0)
	if len(sim.Roads) != 0 {
		t.Fatalf("iron deposits are off limits before ironworking")
	}
}
