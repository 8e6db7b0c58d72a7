package engine

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

// newTestSim builds an empty simulation with the given players and no map
// content. Tests add settlements, deposits, and armies directly.
func newTestSim(players ...*entity.Player) *Simulation {
	return NewSimulation(1, world.GenResult{}, players)
}

func testPlayers() (*entity.Player, *entity.Player) {
	return entity.NewPlayer("p1", "Player One", "#c00", false),
		entity.NewPlayer("p2", "Player Two", "#00c", false)
}

func addTestSettlement(s *Simulation, id string, owner entity.PlayerID, pos world.Vec2, pop int) *entity.Settlement {
	sett := entity.NewSettlement(id, id, pos, owner, pop)
	s.addSettlement(sett)
	return sett
}

func addTestDeposit(s *Simulation, id string, kind catalog.ResourceKind, pos world.Vec2, amount float64) *entity.NaturalResource {
	res := entity.NewNaturalResource(id, kind, pos, amount)
	s.Resources = append(s.Resources, res)
	s.ResourceIndex[res.ID] = res
	return res
}

func addTestArmy(s *Simulation, id string, owner entity.PlayerID, pos world.Vec2, units map[catalog.UnitType]int) *entity.Army {
	a := entity.NewArmy(id, owner, pos, units)
	s.addArmy(a)
	return a
}

// eventsOfKind filters the pending event queue without draining it.
func eventsOfKind(s *Simulation, kind EventKind) []Event {
	var out []Event
	for _, e := range s.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
