package engine

import (
	"math"
	"testing"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

func militia(n int) map[catalog.UnitType]int {
	return map[catalog.UnitType]int{catalog.UnitMilitia: n}
}

func TestArmyMovesOffRoad(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	a := addTestArmy(s, "a1", "p1", world.Vec2{}, militia(10))
	dest := world.Vec2{X: 100, Y: 0}
	a.Dest = &dest

	s.tickMovement(1)

	// Militia at base speed with the off-road penalty: 2.0 * 1.0 * 0.6.
	want := BaseSpeed * OffRoadMultiplier
	if math.Abs(a.Pos.X-want) > 1e-9 || a.Pos.Y != 0 {
		t.Fatalf("position after one tick = %+v, want x=%v", a.Pos, want)
	}
}

func TestArmySnapsToDestination(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	a := addTestArmy(s, "a1", "p1", world.Vec2{}, militia(10))
	dest := world.Vec2{X: 1, Y: 0}
	a.Dest = &dest

	s.tickMovement(1)

	if a.Pos != dest {
		t.Fatalf("army should snap to a destination within reach, got %+v", a.Pos)
	}
	if a.Dest != nil || a.Path != nil {
		t.Fatalf("arrival should clear destination and path")
	}
}

func TestRoadSpeedsTravel(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	r := entity.NewRoad("r1", "p1", catalog.RoadStone, []world.Vec2{{X: 0, Y: 0}, {X: 500, Y: 0}})
	r.BuiltLength = r.TotalLength()
	s.addRoad(r)

	a := addTestArmy(s, "a1", "p1", world.Vec2{}, militia(10))
	dest := world.Vec2{X: 400, Y: 0}
	a.Dest = &dest

	s.tickMovement(1)

	want := BaseSpeed * catalog.Roads[catalog.RoadStone].SpeedMultiplier
	if math.Abs(a.Pos.X-want) > 1e-9 {
		t.Fatalf("on-road position = %v, want %v", a.Pos.X, want)
	}
}

func TestIncompleteRoadGivesNoBonus(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	r := entity.NewRoad("r1", "p1", catalog.RoadStone, []world.Vec2{{X: 0, Y: 0}, {X: 500, Y: 0}})
	s.addRoad(r)

	if got := s.terrainFactor(world.Vec2{X: 100, Y: 0}); got != OffRoadMultiplier {
		t.Fatalf("unbuilt road should not speed travel, factor = %v", got)
	}
}

func TestEncounterStartsFieldBattle(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	a := addTestArmy(s, "a1", "p1", world.Vec2{}, militia(10))
	b := addTestArmy(s, "a2", "p2", world.Vec2{X: EncounterRadius - 1}, militia(10))

	s.tickMovement(1)

	if len(s.Battles) != 1 {
		t.Fatalf("expected one battle, got %d", len(s.Battles))
	}
	bt := s.Battles[0]
	if bt.Kind != entity.BattleField {
		t.Fatalf("battle kind = %s, want field", bt.Kind)
	}
	if !a.InBattle || !b.InBattle {
		t.Fatalf("both armies should be locked in battle")
	}
	if len(eventsOfKind(s, EventBattleStarted)) != 1 {
		t.Fatalf("expected a battle started event")
	}
}

func TestFriendlyArmiesDoNotFight(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	addTestArmy(s, "a1", "p1", world.Vec2{}, militia(10))
	addTestArmy(s, "a2", "p1", world.Vec2{X: 5}, militia(10))

	s.tickMovement(1)
	if len(s.Battles) != 0 {
		t.Fatalf("same-owner armies should never fight")
	}
}

func TestArrivalAtEnemySettlementStartsSiege(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	sett := addTestSettlement(s, "s1", "p2", world.Vec2{X: 500}, 100)
	addTestArmy(s, "a1", "p1", world.Vec2{X: 500 - sett.Radius - SiegeMargin + 1}, militia(10))

	s.tickMovement(1)

	if len(s.Battles) != 1 || s.Battles[0].Kind != entity.BattleSiege {
		t.Fatalf("expected a siege, got %v battles", len(s.Battles))
	}
	if s.Battles[0].SettlementID != sett.ID {
		t.Fatalf("siege targets %s, want %s", s.Battles[0].SettlementID, sett.ID)
	}
}

func TestOneSiegePerSettlement(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	addTestSettlement(s, "s1", "p2", world.Vec2{}, 100)
	addTestArmy(s, "a1", "p1", world.Vec2{X: 10}, militia(10))
	addTestArmy(s, "a2", "p1", world.Vec2{X: -10}, militia(10))

	s.tickMovement(1)

	if len(s.Battles) != 1 {
		t.Fatalf("a settlement can only be under one siege, got %d", len(s.Battles))
	}
}

func TestNeutralSettlementNeverBesieged(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	addTestSettlement(s, "s1", entity.Neutral, world.Vec2{}, 100)
	addTestArmy(s, "a1", "p1", world.Vec2{X: 10}, militia(10))

	s.tickMovement(1)
	if len(s.Battles) != 0 {
		t.Fatalf("neutral settlements are not a siege target")
	}
}
