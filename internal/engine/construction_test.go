package engine

import (
	"math"
	"testing"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

func TestRoadBuildsAtFixedRate(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	r := entity.NewRoad("r1", "p1", catalog.RoadDirt, []world.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}})
	s.addRoad(r)

	s.tickConstruction(1)
	if math.Abs(r.BuiltLength-RoadBuildRate) > 1e-9 {
		t.Fatalf("built length after one tick = %v, want %v", r.BuiltLength, RoadBuildRate)
	}

	for i := 0; i < 20; i++ {
		s.tickConstruction(uint64(i + 2))
	}
	if !r.Complete() {
		t.Fatalf("road should complete within 10 ticks")
	}
	if r.BuiltLength != r.TotalLength() {
		t.Fatalf("built length should cap at total, got %v", r.BuiltLength)
	}
}

func TestBuildSpeedEffectAcceleratesRoads(t *testing.T) {
	p1, p2 := testPlayers()
	p1.Effects["buildSpeed"] = 1.5
	s := newTestSim(p1, p2)
	r := entity.NewRoad("r1", "p1", catalog.RoadDirt, []world.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}})
	s.addRoad(r)

	s.tickConstruction(1)
	if math.Abs(r.BuiltLength-RoadBuildRate*1.5) > 1e-9 {
		t.Fatalf("boosted build rate = %v, want %v", r.BuiltLength, RoadBuildRate*1.5)
	}
}

func TestBuildingProgressCaps(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	b := entity.NewBuilding("b1", "p1", catalog.BuildingFarm, world.Vec2{})
	b.Progress = 0.95
	s.addBuilding(b)

	s.tickConstruction(1)
	if b.Progress != 1 {
		t.Fatalf("progress should cap at 1, got %v", b.Progress)
	}
	if !b.Complete() {
		t.Fatalf("building should be complete")
	}
}

func TestTrainingQueueWorksHeadOnly(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	sett := addTestSettlement(s, "s1", "p1", world.Vec2{}, 100)
	sett.Queue = []entity.TrainingOrder{
		{Unit: catalog.UnitMilitia, TicksLeft: 2},
		{Unit: catalog.UnitSpearman, TicksLeft: 2},
	}

	s.tickTraining(1)
	if sett.Garrison[catalog.UnitMilitia] != 0 {
		t.Fatalf("unit finished a tick early")
	}
	if sett.Queue[1].TicksLeft != 2 {
		t.Fatalf("only the head of the queue should train")
	}

	s.tickTraining(2)
	if sett.Garrison[catalog.UnitMilitia] != 1 {
		t.Fatalf("militia should join the garrison, got %v", sett.Garrison)
	}
	if len(sett.Queue) != 1 || sett.Queue[0].Unit != catalog.UnitSpearman {
		t.Fatalf("queue should advance to the spearman, got %v", sett.Queue)
	}
}

func TestNeutralSettlementDoesNotTrain(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	sett := addTestSettlement(s, "s1", entity.Neutral, world.Vec2{}, 100)
	sett.Queue = []entity.TrainingOrder{{Unit: catalog.UnitMilitia, TicksLeft: 1}}

	s.tickTraining(1)
	if sett.Garrison[catalog.UnitMilitia] != 0 {
		t.Fatalf("neutral settlements should not work their queues")
	}
}

func TestTrainDurationShortenedByEffect(t *testing.T) {
	p1, _ := testPlayers()
	s := newTestSim(p1)

	if got := s.trainDuration(p1); got != TrainTicks {
		t.Fatalf("base train duration = %d, want %d", got, TrainTicks)
	}
	p1.Effects["trainSpeed"] = 2.0
	if got := s.trainDuration(p1); got != TrainTicks/2 {
		t.Fatalf("boosted train duration = %d, want %d", got, TrainTicks/2)
	}
}
