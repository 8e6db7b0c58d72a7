package engine

import (
	"testing"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

func TestResearchCompletesAtExactCost(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	// 200 people produce exactly 2 points per tick.
	addTestSettlement(s, "s1", "p1", world.Vec2{}, 200)

	if err := s.StartResearch("p1", catalog.TechAgriculture); err != nil {
		t.Fatalf("start research: %v", err)
	}

	// Agriculture costs 50: 24 ticks accrue 48 points, the 25th completes.
	for i := 0; i < 24; i++ {
		s.tickResearch(uint64(i + 1))
	}
	if p1.Researched[catalog.TechAgriculture] {
		t.Fatalf("research finished early at 48 points")
	}
	s.tickResearch(25)
	if !p1.Researched[catalog.TechAgriculture] {
		t.Fatalf("research should complete on tick 25")
	}
	if p1.CurrentResearch != "" || p1.ResearchProgress != 0 {
		t.Fatalf("research state should reset on completion")
	}
	if p1.EffectScale("farmYield") != 1.25 {
		t.Fatalf("agriculture should grant the farm yield effect")
	}
	if len(eventsOfKind(s, EventResearchComplete)) != 1 {
		t.Fatalf("expected exactly one research completion event")
	}
}

func TestLibrariesAddFlatResearch(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	sett := addTestSettlement(s, "s1", "p1", world.Vec2{}, 100)
	sett.Buildings[catalog.BuildingLibrary] = 2

	want := 100*ResearchPerPop + 2*catalog.Buildings[catalog.BuildingLibrary].ResearchBonus
	if got := s.researchOutput(p1); got != want {
		t.Fatalf("research output = %v, want %v", got, want)
	}
}

func TestStartResearchRejections(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)

	if err := s.StartResearch("p1", "no-such-tech"); err == nil {
		t.Fatalf("unknown tech should be rejected")
	}
	if err := s.StartResearch("p1", catalog.TechEngineering); err == nil {
		t.Fatalf("engineering without mathematics should be rejected")
	}

	p1.Researched[catalog.TechAgriculture] = true
	if err := s.StartResearch("p1", catalog.TechAgriculture); err == nil {
		t.Fatalf("already-researched tech should be rejected")
	}

	if err := s.StartResearch("p1", catalog.TechMasonry); err != nil {
		t.Fatalf("valid target rejected: %v", err)
	}
	if err := s.StartResearch("p1", catalog.TechMasonry); err == nil {
		t.Fatalf("restarting the in-progress tech should be rejected")
	}
}

func TestSwitchingResearchDiscardsProgress(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)

	if err := s.StartResearch("p1", catalog.TechMasonry); err != nil {
		t.Fatalf("start research: %v", err)
	}
	p1.ResearchProgress = 40

	if err := s.StartResearch("p1", catalog.TechCurrency); err != nil {
		t.Fatalf("switching targets should be allowed: %v", err)
	}
	if p1.CurrentResearch != catalog.TechCurrency {
		t.Fatalf("current research = %s, want currency", p1.CurrentResearch)
	}
	if p1.ResearchProgress != 0 {
		t.Fatalf("switching should discard progress, got %v", p1.ResearchProgress)
	}
}

func TestTranscendenceWinsTheGame(t *testing.T) {
	p1, p2 := testPlayers()
	s := newTestSim(p1, p2)
	addTestSettlement(s, "s1", "p1", world.Vec2{}, 200)

	for _, req := range catalog.Technologies[catalog.TechTranscendence].Requires {
		p1.Researched[req] = true
	}
	if err := s.StartResearch("p1", catalog.TechTranscendence); err != nil {
		t.Fatalf("start transcendence: %v", err)
	}
	p1.ResearchProgress = catalog.Technologies[catalog.TechTranscendence].Cost - 1

	s.tickResearch(10)

	if s.Winner == nil {
		t.Fatalf("completing transcendence should end the game")
	}
	if s.Winner.Winner != "p1" || s.Winner.VictoryType != "scientific" {
		t.Fatalf("unexpected result %+v", s.Winner)
	}
}
