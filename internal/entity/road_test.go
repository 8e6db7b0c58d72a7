package entity

import (
	"math"
	"testing"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

func TestRoadCostScalesWithLength(t *testing.T) {
	r := NewRoad("r1", "p1", catalog.RoadDirt, []world.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}})
	cost := r.TotalCost()
	want := catalog.Roads[catalog.RoadDirt].CostPerLength[catalog.Wood] * 100
	if math.Abs(cost[catalog.Wood]-want) > 1e-9 {
		t.Fatalf("dirt road wood cost = %v, want %v", cost[catalog.Wood], want)
	}
}

func TestRoadCompletion(t *testing.T) {
	r := NewRoad("r1", "p1", catalog.RoadDirt, []world.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}})
	if r.Complete() {
		t.Fatalf("new road should be incomplete")
	}
	r.BuiltLength = 50
	if !r.Complete() {
		t.Fatalf("road at full length should be complete")
	}
}
