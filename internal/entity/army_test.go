package entity

import (
	"math"
	"testing"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

func TestNewArmyPrunesNonPositiveCounts(t *testing.T) {
	a := NewArmy("a1", "p1", world.Vec2{}, map[catalog.UnitType]int{
		catalog.UnitMilitia:  5,
		catalog.UnitSpearman: 0,
		catalog.UnitArcher:   -2,
	})
	if len(a.Units) != 1 || a.Units[catalog.UnitMilitia] != 5 {
		t.Fatalf("non-positive counts should be dropped, got %v", a.Units)
	}
	if a.MoraleVal != 100 {
		t.Fatalf("new army morale = %v, want 100", a.MoraleVal)
	}
}

func TestArmyDerivedStats(t *testing.T) {
	a := NewArmy("a1", "p1", world.Vec2{}, map[catalog.UnitType]int{
		catalog.UnitMilitia: 10, // strength 1, speed 1.0
		catalog.UnitCavalry: 5,  // strength 4, speed 2.0
	})
	if got := a.TotalStrength(); got != 10+20 {
		t.Fatalf("total strength = %v, want 30", got)
	}
	if got := a.TotalUnits(); got != 15 {
		t.Fatalf("total units = %d, want 15", got)
	}
	want := (10*1.0 + 5*2.0) / 15
	if got := a.Speed(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("speed = %v, want %v", got, want)
	}
}

func TestEmptyArmySpeedZero(t *testing.T) {
	a := NewArmy("a1", "p1", world.Vec2{}, nil)
	if a.Speed() != 0 {
		t.Fatalf("empty army speed = %v, want 0", a.Speed())
	}
}

func TestApplyCasualtiesSpreadsEvenly(t *testing.T) {
	a := NewArmy("a1", "p1", world.Vec2{}, map[catalog.UnitType]int{
		catalog.UnitMilitia:  4,
		catalog.UnitSpearman: 4,
	})
	removed := a.ApplyCasualties(4)
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}
	if a.Units[catalog.UnitMilitia] != 2 || a.Units[catalog.UnitSpearman] != 2 {
		t.Fatalf("casualties not spread evenly: %v", a.Units)
	}
}

func TestApplyCasualtiesCapsAtArmySize(t *testing.T) {
	a := NewArmy("a1", "p1", world.Vec2{}, map[catalog.UnitType]int{catalog.UnitMilitia: 3})
	removed := a.ApplyCasualties(10)
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	if len(a.Units) != 0 {
		t.Fatalf("emptied unit types should be pruned, got %v", a.Units)
	}
}

func TestReduceMoraleFloorsAtZero(t *testing.T) {
	a := NewArmy("a1", "p1", world.Vec2{}, map[catalog.UnitType]int{catalog.UnitMilitia: 1})
	a.ReduceMorale(150)
	if a.Morale() != 0 {
		t.Fatalf("morale = %v, want 0", a.Morale())
	}
}
