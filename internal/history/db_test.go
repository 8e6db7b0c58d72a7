package history

import (
	"path/filepath"
	"testing"

	"github.com/veldtworks/marchlands/internal/engine"
	"github.com/veldtworks/marchlands/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndQueryEvents(t *testing.T) {
	db := openTestDB(t)

	events := []engine.Event{
		{Tick: 1, Kind: engine.EventTick, Description: "tick 1"},
		{Tick: 2, Kind: engine.EventBattleStarted, Description: "battle joined",
			Meta: map[string]any{"battle_id": "b1"}},
	}
	if err := db.RecordEvents(events); err != nil {
		t.Fatalf("record events: %v", err)
	}

	got, err := db.RecentEvents(10)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// Newest first.
	if got[0].Kind != engine.EventBattleStarted || got[1].Kind != engine.EventTick {
		t.Fatalf("unexpected order: %v, %v", got[0].Kind, got[1].Kind)
	}
	if got[0].Meta["battle_id"] != "b1" {
		t.Fatalf("meta round-trip failed: %v", got[0].Meta)
	}
}

func TestRecordEventsEmptyIsNoop(t *testing.T) {
	db := openTestDB(t)
	if err := db.RecordEvents(nil); err != nil {
		t.Fatalf("empty record should be a no-op: %v", err)
	}
}

func TestRecordStats(t *testing.T) {
	db := openTestDB(t)

	p := entity.NewPlayer("p1", "Player One", "#c00", false)
	p.TreasuryTotal = 123.5
	p.ResourceTotals["food"] = 42

	counts := map[entity.PlayerID]int{"p1": 3}
	if err := db.RecordStats(10, []*entity.Player{p}, counts); err != nil {
		t.Fatalf("record stats: %v", err)
	}
	// Re-recording the same tick replaces the row rather than failing.
	if err := db.RecordStats(10, []*entity.Player{p}, counts); err != nil {
		t.Fatalf("re-record stats: %v", err)
	}
}
