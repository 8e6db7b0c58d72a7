// Package history provides a SQLite-backed, append-only record of domain
// events and per-tick aggregates. It is an observability sink for analysis
// and replay of the event feed — the simulation never restores state from it.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/veldtworks/marchlands/internal/engine"
	"github.com/veldtworks/marchlands/internal/entity"
)

// DB wraps a SQLite connection for the history log.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the history database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL,
		meta_json TEXT
	);

	CREATE TABLE IF NOT EXISTS tick_stats (
		tick INTEGER NOT NULL,
		player_id TEXT NOT NULL,
		settlements INTEGER NOT NULL,
		treasury REAL NOT NULL,
		food REAL NOT NULL,
		wood REAL NOT NULL,
		stone REAL NOT NULL,
		iron REAL NOT NULL,
		PRIMARY KEY (tick, player_id)
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordEvents appends drained domain events.
func (db *DB) RecordEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(
		"INSERT INTO events (tick, kind, description, meta_json) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		var meta []byte
		if e.Meta != nil {
			meta, _ = json.Marshal(e.Meta)
		}
		if _, err := stmt.Exec(e.Tick, string(e.Kind), e.Description, string(meta)); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// RecordStats appends one row per player of aggregate holdings at a tick.
func (db *DB) RecordStats(tick uint64, players []*entity.Player, settlementCounts map[entity.PlayerID]int) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range players {
		_, err := tx.Exec(`INSERT OR REPLACE INTO tick_stats
			(tick, player_id, settlements, treasury, food, wood, stone, iron)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			tick, string(p.ID), settlementCounts[p.ID], p.TreasuryTotal,
			p.ResourceTotals["food"], p.ResourceTotals["wood"],
			p.ResourceTotals["stone"], p.ResourceTotals["iron"],
		)
		if err != nil {
			return fmt.Errorf("insert stats for %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// RecentEvents returns the most recent N recorded events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	rows, err := db.conn.Queryx(
		"SELECT tick, kind, description, meta_json FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []engine.Event
	for rows.Next() {
		var tick uint64
		var kind, description string
		var metaJSON *string
		if err := rows.Scan(&tick, &kind, &description, &metaJSON); err != nil {
			return nil, err
		}
		e := engine.Event{Tick: tick, Kind: engine.EventKind(kind), Description: description}
		if metaJSON != nil && *metaJSON != "" {
			if err := json.Unmarshal([]byte(*metaJSON), &e.Meta); err != nil {
				slog.Warn("bad event meta in history", "error", err)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
