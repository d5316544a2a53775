package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	dbDirMode   = 0o700
	busyTimeout = 5 * time.Second
	memoryPath  = ":memory:"
)

const schema = `
CREATE TABLE IF NOT EXISTS agent_snapshots (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	agent TEXT NOT NULL,
	session_key TEXT NOT NULL,
	status TEXT NOT NULL,
	model TEXT NOT NULL DEFAULT '',
	total_tokens INTEGER NOT NULL DEFAULT 0,
	context_tokens INTEGER NOT NULL DEFAULT 0,
	context_percent REAL NOT NULL DEFAULT 0,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	last_message_at INTEGER NOT NULL DEFAULT 0,
	last_channel TEXT NOT NULL DEFAULT '',
	current_task TEXT NOT NULL DEFAULT '',
	snapshot_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_agent_at ON agent_snapshots(agent, snapshot_at);

CREATE TABLE IF NOT EXISTS agent_events (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	agent TEXT NOT NULL,
	event_type TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	tokens_used INTEGER NOT NULL DEFAULT 0,
	cost REAL NOT NULL DEFAULT 0,
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_agent ON agent_events(agent);
CREATE INDEX IF NOT EXISTS idx_events_type ON agent_events(event_type);
CREATE INDEX IF NOT EXISTS idx_events_created ON agent_events(created_at);

CREATE TABLE IF NOT EXISTS agent_comms (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	from_agent TEXT NOT NULL,
	to_agent TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comms_created ON agent_comms(created_at);

CREATE TABLE IF NOT EXISTS agent_activities (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	agent TEXT NOT NULL,
	activity_type TEXT NOT NULL,
	summary TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_agent ON agent_activities(agent);
CREATE INDEX IF NOT EXISTS idx_activities_type ON agent_activities(activity_type);
CREATE INDEX IF NOT EXISTS idx_activities_created ON agent_activities(created_at);
`

// Open opens (creating when needed) the mission control database at path and
// applies the schema. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), dbDirMode); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// modernc serializes writers; a single connection also keeps :memory:
	// databases alive across queries.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := addMissingColumns(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// addedColumns are columns introduced after a table was first created.
// CREATE TABLE IF NOT EXISTS leaves older databases without them.
var addedColumns = []struct {
	table, column, definition string
}{
	{"agent_snapshots", "input_tokens", "INTEGER NOT NULL DEFAULT 0"},
	{"agent_snapshots", "output_tokens", "INTEGER NOT NULL DEFAULT 0"},
}

func addMissingColumns(ctx context.Context, db *sql.DB) error {
	for _, c := range addedColumns {
		var count int
		err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", c.table, c.column,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("inspect %s.%s: %w", c.table, c.column, err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.definition)); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

// Timestamps are stored as Unix milliseconds, the same unit as the session
// wire format. 0 stands for an absent time.
func toUnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
