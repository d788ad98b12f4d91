package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'operator',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS alert_rules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		rule_type TEXT NOT NULL DEFAULT 'threshold',
		metric_name TEXT NOT NULL,
		condition TEXT NOT NULL,
		threshold REAL NOT NULL,
		severity TEXT NOT NULL,
		host_id TEXT NOT NULL DEFAULT '',
		notification_channels TEXT NOT NULL DEFAULT '[]',
		cooldown_minutes INTEGER NOT NULL DEFAULT 15,
		enabled INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		alert_rule_id INTEGER NOT NULL,
		host_id TEXT NOT NULL,
		host_name TEXT NOT NULL DEFAULT '',
		metric_name TEXT NOT NULL,
		value REAL NOT NULL,
		threshold REAL NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		triggered_at TEXT NOT NULL,
		acknowledged_at TEXT,
		acknowledged_by TEXT NOT NULL DEFAULT '',
		resolved_at TEXT,
		FOREIGN KEY (alert_rule_id) REFERENCES alert_rules(id)
	);

	CREATE TABLE IF NOT EXISTS alert_mutes (
		id TEXT PRIMARY KEY,
		alert_rule_id INTEGER NOT NULL,
		host_id TEXT NOT NULL DEFAULT '',
		muted_by TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		expires_at TEXT,
		FOREIGN KEY (alert_rule_id) REFERENCES alert_rules(id)
	);

	CREATE TABLE IF NOT EXISTS notification_channels (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		channel_type TEXT NOT NULL,
		config TEXT NOT NULL DEFAULT '{}',
		enabled INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		host_id TEXT NOT NULL,
		metric_name TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS devices (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		ip TEXT NOT NULL DEFAULT '',
		site TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		version TEXT NOT NULL DEFAULT '',
		uptime_s INTEGER NOT NULL DEFAULT 0,
		last_seen TEXT,
		updated_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
