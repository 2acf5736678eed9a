// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// sqlx has no bindvar entry for the modernc driver name.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to the configured database and verifies the connection.
// driverType is "sqlite" or "postgres".
func Open(driverType, url string) (*sqlx.DB, error) {
	switch driverType {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", driverType)
	}

	if driverType == DriverSQLite {
		url = withSQLitePragmas(url)
	}

	conn, err := sqlx.Open(driverType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// withSQLitePragmas enables foreign keys through the DSN so that every
// pooled connection gets them, not only the one that ran a PRAGMA.
func withSQLitePragmas(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// One statement per entry: lib/pq accepts batches, the sqlite driver's
// Exec only runs the first statement of some builds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS apportion_run (
    id TEXT PRIMARY KEY,
    batch_id TEXT,
    year TEXT NOT NULL,
    alpha DOUBLE PRECISION NOT NULL,
    house_size INTEGER NOT NULL,
    seat_floor INTEGER NOT NULL,
    total_population BIGINT NOT NULL,
    fingerprint TEXT NOT NULL,
    lhi DOUBLE PRECISION NOT NULL,
    gini DOUBLE PRECISION NOT NULL,
    report TEXT NOT NULL,
    created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_apportion_run_year ON apportion_run(year)`,
	`CREATE INDEX IF NOT EXISTS idx_apportion_run_batch_id ON apportion_run(batch_id)`,
	`CREATE TABLE IF NOT EXISTS seat_allocation (
    run_id TEXT NOT NULL REFERENCES apportion_run(id) ON DELETE CASCADE,
    state TEXT NOT NULL,
    population BIGINT NOT NULL,
    quota DOUBLE PRECISION NOT NULL,
    remainder DOUBLE PRECISION NOT NULL,
    seats INTEGER NOT NULL,
    floor_raised BOOLEAN NOT NULL,
    PRIMARY KEY (run_id, state)
)`,
	`CREATE INDEX IF NOT EXISTS idx_seat_allocation_run_id ON seat_allocation(run_id)`,
}
