// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and run storage.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres" (lib/pq):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to types both drivers understand: timestamps and the report
payload are stored as TEXT.

# Tables

  - apportion_run: one allocation run with its headline metrics and the
    full fairness report as JSON
  - seat_allocation: per-state seats of a run

# Relationships

	apportion_run 1──* seat_allocation

# Store

Store wraps a connection with the run operations used by the handlers and
the batch CLI. Queries are written with ? placeholders and rebound for the
active driver.

	store := db.NewStore(conn)
	err := store.SaveRun(rec)
	rec, err := store.GetRun(id)          // ErrRunNotFound if missing
	runs, err := store.ListRuns("2026", 20)
	err = store.DeleteRun(id)
*/
package db
