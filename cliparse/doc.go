// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (default: file:fairseats.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - Workers: Parallel allocations per batch (default: 4)
  - DefaultFloor: Minimum seats per state when a request omits it (default: 1)
  - LogLevel, LogFormat: passed to logging.Setup

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-salt   Admin key salt
	-workers      Batch worker count
	-floor        Default seat floor
	-log-level    debug, info, warn, error
	-log-format   tint, text, json

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	WORKERS        → -workers
	DEFAULT_FLOOR  → -floor
	LOG_LEVEL      → -log-level
	LOG_FORMAT     → -log-format

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first; variables already set are kept.

# Validation

ParseFlags returns an error if a value is missing or out of range:

  - ADMIN_KEY_SALT must be provided
  - PORT must be 1-65535
  - DATABASE_TYPE must be sqlite or postgres
  - WORKERS must be at least 1
  - DEFAULT_FLOOR must be non-negative

# Example

	// In main.go
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db.NewStore(conn), cfg)
*/
package cliparse
