// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the fair-seats API server.

fair-seats allocates legislative seats among states in proportion to
population raised to a degressive exponent alpha, rounds with the largest
remainder method under a per-state floor, and scores each allocation with
fairness indicators (Loosemore-Hanby index, Gini coefficient, marginal
representation in seats per million).

# Starting the Server

The server reads flags, environment variables, and an optional .env file:

	ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt dev

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:fairseats.db)
  - WORKERS (-workers): batch parallelism (default: 4)
  - DEFAULT_FLOOR (-floor): minimum seats per state (default: 1)
  - LOG_LEVEL, LOG_FORMAT: see package logging

# Architecture

  - apportion: population tables, quotas, largest remainder allocation
  - fairness: LHI, Gini, marginal representation and related indicators
  - cycle: bounded-parallel sweeps over years, house sizes, and alphas
  - handlers: HTTP request handlers (allocations, batches, runs)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response types
  - auth: Run IDs and admin keys
  - db: Schema creation and run store
  - metrics: Prometheus instruments
  - logging, cliparse: process setup

Offline work (CSV input, scenario files, CSV and XLSX annexures) lives in
cmd/apportion. See package documentation for each component.
*/
package main
