// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - AllocateRequest: year, alpha, house_size, floor, states,
    compare_to_proportional
  - BatchRequest: years (each with its states), alphas, house_sizes, floor,
    persist
  - StateInput: name, population, baseline_seats

A missing population is rejected rather than read as zero, which is why
StateInput.Population is a pointer. Omitted floors fall back to the server's
configured default.

# Response Types

Types for JSON responses:

  - RunResponse: run_id, admin_key (creation only), params, seats, report
  - RunSummary: headline metrics of a stored run for listings
  - BatchResponse: batch_id, per-scenario results, failure summary
  - HealthResponse: status, database
  - ErrorResponse: error, message, kind

# Domain Types

Seat rows, fairness reports, and batch summaries are the domain types from
the apportion, fairness, and cycle packages, embedded directly so the wire
format matches what the CLI exports.
*/
package models
