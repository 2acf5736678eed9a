// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides run identifiers and admin keys.

# Run IDs

Runs and batches are identified by random UUIDs:

	id := auth.NewRunID()

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(runID, salt)
	err := auth.ValidateAdminKey(runID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same ID and salt always produce the same key. This allows validation
without storing the key in the database.

A key is returned once, when a run or batch is created, and is required to
delete stored runs. Runs created by a batch accept either their own key or
the batch key:

	err := auth.ValidateRunKey(runID, batchID, adminKey, salt)
*/
package auth
