// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// NewRunID returns a random UUID for a run or batch
func NewRunID() string {
	return uuid.NewString()
}

// GenerateAdminKey creates an HMAC-based admin key for a run or batch ID.
// This is deterministic and verifiable
func GenerateAdminKey(id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the ID
func ValidateAdminKey(id, adminKey, salt string) error {
	if adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(id, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// ValidateRunKey accepts either the run's own key or, for batch runs, the
// key handed out for the whole batch
func ValidateRunKey(runID, batchID, adminKey, salt string) error {
	if ValidateAdminKey(runID, adminKey, salt) == nil {
		return nil
	}
	if batchID != "" {
		return ValidateAdminKey(batchID, adminKey, salt)
	}
	return ErrInvalidAdminKey
}
