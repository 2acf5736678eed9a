// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package popdata

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/fair-seats/apportion"
)

func TestValidateSeatTotal(t *testing.T) {
	tests := []struct {
		total   int
		allowed []int
		wantErr bool
	}{
		{543, nil, false},
		{888, nil, false},
		{544, nil, true},
		{0, nil, true},
		{10, []int{10, 20}, false},
		{543, []int{10}, true},
	}

	for _, tt := range tests {
		err := ValidateSeatTotal(tt.total, tt.allowed...)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSeatTotal(%d, %v) error = %v, wantErr %v", tt.total, tt.allowed, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, apportion.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestCheck(t *testing.T) {
	csv := "state,population,seats\nGoa,1458545,2\nGoa,1458545,2\nLadakh,0,1\nSikkim,610577,1\n"
	ds, err := Read(strings.NewReader(csv), Options{Scale: 1})
	if err != nil {
		t.Fatal(err)
	}

	canonical := map[string]string{"goa": "Goa", "sikkim": "Sikkim"}
	issues := Check(ds, canonical)

	want := []struct {
		severity string
		contains string
	}{
		{SeverityError, "duplicate states: [Goa]"},
		{SeverityWarn, "zero population: [Ladakh]"},
		{SeverityWarn, "not in canonical list: [Ladakh]"},
		{SeverityError, "seat total 6"},
	}
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %d: %+v", len(want), len(issues), issues)
	}
	for i, w := range want {
		if issues[i].Severity != w.severity || !strings.Contains(issues[i].Message, w.contains) {
			t.Errorf("issue %d = %+v, want %s containing %q", i, issues[i], w.severity, w.contains)
		}
	}
	if !HasErrors(issues) {
		t.Error("HasErrors should be true")
	}
}

func TestCheck_Clean(t *testing.T) {
	ds, err := Read(strings.NewReader("state,population\nGoa,1458545\nSikkim,610577\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if issues := Check(ds, nil); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}
