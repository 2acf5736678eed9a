// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/db"
	"github.com/danielhkuo/fair-seats/testutil"
)

func computeRecord(t *testing.T, id, year string, alpha float64, createdAt time.Time) db.RunRecord {
	t.Helper()
	table, err := apportion.NewPopulationTable(year, testutil.SmallStates())
	if err != nil {
		t.Fatal(err)
	}
	res := cycle.Compute(cycle.Scenario{
		Table:  table,
		Params: apportion.AllocationParameters{Alpha: alpha, HouseSize: 16, Floor: 1},
	})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	return db.RunRecord{
		ID:              id,
		Year:            year,
		Params:          res.Scenario.Params,
		TotalPopulation: table.TotalPopulation(),
		Fingerprint:     res.Fingerprint,
		Report:          res.Report,
		Rows:            res.Allocation.Rows,
		CreatedAt:       createdAt,
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := db.Open("mysql", "whatever"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpen_SQLiteForeignKeysOnEveryConnection(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{"plain path", filepath.Join(t.TempDir(), "runs.db")},
		{"path with query", "file:" + filepath.Join(t.TempDir(), "runs.db") + "?cache=shared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := db.Open(db.DriverSQLite, tt.dsn)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer conn.Close()
			conn.SetMaxOpenConns(3)

			ctx := context.Background()
			var held []*sql.Conn
			for i := 0; i < 3; i++ {
				c, err := conn.Conn(ctx)
				if err != nil {
					t.Fatalf("Conn: %v", err)
				}
				held = append(held, c)

				var on int
				if err := c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on); err != nil {
					t.Fatalf("PRAGMA: %v", err)
				}
				if on != 1 {
					t.Errorf("connection %d: foreign_keys = %d, want 1", i, on)
				}
			}
			for _, c := range held {
				c.Close()
			}
		})
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := testutil.SetupTestStore(t)
	rec := computeRecord(t, "run-1", "2026", 0.5, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	rec.BatchID = "batch-1"

	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}

	if got.BatchID != "batch-1" || got.Year != "2026" {
		t.Errorf("header mismatch: %+v", got)
	}
	if got.Params != rec.Params {
		t.Errorf("params = %+v, want %+v", got.Params, rec.Params)
	}
	if got.Fingerprint != rec.Fingerprint {
		t.Errorf("fingerprint = %s, want %s", got.Fingerprint, rec.Fingerprint)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	if got.Report.LHI != rec.Report.LHI || len(got.Report.States) != 3 {
		t.Errorf("report did not round-trip: %+v", got.Report)
	}

	want := []int{8, 6, 2}
	if len(got.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got.Rows))
	}
	for i, r := range got.Rows {
		if r.Seats != want[i] {
			t.Errorf("row %s seats = %d, want %d", r.State, r.Seats, want[i])
		}
		if r != rec.Rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, r, rec.Rows[i])
		}
	}
}

func TestStore_GetRun_NotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)
	if _, err := store.GetRun("missing"); !errors.Is(err, db.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStore_SaveRun_DuplicateID(t *testing.T) {
	store := testutil.SetupTestStore(t)
	rec := computeRecord(t, "dup", "2026", 1, time.Now())
	if err := store.SaveRun(rec); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(rec); err == nil {
		t.Fatal("expected duplicate id to fail")
	}

	// The failed transaction must not leave extra seat rows behind.
	got, err := store.GetRun("dup")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 3 {
		t.Errorf("expected 3 rows after failed insert, got %d", len(got.Rows))
	}
}

func TestStore_SaveRuns(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		ids      []string
		wantErr  bool
		wantRuns int
	}{
		{"all stored", []string{"a", "b", "c"}, false, 3},
		{"duplicate rolls back the batch", []string{"a", "b", "a"}, true, 0},
		{"empty", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.SetupTestStore(t)

			recs := make([]db.RunRecord, len(tt.ids))
			for i, id := range tt.ids {
				recs[i] = computeRecord(t, id, "2026", 0.5, now)
				recs[i].BatchID = "batch-1"
			}

			err := store.SaveRuns(recs)
			if tt.wantErr != (err != nil) {
				t.Fatalf("SaveRuns error = %v, wantErr %v", err, tt.wantErr)
			}

			runs, err := store.ListRuns("", 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(runs) != tt.wantRuns {
				t.Errorf("expected %d stored runs, got %d", tt.wantRuns, len(runs))
			}
		})
	}
}

func TestStore_ListRuns(t *testing.T) {
	store := testutil.SetupTestStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	records := []db.RunRecord{
		computeRecord(t, "a", "2026", 1, base),
		computeRecord(t, "b", "2026", 0.5, base.Add(time.Second)),
		computeRecord(t, "c", "2031", 0.5, base.Add(500*time.Millisecond)),
	}
	for _, rec := range records {
		if err := store.SaveRun(rec); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		year  string
		limit int
		want  []string
	}{
		{"all newest first", "", 0, []string{"b", "c", "a"}},
		{"year filter", "2026", 0, []string{"b", "a"}},
		{"limit", "", 2, []string{"b", "c"}},
		{"unknown year", "1999", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.ListRuns(tt.year, tt.limit)
			if err != nil {
				t.Fatal(err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("expected %d runs, got %d", len(tt.want), len(runs))
			}
			for i, r := range runs {
				if r.ID != tt.want[i] {
					t.Errorf("run %d = %s, want %s", i, r.ID, tt.want[i])
				}
				if r.Rows != nil {
					t.Errorf("list should not load seat rows")
				}
			}
		})
	}
}

func TestStore_DeleteRun(t *testing.T) {
	store := testutil.SetupTestStore(t)
	if err := store.SaveRun(computeRecord(t, "gone", "2026", 1, time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteRun("gone"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if _, err := store.GetRun("gone"); !errors.Is(err, db.ErrRunNotFound) {
		t.Errorf("expected run to be gone, got %v", err)
	}

	var n int
	if err := store.DB().Get(&n, `SELECT COUNT(*) FROM seat_allocation`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected seat rows to be deleted, found %d", n)
	}

	if err := store.DeleteRun("gone"); !errors.Is(err, db.ErrRunNotFound) {
		t.Errorf("second delete: expected ErrRunNotFound, got %v", err)
	}
}
