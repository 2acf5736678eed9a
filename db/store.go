// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/fairness"
)

var ErrRunNotFound = errors.New("run not found")

// Fixed-width UTC timestamps keep created_at sortable as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// RunRecord is one stored allocation run with its report.
type RunRecord struct {
	ID              string
	BatchID         string
	Year            string
	Params          apportion.AllocationParameters
	TotalPopulation int64
	Fingerprint     string
	Report          fairness.Report
	Rows            []apportion.SeatRow
	CreatedAt       time.Time
}

type runRow struct {
	ID              string         `db:"id"`
	BatchID         sql.NullString `db:"batch_id"`
	Year            string         `db:"year"`
	Alpha           float64        `db:"alpha"`
	HouseSize       int            `db:"house_size"`
	SeatFloor       int            `db:"seat_floor"`
	TotalPopulation int64          `db:"total_population"`
	Fingerprint     string         `db:"fingerprint"`
	LHI             float64        `db:"lhi"`
	Gini            float64        `db:"gini"`
	Report          string         `db:"report"`
	CreatedAt       string         `db:"created_at"`
}

type seatRow struct {
	State       string  `db:"state"`
	Population  int64   `db:"population"`
	Quota       float64 `db:"quota"`
	Remainder   float64 `db:"remainder"`
	Seats       int     `db:"seats"`
	FloorRaised bool    `db:"floor_raised"`
}

// Store persists allocation runs.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// SaveRun stores the run header and every seat row in one transaction.
func (s *Store) SaveRun(rec RunRecord) error {
	return s.SaveRuns([]RunRecord{rec})
}

// SaveRuns stores every run in one transaction. Either all runs are
// committed or none are.
func (s *Store) SaveRuns(recs []RunRecord) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if err := insertRun(tx, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit runs: %w", err)
	}
	return nil
}

func insertRun(tx *sqlx.Tx, rec RunRecord) error {
	payload, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err = tx.Exec(tx.Rebind(`
		INSERT INTO apportion_run
			(id, batch_id, year, alpha, house_size, seat_floor, total_population,
			 fingerprint, lhi, gini, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), rec.ID, nullString(rec.BatchID), rec.Year, rec.Params.Alpha, rec.Params.HouseSize,
		rec.Params.Floor, rec.TotalPopulation, rec.Fingerprint, rec.Report.LHI,
		rec.Report.Gini, string(payload), rec.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", rec.ID, err)
	}

	insertSeat := tx.Rebind(`
		INSERT INTO seat_allocation
			(run_id, state, population, quota, remainder, seats, floor_raised)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	for _, r := range rec.Rows {
		if _, err := tx.Exec(insertSeat, rec.ID, r.State, r.Population, r.Quota,
			r.Remainder, r.Seats, r.FloorRaised); err != nil {
			return fmt.Errorf("failed to insert seats for %s: %w", r.State, err)
		}
	}
	return nil
}

// GetRun loads a run with its seat rows sorted by state.
func (s *Store) GetRun(id string) (RunRecord, error) {
	var row runRow
	err := s.db.Get(&row, s.db.Rebind(`SELECT * FROM apportion_run WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrRunNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to load run: %w", err)
	}

	rec, err := row.record()
	if err != nil {
		return RunRecord{}, err
	}

	var seats []seatRow
	err = s.db.Select(&seats, s.db.Rebind(`
		SELECT state, population, quota, remainder, seats, floor_raised
		FROM seat_allocation
		WHERE run_id = ?
		ORDER BY state
	`), id)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to load seats: %w", err)
	}

	rec.Rows = make([]apportion.SeatRow, len(seats))
	for i, sr := range seats {
		rec.Rows[i] = apportion.SeatRow{
			State:       sr.State,
			Population:  sr.Population,
			Quota:       sr.Quota,
			Remainder:   sr.Remainder,
			Seats:       sr.Seats,
			FloorRaised: sr.FloorRaised,
		}
	}
	return rec, nil
}

// ListRuns returns run headers newest first. An empty year matches all
// years; limit <= 0 means no limit. Seat rows are not loaded.
func (s *Store) ListRuns(year string, limit int) ([]RunRecord, error) {
	query := `SELECT * FROM apportion_run`
	var args []interface{}
	if year != "" {
		query += ` WHERE year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []runRow
	if err := s.db.Select(&rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	records := make([]RunRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeleteRun removes a run and its seat rows.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Explicit child delete keeps Postgres and SQLite behaviour identical.
	if _, err := tx.Exec(tx.Rebind(`DELETE FROM seat_allocation WHERE run_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete seats: %w", err)
	}
	res, err := tx.Exec(tx.Rebind(`DELETE FROM apportion_run WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return ErrRunNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func (r runRow) record() (RunRecord, error) {
	var report fairness.Report
	if err := json.Unmarshal([]byte(r.Report), &report); err != nil {
		return RunRecord{}, fmt.Errorf("failed to decode report for run %s: %w", r.ID, err)
	}
	createdAt, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to parse created_at for run %s: %w", r.ID, err)
	}

	return RunRecord{
		ID:      r.ID,
		BatchID: r.BatchID.String,
		Year:    r.Year,
		Params: apportion.AllocationParameters{
			Alpha:     r.Alpha,
			HouseSize: r.HouseSize,
			Floor:     r.SeatFloor,
		},
		TotalPopulation: r.TotalPopulation,
		Fingerprint:     r.Fingerprint,
		Report:          report,
		CreatedAt:       createdAt,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
