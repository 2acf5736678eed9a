// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package popdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/danielhkuo/fair-seats/apportion"
)

const (
	// DefaultScale converts crores to persons
	DefaultScale = 1e7

	// scaleThreshold is the mean population below which values are taken
	// to be in crores
	scaleThreshold = 1e6
)

var (
	stateAliases      = []string{"state", "state_name", "region", "unit"}
	populationAliases = []string{"population", "pop", "population_total", "total_population", "persons"}
	seatAliases       = []string{"baseline_seats", "seats"}
)

// Options control how a population CSV is interpreted.
type Options struct {
	// Scale multiplies populations when scaling applies. Zero means
	// DefaultScale; 1 disables scaling.
	Scale float64

	// ForceScale applies Scale regardless of the magnitude of the data.
	ForceScale bool

	// Canonical maps raw state names to canonical ones. Unmapped names pass
	// through unchanged.
	Canonical map[string]string
}

// Dataset is a parsed population file.
type Dataset struct {
	States           []apportion.State
	StateColumn      string
	PopulationColumn string
	SeatColumn       string // empty when the file has no seat column
	Scaled           bool
	Scale            float64
}

// HasSeats reports whether every row carried a seat count.
func (d Dataset) HasSeats() bool {
	if d.SeatColumn == "" || len(d.States) == 0 {
		return false
	}
	for _, s := range d.States {
		if s.BaselineSeats == nil {
			return false
		}
	}
	return true
}

// Table builds a PopulationTable for year.
func (d Dataset) Table(year string) (apportion.PopulationTable, error) {
	return apportion.NewPopulationTable(year, d.States)
}

// Load reads a population CSV from path.
func Load(path string, opts Options) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open population file: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses a population CSV. The state and population columns are found
// by header name; without a recognised header the first non-numeric column
// holds names and the numeric column with the largest total holds
// populations. Every error wraps apportion.ErrInvalidInput and names the
// offending line.
func Read(r io.Reader, opts Options) (Dataset, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Dataset{}, fmt.Errorf("%w: scale %v must be a positive number", apportion.ErrInvalidInput, scale)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: malformed CSV: %v", apportion.ErrInvalidInput, err)
	}
	if len(records) < 2 {
		return Dataset{}, fmt.Errorf("%w: no data rows", apportion.ErrInvalidInput)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	rows := records[1:]

	stateCol := findColumn(header, stateAliases)
	popCol := findColumn(header, populationAliases)
	if popCol < 0 {
		popCol = largestNumericColumn(header, rows, stateCol)
	}
	if stateCol < 0 {
		stateCol = firstTextColumn(header, rows, popCol)
	}
	if popCol < 0 {
		return Dataset{}, fmt.Errorf("%w: no population or numeric column found", apportion.ErrInvalidInput)
	}
	if stateCol < 0 {
		return Dataset{}, fmt.Errorf("%w: no state column found", apportion.ErrInvalidInput)
	}
	seatCol := findColumn(header, seatAliases)

	ds := Dataset{
		States:           make([]apportion.State, 0, len(rows)),
		StateColumn:      header[stateCol],
		PopulationColumn: header[popCol],
		Scale:            1,
	}
	if seatCol >= 0 {
		ds.SeatColumn = header[seatCol]
	}

	raw := make([]float64, 0, len(rows))
	lines := make([]int, 0, len(rows))
	for i, rec := range rows {
		line := i + 2
		if isBlank(rec) {
			continue
		}
		if stateCol >= len(rec) || popCol >= len(rec) {
			return Dataset{}, fmt.Errorf("%w: line %d: expected at least %d fields, got %d",
				apportion.ErrInvalidInput, line, max(stateCol, popCol)+1, len(rec))
		}

		name := strings.TrimSpace(rec[stateCol])
		if name == "" {
			return Dataset{}, fmt.Errorf("%w: line %d: empty state name", apportion.ErrInvalidInput, line)
		}
		if canon, ok := opts.Canonical[name]; ok {
			name = canon
		}

		pop, err := parseNumber(rec[popCol])
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: line %d (%s): population %q: %v",
				apportion.ErrInvalidInput, line, name, rec[popCol], err)
		}
		if pop < 0 {
			return Dataset{}, fmt.Errorf("%w: line %d (%s): negative population %v",
				apportion.ErrInvalidInput, line, name, pop)
		}

		st := apportion.State{Name: name}
		if seatCol >= 0 && seatCol < len(rec) && strings.TrimSpace(rec[seatCol]) != "" {
			seats, err := strconv.Atoi(strings.TrimSpace(rec[seatCol]))
			if err != nil || seats < 0 {
				return Dataset{}, fmt.Errorf("%w: line %d (%s): seats %q is not a non-negative integer",
					apportion.ErrInvalidInput, line, name, rec[seatCol])
			}
			st.BaselineSeats = &seats
		}

		ds.States = append(ds.States, st)
		raw = append(raw, pop)
		lines = append(lines, line)
	}
	if len(ds.States) == 0 {
		return Dataset{}, fmt.Errorf("%w: no data rows", apportion.ErrInvalidInput)
	}

	var sum float64
	for _, v := range raw {
		sum += v
	}
	if scale != 1 && (opts.ForceScale || sum/float64(len(raw)) < scaleThreshold) {
		ds.Scaled = true
		ds.Scale = scale
	}

	for i, v := range raw {
		// unscaled counts are persons; only scaled units may carry a fraction
		if !ds.Scaled && math.Trunc(v) != v {
			return Dataset{}, fmt.Errorf("%w: line %d (%s): population %v is not a whole number of persons",
				apportion.ErrInvalidInput, lines[i], ds.States[i].Name, v)
		}
		persons := math.Round(v * ds.Scale)
		if persons >= math.MaxInt64 {
			return Dataset{}, fmt.Errorf("%w: %s: population %v overflows after scaling",
				apportion.ErrInvalidInput, ds.States[i].Name, v)
		}
		ds.States[i].Population = int64(persons)
	}

	return ds, nil
}

// ReadCanonicalMap parses a raw → canonical name mapping. Columns named raw
// and canonical are preferred; otherwise the first two columns are used.
func ReadCanonicalMap(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed canonical map: %v", apportion.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return map[string]string{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	rawCol, canonCol := findColumn(header, []string{"raw", "state"}), findColumn(header, []string{"canonical", "canonical_state"})
	if rawCol < 0 || canonCol < 0 {
		if len(header) < 2 {
			return nil, fmt.Errorf("%w: canonical map needs two columns", apportion.ErrInvalidInput)
		}
		rawCol, canonCol = 0, 1
	}

	m := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		if rawCol >= len(rec) || canonCol >= len(rec) {
			continue
		}
		raw, canon := strings.TrimSpace(rec[rawCol]), strings.TrimSpace(rec[canonCol])
		if raw == "" || canon == "" {
			continue
		}
		m[raw] = canon
	}
	return m, nil
}

// LoadCanonicalMap reads a canonical map from path. A missing file yields an
// empty map and ok == false.
func LoadCanonicalMap(path string) (m map[string]string, ok bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open canonical map: %w", err)
	}
	defer f.Close()

	m, err = ReadCanonicalMap(f)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return m, true, nil
}

func findColumn(header, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

// largestNumericColumn returns the column, other than skip, whose every
// non-blank value parses as a number and whose total is largest.
func largestNumericColumn(header []string, rows [][]string, skip int) int {
	best, bestSum := -1, math.Inf(-1)
	for c := range header {
		if c == skip {
			continue
		}
		sum, ok := columnSum(rows, c)
		if ok && sum > bestSum {
			best, bestSum = c, sum
		}
	}
	return best
}

func firstTextColumn(header []string, rows [][]string, skip int) int {
	for c := range header {
		if c == skip {
			continue
		}
		if _, numeric := columnSum(rows, c); !numeric {
			return c
		}
	}
	return -1
}

func columnSum(rows [][]string, c int) (float64, bool) {
	var sum float64
	seen := false
	for _, rec := range rows {
		if c >= len(rec) || strings.TrimSpace(rec[c]) == "" {
			continue
		}
		v, err := parseNumber(rec[c])
		if err != nil {
			return 0, false
		}
		sum += v
		seen = true
	}
	return sum, seen
}

// parseNumber accepts plain and digit-grouped numbers ("1,21,08,54,977").
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
