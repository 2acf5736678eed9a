// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/fair-seats/apportion"
	"github.com/danielhkuo/fair-seats/cycle"
	"github.com/danielhkuo/fair-seats/popdata"
)

// Year names one population file.
type Year struct {
	Year string `yaml:"year"`
	File string `yaml:"file"`
}

// File is a batch definition. Paths inside it are relative to the file.
type File struct {
	HouseSizes []int     `yaml:"house_sizes"`
	Alphas     []float64 `yaml:"alphas"`
	Floor      *int      `yaml:"floor"`

	// Population loading
	Scale      float64 `yaml:"scale"`
	ForceScale bool    `yaml:"force_scale"`
	Canonical  string  `yaml:"canonical"`

	Years []Year `yaml:"years"`

	dir string
}

// Parse decodes and checks a batch definition. Unknown keys are rejected so
// a misspelt "alpha" is not silently ignored.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("%w: scenario file is empty", apportion.ErrInvalidInput)
		}
		return File{}, fmt.Errorf("%w: scenario file: %v", apportion.ErrInvalidInput, err)
	}
	if err := f.validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads a batch definition from path.
func Load(path string) (File, error) {
	r, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer r.Close()

	f, err := Parse(r)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

func (f File) validate() error {
	if len(f.Years) == 0 {
		return fmt.Errorf("%w: scenario file lists no years", apportion.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(f.Years))
	for i, y := range f.Years {
		if y.Year == "" {
			return fmt.Errorf("%w: years[%d]: year is required", apportion.ErrInvalidInput, i)
		}
		if y.File == "" {
			return fmt.Errorf("%w: year %s: file is required", apportion.ErrInvalidInput, y.Year)
		}
		if seen[y.Year] {
			return fmt.Errorf("%w: year %s listed twice", apportion.ErrInvalidInput, y.Year)
		}
		seen[y.Year] = true
	}
	if f.Floor != nil && *f.Floor < 0 {
		return fmt.Errorf("%w: floor %d must be non-negative", apportion.ErrInvalidParameter, *f.Floor)
	}
	return nil
}

// Sweep returns the house sizes, alphas, and floor with defaults applied.
func (f File) Sweep(defaultFloor int) (houseSizes []int, alphas []float64, floor int) {
	houseSizes, alphas, floor = f.HouseSizes, f.Alphas, defaultFloor
	if len(houseSizes) == 0 {
		houseSizes = apportion.StandardHouseSizes
	}
	if len(alphas) == 0 {
		alphas = apportion.StandardAlphas
	}
	if f.Floor != nil {
		floor = *f.Floor
	}
	return houseSizes, alphas, floor
}

// Tables loads every year's population file in listed order.
func (f File) Tables() ([]apportion.PopulationTable, error) {
	opts := popdata.Options{Scale: f.Scale, ForceScale: f.ForceScale}
	if f.Canonical != "" {
		canon, ok, err := popdata.LoadCanonicalMap(f.resolve(f.Canonical))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: canonical map %s not found", apportion.ErrInvalidInput, f.Canonical)
		}
		opts.Canonical = canon
	}

	tables := make([]apportion.PopulationTable, 0, len(f.Years))
	for _, y := range f.Years {
		ds, err := popdata.Load(f.resolve(y.File), opts)
		if err != nil {
			return nil, fmt.Errorf("year %s: %w", y.Year, err)
		}
		table, err := ds.Table(y.Year)
		if err != nil {
			return nil, fmt.Errorf("year %s: %w", y.Year, err)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// Scenarios loads the tables and expands them in (year, house size, alpha)
// order.
func (f File) Scenarios(defaultFloor int) ([]cycle.Scenario, error) {
	tables, err := f.Tables()
	if err != nil {
		return nil, err
	}
	houseSizes, alphas, floor := f.Sweep(defaultFloor)
	return cycle.Expand(tables, houseSizes, alphas, floor), nil
}

func (f File) resolve(p string) string {
	if filepath.IsAbs(p) || f.dir == "" {
		return p
	}
	return filepath.Join(f.dir, p)
}
