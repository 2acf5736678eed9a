// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scenario reads batch definitions from YAML.

	house_sizes: [543, 888]
	alphas: [0.4, 0.5, 0.6, 0.8, 0.9, 1.0]
	floor: 1
	canonical: states_canonical.csv
	years:
	  - year: "2026"
	    file: pop_2026.csv
	  - year: "2031"
	    file: pop_2031.csv

Omitted house sizes and alphas fall back to the standard sweep; an omitted
floor falls back to the caller's default. File paths are resolved against
the directory holding the YAML file.

	f, err := scenario.Load("batch.yaml")
	scenarios, err := f.Scenarios(apportion.DefaultFloor)
	results, summary := cycle.Runner{Workers: 4}.Run(ctx, scenarios)
*/
package scenario
