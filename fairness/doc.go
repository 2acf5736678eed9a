// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fairness scores an allocation against the population it was drawn from.

# Metrics

Evaluate returns a Report with:

  - LHI: Loosemore–Hanby index, 0.5 * Σ|seat share - population share|
  - Gini: population-weighted Gini of seats per person
  - UnweightedGini: plain Gini of seats per million across states
  - MalapportionmentIndex: 0.5 * Σ|seats/pop - S/P|, in seats per million
  - per-state seats per million and elasticity (seat share / population share)
  - elasticity summary: mean, median, p10, p90

States with zero population take part in the LHI but have no defined
seats-per-capita ratio; they are left out of both Gini values and listed in
ZeroPopulationStates.

# Comparison

MeanRelativeChange compares seats per million against a reference report,
normally the proportional (alpha = 1) allocation for the same year and
house size.
*/
package fairness
