// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import "math"

// Quota is a state's exact seat entitlement before rounding.
type Quota struct {
	State      string  `json:"state"`
	Population int64   `json:"population"`
	Weight     float64 `json:"weight"`
	Value      float64 `json:"quota"`
}

// Weight returns population^alpha. Alpha = 1 yields the population itself.
func Weight(population int64, alpha float64) float64 {
	if population == 0 {
		return 0
	}
	return math.Pow(float64(population), alpha)
}

// ComputeQuotas weights every state by population^alpha and normalises the
// weights so the quotas sum to the house size:
//
//	quota[s] = weight[s] * H / Σweight
func ComputeQuotas(table PopulationTable, alpha float64, houseSize int) ([]Quota, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		return nil, invalidParameter("alpha %v outside (0, 1]", alpha)
	}
	if houseSize <= 0 {
		return nil, invalidParameter("house size %d must be positive", houseSize)
	}
	if table.Len() == 0 {
		return nil, invalidInput("population table is empty")
	}

	quotas := make([]Quota, 0, table.Len())
	var totalWeight float64
	for _, s := range table.states {
		if s.Population < 0 {
			return nil, invalidInput("state %q: negative population %d", s.Name, s.Population)
		}
		w := Weight(s.Population, alpha)
		quotas = append(quotas, Quota{State: s.Name, Population: s.Population, Weight: w})
		totalWeight += w
	}

	if totalWeight <= 0 || math.IsInf(totalWeight, 0) {
		return nil, invalidInput("total weight %v cannot be normalised", totalWeight)
	}

	h := float64(houseSize)
	for i := range quotas {
		quotas[i].Value = quotas[i].Weight * h / totalWeight
	}

	return quotas, nil
}
