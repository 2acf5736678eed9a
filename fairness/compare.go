// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fairness

import (
	"fmt"
	"math"

	"github.com/danielhkuo/fair-seats/apportion"
)

// MeanRelativeChange is the mean of |spm - spm_ref| / spm_ref over states
// that have a positive seats-per-million in the reference report.
func MeanRelativeChange(current, reference Report) (float64, error) {
	ref := reference.SeatsPerMillion()
	cur := current.SeatsPerMillion()

	var sum float64
	n := 0
	for _, s := range current.States {
		base, ok := ref[s.State]
		if !ok || base == 0 {
			continue
		}
		v, ok := cur[s.State]
		if !ok {
			continue
		}
		sum += math.Abs(v-base) / base
		n++
	}

	if n == 0 {
		return 0, fmt.Errorf("%w: no states comparable between year %q alpha %g and reference alpha %g",
			apportion.ErrInvalidInput, current.Year, current.Alpha, reference.Alpha)
	}
	return sum / float64(n), nil
}

// WithMRC returns a copy of r carrying its mean relative change against reference.
func (r Report) WithMRC(reference Report) (Report, error) {
	mrc, err := MeanRelativeChange(r, reference)
	if err != nil {
		return r, err
	}
	r.MRC = &mrc
	return r, nil
}
