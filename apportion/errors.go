// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error returned by this package wraps exactly one of
// these, so callers classify with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInfeasibleFloor  = errors.New("infeasible floor")
	ErrOverAllocation   = errors.New("over-allocation")
)

// Error kind codes used in API bodies and batch summaries
const (
	KindInvalidInput     = "invalid_input"
	KindInvalidParameter = "invalid_parameter"
	KindInfeasibleFloor  = "infeasible_floor"
	KindOverAllocation   = "over_allocation"
	KindInternal         = "internal"
)

// Kind maps an error to its stable code. Errors outside the taxonomy are "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, ErrInfeasibleFloor):
		return KindInfeasibleFloor
	case errors.Is(err, ErrOverAllocation):
		return KindOverAllocation
	default:
		return KindInternal
	}
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
