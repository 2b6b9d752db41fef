package termstructure

import "errors"

var (
	// ErrExtrapolation is returned when a curve is queried outside [0, MaxTime]
	// and extrapolation has not been enabled.
	ErrExtrapolation = errors.New("time outside curve domain")
	// ErrInvalidNodes is returned when curve nodes are empty, unsorted or mismatched.
	ErrInvalidNodes = errors.New("invalid curve nodes")
	// ErrEmptyHandle is returned when dereferencing a handle that was never linked.
	ErrEmptyHandle = errors.New("empty term structure handle")
)
