package risk

import "errors"

var (
	// ErrDegenerateValuation is returned for duration and convexity when the
	// base NPV is zero.
	ErrDegenerateValuation = errors.New("zero base NPV")
	// ErrNoActiveCurve is returned when valuing before SetActive succeeded.
	ErrNoActiveCurve = errors.New("no active curve")
)
