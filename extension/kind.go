package extension

import (
	"fmt"
	"strings"

	"github.com/meenmo/longend/termstructure"
)

// RateKind selects which rate a policy samples from the base curve and which
// curve type the samples are assembled into.
type RateKind int

const (
	// Zero samples zero rates and assembles a linearly interpolated zero curve.
	Zero RateKind = iota
	// Forward samples one-day forward rates and assembles a forward curve.
	Forward
)

func (k RateKind) String() string {
	switch k {
	case Zero:
		return "ZERO"
	case Forward:
		return "FORWARD"
	default:
		return fmt.Sprintf("RateKind(%d)", int(k))
	}
}

// ParseRateKind accepts "zero" or "forward" in any case.
func ParseRateKind(s string) (RateKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ZERO":
		return Zero, nil
	case "FORWARD":
		return Forward, nil
	default:
		return 0, fmt.Errorf("ParseRateKind: %w: unknown rate kind %q", ErrInvalidConfiguration, s)
	}
}

// ExtractRate reads the rate of the given kind from curve at time t. Forward
// rates are taken over [t, t+1/365]. Errors from the curve, including
// termstructure.ErrExtrapolation, are returned unchanged.
func ExtractRate(kind RateKind, curve termstructure.TermStructure, t float64, conv termstructure.Convention) (float64, error) {
	switch kind {
	case Zero:
		return curve.ZeroRate(t, conv)
	case Forward:
		return curve.ForwardRate(t, t+termstructure.ShortRateSpan, conv)
	default:
		return 0, fmt.Errorf("ExtractRate: %w: %s", ErrInvalidConfiguration, kind)
	}
}
