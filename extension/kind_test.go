package extension_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/longend/extension"
	"github.com/meenmo/longend/termstructure"
)

func TestExtractRate(t *testing.T) {
	t.Parallel()

	base := flatBase(0.05)

	z, err := extension.ExtractRate(extension.Zero, base, 10, termstructure.AnnualRate)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(0.05)-1, z, 1e-12)

	f, err := extension.ExtractRate(extension.Forward, base, 10, termstructure.ContinuousRate)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, f, 1e-9)

	_, err = extension.ExtractRate(extension.RateKind(9), base, 10, termstructure.AnnualRate)
	assert.ErrorIs(t, err, extension.ErrInvalidConfiguration)

	_, err = extension.ExtractRate(extension.Zero, base, -1, termstructure.AnnualRate)
	assert.ErrorIs(t, err, termstructure.ErrExtrapolation)
}

func TestParseRateKind(t *testing.T) {
	t.Parallel()

	k, err := extension.ParseRateKind(" forward ")
	require.NoError(t, err)
	assert.Equal(t, extension.Forward, k)

	k, err = extension.ParseRateKind("ZERO")
	require.NoError(t, err)
	assert.Equal(t, extension.Zero, k)

	_, err = extension.ParseRateKind("par")
	assert.ErrorIs(t, err, extension.ErrInvalidConfiguration)
}
