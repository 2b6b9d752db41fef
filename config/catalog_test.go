package config_test

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/longend/catalog"
	"github.com/meenmo/longend/config"
	"github.com/meenmo/longend/extension"
	"github.com/meenmo/longend/termstructure"
	"github.com/meenmo/longend/utils"
)

const catalogYAML = `
reference_date: "2024-12-31"
day_count: ACT/365F
base_curves:
  - name: ZERO
    type: zero
    convention: continuous
    pillars:
      - {tenor: 1Y, value: 0.040}
      - {tenor: 10Y, value: 0.042}
      - {tenor: 30Y, value: 0.046}
  - name: DISC
    type: discount
    pillars:
      - {tenor: 10Y, value: 0.67}
      - {tenor: 30Y, value: 0.25}
  - name: FLAT
    type: flat
    convention: continuous
    rate: 0.05
    extrapolate: false
policies:
  - {method: flat, kind: forward, start: 30Y, end: 100Y}
  - {method: linearly_graded, kind: zero, ultimate_rate: 0.05, start: 30Y, grading_end: 40Y, end: 100Y, step: 3M}
  - {name: BLEND_10_20, method: dual_blended, kind: zero, start: 30Y, end: 60Y, anchors: [10Y, 20Y], convention: continuous}
`

func TestParseCatalog_Populate(t *testing.T) {
	t.Parallel()

	cat, err := config.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	ref, err := cat.Reference()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), ref)

	cache := catalog.New()
	names, err := cat.Populate(cache)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ZERO:FLAT_FORWARD", "ZERO:LINEARLY_GRADED_ZERO", "ZERO:BLEND_10_20",
		"DISC:FLAT_FORWARD", "DISC:LINEARLY_GRADED_ZERO", "DISC:BLEND_10_20",
		"FLAT:FLAT_FORWARD", "FLAT:LINEARLY_GRADED_ZERO", "FLAT:BLEND_10_20",
	}, names)
	assert.Equal(t, names, cache.Names())

	p, ok := cache.Policy("ZERO:LINEARLY_GRADED_ZERO")
	require.True(t, ok)
	assert.Equal(t, utils.MonthsPeriod(3), p.Step)
	assert.Equal(t, extension.GradedRule{UltimateRate: 0.05, GradingEnd: utils.YearsPeriod(40)}, p.Rule)

	p, ok = cache.Policy("ZERO:BLEND_10_20")
	require.True(t, ok)
	assert.Equal(t, termstructure.ContinuousRate, p.Convention)
	assert.Equal(t, extension.BlendedRule{Anchor1: utils.YearsPeriod(10), Anchor2: utils.YearsPeriod(20)}, p.Rule)

	for _, name := range names {
		curve, err := cache.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, utils.Act365F, curve.DayCount())
	}
}

func TestBaseCurve_Build(t *testing.T) {
	t.Parallel()

	cat, err := config.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)
	ref, err := cat.Reference()
	require.NoError(t, err)

	zero, err := cat.BaseCurves[0].Build(ref, cat.DayCount)
	require.NoError(t, err)
	assert.True(t, zero.AllowsExtrapolation())
	z, err := zero.ZeroRate(0.5, termstructure.ContinuousRate)
	require.NoError(t, err)
	assert.InDelta(t, 0.040, z, 1e-12)
	assert.Equal(t, utils.Advance(ref, utils.YearsPeriod(30)), zero.MaxDate())

	disc, err := cat.BaseCurves[1].Build(ref, cat.DayCount)
	require.NoError(t, err)
	df, err := disc.DiscountDate(utils.Advance(ref, utils.YearsPeriod(10)))
	require.NoError(t, err)
	assert.InDelta(t, 0.67, df, 1e-12)

	flat, err := cat.BaseCurves[2].Build(ref, cat.DayCount)
	require.NoError(t, err)
	assert.False(t, flat.AllowsExtrapolation())

	_, err = config.BaseCurve{Name: "X", Type: "spline"}.Build(ref, cat.DayCount)
	assert.Error(t, err)
	_, err = config.BaseCurve{Name: "X", Type: "zero"}.Build(ref, cat.DayCount)
	assert.Error(t, err)
	_, err = config.BaseCurve{Name: "X", Type: "zero", Pillars: []config.Pillar{{Tenor: "1Q", Value: 0.1}}}.Build(ref, cat.DayCount)
	assert.Error(t, err)
}

func TestPolicySpec_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]config.PolicySpec{
		"method":      {Method: "cubic", Kind: "zero", Start: "30Y", End: "100Y"},
		"kind":        {Method: "flat", Kind: "par", Start: "30Y", End: "100Y"},
		"start":       {Method: "flat", Kind: "zero", Start: "thirty", End: "100Y"},
		"grading end": {Method: "linearly_graded", Kind: "zero", Start: "30Y", End: "100Y", UltimateRate: 0.05},
		"window":      {Method: "rolling_average", Kind: "zero", Start: "30Y", End: "100Y"},
		"anchors":     {Method: "dual_blended", Kind: "zero", Start: "30Y", End: "100Y", Anchors: []string{"20Y"}},
		"convention":  {Method: "flat", Kind: "zero", Start: "30Y", End: "100Y", Convention: "weekly"},
		"end":         {Method: "flat", Kind: "zero", Start: "30Y", End: "20Y"},
	}
	for name, spec := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := spec.Policy()
			assert.ErrorIs(t, err, extension.ErrInvalidConfiguration)
		})
	}
}

func TestPopulate_ExplicitCurves(t *testing.T) {
	t.Parallel()

	cat, err := config.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	cat.Curves = []string{"FLAT:BLEND_10_20", "ZERO:FLAT_FORWARD"}
	names, err := cat.Populate(catalog.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"FLAT:BLEND_10_20", "ZERO:FLAT_FORWARD"}, names)

	cat.Curves = []string{"ZERO:NOPE"}
	_, err = cat.Populate(catalog.New())
	assert.ErrorIs(t, err, catalog.ErrCurveNotFound)
}

func TestParseCatalog_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.ParseCatalog([]byte("base_curves: [\n"))
	assert.Error(t, err)
	_, err = config.ParseCatalog([]byte("reference_date: \"2024-12-31\"\n"))
	assert.Error(t, err)
}

func TestLoadCatalog_ExampleFile(t *testing.T) {
	t.Parallel()

	cat, err := config.LoadCatalog(filepath.Join("..", "examples", "catalog.yaml"))
	require.NoError(t, err)
	names, err := cat.Populate(catalog.New())
	require.NoError(t, err)
	assert.Len(t, names, len(cat.BaseCurves)*len(cat.Policies))
	assert.Contains(t, names, "TREASURY_ZERO_LINEAR:FLAT_FORWARD")

	_, err = config.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
