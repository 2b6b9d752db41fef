package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/longend/catalog"
	"github.com/meenmo/longend/extension"
	"github.com/meenmo/longend/termstructure"
	"github.com/meenmo/longend/utils"
)

// Catalog is the YAML description of base curves and the extension
// policies applied to each of them.
type Catalog struct {
	ReferenceDate string       `yaml:"reference_date"`
	DayCount      string       `yaml:"day_count"`
	BaseCurves    []BaseCurve  `yaml:"base_curves"`
	Policies      []PolicySpec `yaml:"policies"`
	// Curves restricts and orders the registered names. Empty means every
	// base crossed with every policy, bases outermost.
	Curves []string `yaml:"curves,omitempty"`
}

// BaseCurve is a market curve given by pillars.
type BaseCurve struct {
	Name string `yaml:"name"`
	// Type is zero, discount or flat.
	Type       string   `yaml:"type"`
	Convention string   `yaml:"convention,omitempty"`
	Rate       float64  `yaml:"rate,omitempty"`
	Pillars    []Pillar `yaml:"pillars,omitempty"`
	// Extrapolate defaults to true so policies can sample past the last pillar.
	Extrapolate *bool `yaml:"extrapolate,omitempty"`
}

// Pillar is one tenor and its zero rate or discount factor.
type Pillar struct {
	Tenor string  `yaml:"tenor"`
	Value float64 `yaml:"value"`
}

// PolicySpec describes one extension policy.
type PolicySpec struct {
	// Name overrides the derived METHOD_KIND suffix.
	Name         string   `yaml:"name,omitempty"`
	Method       string   `yaml:"method"`
	Kind         string   `yaml:"kind"`
	Start        string   `yaml:"start"`
	End          string   `yaml:"end"`
	Step         string   `yaml:"step,omitempty"`
	Convention   string   `yaml:"convention,omitempty"`
	UltimateRate float64  `yaml:"ultimate_rate,omitempty"`
	GradingEnd   string   `yaml:"grading_end,omitempty"`
	Window       int      `yaml:"window,omitempty"`
	Anchors      []string `yaml:"anchors,omitempty"`
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: failed to read %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML. Curves are not built here.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("ParseCatalog: failed to unmarshal: %w", err)
	}
	if c.DayCount == "" {
		c.DayCount = utils.ActActISDA
	}
	if len(c.BaseCurves) == 0 {
		return nil, fmt.Errorf("ParseCatalog: no base curves")
	}
	if len(c.Policies) == 0 {
		return nil, fmt.Errorf("ParseCatalog: no policies")
	}
	return &c, nil
}

// Reference parses ReferenceDate.
func (c *Catalog) Reference() (time.Time, error) {
	return utils.ParseDate(c.ReferenceDate)
}

// Populate builds the base curves, registers every BASE:POLICY name in
// cache and returns the names to report on: Curves when given, otherwise
// all registered names. Extended curves are built lazily by the cache.
func (c *Catalog) Populate(cache *catalog.Cache) ([]string, error) {
	ref, err := c.Reference()
	if err != nil {
		return nil, fmt.Errorf("Catalog.Populate: reference date: %w", err)
	}

	policies := make([]extension.Policy, 0, len(c.Policies))
	suffixes := make([]string, 0, len(c.Policies))
	for i, spec := range c.Policies {
		p, err := spec.Policy()
		if err != nil {
			return nil, fmt.Errorf("Catalog.Populate: policy %d: %w", i, err)
		}
		suffix := spec.Name
		if suffix == "" {
			suffix = p.Name()
		}
		policies = append(policies, p)
		suffixes = append(suffixes, suffix)
	}

	var names []string
	for _, bc := range c.BaseCurves {
		base, err := bc.Build(ref, c.DayCount)
		if err != nil {
			return nil, fmt.Errorf("Catalog.Populate: %w", err)
		}
		for i, p := range policies {
			name := bc.Name + ":" + suffixes[i]
			cache.AddOrUpdate(name, base, p)
			names = append(names, name)
		}
	}
	log.Debug().Int("BaseCurves", len(c.BaseCurves)).Int("Policies", len(policies)).Int("Curves", len(names)).Msg("catalog populated")

	if len(c.Curves) == 0 {
		return names, nil
	}
	for _, name := range c.Curves {
		if !cache.Has(name) {
			return nil, fmt.Errorf("Catalog.Populate: %w: %q", catalog.ErrCurveNotFound, name)
		}
	}
	return append([]string(nil), c.Curves...), nil
}

// Build turns the pillars into a term structure dated from ref.
func (b BaseCurve) Build(ref time.Time, dayCount string) (*termstructure.Curve, error) {
	if b.Name == "" {
		return nil, fmt.Errorf("BaseCurve.Build: missing name")
	}
	conv, err := termstructure.ParseConvention(b.Convention)
	if err != nil {
		return nil, fmt.Errorf("BaseCurve.Build: %s: %w", b.Name, err)
	}

	var curve *termstructure.Curve
	switch strings.ToLower(b.Type) {
	case "flat":
		curve = termstructure.NewFlatForward(ref, b.Rate, dayCount, conv)
	case "zero", "":
		dates, values, err := b.nodes(ref)
		if err != nil {
			return nil, err
		}
		// The first pillar rate is held back to the reference date.
		dates = append([]time.Time{ref}, dates...)
		values = append([]float64{values[0]}, values...)
		curve, err = termstructure.NewZeroCurve(dates, values, dayCount, conv)
		if err != nil {
			return nil, fmt.Errorf("BaseCurve.Build: %s: %w", b.Name, err)
		}
	case "discount":
		dates, values, err := b.nodes(ref)
		if err != nil {
			return nil, err
		}
		dates = append([]time.Time{ref}, dates...)
		values = append([]float64{1.0}, values...)
		curve, err = termstructure.NewDiscountCurve(dates, values, dayCount)
		if err != nil {
			return nil, fmt.Errorf("BaseCurve.Build: %s: %w", b.Name, err)
		}
	default:
		return nil, fmt.Errorf("BaseCurve.Build: %s: unknown curve type %q", b.Name, b.Type)
	}

	if b.Extrapolate == nil || *b.Extrapolate {
		curve.EnableExtrapolation()
	}
	log.Debug().Str("BaseCurve", b.Name).Str("Type", b.Type).Int("Pillars", len(b.Pillars)).Msg("built base curve")
	return curve, nil
}

func (b BaseCurve) nodes(ref time.Time) ([]time.Time, []float64, error) {
	if len(b.Pillars) == 0 {
		return nil, nil, fmt.Errorf("BaseCurve.Build: %s: no pillars", b.Name)
	}
	dates := make([]time.Time, 0, len(b.Pillars))
	values := make([]float64, 0, len(b.Pillars))
	for _, p := range b.Pillars {
		tenor, err := utils.ParsePeriod(p.Tenor)
		if err != nil {
			return nil, nil, fmt.Errorf("BaseCurve.Build: %s: %w", b.Name, err)
		}
		dates = append(dates, utils.Advance(ref, tenor))
		values = append(values, p.Value)
	}
	return dates, values, nil
}

// Policy converts the catalog entry into an extension policy and validates it.
func (s PolicySpec) Policy() (extension.Policy, error) {
	kind, err := extension.ParseRateKind(s.Kind)
	if err != nil {
		return extension.Policy{}, err
	}
	start, err := parseTenor("start", s.Start)
	if err != nil {
		return extension.Policy{}, err
	}
	end, err := parseTenor("end", s.End)
	if err != nil {
		return extension.Policy{}, err
	}

	var p extension.Policy
	switch strings.ToUpper(strings.TrimSpace(s.Method)) {
	case extension.FlatMethod.String():
		p = extension.Flat(kind, start, end)
	case extension.ConstantMethod.String():
		p = extension.Constant(kind, s.UltimateRate, start, end)
	case extension.LinearlyGradedMethod.String():
		g, err := parseTenor("grading_end", s.GradingEnd)
		if err != nil {
			return extension.Policy{}, err
		}
		p = extension.LinearlyGraded(kind, s.UltimateRate, start, g, end)
	case extension.RollingAverageMethod.String():
		p = extension.RollingAverage(kind, s.Window, start, end)
	case extension.DualBlendedMethod.String():
		p = extension.DualBlended(kind, start, end)
		if len(s.Anchors) > 0 {
			if len(s.Anchors) != 2 {
				return extension.Policy{}, fmt.Errorf("PolicySpec.Policy: %w: need exactly two anchors, got %d", extension.ErrInvalidConfiguration, len(s.Anchors))
			}
			a1, err := parseTenor("anchors[0]", s.Anchors[0])
			if err != nil {
				return extension.Policy{}, err
			}
			a2, err := parseTenor("anchors[1]", s.Anchors[1])
			if err != nil {
				return extension.Policy{}, err
			}
			p.Rule = extension.BlendedRule{Anchor1: a1, Anchor2: a2}
		}
	default:
		return extension.Policy{}, fmt.Errorf("PolicySpec.Policy: %w: unknown method %q", extension.ErrInvalidConfiguration, s.Method)
	}

	if s.Step != "" {
		step, err := parseTenor("step", s.Step)
		if err != nil {
			return extension.Policy{}, err
		}
		p = p.WithStep(step)
	}
	if s.Convention != "" {
		conv, err := termstructure.ParseConvention(s.Convention)
		if err != nil {
			return extension.Policy{}, fmt.Errorf("PolicySpec.Policy: %w: %v", extension.ErrInvalidConfiguration, err)
		}
		p = p.WithConvention(conv)
	}
	if err := p.Validate(); err != nil {
		return extension.Policy{}, err
	}
	return p, nil
}

func parseTenor(field, s string) (utils.Period, error) {
	p, err := utils.ParsePeriod(s)
	if err != nil {
		return utils.Period{}, fmt.Errorf("PolicySpec.Policy: %w: %s: %v", extension.ErrInvalidConfiguration, field, err)
	}
	return p, nil
}
