package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/meenmo/longend/utils"
)

// Config holds risk sweep and report parameters.
type Config struct {
	// Spread is the parallel zero-rate shock for duration and convexity.
	Spread float64

	// ForwardHorizonMonths is the number of monthly forward rates written
	// per curve by the forward-rate report.
	ForwardHorizonMonths int

	// BondTenors are the maturities of the synthetic fixed-rate bonds.
	BondTenors []string

	// BondCoupon is the annual coupon of the synthetic bonds, as a decimal.
	BondCoupon float64

	// BondFrequency is coupons per year.
	BondFrequency int

	// Workers bounds how many curves the risk sweep values concurrently.
	// Each worker owns its own risk context.
	Workers int
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	Spread:               0.0001,
	ForwardHorizonMonths: 70 * 12,
	BondTenors:           []string{"5Y", "10Y", "20Y", "30Y"},
	BondCoupon:           0.05,
	BondFrequency:        2,
	Workers:              4,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}

// FromViper overlays every key set in v on DefaultConfig. Keys:
// risk.spread, report.forward_horizon_months, bonds.tenors, bonds.coupon,
// bonds.frequency, risk.workers.
func FromViper(v *viper.Viper) Config {
	c := DefaultConfig
	if v.IsSet("risk.spread") {
		c.Spread = v.GetFloat64("risk.spread")
	}
	if v.IsSet("report.forward_horizon_months") {
		c.ForwardHorizonMonths = v.GetInt("report.forward_horizon_months")
	}
	if v.IsSet("bonds.tenors") {
		c.BondTenors = v.GetStringSlice("bonds.tenors")
	}
	if v.IsSet("bonds.coupon") {
		c.BondCoupon = v.GetFloat64("bonds.coupon")
	}
	if v.IsSet("bonds.frequency") {
		c.BondFrequency = v.GetInt("bonds.frequency")
	}
	if v.IsSet("risk.workers") {
		c.Workers = v.GetInt("risk.workers")
	}
	return c
}

// Validate checks ranges that would otherwise fail deep inside a sweep.
func (c Config) Validate() error {
	if c.Spread <= 0 {
		return fmt.Errorf("Config.Validate: spread %g must be positive", c.Spread)
	}
	if c.ForwardHorizonMonths <= 0 {
		return fmt.Errorf("Config.Validate: forward horizon %d must be positive", c.ForwardHorizonMonths)
	}
	if c.BondFrequency <= 0 || 12%c.BondFrequency != 0 {
		return fmt.Errorf("Config.Validate: unsupported bond frequency %d", c.BondFrequency)
	}
	if c.Workers < 1 {
		return fmt.Errorf("Config.Validate: workers %d must be at least 1", c.Workers)
	}
	if _, err := c.Tenors(); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}
	return nil
}

// Tenors parses BondTenors.
func (c Config) Tenors() ([]utils.Period, error) {
	out := make([]utils.Period, 0, len(c.BondTenors))
	for _, s := range c.BondTenors {
		p, err := utils.ParsePeriod(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
