package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/longend/config"
	"github.com/meenmo/longend/utils"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.FromViper(viper.New())
	assert.Equal(t, config.DefaultConfig, cfg)
	require.NoError(t, cfg.Validate())

	tenors, err := cfg.Tenors()
	require.NoError(t, err)
	assert.Equal(t, []utils.Period{
		utils.YearsPeriod(5), utils.YearsPeriod(10), utils.YearsPeriod(20), utils.YearsPeriod(30),
	}, tenors)
}

func TestFromViper_Overrides(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("risk.spread", 0.001)
	v.Set("risk.workers", 2)
	v.Set("report.forward_horizon_months", 120)
	v.Set("bonds.tenors", []string{"2Y", "7Y"})
	v.Set("bonds.coupon", 0.04)
	v.Set("bonds.frequency", 1)

	cfg := config.FromViper(v)
	assert.Equal(t, 0.001, cfg.Spread)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 120, cfg.ForwardHorizonMonths)
	assert.Equal(t, []string{"2Y", "7Y"}, cfg.BondTenors)
	assert.Equal(t, 0.04, cfg.BondCoupon)
	assert.Equal(t, 1, cfg.BondFrequency)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]func(c *config.Config){
		"spread":    func(c *config.Config) { c.Spread = 0 },
		"horizon":   func(c *config.Config) { c.ForwardHorizonMonths = 0 },
		"frequency": func(c *config.Config) { c.BondFrequency = 5 },
		"workers":   func(c *config.Config) { c.Workers = 0 },
		"tenor":     func(c *config.Config) { c.BondTenors = []string{"5X"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := config.DefaultConfig
			c.BondTenors = append([]string(nil), c.BondTenors...)
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSetConfig(t *testing.T) {
	orig := config.GetConfig()
	defer config.SetConfig(orig)

	c := config.DefaultConfig
	c.Workers = 9
	config.SetConfig(c)
	assert.Equal(t, 9, config.GetConfig().Workers)
}
