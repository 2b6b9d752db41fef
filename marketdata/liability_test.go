package marketdata_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/longend/marketdata"
)

func TestReadLiabilities(t *testing.T) {
	t.Parallel()

	in := `year,month,day,amount
2025,6,30,1250000.10
2025,12,31, 1250000.20
2030,1,2,999.70
`
	liab, err := marketdata.ReadLiabilities(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, liab.Flows, 3)

	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), liab.Flows[0].Date)
	assert.InDelta(t, 1250000.20, liab.Flows[1].Principal, 1e-9)
	assert.Zero(t, liab.Flows[2].Coupon)
	assert.True(t, liab.Total.Equal(decimal.RequireFromString("2501000.00")), liab.Total.String())

	leg := liab.Leg()
	assert.Equal(t, 3, leg.Len())
}

func TestReadLiabilities_Malformed(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad year":     "y,m,d,a\nabc,6,30,10\n",
		"bad date":     "y,m,d,a\n2025,2,30,10\n",
		"bad amount":   "y,m,d,a\n2025,6,30,ten\n",
		"missing cols": "y,m,d,a\n2025,6,30\n",
		"empty":        "",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := marketdata.ReadLiabilities(strings.NewReader(in))
			assert.Error(t, err)
		})
	}

	_, err := marketdata.ReadLiabilities(strings.NewReader("y,m,d,a\n2025,13,1,10\n"))
	assert.ErrorIs(t, err, marketdata.ErrMalformedRow)
}

func TestLoadLiabilities(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "liabilities.csv")
	require.NoError(t, os.WriteFile(path, []byte("year,month,day,amount\n2040,12,31,100\n"), 0o600))

	liab, err := marketdata.LoadLiabilities(path)
	require.NoError(t, err)
	require.Len(t, liab.Flows, 1)
	assert.Equal(t, 100.0, liab.Flows[0].Principal)

	_, err = marketdata.LoadLiabilities(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
