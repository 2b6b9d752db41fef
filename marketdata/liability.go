// Package marketdata reads cash-flow inputs for the risk sweep.
package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/meenmo/longend/bond"
)

var (
	ErrMalformedRow = errors.New("malformed cash flow row")
)

// Liabilities is a projected liability schedule.
type Liabilities struct {
	Flows []bond.Cashflow
	// Total is the undiscounted sum, accumulated exactly.
	Total decimal.Decimal
}

// Leg returns the schedule as an unpriced leg.
func (l Liabilities) Leg() *bond.Leg {
	return bond.NewLeg(l.Flows)
}

// ReadLiabilities parses a CSV with a header row followed by
// year,month,day,amount rows.
func ReadLiabilities(r io.Reader) (Liabilities, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		return Liabilities{}, fmt.Errorf("ReadLiabilities: header: %w", err)
	}

	out := Liabilities{Total: decimal.Zero}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Liabilities{}, fmt.Errorf("ReadLiabilities: line %d: %w", line, err)
		}

		cf, amount, err := parseRow(rec)
		if err != nil {
			return Liabilities{}, fmt.Errorf("ReadLiabilities: line %d: %w", line, err)
		}
		log.Trace().Int("Line", line).Object("Cashflow", cf).Msg("liability cash flow")
		out.Flows = append(out.Flows, cf)
		out.Total = out.Total.Add(amount)
	}

	log.Debug().Int("Flows", len(out.Flows)).Str("Total", out.Total.StringFixed(2)).Msg("read liability cash flows")
	return out, nil
}

// LoadLiabilities is ReadLiabilities on a file.
func LoadLiabilities(path string) (Liabilities, error) {
	f, err := os.Open(path)
	if err != nil {
		return Liabilities{}, fmt.Errorf("LoadLiabilities: %w", err)
	}
	defer f.Close()
	return ReadLiabilities(f)
}

func parseRow(rec []string) (bond.Cashflow, decimal.Decimal, error) {
	var ymd [3]int
	for i := range ymd {
		v, err := strconv.Atoi(strings.TrimSpace(rec[i]))
		if err != nil {
			return bond.Cashflow{}, decimal.Decimal{}, fmt.Errorf("%w: %q: %v", ErrMalformedRow, rec[i], err)
		}
		ymd[i] = v
	}
	year, month, day := ymd[0], ymd[1], ymd[2]
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return bond.Cashflow{}, decimal.Decimal{}, fmt.Errorf("%w: invalid date %d-%02d-%02d", ErrMalformedRow, year, month, day)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
	if err != nil {
		return bond.Cashflow{}, decimal.Decimal{}, fmt.Errorf("%w: amount %q: %v", ErrMalformedRow, rec[3], err)
	}
	return bond.Cashflow{Date: date, Principal: amount.InexactFloat64()}, amount, nil
}
