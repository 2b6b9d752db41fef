// Package report runs curve and risk sweeps over a catalog and writes the
// results as CSV.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/longend/risk"
	"github.com/meenmo/longend/termstructure"
	"github.com/meenmo/longend/utils"
)

// ForwardRate is the continuously compounded forward rate over the month
// ending at Date.
type ForwardRate struct {
	Curve string
	Date  time.Time
	Rate  float64
}

// ForwardRates activates each named curve on ctx and samples monthly forward
// rates from its reference date for the given number of months. Months the
// curve cannot reach without extrapolation are logged and skipped.
func ForwardRates(ctx *risk.Context, names []string, months int) ([]ForwardRate, error) {
	var out []ForwardRate
	for _, name := range names {
		if err := ctx.SetActive(name); err != nil {
			return nil, fmt.Errorf("ForwardRates: %w", err)
		}
		curve, err := ctx.ActiveCurve()
		if err != nil {
			return nil, fmt.Errorf("ForwardRates: %w", err)
		}

		ref := curve.ReferenceDate()
		skipped := 0
		for m := 1; m <= months; m++ {
			start := utils.Advance(ref, utils.MonthsPeriod(m-1))
			end := utils.Advance(ref, utils.MonthsPeriod(m))
			fwd, err := curve.ForwardRateDates(start, end, termstructure.ContinuousRate)
			if errors.Is(err, termstructure.ErrExtrapolation) {
				skipped++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("ForwardRates: %s at %s: %w", name, end.Format("2006-01-02"), err)
			}
			out = append(out, ForwardRate{Curve: name, Date: end, Rate: fwd})
		}
		if skipped > 0 {
			log.Warn().Str("Curve", name).Int("Skipped", skipped).Msg("forward rates beyond curve range skipped")
		}
	}
	return out, nil
}

// WriteForwardRates writes CurveName,Date,ForwardRate rows.
func WriteForwardRates(w io.Writer, rows []ForwardRate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"CurveName", "Date", "ForwardRate"}); err != nil {
		return fmt.Errorf("WriteForwardRates: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.Curve, r.Date.Format("2006-01-02"), formatFloat(r.Rate)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteForwardRates: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
