package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/longend/bond"
	"github.com/meenmo/longend/calendar"
	"github.com/meenmo/longend/catalog"
	"github.com/meenmo/longend/risk"
	"github.com/meenmo/longend/utils"
)

// Book describes the instruments valued under every curve: one fixed-rate
// bond per tenor and an optional liability schedule.
type Book struct {
	Issue       time.Time
	Tenors      []utils.Period
	Coupon      float64
	Frequency   int
	Calendar    calendar.CalendarID
	Liabilities []bond.Cashflow
}

// AssetRisk is the sensitivity of the bond of one tenor.
type AssetRisk struct {
	Tenor utils.Period
	risk.Sensitivities
}

// CurveRisk holds every measure taken under one curve.
type CurveRisk struct {
	Curve  string
	Assets []AssetRisk
	// Liabilities is nil when the book has no liability schedule.
	Liabilities *risk.Sensitivities
}

// Sweep values book under each named curve. Curves are processed by up to
// workers goroutines, each with its own risk context and instruments; the
// cache is shared. Results keep the order of names. The first error cancels
// the remaining curves.
func Sweep(ctx context.Context, cache *catalog.Cache, names []string, book Book, spread float64, workers int) ([]CurveRisk, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]CurveRisk, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := measureCurve(cache, name, book, spread)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Sweep: %w", err)
	}
	return results, nil
}

func measureCurve(cache *catalog.Cache, name string, book Book, spread float64) (CurveRisk, error) {
	rc := risk.NewContext(cache, spread)
	if err := rc.SetActive(name); err != nil {
		return CurveRisk{}, err
	}
	engine := risk.NewEngine(rc)
	out := CurveRisk{Curve: name}

	for _, tenor := range book.Tenors {
		b, err := bond.NewFixedRateBond(book.Issue, tenor, book.Coupon, book.Frequency, book.Calendar)
		if err != nil {
			return CurveRisk{}, fmt.Errorf("%s: %w", name, err)
		}
		rc.Link(b)
		s, err := engine.Measure(b)
		if err != nil {
			return CurveRisk{}, fmt.Errorf("%s: %s bond: %w", name, tenor, err)
		}
		log.Debug().Str("Curve", name).Str("Tenor", tenor.String()).Object("Risk", s).Msg("bond measured")
		out.Assets = append(out.Assets, AssetRisk{Tenor: tenor, Sensitivities: s})
	}

	if len(book.Liabilities) > 0 {
		leg := bond.NewLeg(book.Liabilities)
		rc.Link(leg)
		s, err := engine.Measure(leg)
		if err != nil {
			return CurveRisk{}, fmt.Errorf("%s: liabilities: %w", name, err)
		}
		log.Debug().Str("Curve", name).Int("Flows", leg.Len()).Object("Risk", s).Msg("liabilities measured")
		out.Liabilities = &s
	}

	return out, nil
}

// WriteAssetRisk writes CurveName,Tenor,NPV,Duration,Convexity rows.
func WriteAssetRisk(w io.Writer, results []CurveRisk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"CurveName", "Tenor", "NPV", "Duration", "Convexity"}); err != nil {
		return fmt.Errorf("WriteAssetRisk: %w", err)
	}
	for _, r := range results {
		for _, a := range r.Assets {
			rec := []string{r.Curve, a.Tenor.String(), formatFloat(a.NPV), formatFloat(a.Duration), formatFloat(a.Convexity)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("WriteAssetRisk: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLiabilityRisk writes CurveName,NPV,Duration,Convexity rows for the
// curves that valued a liability schedule.
func WriteLiabilityRisk(w io.Writer, results []CurveRisk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"CurveName", "NPV", "Duration", "Convexity"}); err != nil {
		return fmt.Errorf("WriteLiabilityRisk: %w", err)
	}
	for _, r := range results {
		if r.Liabilities == nil {
			continue
		}
		s := r.Liabilities
		if err := cw.Write([]string{r.Curve, formatFloat(s.NPV), formatFloat(s.Duration), formatFloat(s.Convexity)}); err != nil {
			return fmt.Errorf("WriteLiabilityRisk: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
