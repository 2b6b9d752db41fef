package main

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/meenmo/longend/calendar"
	"github.com/meenmo/longend/config"
	"github.com/meenmo/longend/marketdata"
	"github.com/meenmo/longend/report"
)

func init() {
	riskCmd.Flags().String("liabilities", "", "Liability cash flow CSV (year,month,day,amount)")
	riskCmd.Flags().String("assets-out", "assets.csv", "Asset risk CSV path, - for stdout")
	riskCmd.Flags().String("liabilities-out", "liabilities.csv", "Liability risk CSV path, - for stdout")
	rootCmd.AddCommand(riskCmd)
}

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Measure NPV, duration and convexity of the bond ladder and liabilities under every curve",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, cache, names, err := loadCatalog()
		if err != nil {
			return err
		}
		cfg := config.GetConfig()

		issue, err := cat.Reference()
		if err != nil {
			return err
		}
		tenors, err := cfg.Tenors()
		if err != nil {
			return err
		}
		book := report.Book{
			Issue:     issue,
			Tenors:    tenors,
			Coupon:    cfg.BondCoupon,
			Frequency: cfg.BondFrequency,
			Calendar:  calendar.USGovBond,
		}

		liabPath, _ := cmd.Flags().GetString("liabilities")
		if liabPath != "" {
			liab, err := marketdata.LoadLiabilities(liabPath)
			if err != nil {
				return err
			}
			book.Liabilities = liab.Flows
			log.Info().Int("Flows", len(liab.Flows)).Str("Total", liab.Total.StringFixed(2)).Msg("liabilities loaded")
		}

		results, err := report.Sweep(cmd.Context(), cache, names, book, cfg.Spread, cfg.Workers)
		if err != nil {
			return err
		}

		assetsPath, _ := cmd.Flags().GetString("assets-out")
		if err := writeTo(assetsPath, func(w io.Writer) error { return report.WriteAssetRisk(w, results) }); err != nil {
			return err
		}
		if len(book.Liabilities) > 0 {
			liabOut, _ := cmd.Flags().GetString("liabilities-out")
			if err := writeTo(liabOut, func(w io.Writer) error { return report.WriteLiabilityRisk(w, results) }); err != nil {
				return err
			}
		}
		log.Info().Int("Curves", len(results)).Int("Bonds", len(tenors)).Msg("risk written")
		return nil
	},
}
