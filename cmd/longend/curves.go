package main

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meenmo/longend/config"
	"github.com/meenmo/longend/report"
	"github.com/meenmo/longend/risk"
)

func init() {
	curvesCmd.Flags().String("out", "forward_rates.csv", "Output CSV path, - for stdout")
	curvesCmd.Flags().Int("months", config.DefaultConfig.ForwardHorizonMonths, "Monthly forward rates per curve")
	viper.BindPFlag("report.forward_horizon_months", curvesCmd.Flags().Lookup("months"))
	rootCmd.AddCommand(curvesCmd)
}

var curvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "Write monthly continuously compounded forward rates of every curve",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cache, names, err := loadCatalog()
		if err != nil {
			return err
		}
		cfg := config.GetConfig()

		rows, err := report.ForwardRates(risk.NewContext(cache, cfg.Spread), names, cfg.ForwardHorizonMonths)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("out")
		if err := writeTo(path, func(w io.Writer) error { return report.WriteForwardRates(w, rows) }); err != nil {
			return err
		}
		log.Info().Str("Path", path).Int("Rows", len(rows)).Msg("forward rates written")
		return nil
	},
}
