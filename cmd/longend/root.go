package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meenmo/longend/catalog"
	"github.com/meenmo/longend/config"
)

var configFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Optional settings file (yaml, toml or json)")

	rootCmd.PersistentFlags().String("catalog", "examples/catalog.yaml", "Curve catalog file")
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))

	rootCmd.PersistentFlags().Float64("spread", config.DefaultConfig.Spread, "Parallel zero-rate shock for duration and convexity")
	viper.BindPFlag("risk.spread", rootCmd.PersistentFlags().Lookup("spread"))

	rootCmd.PersistentFlags().Int("workers", config.DefaultConfig.Workers, "Curves valued concurrently")
	viper.BindPFlag("risk.workers", rootCmd.PersistentFlags().Lookup("workers"))

	// Logging configuration
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().Bool("log-pretty", false, "Human readable console logs")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:   "longend",
	Short: "Long-end yield curve extension and risk",
	Long: `longend extends market yield curves past their last pillar with flat,
constant, linearly graded, rolling average or dual blended rules and
measures NPV, duration and convexity of assets and liabilities under each.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		cfg := config.FromViper(viper.GetViper())
		if err := cfg.Validate(); err != nil {
			return err
		}
		config.SetConfig(cfg)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("LONGEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Err(err).Str("Path", configFile).Msg("could not read settings file")
	}
}

func setupLogging() {
	if viper.GetBool("log.pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	switch strings.ToLower(viper.GetString("log.level")) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// loadCatalog reads the catalog file and registers its curves in a fresh
// cache.
func loadCatalog() (*config.Catalog, *catalog.Cache, []string, error) {
	path := viper.GetString("catalog")
	cat, err := config.LoadCatalog(path)
	if err != nil {
		return nil, nil, nil, err
	}
	cache := catalog.New()
	names, err := cat.Populate(cache)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info().Str("Catalog", path).Int("Curves", len(names)).Msg("catalog loaded")
	return cat, cache, names, nil
}

// writeTo runs write against path, or stdout when path is "-".
func writeTo(path string, write func(w io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
