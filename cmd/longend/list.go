package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/longend/extension"
)

var listBuild bool

func init() {
	listCmd.Flags().BoolVar(&listBuild, "build", false, "Build each curve and print its last date")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the curves registered by the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cache, names, err := loadCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			p, _ := cache.Policy(name)
			line := fmt.Sprintf("%-50s %s %s..%s step %s", name, describe(p), p.Start, p.End, p.Step)
			if listBuild {
				curve, err := cache.Get(name)
				if err != nil {
					return err
				}
				line += " max " + curve.MaxDate().Format("2006-01-02")
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func describe(p extension.Policy) string {
	switch r := p.Rule.(type) {
	case extension.ConstantRule:
		return fmt.Sprintf("%s(U=%.4f)", p.Name(), r.UltimateRate)
	case extension.GradedRule:
		return fmt.Sprintf("%s(U=%.4f, grading end %s)", p.Name(), r.UltimateRate, r.GradingEnd)
	case extension.RollingRule:
		return fmt.Sprintf("%s(window %d)", p.Name(), r.Window)
	case extension.BlendedRule:
		return fmt.Sprintf("%s(%s/%s)", p.Name(), r.Anchor1, r.Anchor2)
	default:
		return p.Name()
	}
}
