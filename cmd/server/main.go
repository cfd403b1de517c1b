package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ethicsaudit",
		Short:         "AI ethics audit service",
		Long:          "Collects ethics audit questionnaires, keeps their scores consistent and streams generated audit reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment overrides apply on top)")

	root.AddCommand(
		newServeCmd(),
		newTokenCmd(),
		newReportCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
