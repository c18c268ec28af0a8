// Package main is the entry point for the duodex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	env     string
	envFile string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "duodex",
		Short:         "Dual-language article search service",
		Long:          `duodex serves availability-filtered, relevance-ranked search over articles published in a primary and a secondary language.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.env, "env", "", "Config environment, selects config/<env>.yaml (default: $ENV or local)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(indexCmd(flags))
	cmd.AddCommand(seedCmd(flags))
	cmd.AddCommand(reconcileCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}
