package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "courtshot",
		Short: "Team photo sharing server",
		Long: `courtshot serves the team photo sharing JSON API.

Configuration is read from the environment; see internal/config for
the recognized variables. With no configuration it runs entirely on
in-memory backends.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}
