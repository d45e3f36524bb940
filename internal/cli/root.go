package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd builds the courtshot command tree.
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "courtshot",
		Short: "CLI tool for the courtshot photo sharing API",
		Long: `courtshot is a CLI tool for interacting with the courtshot JSON API.

It covers sign-in, photo browsing, collection management, and resolving
public share links.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag and env token win over the token file
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: COURTSHOT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: COURTSHOT_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: COURTSHOT_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPhotosCmd())
	rootCmd.AddCommand(newCollectionsCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the CLI, exiting nonzero on any command error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
