package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "statekv",
	Short:        "Inspect a ledger-backed key/value store",
	Long:         "Decode stored value bytes, and dump ranges and key histories from a live etcd backend as JSON lines.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log decode fallbacks and backend chatter to stderr")
}

// cliLogger builds the logger handed to the store: silent by default,
// a development logger with --verbose.
func cliLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if !verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment() //nolint:wrapcheck
}
