package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the brewsim command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brewsim",
		Short: "Replay brewery staking scenarios against an in-memory store",
		Long: `brewsim runs a scripted scenario of pools, deposits and withdrawals through
the brewery module on an in-memory multistore and reports the resulting state.
Every step is executed as its own block and rolled back if it fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func addCommonFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "optional config file holding any of the flags below")
	fs.StringP(flagScenario, "s", "", "scenario file (yaml, json or toml)")
	fs.String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	fs.Bool(flagLogJSON, false, "emit logs as JSON")
}
