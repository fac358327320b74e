package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../commands.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rebalancer",
	Short: "Portfolio rebalancing calculator",
	Long: `Rebalancer computes, for every asset of a portfolio, its current share of
the total and the amount it must hold to reach its target percentage.

Examples:
  rebalancer serve --port 8080
  rebalancer calc assets.json
  cat assets.json | rebalancer calc`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("rebalancer " + Version)
	},
}
