package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/araichev/mustaching/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "mustaching",
		Short:   "Summarize a personal-finance CSV ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newSummarizeCommand())
	rootCmd.AddCommand(newPlotCommand())
	rootCmd.AddCommand(newSampleCommand())

	return rootCmd
}
