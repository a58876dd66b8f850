// Package cli provides the command-line interface for TrainWatch.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trainwatch/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trainwatch",
		Short: "Watch ML training logs and email progress reports",
		Long: `TrainWatch polls a growing training log, extracts numeric metrics with
pluggable regex parsers, and periodically emails an HTML progress report
with PNG plots of the accumulated series.

Tracked by default: Loss, Accuracy, Val_Loss, Val_Accuracy, and WER with
its substitution/deletion/insertion components. Extra metrics can be added
through a yaml pattern file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
