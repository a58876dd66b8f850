package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"trainwatch/pkg/config"
	"trainwatch/pkg/metrics"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	Delivery bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [metrics-file]",
		Short: "Validate a metrics pattern file",
		Long: `Validate a metrics pattern file without watching anything.

Checks:
  - YAML syntax (flat mapping of metric name to pattern)
  - Regex pattern validity
  - Capture group presence
  - Series name collisions with the default metrics (warning only)

With --delivery, also checks that delivery credentials are present in the
environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Delivery, "delivery", false, "Also check delivery configuration from the environment")

	return cmd
}

func runValidate(args []string, opts *ValidateOptions) error {
	registry := metrics.NewDefaultRegistry()

	if len(args) == 1 {
		path := args[0]
		fmt.Printf("Validating %s...\n", path)

		patterns, err := config.LoadPatterns(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		for _, mp := range patterns {
			p, err := metrics.NewStandardParser(mp.Name, mp.Pattern)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			registry.Register(p)
		}

		fmt.Printf("\nPattern file valid!\n")
		fmt.Printf("  Extra metrics: %d\n", len(patterns))
		for i, mp := range patterns {
			fmt.Printf("  %d. %s: %s\n", i+1, mp.Name, mp.Pattern)
		}
	}

	// Colliding names silently shadow earlier series when reports are
	// built, so surface them here.
	if collisions := registry.Collisions(); len(collisions) > 0 {
		fmt.Printf("\nWarning: duplicate series names (last registration wins on merge):\n")
		for _, name := range collisions {
			fmt.Printf("  - %s\n", name)
		}
	}

	if opts.Delivery {
		var smtp config.SMTPConfig
		smtp.ApplyEnvironment()
		if smtp.Host == "" {
			smtp.Host = config.DefaultSMTPHost
		}
		if smtp.Port == 0 {
			smtp.Port = config.DefaultSMTPPort
		}

		if err := smtp.Validate(); err != nil {
			return fmt.Errorf("delivery config: %w", err)
		}
		fmt.Printf("\nDelivery config valid (%s:%d, %s -> %s)\n",
			smtp.Host, smtp.Port, smtp.Sender, smtp.Recipient)
	}

	return nil
}
