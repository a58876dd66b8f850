package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trainwatch/pkg/config"
	"trainwatch/pkg/logging"
	"trainwatch/pkg/mailer"
	"trainwatch/pkg/metrics"
	"trainwatch/pkg/watcher"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	CheckInterval  int
	ReportInterval int
	PlotDir        string
	MetricsFile    string
	LogLevel       string

	// Delivery overrides; anything left empty falls back to the
	// environment.
	SMTPHost  string
	SMTPPort  int
	Sender    string
	Recipient string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <log-file>",
		Short: "Watch a training log and email progress reports",
		Long: `Poll a training log for new lines, extract metrics, and email an HTML
progress report with plots on the configured interval.

Delivery credentials come from flags or the environment:
  EMAIL_SENDER     sender address
  EMAIL_PASSWORD   sender password (environment only)
  EMAIL_RECIPIENT  recipient address
  SMTP_SERVER      smtp host (default smtp.gmail.com)
  SMTP_PORT        smtp port (default 587)

Exit codes:
  0 - Clean shutdown on interrupt
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.CheckInterval, "check-interval", 30, "Seconds between log checks")
	cmd.Flags().IntVar(&opts.ReportInterval, "report-interval", 30, "Seconds between progress reports")
	cmd.Flags().StringVar(&opts.PlotDir, "plot-dir", config.DefaultPlotDir, "Directory for training plots")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics", "", "Yaml file of extra metric patterns (name: regex)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	cmd.Flags().StringVar(&opts.SMTPHost, "smtp-host", "", "SMTP host (overrides SMTP_SERVER)")
	cmd.Flags().IntVar(&opts.SMTPPort, "smtp-port", 0, "SMTP port (overrides SMTP_PORT)")
	cmd.Flags().StringVar(&opts.Sender, "sender", "", "Sender address (overrides EMAIL_SENDER)")
	cmd.Flags().StringVar(&opts.Recipient, "recipient", "", "Recipient address (overrides EMAIL_RECIPIENT)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	cfg, err := buildConfig(args[0], opts)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg.MetricsFile)
	if err != nil {
		return err
	}

	log, err := logging.New(opts.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(cfg, registry, mailer.NewClient(cfg.SMTP), log)
	return w.Run(ctx)
}

// buildConfig assembles and validates the watch configuration from
// arguments, flags and the environment. Missing delivery credentials are
// a fatal configuration error.
func buildConfig(logFile string, opts *WatchOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.LogFile = logFile
	cfg.CheckInterval = time.Duration(opts.CheckInterval) * time.Second
	cfg.ReportInterval = time.Duration(opts.ReportInterval) * time.Second
	cfg.PlotDir = opts.PlotDir
	cfg.MetricsFile = opts.MetricsFile

	// Flags win over the environment; the environment fills what the
	// flags left empty; defaults cover the rest.
	cfg.SMTP = config.SMTPConfig{
		Host:      opts.SMTPHost,
		Port:      opts.SMTPPort,
		Sender:    opts.Sender,
		Recipient: opts.Recipient,
	}
	cfg.SMTP.ApplyEnvironment()
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = config.DefaultSMTPHost
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = config.DefaultSMTPPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRegistry creates the default parser set and appends one standard
// parser per entry in the metrics pattern file, in file order.
func buildRegistry(metricsFile string) (*metrics.Registry, error) {
	registry := metrics.NewDefaultRegistry()
	if metricsFile == "" {
		return registry, nil
	}

	patterns, err := config.LoadPatterns(metricsFile)
	if err != nil {
		return nil, err
	}

	for _, mp := range patterns {
		p, err := metrics.NewStandardParser(mp.Name, mp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", mp.Name, err)
		}
		registry.Register(p)
	}
	return registry, nil
}
