package config

import "time"

// Default values for configuration.
const (
	DefaultCheckInterval  = 30 * time.Second
	DefaultReportInterval = 30 * time.Second
	DefaultPlotDir        = "training_plots"
	DefaultSMTPHost       = "smtp.gmail.com"
	DefaultSMTPPort       = 587
)

// Environment variable names for delivery credentials.
const (
	EnvSender    = "EMAIL_SENDER"
	EnvPassword  = "EMAIL_PASSWORD"
	EnvRecipient = "EMAIL_RECIPIENT"
	EnvSMTPHost  = "SMTP_SERVER"
	EnvSMTPPort  = "SMTP_PORT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CheckInterval:  DefaultCheckInterval,
		ReportInterval: DefaultReportInterval,
		PlotDir:        DefaultPlotDir,
		SMTP: SMTPConfig{
			Host: DefaultSMTPHost,
			Port: DefaultSMTPPort,
		},
	}
}
