// Package config provides configuration loading and validation for TrainWatch.
package config

import (
	"regexp"
	"time"
)

// Config is the full configuration for a watch run.
type Config struct {
	// LogFile is the training log to poll.
	LogFile string

	// CheckInterval is how long to sleep between polls.
	CheckInterval time.Duration

	// ReportInterval is the minimum time between emailed reports.
	ReportInterval time.Duration

	// PlotDir is where PNG plots are written.
	PlotDir string

	// MetricsFile is an optional yaml file of extra metric patterns.
	MetricsFile string

	// SMTP is the delivery configuration.
	SMTP SMTPConfig
}

// SMTPConfig holds delivery settings. Sender, Password and Recipient fall
// back to environment variables when not set explicitly.
type SMTPConfig struct {
	Host      string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

// MetricPattern is one entry from a metrics pattern file: a metric name
// mapped to a regex with a capture group for the value. Entries preserve
// file order because parser registration order determines dispatch order.
type MetricPattern struct {
	Name    string
	Pattern string

	// compiled is populated during validation.
	compiled *regexp.Regexp
}

// Compiled returns the pre-compiled pattern, or nil before validation.
func (m *MetricPattern) Compiled() *regexp.Regexp {
	return m.compiled
}
