package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadPatterns reads a metrics pattern file: a flat yaml mapping of metric
// name to a regex with a capture group for the value. Entries are returned
// in document order and are compiled and validated before return.
func LoadPatterns(path string) ([]MetricPattern, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading metrics file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing metrics file: %w", err)
	}

	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("metrics file must be a mapping of metric name to pattern")
	}

	// Mapping node content alternates key, value.
	patterns := make([]MetricPattern, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		value := root.Content[i+1]

		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("metric %q: pattern must be a string", key.Value)
		}

		mp := MetricPattern{Name: key.Value, Pattern: value.Value}
		if err := validatePattern(&mp); err != nil {
			return nil, fmt.Errorf("metric %q: %w", key.Value, err)
		}
		patterns = append(patterns, mp)
	}

	return patterns, nil
}

func validatePattern(mp *MetricPattern) error {
	if mp.Name == "" {
		return errors.New("name is required")
	}

	re, err := regexp.Compile(mp.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.NumSubexp() < 1 {
		return errors.New("pattern must have at least one capture group for the value")
	}

	mp.compiled = re
	return nil
}

// ApplyEnvironment fills empty delivery fields from the environment.
// Explicitly supplied values take precedence.
func (s *SMTPConfig) ApplyEnvironment() {
	if s.Sender == "" {
		s.Sender = os.Getenv(EnvSender)
	}
	if s.Password == "" {
		s.Password = os.Getenv(EnvPassword)
	}
	if s.Recipient == "" {
		s.Recipient = os.Getenv(EnvRecipient)
	}
	if s.Host == "" {
		s.Host = os.Getenv(EnvSMTPHost)
	}
	if port := os.Getenv(EnvSMTPPort); port != "" && s.Port == 0 {
		if n, err := strconv.Atoi(port); err == nil {
			s.Port = n
		}
	}
}

// Validate checks that delivery configuration is complete. Errors name the
// missing field and the environment variable that can supply it.
func (s *SMTPConfig) Validate() error {
	if s.Sender == "" {
		return fmt.Errorf("sender address is required (set %s)", EnvSender)
	}
	if s.Password == "" {
		return fmt.Errorf("sender password is required (set %s)", EnvPassword)
	}
	if s.Recipient == "" {
		return fmt.Errorf("recipient address is required (set %s)", EnvRecipient)
	}
	if s.Host == "" {
		return errors.New("smtp host is required")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid smtp port %d", s.Port)
	}
	return nil
}

// Validate checks the full watch configuration.
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return errors.New("log file path is required")
	}
	if c.CheckInterval <= 0 {
		return errors.New("check interval must be positive")
	}
	if c.ReportInterval <= 0 {
		return errors.New("report interval must be positive")
	}
	if c.PlotDir == "" {
		return errors.New("plot directory is required")
	}
	if err := c.SMTP.Validate(); err != nil {
		return fmt.Errorf("delivery config: %w", err)
	}
	return nil
}
