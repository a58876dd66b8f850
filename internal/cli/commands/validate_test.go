package commands

import (
	"os"
	"path/filepath"
	"testing"

	"trainwatch/pkg/config"
)

func writeMetricsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateCommand_ValidFile(t *testing.T) {
	path := writeMetricsFile(t, "Grad_Norm: 'grad_norm[:\\s]+([\\d.]+)'\n")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Errorf("Execute() error = %v for valid file", err)
	}
}

func TestValidateCommand_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid regex", "Broken: 'loss[:\\s]+(['\n"},
		{"no capture group", "Loss: 'loss seen'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMetricsFile(t, tt.content)

			cmd := NewValidateCommand()
			cmd.SetArgs([]string{path})
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			if err := cmd.Execute(); err == nil {
				t.Error("Execute() error = nil for invalid file")
			}
		})
	}
}

func TestValidateCommand_DeliveryCheck(t *testing.T) {
	t.Setenv(config.EnvSender, "sender@example.com")
	t.Setenv(config.EnvPassword, "secret")
	t.Setenv(config.EnvRecipient, "recipient@example.com")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"--delivery"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("Execute() error = %v with complete delivery env", err)
	}
}

func TestValidateCommand_DeliveryCheckMissingEnv(t *testing.T) {
	t.Setenv(config.EnvSender, "")
	t.Setenv(config.EnvPassword, "")
	t.Setenv(config.EnvRecipient, "")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"--delivery"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil with missing delivery env")
	}
}
