package mailer

import (
	"context"
	"testing"

	"trainwatch/pkg/config"
)

// Address validation happens before any network dialing, so malformed
// addresses fail fast.
func TestClient_Send_InvalidAddresses(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SMTPConfig
	}{
		{
			name: "bad sender",
			cfg: config.SMTPConfig{
				Host: "smtp.example.com", Port: 587,
				Sender: "not-an-address", Recipient: "ok@example.com",
			},
		},
		{
			name: "bad recipient",
			cfg: config.SMTPConfig{
				Host: "smtp.example.com", Port: 587,
				Sender: "ok@example.com", Recipient: "not-an-address",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.cfg)
			err := c.Send(context.Background(), "subject", "<html></html>", nil)
			if err == nil {
				t.Fatal("Send() error = nil, want address validation error")
			}
		})
	}
}
