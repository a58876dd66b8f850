// Package mailer delivers rendered reports over SMTP.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"trainwatch/pkg/config"
)

// DefaultTimeout bounds one delivery attempt (dial plus send). A hung
// SMTP server must not stall the watch loop indefinitely.
const DefaultTimeout = 30 * time.Second

// Client sends reports through an SMTP server using STARTTLS and plain
// auth. It implements watcher.Sender.
type Client struct {
	cfg     config.SMTPConfig
	timeout time.Duration
}

// NewClient creates a mail client from validated delivery config.
func NewClient(cfg config.SMTPConfig) *Client {
	return &Client{
		cfg:     cfg,
		timeout: DefaultTimeout,
	}
}

// Send delivers one report. The HTML body becomes the message body and
// each attachment path is embedded inline, addressable from the body by
// its filename as Content-ID.
func (c *Client) Send(ctx context.Context, subject, htmlBody string, attachments []string) error {
	msg := mail.NewMsg()
	if err := msg.From(c.cfg.Sender); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", c.cfg.Sender, err)
	}
	if err := msg.To(c.cfg.Recipient); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", c.cfg.Recipient, err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	for _, path := range attachments {
		if err := msg.EmbedFile(path); err != nil {
			return fmt.Errorf("embedding %s: %w", path, err)
		}
	}

	client, err := mail.NewClient(c.cfg.Host,
		mail.WithPort(c.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.Sender),
		mail.WithPassword(c.cfg.Password),
		mail.WithTimeout(c.timeout),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("delivering report: %w", err)
	}
	return nil
}
