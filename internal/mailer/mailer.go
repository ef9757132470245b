// Package mailer sends alert emails through a transactional provider or SMTP.
package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"produtos-alert/internal/config"
)

// Message is one HTML email to a single recipient.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message and returns the provider's message id, if any.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// New builds the Sender selected by cfg.Driver.
func New(cfg config.EmailConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Driver {
	case "", "resend":
		return NewResend(cfg.APIKey, logger), nil
	case "smtp":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.APIKey, logger), nil
	default:
		return nil, fmt.Errorf("unknown email driver %q", cfg.Driver)
	}
}
