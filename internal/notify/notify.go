package notify

import (
	"context"

	"github.com/lotwatch-hq/lotwatch/internal/config"
	"github.com/lotwatch-hq/lotwatch/internal/logger"
)

// Package notify delivers the new-listings digest. Delivery problems are the
// caller's to log, never to fail the run on: the orchestrator persists the
// seen set regardless of notification outcome.

// Message is one human-readable notification.
type Message struct {
	Subject string
	Body    string
}

// Notifier attempts delivery of a message.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// NewFromConfig picks the SMTP notifier when credentials and a recipient are
// configured, and degrades to the console notifier otherwise. Degraded is a
// valid configuration, not an error.
func NewFromConfig(cfg *config.Config, log logger.Logger) Notifier {
	if log == nil {
		log = &logger.NopLogger{}
	}

	if !cfg.NotifierConfigured() {
		log.WarnObj("smtp credentials not set; notifications degrade to log output", "notifier_config", map[string]any{
			"smtp_user_set": cfg.SMTPUser != "",
			"smtp_pass_set": cfg.SMTPPass != "",
			"email_to_set":  cfg.EmailTo != "",
		})
		return NewConsoleNotifier(log)
	}

	return NewSMTPNotifier(SMTPSettings{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
		To:       cfg.EmailTo,
	})
}
