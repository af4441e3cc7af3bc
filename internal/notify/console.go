package notify

import (
	"context"

	"github.com/lotwatch-hq/lotwatch/internal/logger"
)

// ConsoleNotifier surfaces the would-be email through the structured log.
// It is the degraded delivery path when no SMTP credentials are configured.
type ConsoleNotifier struct {
	log logger.Logger
}

func NewConsoleNotifier(log logger.Logger) *ConsoleNotifier {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &ConsoleNotifier{log: log}
}

func (n *ConsoleNotifier) Notify(_ context.Context, msg Message) error {
	n.log.WarnObj("email not configured; message would be", "notification", map[string]any{
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	return nil
}
