package notify

import (
	"context"
	"testing"

	"github.com/lotwatch-hq/lotwatch/internal/config"
	"github.com/lotwatch-hq/lotwatch/internal/logger"
)

// recordingLogger captures warn entries so tests can assert the degraded
// notifier surfaced the message.
type recordingLogger struct {
	logger.NopLogger
	warns []string
}

func (l *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	l.warns = append(l.warns, msg)
}

func TestNewFromConfigDegradesWithoutCredentials(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
	}{
		{name: "nothing set", cfg: config.Config{}},
		{name: "missing password", cfg: config.Config{SMTPUser: "u@example.com", EmailTo: "me@example.com"}},
		{name: "missing recipient", cfg: config.Config{SMTPUser: "u@example.com", SMTPPass: "secret"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := &recordingLogger{}
			n := NewFromConfig(&tc.cfg, log)
			if _, ok := n.(*ConsoleNotifier); !ok {
				t.Fatalf("expected console notifier, got %T", n)
			}
			if len(log.warns) == 0 {
				t.Fatalf("degraded configuration must be logged")
			}
		})
	}
}

func TestNewFromConfigPicksSMTPWhenConfigured(t *testing.T) {
	cfg := config.Config{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		SMTPUser:   "u@example.com",
		SMTPPass:   "secret",
		EmailTo:    "me@example.com",
		EmailFrom:  "u@example.com",
	}

	n := NewFromConfig(&cfg, nil)
	if _, ok := n.(*SMTPNotifier); !ok {
		t.Fatalf("expected smtp notifier, got %T", n)
	}
}

func TestConsoleNotifierSurfacesMessageAndNeverFails(t *testing.T) {
	log := &recordingLogger{}
	n := NewConsoleNotifier(log)

	err := n.Notify(context.Background(), Message{Subject: "Model Y Available", Body: "VIN 5YJ..."})
	if err != nil {
		t.Fatalf("console notifier must not fail: %v", err)
	}
	if len(log.warns) != 1 {
		t.Fatalf("expected one surfaced message, got %d", len(log.warns))
	}
}

func TestSMTPNotifierRejectsInvalidAddresses(t *testing.T) {
	n := NewSMTPNotifier(SMTPSettings{
		Host: "smtp.example.com",
		Port: 587,
		From: "not an address",
		To:   "me@example.com",
	})

	if err := n.Notify(context.Background(), Message{Subject: "s", Body: "b"}); err == nil {
		t.Fatalf("expected error for invalid from address")
	}
}
