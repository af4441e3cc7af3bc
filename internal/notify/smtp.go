package notify

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// SMTPSettings carries the transport configuration for the mail notifier.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPNotifier sends the digest as a plain-text email. STARTTLS is required
// on submission ports; port 465 switches to implicit TLS.
type SMTPNotifier struct {
	settings SMTPSettings
}

func NewSMTPNotifier(settings SMTPSettings) *SMTPNotifier {
	return &SMTPNotifier{settings: settings}
}

func (n *SMTPNotifier) Notify(ctx context.Context, msg Message) error {
	s := n.settings

	m := mail.NewMsg()
	if err := m.From(s.From); err != nil {
		return fmt.Errorf("invalid from address %q: %w", s.From, err)
	}
	if err := m.ToFromString(s.To); err != nil {
		return fmt.Errorf("invalid to address(es) %q: %w", s.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
		mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
	}
	if s.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
