package mail

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

var (
	_ contract.Mailer = (*SMTPMailer)(nil)
	_ contract.Mailer = (*LogMailer)(nil)
)

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPMailer sends plain text mails through a relay.
// The whole SMTP conversation is bound to the deadline of the context.
type SMTPMailer struct {
	settings SMTPSettings
	send     func(ctx context.Context, client *gomail.Client, msg *gomail.Msg) error
	log      *slog.Logger
}

func NewSMTPMailer(settings SMTPSettings, log *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		settings: settings,
		send: func(ctx context.Context, client *gomail.Client, msg *gomail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
		log: log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, mail chat.Mail) error {
	msg, err := compose(m.settings.From, mail)
	if err != nil {
		return fmt.Errorf("compose mail to %s: %w", mail.To, err)
	}
	client, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err = m.send(ctx, client, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", mail.To, err)
	}
	m.log.Debug("Mail sent", "to", mail.To, "subject", mail.Subject)
	return nil
}

func (m *SMTPMailer) client() (*gomail.Client, error) {
	// The port comes after the policy, otherwise the policy picks its own
	options := []gomail.Option{
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithPort(m.settings.Port),
		gomail.WithDialContextFunc(dialWithDeadline),
	}
	if m.settings.Timeout > 0 {
		options = append(options, gomail.WithTimeout(m.settings.Timeout))
	}
	if m.settings.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.settings.Username),
			gomail.WithPassword(m.settings.Password))
	}
	return gomail.NewClient(m.settings.Host, options...)
}

// dialWithDeadline carries the dial deadline over to the connection so a relay
// that stops answering mid conversation cannot hold the sender.
func dialWithDeadline(ctx context.Context, network, address string) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err = conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

func compose(from string, mail chat.Mail) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(mail.To); err != nil {
		return nil, err
	}
	msg.Subject(sanitizeHeader(mail.Subject))
	msg.SetBodyString(gomail.TypeTextPlain, mail.Body)
	return msg, nil
}

func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}

// LogMailer only logs, used when no relay is configured.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, mail chat.Mail) error {
	m.log.Info("Mail not sent, no relay configured", "to", mail.To, "subject", mail.Subject)
	return nil
}

// New picks the SMTP relay when a host is configured.
func New(settings SMTPSettings, log *slog.Logger) contract.Mailer {
	if settings.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(settings, log)
}
