package workers

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"context"
	"log/slog"
	"time"
)

var _ contract.Worker = (*MailWorker)(nil)

// MailWorker drains the mail queue. A send failure is logged and the mail is lost.
type MailWorker struct {
	mailer  contract.Mailer
	mails   <-chan chat.Mail
	timeout time.Duration
	log     *slog.Logger
}

func NewMailWorker(mailer contract.Mailer, mails <-chan chat.Mail, timeout time.Duration, log *slog.Logger) *MailWorker {
	return &MailWorker{mailer: mailer, mails: mails, timeout: timeout, log: log}
}

func (w *MailWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case mail, ok := <-w.mails:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.send(ctx, mail)
		}
	}
}

func (w *MailWorker) send(ctx context.Context, mail chat.Mail) {
	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.mailer.Send(sendCtx, mail); err != nil {
		w.log.Warn("Unable to send email", "to", mail.To, "subject", mail.Subject, "error", err)
		return
	}
	w.log.Debug("Email sent", "to", mail.To, "latency_ms", time.Since(start).Milliseconds())
}
