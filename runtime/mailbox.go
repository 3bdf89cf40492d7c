package runtime

import (
	"chat-relay/domain/chat"
	"log/slog"
)

// Mailbox is the bounded in-memory queue between the notifier and the mail workers.
// Nothing survives a restart.
type Mailbox struct {
	mails chan chat.Mail
	log   *slog.Logger
}

func NewMailbox(size int, log *slog.Logger) *Mailbox {
	return &Mailbox{mails: make(chan chat.Mail, size), log: log}
}

// Enqueue never blocks: a full queue drops the mail.
func (m *Mailbox) Enqueue(mail chat.Mail) bool {
	select {
	case m.mails <- mail:
		return true
	default:
		m.log.Debug("Mailbox full", "capacity", cap(m.mails))
		return false
	}
}

func (m *Mailbox) Mails() <-chan chat.Mail {
	return m.mails
}

func (m *Mailbox) Len() int {
	return len(m.mails)
}
