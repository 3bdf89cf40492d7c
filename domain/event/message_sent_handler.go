package event

import (
	"chat-relay/errors"
	"log/slog"
)

// MessageSentHandler counts the messages routed by the hub.
type MessageSentHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewMessageSentHandler(log *slog.Logger, counter *Counter) *MessageSentHandler {
	return &MessageSentHandler{log: log, counter: counter}
}

func (p *MessageSentHandler) Handle(event Technical) {
	switch event.Type {
	case MessageSentType:
		if _, ok := event.Payload.(MessageSent); !ok {
			p.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		p.counter.Increment(MessageSentType)
	}
}
