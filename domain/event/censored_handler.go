package event

import (
	"chat-relay/errors"
	"log/slog"
	"sync"
)

// CensoredHandler tracks how often each blacklisted word is hit.
type CensoredHandler struct {
	mu      sync.Mutex
	log     *slog.Logger
	counter *Counter
	hit     map[string]uint64
}

func NewCensoredHandler(log *slog.Logger, counter *Counter) *CensoredHandler {
	return &CensoredHandler{
		log:     log,
		counter: counter,
		hit:     make(map[string]uint64),
	}
}

func (h *CensoredHandler) Handle(event Technical) {
	switch event.Type {
	case CensorshipHitType:
		payload, ok := event.Payload.(Censored)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.counter.Increment(CensorshipHitType)

		h.mu.Lock()
		defer h.mu.Unlock()
		for _, word := range payload.Words {
			h.hit[word]++
		}
		h.log.Info("Message censored", "author", payload.Author, "words", len(payload.Words), "lang", payload.Lang)
	}
}

func (h *CensoredHandler) Hits(word string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hit[word]
}
