package sink

import (
	"chat-relay/contract"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ contract.Connection = (*ConnectionSink)(nil)

// ConnectionSink buffers the events of one live connection.
// The transport drains Events and stops when Done is closed.
// A consumer that stays full longer than the delivery timeout is closed.
type ConnectionSink struct {
	ID       uuid.UUID
	Identity string
	events   chan event.DomainEvent
	done     chan struct{}
	once     sync.Once
	timeout  time.Duration
	log      *slog.Logger
}

func NewConnectionSink(identity string, bufferSize int, timeout time.Duration, log *slog.Logger) *ConnectionSink {
	return &ConnectionSink{
		ID:       uuid.New(),
		Identity: identity,
		events:   make(chan event.DomainEvent, bufferSize),
		done:     make(chan struct{}),
		timeout:  timeout,
		log:      log,
	}
}

// Consume is called by the hub
// Redirect the event through the owner of the connection, the transport takes it from there
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.done:
		return errors.ErrConnectionClosed
	default:
	}

	select {
	case s.events <- e:
		return nil
	default:
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case s.events <- e:
		return nil
	case <-s.done:
		return errors.ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		s.log.Warn("Slow connection closed", "identity", s.Identity, "connection_id", s.ID, "event", e.EventName())
		s.Close()
		return errors.ErrDeliveryTimeout
	}
}

func (s *ConnectionSink) Events() <-chan event.DomainEvent {
	return s.events
}

func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}

// Close is idempotent. Buffered events are dropped by the transport.
func (s *ConnectionSink) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}
