package sink

import (
	"chat-relay/domain/event"
	"chat-relay/errors"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestConnectionSink_Buffers_In_Order(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	sink := NewConnectionSink("alice", 2, 10*time.Millisecond, log)

	req.NoError(sink.Consume(context.Background(), event.ChatLockStateChanged{Locked: true}))
	req.NoError(sink.Consume(context.Background(), event.ChatLockStateChanged{Locked: false}))

	req.Equal(event.ChatLockStateChanged{Locked: true}, <-sink.Events())
	req.Equal(event.ChatLockStateChanged{Locked: false}, <-sink.Events())
}

func TestConnectionSink_Slow_Consumer_Is_Closed(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	sink := NewConnectionSink("alice", 1, 10*time.Millisecond, log)

	// Given a full buffer nobody drains
	req.NoError(sink.Consume(context.Background(), event.SessionReplaced{}))

	// When another event arrives
	err := sink.Consume(context.Background(), event.SessionReplaced{})

	// Then the delivery times out and the connection is closed
	req.ErrorIs(err, errors.ErrDeliveryTimeout)
	select {
	case <-sink.Done():
	default:
		req.Fail("sink should be closed")
	}
	req.ErrorIs(sink.Consume(context.Background(), event.SessionReplaced{}), errors.ErrConnectionClosed)
}

func TestConnectionSink_Close_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	sink := NewConnectionSink("alice", 1, time.Second, logs.GetLoggerFromLevel(slog.LevelError))

	sink.Close()
	sink.Close()

	req.ErrorIs(sink.Consume(context.Background(), event.SessionReplaced{}), errors.ErrConnectionClosed)
}
