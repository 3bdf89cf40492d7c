package workers

import (
	"chat-relay/domain/event"
	"context"
	"log/slog"
)

// Telemetry carries technical events to the TelemetryWorker.
// Emit never blocks the caller, a full queue drops the event.
type Telemetry struct {
	events chan event.Technical
}

func NewTelemetry(size int) *Telemetry {
	return &Telemetry{events: make(chan event.Technical, size)}
}

// Emit is a no-op on a nil Telemetry.
func (t *Telemetry) Emit(evt event.Technical) bool {
	if t == nil {
		return false
	}
	select {
	case t.events <- evt:
		return true
	default:
		return false
	}
}

func (t *Telemetry) Channel() chan event.Technical {
	return t.events
}

type TelemetryWorker struct {
	log       *slog.Logger
	telemetry *Telemetry
	handlers  []event.Handler
}

func NewTelemetryWorker(log *slog.Logger, telemetry *Telemetry, handlers []event.Handler) *TelemetryWorker {
	return &TelemetryWorker{
		log:       log,
		telemetry: telemetry,
		handlers:  handlers,
	}
}

func (w TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry")
			return nil
		case evt := <-w.telemetry.events:
			w.handle(evt)
		}
	}
}

func (w TelemetryWorker) handle(evt event.Technical) {
	for _, h := range w.handlers {
		h.Handle(evt)
	}
}
