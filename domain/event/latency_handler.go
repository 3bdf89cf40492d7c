package event

import (
	"log/slog"
	"time"
)

// LatencyHandler measures the time between a message timestamp and its telemetry processing.
type LatencyHandler struct {
	log              *slog.Logger
	latencyThreshold time.Duration
}

func NewLatencyHandler(log *slog.Logger, latencyThreshold time.Duration) *LatencyHandler {
	return &LatencyHandler{log: log, latencyThreshold: latencyThreshold}
}

func (h *LatencyHandler) Handle(e Technical) {
	if payload, ok := e.Payload.(MessageSent); ok {
		leadTime := time.Since(payload.At)

		h.log.Debug("telemetry: processing latency",
			"channel", payload.Channel,
			"lead_time_ms", leadTime.Milliseconds(),
		)

		if h.latencyThreshold > 0 && leadTime > h.latencyThreshold {
			h.log.Warn("high latency detected", "lead_time", leadTime)
		}
	}
}
