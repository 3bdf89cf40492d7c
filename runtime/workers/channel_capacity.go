package workers

import (
	"chat-relay/domain/event"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacityWorker periodically samples the length and capacity of internal channels
// and reports them as technical events. The thresholds are applied here and by the handler.
// Reading len(channel) and cap(channel) is non-blocking, so this won't interfere
// with other goroutines.
type ChannelCapacityWorker struct {
	log                  *slog.Logger
	channels             []NamedChannel
	metricInterval       time.Duration
	lowCapacityThreshold int
	telemetry            *Telemetry
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	metricInterval time.Duration, lowCapacityThreshold int, telemetry *Telemetry) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:                  log,
		channels:             channels,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
		telemetry:            telemetry,
	}
}

func (w ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample reports the usage of every channel and returns the names of those running low.
func (w ChannelCapacityWorker) Sample() []string {
	var low []string
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		capacity, length := v.Cap(), v.Len()
		reported := w.telemetry.Emit(event.NewTechnical(event.ChannelCapacityType, event.ChannelCapacity{
			ChannelName: nc.Name,
			Capacity:    capacity,
			Length:      length,
		}))
		if !reported {
			w.log.Debug(fmt.Sprintf("Channel %s usage: %d / %d", nc.Name, length, capacity))
		}
		if capacity <= 0 {
			// Unbuffered channel
			continue
		}
		if left := capacity - length; left <= w.lowCapacityThreshold {
			if !reported {
				w.log.Warn("Channel capacity running low", "name", nc.Name, "left", left)
			}
			low = append(low, nc.Name)
		}
	}
	return low
}
