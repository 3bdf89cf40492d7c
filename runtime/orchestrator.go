// Package runtime holds the realtime messaging core: presence, routing,
// retention and the workers that drive them.
package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain/event"
	"chat-relay/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Orchestrator funnels realtime commands into a single hub worker and runs
// the mail workers, all under the supervisor.
type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	hub        *Hub
	supervisor contract.ISupervisor
	mailbox    *Mailbox
	mailer     contract.Mailer
	commands   chan Command
	settings   Settings
	telemetry  *workers.Telemetry
	handlers   []event.Handler
	started    bool
}

// Settings tunes the queues and workers of the orchestrator.
type Settings struct {
	BufferSize           int
	MailWorkers          int
	MailTimeout          time.Duration
	MetricInterval       time.Duration
	LowCapacityThreshold int
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, hub *Hub,
	mailbox *Mailbox, mailer contract.Mailer, settings Settings) *Orchestrator {
	return &Orchestrator{
		log:        log,
		hub:        hub,
		supervisor: supervisor,
		mailbox:    mailbox,
		mailer:     mailer,
		commands:   make(chan Command, settings.BufferSize),
		settings:   settings,
	}
}

// Dispatch queues a command for the hub. It waits for room in the queue
// rather than dropping, so a connection never loses its own commands.
func (o *Orchestrator) Dispatch(ctx context.Context, cmd Command) error {
	select {
	case o.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WithTelemetry runs a telemetry worker feeding handlers. Call before Start.
func (o *Orchestrator) WithTelemetry(telemetry *workers.Telemetry, handlers ...event.Handler) *Orchestrator {
	o.telemetry = telemetry
	o.handlers = handlers
	return o
}

func (o *Orchestrator) Hub() *Hub {
	return o.hub
}

// Start registers every worker to the supervisor and blocks until the supervisor stops.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator already started")
	}
	o.started = true

	o.supervisor.Add(workers.NewCommandWorker(o.commands, o.hub.Handle, o.log))
	for i := 0; i < o.settings.MailWorkers; i++ {
		o.supervisor.Add(workers.NewMailWorker(o.mailer, o.mailbox.Mails(), o.settings.MailTimeout, o.log))
	}
	channels := []workers.NamedChannel{
		{Name: "commands", Channel: o.commands},
		{Name: "mails", Channel: o.mailbox.mails},
	}
	if o.telemetry != nil {
		o.supervisor.Add(workers.NewTelemetryWorker(o.log, o.telemetry, o.handlers))
		channels = append(channels, workers.NamedChannel{Name: "telemetry", Channel: o.telemetry.Channel()})
	}
	if o.settings.MetricInterval > 0 {
		o.supervisor.Add(workers.NewChannelCapacityWorker(o.log, channels,
			o.settings.MetricInterval, o.settings.LowCapacityThreshold, o.telemetry))
	}
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers", "mail_workers", o.settings.MailWorkers)
	o.supervisor.Run(ctx)
	return nil
}

// Stop cancels the supervised context. Queued commands are abandoned.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
