package workers

import (
	"context"
	"log/slog"
)

// CommandWorker is the single consumer of a command queue. Commands are
// handled one at a time in arrival order.
type CommandWorker[C any] struct {
	commands <-chan C
	handle   func(ctx context.Context, cmd C) error
	log      *slog.Logger
}

func NewCommandWorker[C any](commands <-chan C, handle func(ctx context.Context, cmd C) error,
	log *slog.Logger) *CommandWorker[C] {
	return &CommandWorker[C]{commands: commands, handle: handle, log: log}
}

// Run returns nil when the queue is closed. A failing command is logged and
// the worker keeps going.
func (w *CommandWorker[C]) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case cmd, ok := <-w.commands:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			if err := w.handle(ctx, cmd); err != nil {
				w.log.Error("Command failed", "command", cmd, "error", err)
			}
		}
	}
}
