package web

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"log/slog"
	"net/http"
	"os"

	"github.com/shirou/gopsutil/process"
)

// Roster exposes who is currently connected.
type Roster interface {
	Snapshot() []chat.Presence
}

type healthView struct {
	Status    string                `json:"status"`
	PID       int                   `json:"pid"`
	RSS       uint64                `json:"rss"`
	CPU       float64               `json:"cpu"`
	Online    int                   `json:"online"`
	Telemetry map[event.Type]uint64 `json:"telemetry,omitempty"`
}

type HealthHandler struct {
	roster  Roster
	counter *event.Counter
	process *process.Process
	log     *slog.Logger
}

// NewHealthHandler accepts a nil counter when telemetry is off.
func NewHealthHandler(roster Roster, counter *event.Counter, log *slog.Logger) *HealthHandler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process stats unavailable", "error", err)
	}
	return &HealthHandler{roster: roster, counter: counter, process: p, log: log}
}

// ServeHTTP reports liveness with the memory and CPU of the relay itself.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	view := healthView{Status: "ok", PID: os.Getpid(), Online: len(h.roster.Snapshot())}
	if h.process != nil {
		if mem, err := h.process.MemoryInfo(); err == nil {
			view.RSS = mem.RSS
		}
		if cpu, err := h.process.CPUPercent(); err == nil {
			view.CPU = cpu
		}
	}
	if h.counter != nil {
		view.Telemetry = h.counter.Snapshot()
	}
	writeJSON(w, http.StatusOK, view)
}
