package event

import "time"

type Type string

const (
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
	CensorshipHitType       Type = "CENSORSHIP_HIT"
	MessageSentType         Type = "MESSAGE_SENT"
)

// Technical is an internal measurement. It never reaches a participant.
type Technical struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

func NewTechnical(t Type, payload any) Technical {
	return Technical{Type: t, CreatedAt: time.Now().UTC(), Payload: payload}
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

type Censored struct {
	Author string
	Words  []string
	Lang   string
}

// MessageSent is emitted once a message is stored and fanned out.
type MessageSent struct {
	Channel string
	At      time.Time
}
