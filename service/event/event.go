package event

import (
	"time"

	"github.com/viant/rrsched/internal/clock"
)

// Kind identifies a scheduler transition
type Kind string

const (
	KindLoaded     Kind = "loaded"
	KindSkipped    Kind = "skipped"
	KindDispatched Kind = "dispatched"
	KindPreempted  Kind = "preempted"
	KindBlocked    Kind = "blocked"
	KindUnblocked  Kind = "unblocked"
	KindFinished   Kind = "finished"
)

// Event describes a single scheduler transition
type Event struct {
	RunID     string `json:"runId,omitempty"`
	Seq       int    `json:"seq"`
	Iteration int    `json:"iteration"`
	Kind      Kind   `json:"kind"`
	ProcessID int    `json:"processId"`
	Process   string `json:"process,omitempty"`
	// Instructions is the number of instructions run in the turn that ended
	// with this event.
	Instructions int       `json:"instructions,omitempty"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewEvent creates an event of the given kind
func NewEvent(kind Kind, processID int, process string) *Event {
	return &Event{
		Kind:      kind,
		ProcessID: processID,
		Process:   process,
		CreatedAt: clock.Now(),
	}
}
