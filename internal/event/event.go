// Package event describes one handled update and fans it out to observers.
package event

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        string    `json:"id"`
	UpdateID  int       `json:"update_id"`
	ChatID    int64     `json:"chat_id"`
	Trigger   string    `json:"trigger"`
	Action    string    `json:"action"`
	Error     string    `json:"error,omitempty"`
	HandledAt time.Time `json:"handled_at"`
}

// New stamps an event with a fresh id and the current time.
func New(updateID int, chatID int64, trigger, action string, err error) Event {
	e := Event{
		ID:        uuid.New().String(),
		UpdateID:  updateID,
		ChatID:    chatID,
		Trigger:   trigger,
		Action:    action,
		HandledAt: time.Now().UTC(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Sink receives events. Implementations must not block the caller for long
// and must be safe for concurrent use.
type Sink interface {
	Observe(e Event)
}

// Multi forwards every event to each sink in order.
type Multi []Sink

func (m Multi) Observe(e Event) {
	for _, s := range m {
		if s != nil {
			s.Observe(e)
		}
	}
}

type SinkFunc func(Event)

func (f SinkFunc) Observe(e Event) { f(e) }
