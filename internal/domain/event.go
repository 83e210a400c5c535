package domain

import (
	"fmt"
	"time"
)

// EventKind names a lifecycle trigger observed by notification channels.
type EventKind string

const (
	EventPrescribed EventKind = "diet.prescribed"
	EventUpdated    EventKind = "diet.updated"
	EventEnded      EventKind = "diet.ended"
)

// Event is what notifiers receive: the diet identity and a state snapshot.
// Notifiers have no write access to the diet.
type Event struct {
	Kind       EventKind
	DietID     string
	OccurredAt time.Time
	Snapshot   Snapshot
}

func NewEvent(kind EventKind, d Diet, at time.Time) Event {
	return Event{
		Kind:       kind,
		DietID:     d.ID(),
		OccurredAt: at,
		Snapshot:   d.Snapshot(),
	}
}

// Message renders the human-readable text delivered to recipients.
func (e Event) Message() string {
	s := e.Snapshot
	status := StatusActive
	if !s.Active {
		status = StatusEnded
	}
	return fmt.Sprintf("[%s] %s diet %s (%s) by %s: %d item(s), forbidden=%v",
		e.Kind, s.Type.DisplayName(), e.DietID, status, s.ResponsibleUser,
		len(s.Items), s.ForbiddenRestrictions)
}

// DispatchReport summarizes one notification fan-out.
type DispatchReport struct {
	Total     int
	Succeeded int
	Failed    int
}
