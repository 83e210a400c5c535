package domain

import "time"

// LifecycleStatus is the prescription state. Active -> Ended is the only transition.
type LifecycleStatus string

const (
	StatusActive LifecycleStatus = "active"
	StatusEnded  LifecycleStatus = "ended"
)

// Lifecycle holds the active flag and the start/end stamps.
// Invariant: Active == (EndDate == nil).
type Lifecycle struct {
	Active    bool
	StartDate time.Time
	EndDate   *time.Time
}

func newLifecycle(now time.Time) Lifecycle {
	return Lifecycle{Active: true, StartDate: now}
}

func (l Lifecycle) Status() LifecycleStatus {
	if l.Active {
		return StatusActive
	}
	return StatusEnded
}

func (l *Lifecycle) end(now time.Time) error {
	if !l.Active {
		return validationErr("diet already ended")
	}
	l.Active = false
	l.EndDate = &now
	return nil
}
