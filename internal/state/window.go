package state

import "time"

// ActionKind distinguishes what a committed action window resolves into.
type ActionKind string

const (
	ActionStrike ActionKind = "strike"
	ActionHeal   ActionKind = "heal"
)

// AttackWindow is the single in-flight committed action for an entity.
// An entity can hold at most one active window; attempts to open a second
// are rejected rather than queued. LastStartedAt survives cancellation so
// the cooldown stays anchored at the most recent commit.
type AttackWindow struct {
	Active        bool
	Kind          ActionKind
	TargetID      string
	StartedAt     time.Time
	Duration      time.Duration
	LastStartedAt time.Time
}

// Cancel deactivates the window without touching LastStartedAt.
func (w *AttackWindow) Cancel() {
	w.Active = false
	w.TargetID = ""
}

// Elapsed reports how long the window has been open.
func (w *AttackWindow) Elapsed(now time.Time) time.Duration {
	if !w.Active {
		return 0
	}
	return now.Sub(w.StartedAt)
}
