package state

import "time"

// CorpseState tracks the afterlife of a drainable entity. The decay
// deadline is an absolute time polled each tick; draining pauses decay,
// and a cancelled drain restarts the full decay window from the moment
// of cancellation.
type CorpseState struct {
	IsCorpse      bool
	BeingDrained  bool
	Drained       bool
	DecayDeadline time.Time
}

// EnterCorpse flips the entity into the corpse phase with a fresh decay
// deadline.
func (c *CorpseState) EnterCorpse(decay time.Duration, now time.Time) {
	c.IsCorpse = true
	c.BeingDrained = false
	c.Drained = false
	c.DecayDeadline = now.Add(decay)
}

// IsCorpse reports whether the entity is in the corpse phase.
func (e *Entity) IsCorpse() bool {
	return e.Corpse.IsCorpse
}

// CanBeDrained reports whether a drain interaction may start right now.
func (e *Entity) CanBeDrained() bool {
	return e.Corpse.IsCorpse && !e.Corpse.Drained && !e.Corpse.BeingDrained
}

// StartDrain begins a drain interaction, pausing decay. It returns false
// when the corpse is not drainable at the moment.
func (e *Entity) StartDrain() bool {
	if !e.CanBeDrained() {
		return false
	}
	e.Corpse.BeingDrained = true
	return true
}

// CancelDrain aborts an in-progress drain and restarts the full decay
// window from now.
func (e *Entity) CancelDrain(decay time.Duration, now time.Time) {
	if !e.Corpse.BeingDrained {
		return
	}
	e.Corpse.BeingDrained = false
	e.Corpse.DecayDeadline = now.Add(decay)
}

// FinishDrain completes a drain interaction. A drained corpse is inert
// and is removed on the next corpse sweep.
func (e *Entity) FinishDrain() bool {
	if !e.Corpse.BeingDrained {
		return false
	}
	e.Corpse.BeingDrained = false
	e.Corpse.Drained = true
	return true
}

// CorpseExpired reports whether the decay deadline has passed. A corpse
// under active drain never expires.
func (e *Entity) CorpseExpired(now time.Time) bool {
	if !e.Corpse.IsCorpse || e.Corpse.BeingDrained {
		return false
	}
	return !now.Before(e.Corpse.DecayDeadline)
}
