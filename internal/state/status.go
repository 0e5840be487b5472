package state

import "time"

// StatusState holds the stun and mind-control bookkeeping for one entity.
// Expiries are absolute deadlines evaluated lazily against a clock reading;
// there are no background timers or expiry callbacks. Multiple effects may
// be active at once, and stun always wins for action gating.
type StatusState struct {
	StunnedUntil     time.Time
	MindControlUntil time.Time
	ControllerID     string
}
