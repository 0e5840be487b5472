package combat

import (
	"time"

	"puppet-master/sim/internal/state"
)

const (
	// FallbackSwingFactor sizes the commit window from the attack cooldown
	// when no authoritative action duration is configured. The factor is
	// load-bearing for behavioral parity; do not tune it casually.
	FallbackSwingFactor = 0.85

	// RangeTolerance widens the completion range check so a target that
	// drifted slightly during the commit window can still be hit, while a
	// target that fled far away is correctly missed.
	RangeTolerance = 1.35

	// MoveCancelEpsilon is the velocity magnitude (units/sec) above which
	// the committing entity counts as moving and the window cancels.
	MoveCancelEpsilon = 0.05
)

// Outcome reports what Advance observed for the entity's window this tick.
type Outcome uint8

const (
	OutcomeIdle Outcome = iota
	OutcomeCommitting
	OutcomeCancelled
	OutcomeCompleted
)

// SwingDuration picks the commit window length: the configured action
// duration when present, otherwise the cooldown-proportional fallback.
func SwingDuration(configured, cooldown time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	if cooldown <= 0 {
		return 0
	}
	return time.Duration(float64(cooldown) * FallbackSwingFactor)
}

// CanStart reports whether a new commit window may open. It is false while
// the entity is dead or stunned, while a window is already committing, and
// until the cooldown has elapsed since the previous window's start.
func CanStart(e *state.Entity, cooldown time.Duration, now time.Time) bool {
	if e == nil || e.IsDead() || e.Stunned(now) {
		return false
	}
	if e.Swing.Active {
		return false
	}
	if cooldown > 0 && !e.Swing.LastStartedAt.IsZero() {
		if now.Before(e.Swing.LastStartedAt.Add(cooldown)) {
			return false
		}
	}
	return true
}

// Start opens a commit window. A second concurrent start is rejected, not
// queued, and a rejected start leaves the cooldown anchor untouched.
func Start(e *state.Entity, targetID string, kind state.ActionKind, planned time.Duration, now time.Time) bool {
	if e == nil || e.IsDead() || e.Stunned(now) || planned <= 0 {
		return false
	}
	if e.Swing.Active {
		return false
	}
	e.Swing = state.AttackWindow{
		Active:        true,
		Kind:          kind,
		TargetID:      targetID,
		StartedAt:     now,
		Duration:      planned,
		LastStartedAt: now,
	}
	return true
}

// Advance polls the entity's window. Death, stun, and self-movement each
// cancel it; whichever is detected first in a tick wins, and no damage is
// ever applied for a cancelled window. When the full planned duration
// elapses uninterrupted the window closes as Completed and the returned
// snapshot carries the target to resolve against.
func Advance(e *state.Entity, now time.Time) (Outcome, state.AttackWindow) {
	if e == nil || !e.Swing.Active {
		return OutcomeIdle, state.AttackWindow{}
	}
	window := e.Swing
	if e.IsDead() || e.Stunned(now) {
		e.Swing.Cancel()
		return OutcomeCancelled, window
	}
	if e.Velocity.Length() > MoveCancelEpsilon {
		e.Swing.Cancel()
		return OutcomeCancelled, window
	}
	if e.Swing.Elapsed(now) < window.Duration {
		return OutcomeCommitting, window
	}
	e.Swing.Active = false
	e.Swing.TargetID = ""
	return OutcomeCompleted, window
}

// InStrikeRange applies the completion range check against the target's
// current position, widened by the tolerance multiplier.
func InStrikeRange(attacker, target state.Vec2, nominalRange float64) bool {
	if nominalRange <= 0 {
		return false
	}
	return state.Distance(attacker, target) <= nominalRange*RangeTolerance
}
