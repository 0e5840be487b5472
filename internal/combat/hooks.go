package combat

import (
	"time"

	"puppet-master/sim/internal/state"
)

// Hooks configures the per-variant effects fired when a strike completes.
// Hooks never fire for cancelled windows. Zero values disable each hook.
type Hooks struct {
	// LifestealFactor heals the attacker by damageDealt × factor.
	LifestealFactor float64

	// StunInterval triggers a stun on every Nth completed hit, counted on
	// the attacker. StunDuration is applied to the victim when it fires.
	StunInterval int
	StunDuration time.Duration

	// Splash damages additional entities within SplashRadius of the primary
	// hit point by damageDealt × SplashFactor, excluding the primary target.
	SplashRadius float64
	SplashFactor float64

	// Mind control on hit, gated by its own cooldown, and limited to one
	// controlled entity per controller at a time.
	MindControlDuration time.Duration
	MindControlCooldown time.Duration
}

// StunTriggered counts a completed hit and reports whether this one is the
// Nth that fires the stun hook.
func (h Hooks) StunTriggered(bb *state.Blackboard) bool {
	if h.StunInterval <= 0 || h.StunDuration <= 0 || bb == nil {
		return false
	}
	bb.HitCounter++
	return bb.HitCounter%h.StunInterval == 0
}

// CanMindControl reports whether the mind-control hook may fire: the hook
// must be configured, its cooldown elapsed, and the attacker must not
// already control another entity.
func (h Hooks) CanMindControl(bb *state.Blackboard, controlsAnother bool, now time.Time) bool {
	if h.MindControlDuration <= 0 || bb == nil {
		return false
	}
	if controlsAnother {
		return false
	}
	if !bb.MindControlReady.IsZero() && now.Before(bb.MindControlReady) {
		return false
	}
	return true
}

// MarkMindControlUsed arms the hook's independent cooldown.
func (h Hooks) MarkMindControlUsed(bb *state.Blackboard, victimID string, now time.Time) {
	if bb == nil {
		return
	}
	bb.ControlledActorID = victimID
	if h.MindControlCooldown > 0 {
		bb.MindControlReady = now.Add(h.MindControlCooldown)
	}
}

// SplashVictims selects entities within radius of the hit point, excluding
// the primary target and the attacker. Candidate order is preserved.
func SplashVictims(candidates []*state.Entity, center state.Vec2, radius float64, attackerID, primaryID string) []*state.Entity {
	if radius <= 0 || len(candidates) == 0 {
		return nil
	}
	victims := make([]*state.Entity, 0, len(candidates))
	radiusSq := radius * radius
	for _, cand := range candidates {
		if cand == nil || cand.IsDead() {
			continue
		}
		if cand.ID == primaryID || cand.ID == attackerID {
			continue
		}
		if state.DistanceSq(cand.Pos, center) <= radiusSq {
			victims = append(victims, cand)
		}
	}
	return victims
}
