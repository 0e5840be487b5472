package world

import (
	"context"
	"math"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/combat"
	"puppet-master/sim/internal/state"
	combatlog "puppet-master/sim/logging/combat"
	"puppet-master/sim/stats"
)

// wanderSpeedFactor slows ambient wandering relative to chase speed.
const wanderSpeedFactor = 0.5

// runBehavior makes one decision for one NPC. An entity holding an open
// commit window stays put until the window resolves; everything else
// dispatches on variant, with an active mind-control grip overriding the
// variant program entirely.
func (w *World) runBehavior(ctx context.Context, npc *state.Entity, now time.Time) {
	if npc.Swing.Active {
		return
	}
	profile := w.library.Profile(npc.Variant)

	if controllerID, controlled := npc.MindControlled(now); controlled {
		w.runControlledBehavior(ctx, npc, profile, controllerID, now)
		return
	}
	if npc.Status.ControllerID != "" {
		npc.RemoveMindControl()
	}

	switch npc.Variant {
	case state.VariantDefensive:
		w.runDefensiveBehavior(ctx, npc, profile, now)
	case state.VariantRanged:
		w.runRangedBehavior(ctx, npc, profile, now)
	case state.VariantCoward:
		w.runCowardBehavior(npc, profile, now)
	case state.VariantSupport:
		w.runSupportBehavior(ctx, npc, profile, now)
	case state.VariantPeasant:
		w.runPeasantBehavior(ctx, npc, profile, now)
	case state.VariantMiner:
		w.runMinerBehavior(ctx, npc, profile, now)
	default:
		w.runAggressiveBehavior(ctx, npc, profile, now)
	}
}

func (w *World) moveSpeed(npc *state.Entity) float64 {
	return npc.Stats.GetDerived(stats.DerivedMoveSpeed)
}

func (w *World) faceToward(npc *state.Entity, target state.Vec2) {
	npc.SetFacingFromVelocity(target.Sub(npc.Pos))
}

// tryCommitAction opens a commit window against target when it is within
// reach. It returns true whenever the situation was handled in place —
// either a window opened or the entity is holding position waiting out its
// cooldown — and false when the target is out of reach.
func (w *World) tryCommitAction(ctx context.Context, npc, target *state.Entity, kind state.ActionKind, reach float64, profile catalog.Profile, now time.Time) bool {
	if target == nil || reach <= 0 {
		return false
	}
	if state.Distance(npc.Pos, target.Pos) > reach {
		return false
	}
	npc.MoveIntent = state.Vec2{}
	w.faceToward(npc, target.Pos)

	cooldown := stats.CooldownFor(&npc.Stats)
	if !combat.CanStart(npc, cooldown, now) {
		return true
	}
	planned := combat.SwingDuration(secondsToDuration(profile.ActionSeconds), cooldown)
	if !combat.Start(npc, target.ID, kind, planned, now) {
		return true
	}

	w.presentation.ActionWindupStarted(npc.ID, kind, planned)
	combatlog.AttackCommitted(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), w.refFor(target.ID), combatlog.AttackCommittedPayload{
		Kind:       string(kind),
		DurationMs: planned.Milliseconds(),
		Range:      reach,
	})
	return true
}

// runWander drives the shared idle loop: pick a point near home, walk to
// it, stand around for a while, repeat.
func (w *World) runWander(npc *state.Entity, profile catalog.Profile, now time.Time) {
	bb := &npc.Blackboard
	if bb.HasWander {
		if state.Distance(npc.Pos, bb.WanderTarget) <= profile.ArriveRadius {
			bb.HasWander = false
			idle := w.randRange(profile.IdleSecondsMin, profile.IdleSecondsMax)
			bb.IdleUntil = now.Add(secondsToDuration(idle))
			return
		}
		npc.MoveIntent = ai.Pursue(npc.Pos, bb.WanderTarget, w.moveSpeed(npc)*wanderSpeedFactor)
		return
	}
	if now.Before(bb.IdleUntil) {
		return
	}
	angle := w.randRange(0, 2*math.Pi)
	dist := w.randRange(profile.WanderRadius*0.25, profile.WanderRadius)
	offset := state.Vec2{X: math.Cos(angle) * dist, Y: math.Sin(angle) * dist}
	bb.WanderTarget = w.clampToBounds(npc.Home.Add(offset))
	bb.HasWander = true
}
