package world

import (
	"context"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/state"
)

// The plain combat variants decide from scratch every tick. Their only
// memory is the current target ID, which widens the search radius from
// detection to chase range while a fight is on.

func (w *World) runAggressiveBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	radius := profile.DetectionRange
	if npc.Blackboard.TargetID != "" {
		radius = profile.ChaseRange
	}
	threat, ok := w.nearestPlayer(npc.Pos, radius)
	if !ok {
		npc.Blackboard.TargetID = ""
		w.runWander(npc, profile, now)
		return
	}
	npc.Blackboard.TargetID = threat.ID
	if w.tryCommitAction(ctx, npc, threat, state.ActionStrike, profile.AttackRange, profile, now) {
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, threat.Pos, w.moveSpeed(npc))
}

// Defensive entities acquire and chase exactly like aggressives, but they
// are leashed to a post: a target whose distance from the home point
// exceeds detection range is dropped rather than chased across the map.
func (w *World) runDefensiveBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	radius := profile.DetectionRange
	if npc.Blackboard.TargetID != "" {
		radius = profile.ChaseRange
	}
	threat, ok := w.nearestPlayer(npc.Pos, radius)
	if ok && state.Distance(threat.Pos, npc.Home) > profile.DetectionRange {
		ok = false
	}
	if !ok {
		npc.Blackboard.TargetID = ""
		// Drift back toward the post before resuming the idle loop.
		if state.Distance(npc.Pos, npc.Home) > profile.WanderRadius {
			npc.MoveIntent = ai.Pursue(npc.Pos, npc.Home, w.moveSpeed(npc)*wanderSpeedFactor)
			return
		}
		w.runWander(npc, profile, now)
		return
	}
	npc.Blackboard.TargetID = threat.ID
	if w.tryCommitAction(ctx, npc, threat, state.ActionStrike, profile.AttackRange, profile, now) {
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, threat.Pos, w.moveSpeed(npc))
}

// Ranged entities fight from a standoff band: inside fear range they back
// off, inside attack range they trade swings, and between swings they
// drift toward the preferred firing distance without ever stepping past
// it.
func (w *World) runRangedBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	radius := profile.DetectionRange
	if npc.Blackboard.TargetID != "" {
		radius = profile.ChaseRange
	}
	threat, ok := w.nearestPlayer(npc.Pos, radius)
	if !ok {
		npc.Blackboard.TargetID = ""
		w.runWander(npc, profile, now)
		return
	}
	npc.Blackboard.TargetID = threat.ID

	dist := state.Distance(npc.Pos, threat.Pos)
	if dist < profile.FearRange {
		npc.MoveIntent = ai.Flee(npc.Pos, threat.Pos, w.moveSpeed(npc))
		return
	}
	if dist <= profile.AttackRange {
		w.tryCommitAction(ctx, npc, threat, state.ActionStrike, profile.AttackRange, profile, now)
		if npc.Swing.Active {
			return
		}
	}
	npc.MoveIntent = standoffIntent(npc, threat, profile, w.moveSpeed(npc))
}

// standoffIntent closes toward the preferred firing distance on the line
// to the threat and goes still once at or inside it.
func standoffIntent(npc, threat *state.Entity, profile catalog.Profile, speed float64) state.Vec2 {
	standoff := profile.PreferredRange
	if standoff <= 0 || standoff > profile.AttackRange {
		standoff = profile.AttackRange
	}
	dist := state.Distance(npc.Pos, threat.Pos)
	if dist <= standoff {
		return state.Vec2{}
	}
	away := npc.Pos.Sub(threat.Pos).Normalized()
	goal := threat.Pos.Add(away.Scale(standoff))
	return ai.Pursue(npc.Pos, goal, speed)
}

// Cowards never fight. Any player inside detection range refreshes the
// flee window; the run continues until the window lapses and the area is
// clear.
func (w *World) runCowardBehavior(npc *state.Entity, profile catalog.Profile, now time.Time) {
	bb := &npc.Blackboard
	threat, near := w.nearestPlayer(npc.Pos, profile.DetectionRange)
	if near {
		bb.FleeUntil = now.Add(secondsToDuration(profile.FleeSeconds))
	}
	if now.Before(bb.FleeUntil) {
		if near {
			npc.MoveIntent = ai.Flee(npc.Pos, threat.Pos, w.moveSpeed(npc))
		}
		return
	}
	w.runWander(npc, profile, now)
}

// A mind-controlled entity turns on its own kind: it attacks the nearest
// NPC other than its controller, with its own stats and reach unchanged.
func (w *World) runControlledBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, controllerID string, now time.Time) {
	victim, ok := w.nearestHostileNPC(npc.ID, controllerID, npc.Pos, profile.DetectionRange, now)
	if !ok {
		w.runWander(npc, profile, now)
		return
	}
	reach := profile.AttackRange
	if profile.StrikeRange > 0 && profile.StrikeRange < reach {
		reach = profile.StrikeRange
	}
	if reach <= 0 {
		reach = profile.StrikeRange
	}
	if w.tryCommitAction(ctx, npc, victim, state.ActionStrike, reach, profile, now) {
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, victim.Pos, w.moveSpeed(npc))
}
