package world

import (
	"context"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/combat"
	"puppet-master/sim/internal/state"
	"puppet-master/sim/stats"
)

// cornerProbeInterval spaces the distance polls that feed the cornered
// escalation timer.
const cornerProbeInterval = 250 * time.Millisecond

// The peasant is the richest machine: it steals resource parcels, hauls
// them to a delivery building while steering around the player, runs when
// threatened, and escalates to fighting when running stops working.
func (w *World) runPeasantBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	bb := &npc.Blackboard
	threat, threatNear := w.nearestPlayer(npc.Pos, profile.FearRange)

	// Point-blank contact flips straight to fighting no matter what the
	// peasant was doing. Already-escalated fights are left alone.
	if bb.Phase != state.PhaseCombat && threatNear &&
		state.Distance(npc.Pos, threat.Pos) <= profile.DesperateRange {
		w.peasantEnterCombat(npc, threat.ID)
	}

	// A threat inside immediate strike range eats a swipe no matter what
	// the peasant was otherwise doing. The swipe is fired in passing, not
	// a phase of its own: it can go off from Idle, Wandering, or mid-flee,
	// and the machine resumes where it left off once the window resolves.
	if bb.Phase != state.PhaseCombat && threatNear &&
		state.Distance(npc.Pos, threat.Pos) <= profile.StrikeRange &&
		combat.CanStart(npc, stats.CooldownFor(&npc.Stats), now) {
		if w.tryCommitAction(ctx, npc, threat, state.ActionStrike, profile.StrikeRange, profile, now) {
			return
		}
	}

	switch bb.Phase {
	case state.PhaseCombat:
		w.runPeasantCombat(ctx, npc, profile, now)
	case state.PhaseFlee:
		w.runPeasantFlee(npc, profile, threat, threatNear, now)
	case state.PhaseCarry:
		w.runPeasantCarry(ctx, npc, profile, threat, threatNear, now)
	case state.PhaseRunToResource:
		w.runPeasantErrand(ctx, npc, profile, threatNear, now)
	default:
		w.runPeasantIdle(npc, profile, threatNear, now)
	}
}

func (w *World) peasantEnterCombat(npc *state.Entity, targetID string) {
	bb := &npc.Blackboard
	bb.Phase = state.PhaseCombat
	bb.TargetID = targetID
	bb.CornerTimer = 0
	bb.CornerProbeAt = time.Time{}
}

func (w *World) peasantEnterFlee(npc *state.Entity, profile catalog.Profile, now time.Time) {
	bb := &npc.Blackboard
	bb.ResetErrand()
	bb.Phase = state.PhaseFlee
	bb.FleeUntil = now.Add(secondsToDuration(profile.FleeSeconds))
	bb.CornerTimer = 0
	bb.CornerProbeAt = time.Time{}
}

func (w *World) runPeasantIdle(npc *state.Entity, profile catalog.Profile, threatNear bool, now time.Time) {
	bb := &npc.Blackboard
	if threatNear {
		w.peasantEnterFlee(npc, profile, now)
		return
	}
	if npc.IsCarrying() {
		bb.Phase = state.PhaseCarry
		return
	}
	if parcel, ok := w.nearestLiftableParcel(npc.Pos, profile.ResourceSightRadius); ok {
		bb.Phase = state.PhaseRunToResource
		bb.TargetParcelID = parcel.ID
		return
	}
	w.runWander(npc, profile, now)
}

func (w *World) runPeasantErrand(ctx context.Context, npc *state.Entity, profile catalog.Profile, threatNear bool, now time.Time) {
	bb := &npc.Blackboard
	if threatNear {
		w.peasantEnterFlee(npc, profile, now)
		return
	}
	parcel, ok := w.parcels[bb.TargetParcelID]
	if !ok {
		// Someone else took it; rescan or stand down.
		parcel, ok = w.nearestLiftableParcel(npc.Pos, profile.ResourceSightRadius)
		if !ok {
			bb.ResetErrand()
			bb.Phase = state.PhaseIdle
			return
		}
		bb.TargetParcelID = parcel.ID
	}
	if state.Distance(npc.Pos, parcel.Pos) <= profile.PickupRadius {
		if w.liftParcel(ctx, npc, parcel) {
			bb.TargetParcelID = ""
			bb.Phase = state.PhaseCarry
		} else {
			bb.ResetErrand()
			bb.Phase = state.PhaseIdle
		}
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, parcel.Pos, w.moveSpeed(npc))
}

func (w *World) runPeasantCarry(ctx context.Context, npc *state.Entity, profile catalog.Profile, threat *state.Entity, threatNear bool, now time.Time) {
	bb := &npc.Blackboard
	if !npc.IsCarrying() {
		bb.ResetErrand()
		bb.Phase = state.PhaseIdle
		return
	}
	building, ok := w.nearestAcceptingBuilding(npc.Carry.Kind, npc.Pos)
	if !ok {
		// Nowhere to take it; dump the haul and go back to normal life.
		w.dropCarried(ctx, npc, "no delivery target")
		bb.Phase = state.PhaseIdle
		return
	}
	bb.DeliveryID = building.ID
	if state.Distance(npc.Pos, building.Pos) <= profile.PickupRadius {
		w.deliverCarried(ctx, npc, building)
		bb.Phase = state.PhaseIdle
		return
	}
	if threatNear {
		npc.MoveIntent = ai.ForceBlend(npc.Pos, building.Pos, threat.Pos,
			profile.RepulsorRadius, profile.RepulsorStrength, w.moveSpeed(npc))
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, building.Pos, w.moveSpeed(npc))
}

func (w *World) runPeasantFlee(npc *state.Entity, profile catalog.Profile, threat *state.Entity, threatNear bool, now time.Time) {
	bb := &npc.Blackboard
	if threatNear {
		bb.FleeUntil = now.Add(secondsToDuration(profile.FleeSeconds))
	} else {
		// Out of immediate danger: still run from anyone inside the exit
		// band until the flee window lapses.
		threat, threatNear = w.nearestPlayer(npc.Pos, profile.ExitDistance)
	}

	if !threatNear {
		if !now.Before(bb.FleeUntil) {
			bb.Phase = state.PhaseIdle
			bb.CornerTimer = 0
			bb.CornerProbeAt = time.Time{}
		}
		return
	}

	npc.MoveIntent = ai.Flee(npc.Pos, threat.Pos, w.moveSpeed(npc))

	// Cornered escalation: sample the threat distance on a fixed cadence;
	// failing to open ground while the threat stays close accumulates
	// toward fight-back.
	dist := state.Distance(npc.Pos, threat.Pos)
	if bb.CornerProbeAt.IsZero() {
		bb.LastThreatDist = dist
		bb.CornerProbeAt = now.Add(cornerProbeInterval)
	} else if !now.Before(bb.CornerProbeAt) {
		progress := dist - bb.LastThreatDist
		if dist <= profile.CornerDistance && progress < profile.CornerProgress {
			bb.CornerTimer += cornerProbeInterval
		} else {
			bb.CornerTimer = 0
		}
		bb.LastThreatDist = dist
		bb.CornerProbeAt = now.Add(cornerProbeInterval)
	}
	if bb.CornerTimer >= secondsToDuration(profile.CorneredSeconds) {
		w.peasantEnterCombat(npc, threat.ID)
	}
}

func (w *World) runPeasantCombat(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	bb := &npc.Blackboard
	target, ok := w.entityByID(bb.TargetID)
	if !ok || target.IsDead() {
		bb.TargetID = ""
		bb.Phase = state.PhaseIdle
		return
	}
	if state.Distance(npc.Pos, target.Pos) > profile.ExitDistance {
		// The threat broke off; stand down rather than chase across the map.
		bb.TargetID = ""
		bb.Phase = state.PhaseIdle
		return
	}
	if w.tryCommitAction(ctx, npc, target, state.ActionStrike, profile.StrikeRange, profile, now) {
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, target.Pos, w.moveSpeed(npc))
}
