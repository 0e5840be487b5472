package world

import (
	"context"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/state"
)

// The miner works a strict priority ladder, one rung per tick: bank what
// it carries, pick up loose gold, defend the claim around its post, then
// walk back to the post. No formal phase state; the ladder re-evaluates
// from scratch every tick.
func (w *World) runMinerBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	if npc.IsCarrying() {
		w.runMinerDeliver(ctx, npc, profile)
		return
	}

	if parcel, ok := w.nearestParcel(state.ResourceGold, npc.Pos, profile.ResourceSightRadius); ok {
		if state.Distance(npc.Pos, parcel.Pos) <= profile.PickupRadius {
			w.liftParcel(ctx, npc, parcel)
			return
		}
		npc.MoveIntent = ai.Pursue(npc.Pos, parcel.Pos, w.moveSpeed(npc))
		return
	}

	// Guard: threats are measured from the post, not the miner, so it
	// never gets kited off its claim.
	if threat, ok := w.nearestPlayer(npc.Home, profile.GuardRadius); ok {
		if w.tryCommitAction(ctx, npc, threat, state.ActionStrike, profile.AttackRange, profile, now) {
			return
		}
		npc.MoveIntent = ai.Pursue(npc.Pos, threat.Pos, w.moveSpeed(npc))
		return
	}

	if state.Distance(npc.Pos, npc.Home) > profile.ArriveRadius {
		npc.MoveIntent = ai.Pursue(npc.Pos, npc.Home, w.moveSpeed(npc))
	}
}

func (w *World) runMinerDeliver(ctx context.Context, npc *state.Entity, profile catalog.Profile) {
	building, ok := w.nearestAcceptingBuilding(npc.Carry.Kind, npc.Pos)
	if !ok {
		w.dropCarried(ctx, npc, "no delivery target")
		return
	}
	if state.Distance(npc.Pos, building.Pos) <= profile.PickupRadius {
		w.deliverCarried(ctx, npc, building)
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, building.Pos, w.moveSpeed(npc))
}
