package world

import (
	"context"
	"time"

	"puppet-master/sim/internal/state"
	economylog "puppet-master/sim/logging/economy"
	lifecyclelog "puppet-master/sim/logging/lifecycle"
	statuslog "puppet-master/sim/logging/statuseffects"
)

// sweepDefeats runs the death dispatch for every NPC that died this tick.
// The loot latch on the entity makes the dispatch idempotent: a corpse
// revisited by later sweeps never pays out twice.
func (w *World) sweepDefeats(ctx context.Context, now time.Time) {
	for _, id := range sortedIDs(w.npcs) {
		npc := w.npcs[id]
		if npc == nil || !npc.IsDead() || npc.IsCorpse() {
			continue
		}
		if !npc.MarkLootDispatched() {
			continue
		}
		w.dispatchDefeat(ctx, npc, now)
	}
}

func (w *World) dispatchDefeat(ctx context.Context, npc *state.Entity, now time.Time) {
	profile := w.library.Profile(npc.Variant)

	lifecyclelog.Died(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), lifecyclelog.DiedPayload{
		Variant:  string(npc.Variant),
		KillerID: npc.LastHitBy,
	})

	if npc.LastHitBy != "" && profile.ExperienceReward > 0 {
		w.progression.AwardExperience(npc.LastHitBy, profile.ExperienceReward)
		economylog.ExperienceAwarded(ctx, w.publisher, w.currentTick, w.refFor(npc.LastHitBy), economylog.ExperiencePayload{
			Amount: profile.ExperienceReward,
		})
	}

	// A carried parcel always drops in full; nothing evaporates on death.
	w.dropCarried(ctx, npc, "death")

	// Each drop entry rolls independently.
	for _, entry := range profile.Drops {
		if entry.Chance <= 0 || w.randFloat() >= entry.Chance {
			continue
		}
		amount := w.randIntRange(entry.Min, entry.Max)
		w.spawnParcel(ctx, entry.Kind, amount, npc.Pos, npc.ID, "loot")
	}

	if profile.SkullChance > 0 && w.randFloat() < profile.SkullChance {
		w.spawnSkull(ctx, npc.Pos, npc.ID)
	}

	w.releaseGrip(ctx, npc, now)

	w.presentation.EffectBurst("death", npc.Pos)

	if profile.IsDrainable() {
		npc.Corpse.EnterCorpse(secondsToDuration(profile.DecaySeconds), now)
		return
	}
	delete(w.npcs, npc.ID)
}

// releaseGrip frees whoever the dead entity was mind-controlling.
func (w *World) releaseGrip(ctx context.Context, npc *state.Entity, now time.Time) {
	victimID := npc.Blackboard.ControlledActorID
	if victimID == "" {
		return
	}
	npc.Blackboard.ControlledActorID = ""
	victim, ok := w.npcs[victimID]
	if !ok {
		return
	}
	if holder, active := victim.MindControlled(now); !active || holder != npc.ID {
		return
	}
	victim.RemoveMindControl()
	statuslog.MindControlRemoved(ctx, w.publisher, w.currentTick, w.npcRef(victimID), statuslog.MindControlPayload{
		ControllerID: npc.ID,
	})
}

type drainOp struct {
	drainerID string
	doneAt    time.Time
}

// BeginDrain starts a player draining a corpse. The drain claims the
// corpse exclusively and pauses its decay.
func (w *World) BeginDrain(ctx context.Context, playerID, corpseID string, now time.Time) bool {
	player, ok := w.players[playerID]
	if !ok || player.IsDead() {
		return false
	}
	corpse, ok := w.npcs[corpseID]
	if !ok || !corpse.CanBeDrained() {
		return false
	}
	if state.Distance(player.Pos, corpse.Pos) > w.cfg.DrainRange {
		return false
	}
	if !corpse.StartDrain() {
		return false
	}
	w.drains[corpseID] = &drainOp{
		drainerID: playerID,
		doneAt:    now.Add(secondsToDuration(w.cfg.DrainSeconds)),
	}
	return true
}

// CancelDrain aborts an in-progress drain. The corpse restarts its full
// decay window from now.
func (w *World) CancelDrain(corpseID string, now time.Time) {
	if _, ok := w.drains[corpseID]; !ok {
		return
	}
	if corpse, found := w.npcs[corpseID]; found {
		profile := w.library.Profile(corpse.Variant)
		corpse.CancelDrain(secondsToDuration(profile.DecaySeconds), now)
	}
	delete(w.drains, corpseID)
}

func (w *World) cancelDrainsBy(playerID string, now time.Time) {
	for corpseID, op := range w.drains {
		if op.drainerID == playerID {
			w.CancelDrain(corpseID, now)
		}
	}
}

// advanceCorpses drives drains to completion, enforces the drain range,
// and removes decayed corpses.
func (w *World) advanceCorpses(ctx context.Context, now time.Time) {
	for _, id := range sortedIDs(w.npcs) {
		npc := w.npcs[id]
		if npc == nil || !npc.IsCorpse() {
			continue
		}
		profile := w.library.Profile(npc.Variant)

		if op, ok := w.drains[id]; ok {
			drainer, present := w.players[op.drainerID]
			switch {
			case !present || drainer.IsDead() ||
				state.Distance(drainer.Pos, npc.Pos) > w.cfg.DrainRange:
				w.CancelDrain(id, now)
			case !now.Before(op.doneAt):
				npc.FinishDrain()
				delete(w.drains, id)
				lifecyclelog.CorpseDrained(ctx, w.publisher, w.currentTick, w.npcRef(id))
				if reward := drainReward(profile.ExperienceReward); reward > 0 {
					w.progression.AwardExperience(op.drainerID, reward)
					economylog.ExperienceAwarded(ctx, w.publisher, w.currentTick, w.refFor(op.drainerID), economylog.ExperiencePayload{
						Amount: reward,
					})
				}
				delete(w.npcs, id)
				continue
			default:
				// Drain still running; decay stays paused.
				continue
			}
		}

		if npc.CorpseExpired(now) {
			lifecyclelog.CorpseDecayed(ctx, w.publisher, w.currentTick, w.npcRef(id))
			delete(w.npcs, id)
		}
	}
}

// drainReward is half the kill reward, floored at one for any drainable
// variant worth anything at all.
func drainReward(killReward int) int {
	if killReward <= 0 {
		return 0
	}
	reward := killReward / 2
	if reward < 1 {
		reward = 1
	}
	return reward
}
