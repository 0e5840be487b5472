package world

import (
	"time"

	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/state"
)

// Candidate assembly for targeting. Candidates are built in sorted-ID
// order so the first-found tie-break in ai.FindNearest stays deterministic
// across runs.

func (w *World) playerCandidates() []ai.Candidate {
	ids := sortedIDs(w.players)
	out := make([]ai.Candidate, 0, len(ids))
	for _, id := range ids {
		player := w.players[id]
		if player == nil || player.IsDead() {
			continue
		}
		out = append(out, ai.Candidate{ID: id, Pos: player.Pos})
	}
	return out
}

func (w *World) npcCandidates(excludeID string) []ai.Candidate {
	ids := sortedIDs(w.npcs)
	out := make([]ai.Candidate, 0, len(ids))
	for _, id := range ids {
		if id == excludeID {
			continue
		}
		npc := w.npcs[id]
		if npc == nil || npc.IsDead() {
			continue
		}
		out = append(out, ai.Candidate{ID: id, Pos: npc.Pos})
	}
	return out
}

// nearestPlayer finds the closest living player within radius of origin.
func (w *World) nearestPlayer(origin state.Vec2, radius float64) (*state.Entity, bool) {
	cand, ok := ai.FindNearest(w.playerCandidates(), origin, radius, nil)
	if !ok {
		return nil, false
	}
	player, ok := w.players[cand.ID]
	return player, ok
}

// nearestWoundedAlly finds the closest living, wounded NPC within radius,
// excluding the healer itself.
func (w *World) nearestWoundedAlly(healerID string, origin state.Vec2, radius float64) (*state.Entity, bool) {
	qualifies := func(cand ai.Candidate) bool {
		ally, ok := w.npcs[cand.ID]
		return ok && ally.Wounded()
	}
	cand, ok := ai.FindNearest(w.npcCandidates(healerID), origin, radius, qualifies)
	if !ok {
		return nil, false
	}
	ally, ok := w.npcs[cand.ID]
	return ally, ok
}

// nearestHostileNPC finds the closest NPC that a controlled entity may
// attack: alive, not itself, not its controller, and not itself held by
// an active grip.
func (w *World) nearestHostileNPC(selfID, controllerID string, origin state.Vec2, radius float64, now time.Time) (*state.Entity, bool) {
	qualifies := func(cand ai.Candidate) bool {
		if cand.ID == controllerID {
			return false
		}
		other, ok := w.npcs[cand.ID]
		if !ok {
			return false
		}
		_, held := other.MindControlled(now)
		return !held
	}
	cand, ok := ai.FindNearest(w.npcCandidates(selfID), origin, radius, qualifies)
	if !ok {
		return nil, false
	}
	npc, ok := w.npcs[cand.ID]
	return npc, ok
}

// controlsAnother reports whether this entity already holds an active
// mind-control grip, clearing stale bookkeeping as a side effect.
func (w *World) controlsAnother(controller *state.Entity, now time.Time) bool {
	victimID := controller.Blackboard.ControlledActorID
	if victimID == "" {
		return false
	}
	victim, ok := w.npcs[victimID]
	if !ok || victim.IsDead() {
		controller.Blackboard.ControlledActorID = ""
		return false
	}
	if holder, active := victim.MindControlled(now); !active || holder != controller.ID {
		controller.Blackboard.ControlledActorID = ""
		return false
	}
	return true
}
