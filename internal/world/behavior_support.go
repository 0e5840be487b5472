package world

import (
	"context"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/state"
)

// Support entities keep their distance from players and patch up allies.
// The heal target is re-queried every tick, so a healer keeps working
// through a group one commit window at a time until nobody qualifies.
func (w *World) runSupportBehavior(ctx context.Context, npc *state.Entity, profile catalog.Profile, now time.Time) {
	if threat, near := w.nearestPlayer(npc.Pos, profile.FearRange); near {
		npc.MoveIntent = ai.Flee(npc.Pos, threat.Pos, w.moveSpeed(npc))
		return
	}

	ally, ok := w.nearestWoundedAlly(npc.ID, npc.Pos, profile.DetectionRange)
	if !ok {
		w.runWander(npc, profile, now)
		return
	}
	if w.tryCommitAction(ctx, npc, ally, state.ActionHeal, profile.HealRadius, profile, now) {
		return
	}
	npc.MoveIntent = ai.Pursue(npc.Pos, ally.Pos, w.moveSpeed(npc))
}
