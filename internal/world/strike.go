package world

import (
	"context"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/combat"
	"puppet-master/sim/internal/state"
	combatlog "puppet-master/sim/logging/combat"
	lifecyclelog "puppet-master/sim/logging/lifecycle"
	statuslog "puppet-master/sim/logging/statuseffects"
	"puppet-master/sim/stats"
)

// advanceSwings polls every open commit window. Cancellation applies no
// effect; completion resolves against the target's position right now,
// within the widened completion range.
func (w *World) advanceSwings(ctx context.Context, now time.Time) {
	for _, id := range sortedIDs(w.npcs) {
		npc := w.npcs[id]
		if npc == nil || !npc.Swing.Active {
			continue
		}
		outcome, window := combat.Advance(npc, now)
		switch outcome {
		case combat.OutcomeCancelled:
			combatlog.AttackCancelled(ctx, w.publisher, w.currentTick, w.npcRef(id), combatlog.AttackCancelledPayload{
				Reason:    cancelReason(npc, now),
				ElapsedMs: now.Sub(window.StartedAt).Milliseconds(),
			})
		case combat.OutcomeCompleted:
			w.resolveWindow(ctx, npc, window, now)
		}
	}
}

func cancelReason(npc *state.Entity, now time.Time) string {
	switch {
	case npc.IsDead():
		return "died"
	case npc.Stunned(now):
		return "stunned"
	default:
		return "moved"
	}
}

func (w *World) resolveWindow(ctx context.Context, npc *state.Entity, window state.AttackWindow, now time.Time) {
	profile := w.library.Profile(npc.Variant)
	target, ok := w.entityByID(window.TargetID)

	if window.Kind == state.ActionHeal {
		w.resolveHeal(ctx, npc, target, ok, profile)
		return
	}

	reach := strikeReachFor(profile)
	if !ok || target.IsDead() || !combat.InStrikeRange(npc.Pos, target.Pos, reach) {
		w.presentation.ActionResolved(npc.ID, window.TargetID, window.Kind, false)
		combatlog.AttackMissed(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), w.refFor(window.TargetID))
		return
	}

	damage := npc.Stats.GetDerived(stats.DerivedAttackDamage)
	delta := target.TakeDamage(damage)
	if delta == 0 {
		w.presentation.ActionResolved(npc.ID, target.ID, window.Kind, false)
		combatlog.AttackMissed(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), w.refFor(target.ID))
		return
	}
	target.LastHitBy = npc.ID

	applied := w.applyStrikeHooks(ctx, npc, target, profile, -delta, now)

	w.presentation.ActionResolved(npc.ID, target.ID, window.Kind, true)
	combatlog.AttackLanded(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), w.refFor(target.ID), combatlog.AttackLandedPayload{
		Damage: -delta,
		Hooks:  applied,
	})
	lifecyclelog.Damaged(ctx, w.publisher, w.currentTick, w.refFor(target.ID), lifecyclelog.HealthDeltaPayload{
		Delta:     delta,
		Health:    target.Health,
		MaxHealth: target.MaxHealth,
		SourceID:  npc.ID,
	})
}

func (w *World) resolveHeal(ctx context.Context, healer, target *state.Entity, ok bool, profile catalog.Profile) {
	if !ok || target.IsDead() || !combat.InStrikeRange(healer.Pos, target.Pos, profile.HealRadius) {
		w.presentation.ActionResolved(healer.ID, "", state.ActionHeal, false)
		combatlog.AttackMissed(ctx, w.publisher, w.currentTick, w.npcRef(healer.ID), w.refFor(""))
		return
	}
	amount := healer.Stats.GetDerived(stats.DerivedHealPower)
	delta := target.Heal(amount)
	if delta <= 0 {
		w.presentation.ActionResolved(healer.ID, target.ID, state.ActionHeal, false)
		return
	}
	w.presentation.ActionResolved(healer.ID, target.ID, state.ActionHeal, true)
	combatlog.HealApplied(ctx, w.publisher, w.currentTick, w.npcRef(healer.ID), w.refFor(target.ID), combatlog.HealAppliedPayload{
		Amount: delta,
	})
	lifecyclelog.Healed(ctx, w.publisher, w.currentTick, w.refFor(target.ID), lifecyclelog.HealthDeltaPayload{
		Delta:     delta,
		Health:    target.Health,
		MaxHealth: target.MaxHealth,
		SourceID:  healer.ID,
	})
}

// strikeReachFor picks the nominal completion range: the close-quarters
// strike range when the profile defines one, otherwise the attack range.
func strikeReachFor(profile catalog.Profile) float64 {
	if profile.StrikeRange > 0 && (profile.AttackRange <= 0 || profile.StrikeRange < profile.AttackRange) {
		return profile.StrikeRange
	}
	return profile.AttackRange
}

func hooksFor(profile catalog.Profile) combat.Hooks {
	return combat.Hooks{
		LifestealFactor:     profile.Lifesteal,
		StunInterval:        profile.StunEveryNth,
		StunDuration:        secondsToDuration(profile.StunSeconds),
		SplashRadius:        profile.SplashRadius,
		SplashFactor:        profile.SplashFactor,
		MindControlDuration: secondsToDuration(profile.MindControlSeconds),
		MindControlCooldown: secondsToDuration(profile.MindControlCooldown),
	}
}

// applyStrikeHooks fires the configured on-hit effects for a landed
// strike. dealt is the positive damage actually applied to the primary
// target.
func (w *World) applyStrikeHooks(ctx context.Context, npc, target *state.Entity, profile catalog.Profile, dealt float64, now time.Time) []string {
	hooks := hooksFor(profile)
	var applied []string

	if hooks.LifestealFactor > 0 {
		healed := npc.Heal(dealt * hooks.LifestealFactor)
		if healed > 0 {
			applied = append(applied, "lifesteal")
			lifecyclelog.Healed(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), lifecyclelog.HealthDeltaPayload{
				Delta:     healed,
				Health:    npc.Health,
				MaxHealth: npc.MaxHealth,
				SourceID:  npc.ID,
			})
		}
	}

	if hooks.StunTriggered(&npc.Blackboard) {
		target.ApplyStun(hooks.StunDuration, now)
		applied = append(applied, "stun")
		statuslog.StunApplied(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), w.refFor(target.ID), statuslog.StunPayload{
			DurationMs: hooks.StunDuration.Milliseconds(),
			SourceID:   npc.ID,
		})
	}

	if hooks.SplashRadius > 0 && hooks.SplashFactor > 0 {
		victims := combat.SplashVictims(w.allEntities(), target.Pos, hooks.SplashRadius, npc.ID, target.ID)
		splash := dealt * hooks.SplashFactor
		hit := false
		for _, victim := range victims {
			delta := victim.TakeDamage(splash)
			if delta == 0 {
				continue
			}
			hit = true
			victim.LastHitBy = npc.ID
			lifecyclelog.Damaged(ctx, w.publisher, w.currentTick, w.refFor(victim.ID), lifecyclelog.HealthDeltaPayload{
				Delta:     delta,
				Health:    victim.Health,
				MaxHealth: victim.MaxHealth,
				SourceID:  npc.ID,
			})
		}
		if hit {
			applied = append(applied, "splash")
			w.presentation.EffectBurst("splash", target.Pos)
		}
	}

	// A victim already held by some controller is never re-seized; the
	// standing grip runs its course untouched.
	if _, isNPC := w.npcs[target.ID]; isNPC {
		_, held := target.MindControlled(now)
		if !held && hooks.CanMindControl(&npc.Blackboard, w.controlsAnother(npc, now), now) {
			target.ApplyMindControl(npc.ID, hooks.MindControlDuration, now)
			hooks.MarkMindControlUsed(&npc.Blackboard, target.ID, now)
			applied = append(applied, "mind-control")
			statuslog.MindControlApplied(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), w.refFor(target.ID), statuslog.MindControlPayload{
				ControllerID: npc.ID,
				DurationMs:   hooks.MindControlDuration.Milliseconds(),
			})
		}
	}

	return applied
}

// allEntities returns every living entity pointer, players first, in
// sorted-ID order for deterministic splash selection.
func (w *World) allEntities() []*state.Entity {
	out := make([]*state.Entity, 0, len(w.players)+len(w.npcs))
	for _, id := range sortedIDs(w.players) {
		out = append(out, w.players[id])
	}
	for _, id := range sortedIDs(w.npcs) {
		out = append(out, w.npcs[id])
	}
	return out
}
