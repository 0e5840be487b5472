package combat

import (
	"context"

	"puppet-master/sim/logging"
)

const (
	// EventAttackCommitted is emitted when a commit window opens.
	EventAttackCommitted logging.EventType = "combat.attack_committed"
	// EventAttackCancelled is emitted when a window cancels before landing.
	EventAttackCancelled logging.EventType = "combat.attack_cancelled"
	// EventAttackLanded is emitted when a completed window applies damage.
	EventAttackLanded logging.EventType = "combat.attack_landed"
	// EventAttackMissed is emitted when a completed window finds the target
	// out of tolerance range.
	EventAttackMissed logging.EventType = "combat.attack_missed"
	// EventHealApplied is emitted when a completed heal window lands.
	EventHealApplied logging.EventType = "combat.heal_applied"
)

type AttackCommittedPayload struct {
	Kind       string  `json:"kind"`
	DurationMs int64   `json:"durationMs"`
	Range      float64 `json:"range,omitempty"`
}

type AttackCancelledPayload struct {
	Reason    string `json:"reason"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type AttackLandedPayload struct {
	Damage float64 `json:"damage"`
	Hooks  []string `json:"hooks,omitempty"`
}

type HealAppliedPayload struct {
	Amount float64 `json:"amount"`
}

func AttackCommitted(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload AttackCommittedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventAttackCommitted,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func AttackCancelled(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload AttackCancelledPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventAttackCancelled,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func AttackLanded(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload AttackLandedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventAttackLanded,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func AttackMissed(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef) {
	publish(ctx, pub, logging.Event{
		Type:     EventAttackMissed,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
	})
}

func HealApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload HealAppliedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventHealApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
