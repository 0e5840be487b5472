package lifecycle

import (
	"context"

	"puppet-master/sim/logging"
)

const (
	// EventSpawned is emitted when an NPC enters the world.
	EventSpawned logging.EventType = "lifecycle.spawned"
	// EventDied is emitted exactly once when an entity reaches the dead state.
	EventDied logging.EventType = "lifecycle.died"
	// EventDamaged is emitted when an entity loses health.
	EventDamaged logging.EventType = "lifecycle.damaged"
	// EventHealed is emitted when an entity gains health.
	EventHealed logging.EventType = "lifecycle.healed"
	// EventCorpseDrained is emitted when a drain interaction completes.
	EventCorpseDrained logging.EventType = "lifecycle.corpse_drained"
	// EventCorpseDecayed is emitted when a corpse times out unremarked.
	EventCorpseDecayed logging.EventType = "lifecycle.corpse_decayed"
)

type SpawnedPayload struct {
	Variant string  `json:"variant"`
	SpawnX  float64 `json:"spawnX"`
	SpawnY  float64 `json:"spawnY"`
}

type DiedPayload struct {
	Variant string `json:"variant"`
	KillerID string `json:"killerId,omitempty"`
}

type HealthDeltaPayload struct {
	Delta     float64 `json:"delta"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	SourceID  string  `json:"sourceId,omitempty"`
}

func Spawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SpawnedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func Died(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DiedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventDied,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func Damaged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload HealthDeltaPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventDamaged,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func Healed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload HealthDeltaPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventHealed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func CorpseDrained(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	publish(ctx, pub, logging.Event{
		Type:     EventCorpseDrained,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
	})
}

func CorpseDecayed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	publish(ctx, pub, logging.Event{
		Type:     EventCorpseDecayed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
