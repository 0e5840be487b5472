package statuseffects

import (
	"context"

	"puppet-master/sim/logging"
)

const (
	// EventStunApplied is emitted when a stun lands on an entity.
	EventStunApplied logging.EventType = "status.stun_applied"
	// EventMindControlApplied is emitted when a controller takes an entity.
	EventMindControlApplied logging.EventType = "status.mind_control_applied"
	// EventMindControlRemoved is emitted when control clears early.
	EventMindControlRemoved logging.EventType = "status.mind_control_removed"
)

type StunPayload struct {
	DurationMs int64  `json:"durationMs"`
	SourceID   string `json:"sourceId,omitempty"`
}

type MindControlPayload struct {
	ControllerID string `json:"controllerId"`
	DurationMs   int64  `json:"durationMs,omitempty"`
}

func StunApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload StunPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventStunApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func MindControlApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload MindControlPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventMindControlApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func MindControlRemoved(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MindControlPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventMindControlRemoved,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
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
