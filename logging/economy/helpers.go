package economy

import (
	"context"

	"puppet-master/sim/logging"
)

const (
	// EventParcelDropped is emitted when a resource parcel hits the ground.
	EventParcelDropped logging.EventType = "economy.parcel_dropped"
	// EventParcelPickedUp is emitted when an entity lifts a ground parcel.
	EventParcelPickedUp logging.EventType = "economy.parcel_picked_up"
	// EventParcelDelivered is emitted when a carried parcel reaches a building.
	EventParcelDelivered logging.EventType = "economy.parcel_delivered"
	// EventExperienceAwarded is emitted when a death grants XP.
	EventExperienceAwarded logging.EventType = "economy.experience_awarded"
	// EventSkullSpawned is emitted for the at-most-one skull token per death.
	EventSkullSpawned logging.EventType = "economy.skull_spawned"
)

type ParcelPayload struct {
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}

type ExperiencePayload struct {
	Amount int `json:"amount"`
}

func ParcelDropped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ParcelPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventParcelDropped,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
	})
}

func ParcelPickedUp(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ParcelPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventParcelPickedUp,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEconomy,
		Payload:  payload,
	})
}

func ParcelDelivered(ctx context.Context, pub logging.Publisher, tick uint64, actor, building logging.EntityRef, payload ParcelPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventParcelDelivered,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{building},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
	})
}

func ExperienceAwarded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ExperiencePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventExperienceAwarded,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
	})
}

func SkullSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	publish(ctx, pub, logging.Event{
		Type:     EventSkullSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
