package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

type EntityKind string

const (
	EntityKindUnknown  EntityKind = "unknown"
	EntityKindPlayer   EntityKind = "player"
	EntityKindNPC      EntityKind = "npc"
	EntityKindBuilding EntityKind = "building"
	EntityKindParcel   EntityKind = "parcel"
	EntityKindWorld    EntityKind = "world"
)

const (
	CategoryGameplay  = "gameplay"
	CategoryCombat    = "combat"
	CategoryEconomy   = "economy"
	CategoryLifecycle = "lifecycle"
	CategorySystem    = "system"
)

// EntityRef is a weak reference carried in events; consumers re-resolve it.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Event is one structured simulation occurrence. Payloads are typed per
// event in the domain helper packages; Extra carries ad-hoc context.
type Event struct {
	Type     EventType      `json:"type"`
	Tick     uint64         `json:"tick"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Targets  []EntityRef    `json:"targets,omitempty"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Publisher accepts events from the simulation. Publishing is always
// fire-and-forget; the core never blocks on or retries an event.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a publisher that discards everything.
func NopPublisher() Publisher {
	return nopPublisher{}
}

func cloneEvent(event Event) Event {
	cloned := event
	if len(event.Targets) > 0 {
		cloned.Targets = append([]EntityRef(nil), event.Targets...)
	}
	if event.Extra != nil {
		copied := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			copied[k] = v
		}
		cloned.Extra = copied
	}
	return cloned
}
