package logging

import (
	"context"
	"testing"
	"time"
)

type captureSink struct {
	events chan Event
}

func (s *captureSink) Write(event Event) error {
	s.events <- event
	return nil
}

func (s *captureSink) Close(context.Context) error { return nil }

func TestRouterDeliversToSinks(t *testing.T) {
	t.Parallel()

	sink := &captureSink{events: make(chan Event, 4)}
	cfg := DefaultConfig()
	cfg.MinimumSeverity = SeverityDebug
	router := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})

	router.Publish(context.Background(), Event{
		Type:     "combat.attack_landed",
		Tick:     7,
		Severity: SeverityInfo,
	})

	select {
	case got := <-sink.events:
		if got.Type != "combat.attack_landed" || got.Tick != 7 {
			t.Fatalf("unexpected event %+v", got)
		}
		if got.Time.IsZero() {
			t.Fatalf("router did not stamp the event time")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never reached the sink")
	}

	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	t.Parallel()

	sink := &captureSink{events: make(chan Event, 4)}
	cfg := DefaultConfig()
	cfg.MinimumSeverity = SeverityWarn
	router := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})

	router.Publish(context.Background(), Event{Type: "lifecycle.damaged", Severity: SeverityDebug})
	router.Publish(context.Background(), Event{Type: "system.alert", Severity: SeverityError})

	select {
	case got := <-sink.events:
		if got.Type != "system.alert" {
			t.Fatalf("severity filter leaked %q", got.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("error event never arrived")
	}

	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if stats := router.Stats(); stats.EventsTotal != 1 {
		t.Fatalf("expected 1 accepted event, got %d", stats.EventsTotal)
	}
}

func TestRouterIgnoresEmptyAndClosedPublishes(t *testing.T) {
	t.Parallel()

	sink := &captureSink{events: make(chan Event, 4)}
	router := NewRouter(nil, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})

	router.Publish(context.Background(), Event{})
	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	router.Publish(context.Background(), Event{Type: "late", Severity: SeverityError})

	select {
	case got := <-sink.events:
		t.Fatalf("unexpected delivery %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}
