package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Sink receives routed events. Write errors are reported to the fallback
// logger; they never reach the simulation.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans events out to sinks from a single dispatch goroutine. The
// publish path is non-blocking: a full queue drops the event and rate-limits
// a warning instead of stalling the tick loop.
type Router struct {
	cfg      Config
	queue    chan Event
	sinks    []NamedSink
	clock    Clock
	fallback *log.Logger
	cancel   context.CancelFunc
	closed   atomic.Bool
	wg       sync.WaitGroup

	eventsTotal  atomic.Uint64
	droppedTotal atomic.Uint64
	lastDropLog  atomic.Int64
}

type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

func NewRouter(clock Clock, cfg Config, sinks []NamedSink) *Router {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 512
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		cfg:      cfg,
		queue:    make(chan Event, bufferSize),
		clock:    clock,
		fallback: log.New(os.Stderr, "[logging] ", log.LstdFlags),
		cancel:   cancel,
	}
	for _, named := range sinks {
		if named.Sink == nil {
			continue
		}
		r.sinks = append(r.sinks, named)
	}

	r.wg.Add(1)
	go r.dispatch(ctx)
	return r
}

func (r *Router) dispatch(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case event := <-r.queue:
					r.forward(event)
				default:
					return
				}
			}
		case event := <-r.queue:
			r.forward(event)
		}
	}
}

func (r *Router) forward(event Event) {
	if event.Severity < r.cfg.MinimumSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	r.eventsTotal.Add(1)
	for _, named := range r.sinks {
		if err := named.Sink.Write(cloneEvent(event)); err != nil {
			r.fallback.Printf("sink %s failed: %v", named.Name, err)
		}
	}
}

func (r *Router) Publish(ctx context.Context, event Event) {
	if event.Type == "" || r.closed.Load() {
		return
	}
	select {
	case r.queue <- event:
	default:
		r.handleDrop(event)
	}
}

func (r *Router) handleDrop(event Event) {
	r.droppedTotal.Add(1)
	interval := r.cfg.DropWarnInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	now := time.Now().UnixNano()
	next := r.lastDropLog.Load()
	if next == 0 || now >= next {
		if r.lastDropLog.CompareAndSwap(next, now+interval.Nanoseconds()) {
			r.fallback.Printf("dropping event type=%s tick=%d", event.Type, event.Tick)
		}
	}
}

func (r *Router) Close(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.cancel()
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	var firstErr error
	for _, named := range r.sinks {
		if err := named.Sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) Stats() RouterStats {
	return RouterStats{
		EventsTotal:  r.eventsTotal.Load(),
		DroppedTotal: r.droppedTotal.Load(),
	}
}

// Sink returns the named sink, for tests that inspect a memory sink.
func (r *Router) Sink(name string) Sink {
	for _, named := range r.sinks {
		if named.Name == name {
			return named.Sink
		}
	}
	return nil
}
