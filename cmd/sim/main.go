// Command sim runs the headless NPC simulation with a websocket observer
// endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/hub"
	"puppet-master/sim/internal/state"
	"puppet-master/sim/internal/world"
	"puppet-master/sim/logging"
	"puppet-master/sim/logging/sinks"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "listen address for the observer endpoint")
		catalogPath = flag.String("catalog", "", "optional YAML behavior profile overrides")
		seed        = flag.Int64("seed", 0, "world RNG seed (0 uses the default)")
		tickRate    = flag.Int("tick-rate", 15, "simulation ticks per second")
	)
	flag.Parse()

	if *tickRate <= 0 {
		*tickRate = 15
	}

	library := catalog.NewLibrary()
	if *catalogPath != "" {
		loaded, err := catalog.LoadFile(*catalogPath)
		if err != nil {
			log.Printf("catalog %s unusable, running on defaults: %v", *catalogPath, err)
		} else {
			library = loaded
		}
	}

	router := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout)},
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := router.Close(shutdownCtx); err != nil {
			log.Printf("logging shutdown: %v", err)
		}
	}()

	cfg := world.DefaultConfig()
	cfg.Seed = *seed

	w := world.NewWorld(cfg, library, router, nil, nil)
	seedWorld(w)

	observers := hub.New(router)
	defer observers.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", observers.ServeWS)
	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("observer endpoint listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runLoop(ctx, w, observers, *tickRate)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

// runLoop drives the fixed-rate tick until the context cancels. The world
// is only ever touched from this goroutine.
func runLoop(ctx context.Context, w *world.World, observers *hub.Hub, tickRate int) {
	interval := time.Second / time.Duration(tickRate)
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			w.Step(ctx, now, dt)
			observers.Broadcast(w.Snapshot(now))
		}
	}
}

// seedWorld stands up a small demonstration settlement.
func seedWorld(w *world.World) {
	ctx := context.Background()

	w.AddBuilding(state.Vec2{X: 400, Y: 400}, []state.ResourceKind{state.ResourceGold, state.ResourceFood}, "")

	w.SpawnNPC(ctx, state.VariantAggressive, state.Vec2{X: 700, Y: 300})
	w.SpawnNPC(ctx, state.VariantDefensive, state.Vec2{X: 750, Y: 420})
	w.SpawnNPC(ctx, state.VariantRanged, state.Vec2{X: 650, Y: 500})
	w.SpawnNPC(ctx, state.VariantCoward, state.Vec2{X: 500, Y: 600})
	w.SpawnNPC(ctx, state.VariantSupport, state.Vec2{X: 720, Y: 380})
	w.SpawnNPC(ctx, state.VariantPeasant, state.Vec2{X: 450, Y: 450})
	w.SpawnNPC(ctx, state.VariantMiner, state.Vec2{X: 900, Y: 700})
}
