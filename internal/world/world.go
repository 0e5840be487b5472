// Package world owns the simulation state and the per-tick update loop.
// Everything in it runs on a single goroutine: the hub snapshots state
// between ticks, and all external mutation goes through World methods
// called from that same loop.
package world

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/state"
	"puppet-master/sim/logging"
	lifecyclelog "puppet-master/sim/logging/lifecycle"
	"puppet-master/sim/stats"
)

// World is the authoritative simulation container. Not safe for concurrent
// use; every method must be called from the tick goroutine.
type World struct {
	cfg Config
	rng *rand.Rand

	publisher    logging.Publisher
	presentation Presentation
	progression  Progression
	library      *catalog.Library

	currentTick uint64

	players   map[string]*state.Entity
	npcs      map[string]*state.Entity
	parcels   map[string]*Parcel
	buildings map[string]*Building

	// drains tracks in-progress corpse drains keyed by corpse ID.
	drains map[string]*drainOp

	nextParcelID   uint64
	nextBuildingID uint64
}

// NewWorld assembles a world from its collaborators. Nil collaborators are
// replaced with no-op implementations so tests can pass only what they
// observe.
func NewWorld(cfg Config, library *catalog.Library, publisher logging.Publisher, presentation Presentation, progression Progression) *World {
	cfg = cfg.normalized()
	if library == nil {
		library = catalog.NewLibrary()
	}
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	if presentation == nil {
		presentation = NopPresentation()
	}
	if progression == nil {
		progression = NopProgression()
	}
	return &World{
		cfg:          cfg,
		rng:          newRNG(cfg.Seed),
		publisher:    publisher,
		presentation: presentation,
		progression:  progression,
		library:      library,
		players:      make(map[string]*state.Entity),
		npcs:         make(map[string]*state.Entity),
		parcels:      make(map[string]*Parcel),
		buildings:    make(map[string]*Building),
		drains:       make(map[string]*drainOp),
	}
}

// CurrentTick returns the tick counter after the last Step.
func (w *World) CurrentTick() uint64 {
	return w.currentTick
}

// SpawnNPC creates an NPC of the given variant at pos, seeded from its
// catalog profile, and returns its ID.
func (w *World) SpawnNPC(ctx context.Context, variant state.Variant, pos state.Vec2) string {
	profile := w.library.Profile(variant)

	base := stats.ValueSet{}
	base[stats.StatVigor] = profile.Vigor
	base[stats.StatFerocity] = profile.Ferocity
	base[stats.StatSwiftness] = profile.Swiftness
	base[stats.StatWill] = profile.Will

	component := stats.NewComponent(base)
	component.Resolve(w.currentTick)

	npc := &state.Entity{
		ID:        uuid.NewString(),
		Variant:   variant,
		Pos:       w.clampToBounds(pos),
		Facing:    state.FacingRight,
		Home:      w.clampToBounds(pos),
		MaxHealth: component.GetDerived(stats.DerivedMaxHealth),
		Stats:     component,
		Blackboard: state.Blackboard{
			Phase: state.PhaseIdle,
		},
	}
	npc.Health = npc.MaxHealth
	w.npcs[npc.ID] = npc

	lifecyclelog.Spawned(ctx, w.publisher, w.currentTick, w.npcRef(npc.ID), lifecyclelog.SpawnedPayload{
		Variant: string(variant),
		SpawnX:  npc.Pos.X,
		SpawnY:  npc.Pos.Y,
	})
	return npc.ID
}

// AddPlayer registers an externally driven player entity and returns its ID.
// Player movement arrives through SetPlayerVelocity; the world only applies
// it and exposes the player as a threat and target to NPC behaviors.
func (w *World) AddPlayer(pos state.Vec2, maxHealth float64) string {
	if maxHealth <= 0 {
		maxHealth = 100
	}
	player := &state.Entity{
		ID:        uuid.NewString(),
		Pos:       w.clampToBounds(pos),
		Facing:    state.FacingRight,
		Home:      w.clampToBounds(pos),
		MaxHealth: maxHealth,
	}
	player.Health = maxHealth
	w.players[player.ID] = player
	return player.ID
}

// RemovePlayer drops a player; any drain it was running cancels with a
// fresh decay window for the corpse.
func (w *World) RemovePlayer(playerID string, now time.Time) {
	if _, ok := w.players[playerID]; !ok {
		return
	}
	w.cancelDrainsBy(playerID, now)
	delete(w.players, playerID)
}

// SetPlayerVelocity sets the velocity the next movement step applies.
func (w *World) SetPlayerVelocity(playerID string, v state.Vec2) {
	if player, ok := w.players[playerID]; ok && !player.IsDead() {
		player.MoveIntent = v
	}
}

// NPC exposes an entity for tests and in-process callers.
func (w *World) NPC(id string) (*state.Entity, bool) {
	npc, ok := w.npcs[id]
	return npc, ok
}

// Player exposes a player entity for tests and in-process callers.
func (w *World) Player(id string) (*state.Entity, bool) {
	player, ok := w.players[id]
	return player, ok
}

// DamageNPC applies external damage (a player strike) to an NPC. Death is
// picked up by the same tick's defeat sweep.
func (w *World) DamageNPC(ctx context.Context, npcID string, amount float64, attackerID string) float64 {
	npc, ok := w.npcs[npcID]
	if !ok || npc.IsDead() {
		return 0
	}
	delta := npc.TakeDamage(amount)
	if delta == 0 {
		return 0
	}
	npc.LastHitBy = attackerID
	lifecyclelog.Damaged(ctx, w.publisher, w.currentTick, w.npcRef(npcID), lifecyclelog.HealthDeltaPayload{
		Delta:     delta,
		Health:    npc.Health,
		MaxHealth: npc.MaxHealth,
		SourceID:  attackerID,
	})
	return delta
}

// Step advances the simulation by one tick. The pipeline order is fixed:
// corpse sweep, behavior decisions over sorted IDs, movement, swing
// advancement, then the defeat sweep.
func (w *World) Step(ctx context.Context, now time.Time, dt float64) {
	w.currentTick++

	w.advanceCorpses(ctx, now)

	for _, id := range sortedIDs(w.npcs) {
		npc := w.npcs[id]
		if npc == nil || npc.IsDead() {
			continue
		}
		npc.MoveIntent = state.Vec2{}
		npc.Stats.Resolve(w.currentTick)
		if npc.Stunned(now) {
			continue
		}
		w.runBehavior(ctx, npc, now)
	}

	w.applyMovement(dt)
	w.advanceSwings(ctx, now)
	w.sweepDefeats(ctx, now)
}

func (w *World) applyMovement(dt float64) {
	for _, id := range sortedIDs(w.npcs) {
		w.moveEntity(w.npcs[id], dt)
	}
	for _, id := range sortedIDs(w.players) {
		w.moveEntity(w.players[id], dt)
	}
}

func (w *World) moveEntity(e *state.Entity, dt float64) {
	if e == nil || e.IsDead() {
		return
	}
	v := e.MoveIntent
	e.Velocity = v
	if v.IsZero() || dt <= 0 {
		return
	}
	e.Pos = w.clampToBounds(e.Pos.Add(v.Scale(dt)))
	e.SetFacingFromVelocity(v)
}

func (w *World) clampToBounds(pos state.Vec2) state.Vec2 {
	return state.Vec2{
		X: state.Clamp(pos.X, 0, w.cfg.Width),
		Y: state.Clamp(pos.Y, 0, w.cfg.Height),
	}
}

// entityByID resolves an ID against players first, then NPCs.
func (w *World) entityByID(id string) (*state.Entity, bool) {
	if player, ok := w.players[id]; ok {
		return player, true
	}
	npc, ok := w.npcs[id]
	return npc, ok
}

func (w *World) npcRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindNPC}
}

func (w *World) refFor(id string) logging.EntityRef {
	if _, ok := w.players[id]; ok {
		return logging.EntityRef{ID: id, Kind: logging.EntityKindPlayer}
	}
	if _, ok := w.npcs[id]; ok {
		return logging.EntityRef{ID: id, Kind: logging.EntityKindNPC}
	}
	return logging.EntityRef{ID: id, Kind: logging.EntityKindUnknown}
}

func logEntityRefBuilding(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindBuilding}
}

func sortedIDs(entities map[string]*state.Entity) []string {
	ids := make([]string, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
