package world

import (
	"context"
	"fmt"
	"sort"

	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/state"
	economylog "puppet-master/sim/logging/economy"
)

// Building is a static delivery point that accepts certain resource kinds
// and accumulates what gets delivered to it.
type Building struct {
	ID      string
	Pos     state.Vec2
	Accepts map[state.ResourceKind]bool
	Stored  map[state.ResourceKind]int
	OwnerID string
}

// AddBuilding places a building and returns its ID. Building IDs are
// sequential for the same determinism reason parcels are.
func (w *World) AddBuilding(pos state.Vec2, accepts []state.ResourceKind, ownerID string) string {
	w.nextBuildingID++
	building := &Building{
		ID:      fmt.Sprintf("building-%d", w.nextBuildingID),
		Pos:     w.clampToBounds(pos),
		Accepts: make(map[state.ResourceKind]bool, len(accepts)),
		Stored:  make(map[state.ResourceKind]int),
		OwnerID: ownerID,
	}
	for _, kind := range accepts {
		building.Accepts[kind] = true
	}
	w.buildings[building.ID] = building
	return building.ID
}

// Building exposes a building for tests and in-process callers.
func (w *World) Building(id string) (*Building, bool) {
	building, ok := w.buildings[id]
	return building, ok
}

// nearestAcceptingBuilding finds the closest building that takes kind.
// Unbounded radius: a carrier with a parcel always has a destination when
// any accepting building exists.
func (w *World) nearestAcceptingBuilding(kind state.ResourceKind, origin state.Vec2) (*Building, bool) {
	ids := make([]string, 0, len(w.buildings))
	for id, building := range w.buildings {
		if building.Accepts[kind] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	candidates := make([]ai.Candidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, ai.Candidate{ID: id, Pos: w.buildings[id].Pos})
	}
	span := w.cfg.Width + w.cfg.Height
	cand, ok := ai.FindNearest(candidates, origin, span, nil)
	if !ok {
		return nil, false
	}
	building, ok := w.buildings[cand.ID]
	return building, ok
}

// deliverCarried hands an entity's parcel to a building.
func (w *World) deliverCarried(ctx context.Context, e *state.Entity, building *Building) bool {
	if building == nil || e.Carry == nil || !building.Accepts[e.Carry.Kind] {
		return false
	}
	carried, _ := e.DropCarry()
	e.Blackboard.ResetErrand()
	building.Stored[carried.Kind] += carried.Amount
	economylog.ParcelDelivered(ctx, w.publisher, w.currentTick, w.refFor(e.ID),
		logEntityRefBuilding(building.ID), economylog.ParcelPayload{
			Kind:     string(carried.Kind),
			Quantity: carried.Amount,
		})
	return true
}
