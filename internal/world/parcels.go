package world

import (
	"context"
	"fmt"
	"sort"

	"puppet-master/sim/internal/ai"
	"puppet-master/sim/internal/state"
	economylog "puppet-master/sim/logging/economy"
)

// Parcel is a resource quantity lying on the ground. Skull parcels are
// trophies with no resource value; they cannot be carried by NPCs.
type Parcel struct {
	ID      string
	Kind    state.ResourceKind
	Amount  int
	Pos     state.Vec2
	IsSkull bool
}

// spawnParcel places a parcel and emits the drop event. Parcel IDs are
// sequential rather than random so replays with the same seed produce the
// same identifiers.
func (w *World) spawnParcel(ctx context.Context, kind state.ResourceKind, amount int, pos state.Vec2, sourceID, reason string) *Parcel {
	if amount <= 0 {
		return nil
	}
	w.nextParcelID++
	parcel := &Parcel{
		ID:     fmt.Sprintf("parcel-%d", w.nextParcelID),
		Kind:   kind,
		Amount: amount,
		Pos:    w.clampToBounds(pos),
	}
	w.parcels[parcel.ID] = parcel
	economylog.ParcelDropped(ctx, w.publisher, w.currentTick, w.refFor(sourceID), economylog.ParcelPayload{
		Kind:     string(kind),
		Quantity: amount,
		Reason:   reason,
	})
	return parcel
}

func (w *World) spawnSkull(ctx context.Context, pos state.Vec2, sourceID string) {
	w.nextParcelID++
	parcel := &Parcel{
		ID:      fmt.Sprintf("parcel-%d", w.nextParcelID),
		Pos:     w.clampToBounds(pos),
		IsSkull: true,
	}
	w.parcels[parcel.ID] = parcel
	economylog.SkullSpawned(ctx, w.publisher, w.currentTick, w.refFor(sourceID))
}

// Parcel exposes a ground parcel for tests and in-process callers.
func (w *World) Parcel(id string) (*Parcel, bool) {
	parcel, ok := w.parcels[id]
	return parcel, ok
}

// parcelCandidates lists liftable parcels of a kind in sorted-ID order.
func (w *World) parcelCandidates(kind state.ResourceKind) []ai.Candidate {
	ids := make([]string, 0, len(w.parcels))
	for id, parcel := range w.parcels {
		if parcel.IsSkull || parcel.Kind != kind {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]ai.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, ai.Candidate{ID: id, Pos: w.parcels[id].Pos})
	}
	return out
}

// nearestParcel finds the closest liftable parcel of kind within radius.
func (w *World) nearestParcel(kind state.ResourceKind, origin state.Vec2, radius float64) (*Parcel, bool) {
	cand, ok := ai.FindNearest(w.parcelCandidates(kind), origin, radius, nil)
	if !ok {
		return nil, false
	}
	parcel, ok := w.parcels[cand.ID]
	return parcel, ok
}

// liftableParcelCandidates lists every carryable parcel regardless of
// kind, in sorted-ID order.
func (w *World) liftableParcelCandidates() []ai.Candidate {
	ids := make([]string, 0, len(w.parcels))
	for id, parcel := range w.parcels {
		if parcel.IsSkull {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]ai.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, ai.Candidate{ID: id, Pos: w.parcels[id].Pos})
	}
	return out
}

// nearestLiftableParcel finds the closest carryable parcel of any kind
// within radius.
func (w *World) nearestLiftableParcel(origin state.Vec2, radius float64) (*Parcel, bool) {
	cand, ok := ai.FindNearest(w.liftableParcelCandidates(), origin, radius, nil)
	if !ok {
		return nil, false
	}
	parcel, ok := w.parcels[cand.ID]
	return parcel, ok
}

// liftParcel moves a ground parcel into an entity's hands. The pickup is
// rejected if the entity already carries something.
func (w *World) liftParcel(ctx context.Context, e *state.Entity, parcel *Parcel) bool {
	if parcel == nil || parcel.IsSkull {
		return false
	}
	if !e.PickUp(state.CarriedResource{Kind: parcel.Kind, Amount: parcel.Amount}) {
		return false
	}
	delete(w.parcels, parcel.ID)
	economylog.ParcelPickedUp(ctx, w.publisher, w.currentTick, w.refFor(e.ID), economylog.ParcelPayload{
		Kind:     string(parcel.Kind),
		Quantity: parcel.Amount,
	})
	return true
}

// dropCarried puts an entity's carried parcel back on the ground at its
// feet, full amount, no attrition.
func (w *World) dropCarried(ctx context.Context, e *state.Entity, reason string) {
	carried, ok := e.DropCarry()
	if !ok {
		return
	}
	e.Blackboard.ResetErrand()
	w.spawnParcel(ctx, carried.Kind, carried.Amount, e.Pos, e.ID, reason)
}
