package world

import (
	"sort"
	"time"

	"puppet-master/sim/internal/state"
)

// Snapshot is the read-only view handed to observers. It copies every
// value it exposes, so holding a snapshot across ticks is safe.
type Snapshot struct {
	Tick      uint64             `json:"tick"`
	Entities  []EntitySnapshot   `json:"entities"`
	Parcels   []ParcelSnapshot   `json:"parcels"`
	Buildings []BuildingSnapshot `json:"buildings"`
}

type EntitySnapshot struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Variant   string  `json:"variant,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Facing    string  `json:"facing"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Phase     string  `json:"phase,omitempty"`
	IsCorpse  bool    `json:"isCorpse,omitempty"`
	Carrying  string  `json:"carrying,omitempty"`
	Swinging  bool    `json:"swinging,omitempty"`
	Stunned   bool    `json:"stunned,omitempty"`
}

type ParcelSnapshot struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind,omitempty"`
	Amount  int     `json:"amount,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	IsSkull bool    `json:"isSkull,omitempty"`
}

type BuildingSnapshot struct {
	ID     string         `json:"id"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Stored map[string]int `json:"stored,omitempty"`
}

// Snapshot captures the world in sorted-ID order.
func (w *World) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{Tick: w.currentTick}

	for _, id := range sortedIDs(w.players) {
		snap.Entities = append(snap.Entities, entitySnapshot(w.players[id], "player", now))
	}
	for _, id := range sortedIDs(w.npcs) {
		snap.Entities = append(snap.Entities, entitySnapshot(w.npcs[id], "npc", now))
	}

	parcelIDs := make([]string, 0, len(w.parcels))
	for id := range w.parcels {
		parcelIDs = append(parcelIDs, id)
	}
	sort.Strings(parcelIDs)
	for _, id := range parcelIDs {
		parcel := w.parcels[id]
		snap.Parcels = append(snap.Parcels, ParcelSnapshot{
			ID:      parcel.ID,
			Kind:    string(parcel.Kind),
			Amount:  parcel.Amount,
			X:       parcel.Pos.X,
			Y:       parcel.Pos.Y,
			IsSkull: parcel.IsSkull,
		})
	}

	buildingIDs := make([]string, 0, len(w.buildings))
	for id := range w.buildings {
		buildingIDs = append(buildingIDs, id)
	}
	sort.Strings(buildingIDs)
	for _, id := range buildingIDs {
		building := w.buildings[id]
		stored := make(map[string]int, len(building.Stored))
		for kind, amount := range building.Stored {
			stored[string(kind)] = amount
		}
		snap.Buildings = append(snap.Buildings, BuildingSnapshot{
			ID:     building.ID,
			X:      building.Pos.X,
			Y:      building.Pos.Y,
			Stored: stored,
		})
	}

	return snap
}

func entitySnapshot(e *state.Entity, kind string, now time.Time) EntitySnapshot {
	snap := EntitySnapshot{
		ID:        e.ID,
		Kind:      kind,
		Variant:   string(e.Variant),
		X:         e.Pos.X,
		Y:         e.Pos.Y,
		Facing:    string(e.Facing),
		Health:    e.Health,
		MaxHealth: e.MaxHealth,
		Phase:     string(e.Blackboard.Phase),
		IsCorpse:  e.IsCorpse(),
		Swinging:  e.Swing.Active,
		Stunned:   e.Stunned(now),
	}
	if e.Carry != nil {
		snap.Carrying = string(e.Carry.Kind)
	}
	return snap
}
