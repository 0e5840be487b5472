package world

import (
	"context"
	"testing"

	"puppet-master/sim/behavior/catalog"
	"puppet-master/sim/internal/state"
)

func TestDefensiveAcquiresIntruderNearPost(t *testing.T) {
	t.Parallel()

	d := newDriver(t, nil, nil)
	npcID := d.w.SpawnNPC(context.Background(), state.VariantDefensive, state.Vec2{X: 500, Y: 500})
	playerID := d.w.AddPlayer(state.Vec2{X: 560, Y: 500}, 100)

	d.step(10)
	npc := d.mustNPC(npcID)
	if npc.Blackboard.TargetID != playerID {
		t.Fatalf("guard never acquired the intruder: target %q", npc.Blackboard.TargetID)
	}

	d.step(30)
	if d.mustPlayer(playerID).Health >= 100 {
		t.Fatalf("guard never struck the intruder inside detection range")
	}
}

func TestDefensiveDropsTargetFarFromHome(t *testing.T) {
	t.Parallel()

	d := newDriver(t, nil, nil)
	npcID := d.w.SpawnNPC(context.Background(), state.VariantDefensive, state.Vec2{X: 500, Y: 500})
	playerID := d.w.AddPlayer(state.Vec2{X: 560, Y: 500}, 100)

	d.step(5)
	npc := d.mustNPC(npcID)
	if npc.Blackboard.TargetID != playerID {
		t.Fatalf("guard never engaged: target %q", npc.Blackboard.TargetID)
	}

	// The intruder breaks off to a point well outside detection range of
	// the guard's home, though still within plain chase range of the guard
	// itself. An aggressive would keep coming; the guard lets go.
	player := d.mustPlayer(playerID)
	player.Pos = state.Vec2{X: 690, Y: 500}
	player.Health = 100
	d.step(1)
	if npc.Blackboard.TargetID != "" {
		t.Fatalf("guard kept a target %v units from home", state.Distance(player.Pos, npc.Home))
	}

	d.step(60)
	if player.Health < 100 {
		t.Fatalf("guard chased beyond its leash")
	}
}

func TestRangedClosesToPreferredStandoff(t *testing.T) {
	t.Parallel()

	d := newDriver(t, nil, nil)
	npcID := d.w.SpawnNPC(context.Background(), state.VariantRanged, state.Vec2{X: 500, Y: 500})
	playerID := d.w.AddPlayer(state.Vec2{X: 650, Y: 500}, 100)

	d.step(100)

	profile := catalog.Defaults(state.VariantRanged)
	npc := d.mustNPC(npcID)
	player := d.mustPlayer(playerID)
	dist := state.Distance(npc.Pos, player.Pos)
	if dist > profile.PreferredRange+10 {
		t.Fatalf("shooter stalled at %v, want the %v standoff", dist, profile.PreferredRange)
	}
	if dist < profile.PreferredRange-15 {
		t.Fatalf("shooter closed past the standoff: %v", dist)
	}
	if player.Health >= 100 {
		t.Fatalf("shooter never fired from its band")
	}
}

func TestRangedBacksAwayWhenCrowded(t *testing.T) {
	t.Parallel()

	d := newDriver(t, nil, nil)
	npcID := d.w.SpawnNPC(context.Background(), state.VariantRanged, state.Vec2{X: 500, Y: 500})
	playerID := d.w.AddPlayer(state.Vec2{X: 540, Y: 500}, 100)

	d.step(10)

	npc := d.mustNPC(npcID)
	player := d.mustPlayer(playerID)
	if state.Distance(npc.Pos, player.Pos) <= 40 {
		t.Fatalf("crowded shooter held its ground: %v", state.Distance(npc.Pos, player.Pos))
	}
}

func TestCowardFleesAnyoneInDetectionRange(t *testing.T) {
	t.Parallel()

	d := newDriver(t, nil, nil)
	npcID := d.w.SpawnNPC(context.Background(), state.VariantCoward, state.Vec2{X: 500, Y: 500})
	playerID := d.w.AddPlayer(state.Vec2{X: 640, Y: 500}, 100)

	// The player sits outside fear range but inside detection range; the
	// coward runs anyway.
	d.step(10)

	npc := d.mustNPC(npcID)
	player := d.mustPlayer(playerID)
	if state.Distance(npc.Pos, player.Pos) <= 150 {
		t.Fatalf("coward lingered at %v with a player in sight", state.Distance(npc.Pos, player.Pos))
	}
}
