package combat

import (
	"testing"
	"time"

	"puppet-master/sim/internal/state"
)

func newAttacker() *state.Entity {
	return &state.Entity{
		ID:        "npc-1",
		Health:    30,
		MaxHealth: 30,
	}
}

func TestStartRejectsSecondWindow(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	e := newAttacker()

	if !Start(e, "player-1", state.ActionStrike, time.Second, now) {
		t.Fatalf("first start rejected")
	}
	if Start(e, "player-2", state.ActionStrike, time.Second, now.Add(100*time.Millisecond)) {
		t.Fatalf("second concurrent start accepted")
	}
	if e.Swing.TargetID != "player-1" {
		t.Fatalf("rejected start replaced the target: %s", e.Swing.TargetID)
	}
}

func TestCooldownAnchorsAtWindowStart(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	cooldown := 2 * time.Second
	e := newAttacker()

	Start(e, "player-1", state.ActionStrike, time.Second, now)

	// Complete the window at +1s.
	outcome, _ := Advance(e, now.Add(time.Second))
	if outcome != OutcomeCompleted {
		t.Fatalf("expected completion, got %v", outcome)
	}

	// The cooldown runs from the start of the window, not its end.
	if CanStart(e, cooldown, now.Add(1900*time.Millisecond)) {
		t.Fatalf("restart allowed before the cooldown lapsed")
	}
	if !CanStart(e, cooldown, now.Add(cooldown)) {
		t.Fatalf("restart blocked after the cooldown lapsed")
	}
}

func TestCancelKeepsCooldownAnchor(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	cooldown := 2 * time.Second
	e := newAttacker()

	Start(e, "player-1", state.ActionStrike, time.Second, now)
	e.Velocity = state.Vec2{X: 10}

	outcome, _ := Advance(e, now.Add(200*time.Millisecond))
	if outcome != OutcomeCancelled {
		t.Fatalf("expected cancellation on self-movement, got %v", outcome)
	}
	// A cancelled window still charges the cooldown from its start.
	if CanStart(e, cooldown, now.Add(time.Second)) {
		t.Fatalf("cancel refunded the cooldown")
	}
	e.Velocity = state.Vec2{}
	if !CanStart(e, cooldown, now.Add(cooldown)) {
		t.Fatalf("restart blocked after the cooldown lapsed")
	}
}

func TestAdvanceCancelsOnStun(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	e := newAttacker()
	Start(e, "player-1", state.ActionStrike, time.Second, now)
	e.Status.StunnedUntil = now.Add(time.Second)

	outcome, _ := Advance(e, now.Add(100*time.Millisecond))
	if outcome != OutcomeCancelled {
		t.Fatalf("expected cancellation on stun, got %v", outcome)
	}
	if e.Swing.Active {
		t.Fatalf("window still active after cancel")
	}
}

func TestAdvanceCompletesAfterFullDuration(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	e := newAttacker()
	Start(e, "player-1", state.ActionStrike, time.Second, now)

	outcome, _ := Advance(e, now.Add(999*time.Millisecond))
	if outcome != OutcomeCommitting {
		t.Fatalf("completed early: %v", outcome)
	}
	outcome, window := Advance(e, now.Add(time.Second))
	if outcome != OutcomeCompleted {
		t.Fatalf("expected completion, got %v", outcome)
	}
	if window.TargetID != "player-1" {
		t.Fatalf("completion snapshot lost the target: %q", window.TargetID)
	}
	if e.Swing.Active {
		t.Fatalf("window still active after completion")
	}
}

func TestSwingDurationFallback(t *testing.T) {
	t.Parallel()

	cooldown := 2 * time.Second
	if got := SwingDuration(500*time.Millisecond, cooldown); got != 500*time.Millisecond {
		t.Fatalf("configured duration ignored: %v", got)
	}
	want := time.Duration(float64(cooldown) * FallbackSwingFactor)
	if got := SwingDuration(0, cooldown); got != want {
		t.Fatalf("fallback duration %v, want %v", got, want)
	}
	if got := SwingDuration(0, 0); got != 0 {
		t.Fatalf("zero cooldown produced duration %v", got)
	}
}

func TestInStrikeRangeTolerance(t *testing.T) {
	t.Parallel()

	origin := state.Vec2{}
	nominal := 20.0

	if !InStrikeRange(origin, state.Vec2{X: nominal * RangeTolerance}, nominal) {
		t.Fatalf("drifted target inside tolerance missed")
	}
	if InStrikeRange(origin, state.Vec2{X: nominal*RangeTolerance + 0.01}, nominal) {
		t.Fatalf("fled target inside nothing hit")
	}
	if InStrikeRange(origin, state.Vec2{X: 1}, 0) {
		t.Fatalf("zero nominal range hit")
	}
}

func TestHooksStunInterval(t *testing.T) {
	t.Parallel()

	hooks := Hooks{StunInterval: 3, StunDuration: time.Second}
	bb := &state.Blackboard{}

	fired := 0
	for i := 0; i < 9; i++ {
		if hooks.StunTriggered(bb) {
			fired++
		}
	}
	if fired != 3 {
		t.Fatalf("stun fired %d times over 9 hits, want 3", fired)
	}
}

func TestHooksMindControlGating(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	hooks := Hooks{MindControlDuration: 5 * time.Second, MindControlCooldown: 10 * time.Second}
	bb := &state.Blackboard{}

	if !hooks.CanMindControl(bb, false, now) {
		t.Fatalf("fresh hook blocked")
	}
	if hooks.CanMindControl(bb, true, now) {
		t.Fatalf("hook fired while already controlling another entity")
	}

	hooks.MarkMindControlUsed(bb, "victim-1", now)
	if hooks.CanMindControl(bb, false, now.Add(9*time.Second)) {
		t.Fatalf("hook ignored its cooldown")
	}
	if !hooks.CanMindControl(bb, false, now.Add(10*time.Second)) {
		t.Fatalf("hook blocked after its cooldown")
	}
}

func TestSplashVictimsExcludesPrincipals(t *testing.T) {
	t.Parallel()

	center := state.Vec2{}
	attacker := &state.Entity{ID: "attacker", Health: 1, MaxHealth: 1}
	primary := &state.Entity{ID: "primary", Health: 1, MaxHealth: 1}
	near := &state.Entity{ID: "near", Health: 1, MaxHealth: 1, Pos: state.Vec2{X: 5}}
	far := &state.Entity{ID: "far", Health: 1, MaxHealth: 1, Pos: state.Vec2{X: 50}}

	victims := SplashVictims([]*state.Entity{attacker, primary, near, far}, center, 10, "attacker", "primary")
	if len(victims) != 1 || victims[0].ID != "near" {
		t.Fatalf("unexpected victims: %+v", victims)
	}
}
