package state

import (
	"math"
	"testing"
	"time"

	"puppet-master/sim/stats"
)

func newTestEntity() *Entity {
	e := &Entity{
		ID:        "npc-1",
		Variant:   VariantAggressive,
		Facing:    FacingRight,
		Health:    50,
		MaxHealth: 50,
		Stats:     stats.NewComponent(stats.ValueSet{}),
	}
	return e
}

func TestTakeDamageClampsAndLatchesDeath(t *testing.T) {
	t.Parallel()

	e := newTestEntity()
	if delta := e.TakeDamage(20); delta != -20 {
		t.Fatalf("expected delta -20, got %v", delta)
	}
	if e.IsDead() {
		t.Fatalf("entity died too early")
	}

	if delta := e.TakeDamage(100); delta != -30 {
		t.Fatalf("expected clamped delta -30, got %v", delta)
	}
	if !e.IsDead() || e.Health != 0 {
		t.Fatalf("expected dead at zero health, dead=%v health=%v", e.IsDead(), e.Health)
	}

	// Dead entities reject further damage and healing.
	if delta := e.TakeDamage(5); delta != 0 {
		t.Fatalf("dead entity took damage: %v", delta)
	}
	if delta := e.Heal(5); delta != 0 {
		t.Fatalf("dead entity was healed: %v", delta)
	}
}

func TestTakeDamageRejectsInvalidAmounts(t *testing.T) {
	t.Parallel()

	e := newTestEntity()
	for _, amount := range []float64{0, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if delta := e.TakeDamage(amount); delta != 0 {
			t.Fatalf("amount %v produced delta %v", amount, delta)
		}
	}
	if e.Health != 50 {
		t.Fatalf("health changed: %v", e.Health)
	}
}

func TestDeathCancelsSwing(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	e := newTestEntity()
	e.Swing = AttackWindow{
		Active:        true,
		Kind:          ActionStrike,
		TargetID:      "player-1",
		StartedAt:     now,
		Duration:      time.Second,
		LastStartedAt: now,
	}
	e.TakeDamage(100)
	if e.Swing.Active {
		t.Fatalf("swing survived death")
	}
	if e.Swing.LastStartedAt != now {
		t.Fatalf("cooldown anchor moved on cancel")
	}
}

func TestLootLatchFiresOnce(t *testing.T) {
	t.Parallel()

	e := newTestEntity()
	if e.MarkLootDispatched() {
		t.Fatalf("latch fired for a living entity")
	}
	e.TakeDamage(100)
	if !e.MarkLootDispatched() {
		t.Fatalf("latch did not fire on first call after death")
	}
	if e.MarkLootDispatched() {
		t.Fatalf("latch fired twice")
	}
}

func TestHealClampsAtMax(t *testing.T) {
	t.Parallel()

	e := newTestEntity()
	e.TakeDamage(10)
	if !e.Wounded() {
		t.Fatalf("expected wounded")
	}
	if delta := e.Heal(100); delta != 10 {
		t.Fatalf("expected delta 10, got %v", delta)
	}
	if e.Wounded() {
		t.Fatalf("still wounded at full health")
	}
}

func TestStunGatesActionsAndCancelsSwing(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_000)
	e := newTestEntity()
	e.Swing.Active = true
	e.ApplyStun(500*time.Millisecond, now)

	if e.Swing.Active {
		t.Fatalf("stun left the swing running")
	}
	if e.CanAct(now) {
		t.Fatalf("stunned entity can act")
	}
	if !e.CanAct(now.Add(501 * time.Millisecond)) {
		t.Fatalf("stun did not lapse")
	}

	// Re-stun extends from now rather than stacking.
	e.ApplyStun(500*time.Millisecond, now)
	e.ApplyStun(200*time.Millisecond, now.Add(400*time.Millisecond))
	if e.Stunned(now.Add(700 * time.Millisecond)) {
		t.Fatalf("stun stacked instead of resetting")
	}
}

func TestMindControlLifecycle(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	e := newTestEntity()
	e.ApplyMindControl("boss-1", time.Second, now)

	holder, ok := e.MindControlled(now.Add(500 * time.Millisecond))
	if !ok || holder != "boss-1" {
		t.Fatalf("expected active control by boss-1, got %q ok=%v", holder, ok)
	}
	if _, ok := e.MindControlled(now.Add(time.Second)); ok {
		t.Fatalf("control outlived its deadline")
	}

	e.ApplyMindControl("boss-1", time.Second, now)
	e.RemoveMindControl()
	if _, ok := e.MindControlled(now); ok {
		t.Fatalf("control survived removal")
	}

	// Stun gates actions even while controlled.
	e.ApplyMindControl("boss-1", time.Minute, now)
	e.ApplyStun(time.Minute, now)
	if e.CanAct(now.Add(time.Second)) {
		t.Fatalf("stunned controlled entity can act")
	}
}

func TestCarrySingleParcel(t *testing.T) {
	t.Parallel()

	e := newTestEntity()
	if !e.PickUp(CarriedResource{Kind: ResourceGold, Amount: 4}) {
		t.Fatalf("first pickup rejected")
	}
	if e.PickUp(CarriedResource{Kind: ResourceWood, Amount: 1}) {
		t.Fatalf("second pickup accepted")
	}
	if e.CarriedAmount() != 4 {
		t.Fatalf("carried amount %d", e.CarriedAmount())
	}

	dropped, ok := e.DropCarry()
	if !ok || dropped.Kind != ResourceGold || dropped.Amount != 4 {
		t.Fatalf("drop returned %+v ok=%v", dropped, ok)
	}
	if e.IsCarrying() {
		t.Fatalf("still carrying after drop")
	}
}

func TestFacingFlipsOnlyOnHorizontalMotion(t *testing.T) {
	t.Parallel()

	e := newTestEntity()
	e.SetFacingFromVelocity(Vec2{X: -1})
	if e.Facing != FacingLeft {
		t.Fatalf("expected left, got %s", e.Facing)
	}
	e.SetFacingFromVelocity(Vec2{Y: 5})
	if e.Facing != FacingLeft {
		t.Fatalf("vertical motion flipped facing to %s", e.Facing)
	}
	e.SetFacingFromVelocity(Vec2{X: 2, Y: -3})
	if e.Facing != FacingRight {
		t.Fatalf("expected right, got %s", e.Facing)
	}
}
