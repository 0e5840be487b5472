package state

import (
	"math"
	"time"

	"puppet-master/sim/stats"
)

// Variant selects which behavior program drives an NPC.
type Variant string

const (
	VariantAggressive Variant = "aggressive"
	VariantDefensive  Variant = "defensive"
	VariantRanged     Variant = "ranged"
	VariantCoward     Variant = "coward"
	VariantSupport    Variant = "support"
	VariantPeasant    Variant = "peasant"
	VariantMiner      Variant = "miner"
)

// Facing is the horizontal sprite orientation.
type Facing string

const (
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

// HealthEpsilon guards float comparisons around zero and max health.
const HealthEpsilon = 1e-6

// Entity is the mutable simulation record for one actor. All mutation
// happens on the tick goroutine; nothing here is safe for concurrent use.
type Entity struct {
	ID      string
	Variant Variant
	Pos     Vec2
	Facing  Facing
	Home    Vec2

	Health    float64
	MaxHealth float64

	// MoveIntent is the velocity requested by this tick's behavior
	// decision; Velocity is what the physics step actually applied last.
	// The attack commit protocol polls Velocity to detect self-movement.
	MoveIntent Vec2
	Velocity   Vec2

	// LastHitBy remembers the most recent damage source for kill credit.
	LastHitBy string

	Stats      stats.Component
	Status     StatusState
	Swing      AttackWindow
	Corpse     CorpseState
	Carry      *CarriedResource
	Blackboard Blackboard

	dead           bool
	lootDispatched bool
}

// IsDead reports whether the entity has been marked dead.
func (e *Entity) IsDead() bool {
	return e.dead
}

// MarkLootDispatched flips the one-shot loot latch. It returns true on
// the first call for a dead entity and false ever after.
func (e *Entity) MarkLootDispatched() bool {
	if !e.dead || e.lootDispatched {
		return false
	}
	e.lootDispatched = true
	return true
}

// TakeDamage applies damage and returns the signed health delta (<= 0).
// Non-positive and non-finite amounts are rejected, as is damage to the
// already dead. Crossing zero marks the entity dead and cancels any
// in-flight swing.
func (e *Entity) TakeDamage(amount float64) float64 {
	if e.dead || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	before := e.Health
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
	if e.Health <= HealthEpsilon {
		e.Health = 0
		e.dead = true
		e.Swing.Cancel()
	}
	return e.Health - before
}

// Heal applies healing and returns the signed health delta (>= 0). Dead
// entities cannot be healed; health never exceeds MaxHealth.
func (e *Entity) Heal(amount float64) float64 {
	if e.dead || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	before := e.Health
	e.Health += amount
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
	return e.Health - before
}

// Wounded reports whether a living entity is below full health.
func (e *Entity) Wounded() bool {
	return !e.dead && e.Health+HealthEpsilon < e.MaxHealth
}

// ApplyStun resets the stun expiry and cancels any in-flight swing. A
// re-stun extends from now rather than stacking.
func (e *Entity) ApplyStun(duration time.Duration, now time.Time) {
	e.Status.StunnedUntil = now.Add(duration)
	e.Swing.Cancel()
}

// ApplyMindControl hands the entity to controllerID until the deadline.
func (e *Entity) ApplyMindControl(controllerID string, duration time.Duration, now time.Time) {
	e.Status.ControllerID = controllerID
	e.Status.MindControlUntil = now.Add(duration)
}

// RemoveMindControl clears control immediately.
func (e *Entity) RemoveMindControl() {
	e.Status.ControllerID = ""
	e.Status.MindControlUntil = time.Time{}
}

// Stunned reports whether the stun deadline is still in the future.
func (e *Entity) Stunned(now time.Time) bool {
	return now.Before(e.Status.StunnedUntil)
}

// MindControlled returns the controller ID while control is active.
func (e *Entity) MindControlled(now time.Time) (string, bool) {
	if e.Status.ControllerID == "" || !now.Before(e.Status.MindControlUntil) {
		return "", false
	}
	return e.Status.ControllerID, true
}

// CanAct reports whether the entity may take voluntary actions this tick.
// Stun gates actions even while mind-controlled.
func (e *Entity) CanAct(now time.Time) bool {
	return !e.dead && !e.Stunned(now)
}

// IsCarrying reports whether the entity holds a parcel.
func (e *Entity) IsCarrying() bool {
	return e.Carry != nil
}

// CarriedAmount returns the size of the held parcel, or zero.
func (e *Entity) CarriedAmount() int {
	if e.Carry == nil {
		return 0
	}
	return e.Carry.Amount
}

// PickUp takes ownership of a parcel. A second parcel is rejected.
func (e *Entity) PickUp(parcel CarriedResource) bool {
	if e.Carry != nil || parcel.Amount <= 0 {
		return false
	}
	held := parcel
	e.Carry = &held
	return true
}

// DropCarry releases the held parcel, if any.
func (e *Entity) DropCarry() (CarriedResource, bool) {
	if e.Carry == nil {
		return CarriedResource{}, false
	}
	dropped := *e.Carry
	e.Carry = nil
	return dropped, true
}

// SetFacingFromVelocity flips the facing on nonzero horizontal movement.
// Pure vertical movement keeps the current facing.
func (e *Entity) SetFacingFromVelocity(v Vec2) {
	if v.X > 0 {
		e.Facing = FacingRight
	} else if v.X < 0 {
		e.Facing = FacingLeft
	}
}
