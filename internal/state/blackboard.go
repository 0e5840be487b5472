package state

import "time"

// Phase names the formal state a richer behavior machine is in. The plain
// combat behaviors (aggressive, defensive, ranged) decide from scratch
// every tick and keep no phase.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseWander        Phase = "wander"
	PhaseRunToResource Phase = "run-to-resource"
	PhaseCarry         Phase = "carry"
	PhaseFlee          Phase = "flee"
	PhaseCombat        Phase = "combat"
)

// Blackboard stores per-entity AI memory polled by the behavior executor.
// Everything timed is an absolute deadline checked against "now"; nothing
// here counts down.
type Blackboard struct {
	Phase    Phase
	TargetID string

	// Wander bookkeeping.
	IdleUntil    time.Time
	WanderTarget Vec2
	HasWander    bool

	// Flee window. Refreshed, not reset, while the threat stays close.
	FleeUntil time.Time

	// Cornered escalation: CornerProbeAt schedules the next distance poll,
	// CornerTimer accumulates time spent failing to open distance.
	CornerProbeAt  time.Time
	CornerTimer    time.Duration
	LastThreatDist float64

	// Resource errands.
	TargetParcelID string
	DeliveryID     string

	// Attacker-side hook memory.
	HitCounter        int
	MindControlReady  time.Time
	ControlledActorID string
}

// ResetErrand clears resource-errand references when a target goes stale.
func (b *Blackboard) ResetErrand() {
	if b == nil {
		return
	}
	b.TargetParcelID = ""
	b.DeliveryID = ""
}
