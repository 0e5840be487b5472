package world

import (
	"time"

	"puppet-master/sim/internal/state"
)

// Presentation receives animation and effect triggers. The simulation
// treats it as fire-and-forget; a slow or absent renderer never stalls a
// tick.
type Presentation interface {
	// ActionWindupStarted fires when a commit window opens, carrying the
	// duration the windup animation should cover.
	ActionWindupStarted(entityID string, kind state.ActionKind, duration time.Duration)

	// ActionResolved fires when a completed window lands or misses.
	ActionResolved(entityID, targetID string, kind state.ActionKind, landed bool)

	// EffectBurst fires a one-shot visual at a world position.
	EffectBurst(kind string, at state.Vec2)
}

// Progression receives experience awards from kills and drains.
type Progression interface {
	AwardExperience(recipientID string, amount int)
}

type nopPresentation struct{}

func (nopPresentation) ActionWindupStarted(string, state.ActionKind, time.Duration) {}
func (nopPresentation) ActionResolved(string, string, state.ActionKind, bool)       {}
func (nopPresentation) EffectBurst(string, state.Vec2)                              {}

// NopPresentation returns a presentation sink that discards everything.
func NopPresentation() Presentation {
	return nopPresentation{}
}

type nopProgression struct{}

func (nopProgression) AwardExperience(string, int) {}

// NopProgression returns a progression sink that discards everything.
func NopProgression() Progression {
	return nopProgression{}
}
