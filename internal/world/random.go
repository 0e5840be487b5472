package world

import "math/rand"

// All randomness flows through the world's single seeded source so runs
// with the same seed and inputs replay identically.

func (w *World) randFloat() float64 {
	return w.rng.Float64()
}

// randRange returns a uniform value in [min, max].
func (w *World) randRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + w.rng.Float64()*(max-min)
}

// randIntRange returns a uniform integer in [min, max].
func (w *World) randIntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + w.rng.Intn(max-min+1)
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
