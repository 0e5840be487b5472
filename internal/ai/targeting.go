package ai

import "puppet-master/sim/internal/state"

// Candidate is one entry offered to the targeting search: an identity plus
// a position, never a strong reference. Callers re-resolve the ID before
// acting on it.
type Candidate struct {
	ID  string
	Pos state.Vec2
}

// Qualifier filters targeting candidates (alive, not self, wounded, ...).
type Qualifier func(Candidate) bool

// FindNearest returns the closest qualifying candidate within maxRadius of
// origin. Ties keep the first-found candidate in iteration order — only a
// strictly smaller distance displaces the current best, so results are
// stable for equal distances.
func FindNearest(candidates []Candidate, origin state.Vec2, maxRadius float64, qualifies Qualifier) (Candidate, bool) {
	if maxRadius <= 0 {
		return Candidate{}, false
	}
	bestDistSq := maxRadius * maxRadius
	best := Candidate{}
	found := false
	for _, cand := range candidates {
		if qualifies != nil && !qualifies(cand) {
			continue
		}
		distSq := state.DistanceSq(cand.Pos, origin)
		if distSq > bestDistSq {
			continue
		}
		if found && distSq >= bestDistSq {
			continue
		}
		bestDistSq = distSq
		best = cand
		found = true
	}
	return best, found
}
