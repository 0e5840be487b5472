package ai

import "puppet-master/sim/internal/state"

// Movement intents convert a desired destination into a velocity in units
// per second. All of them collapse to zero velocity when no valid target
// exists; facing updates are left to the caller applying the velocity.

// Pursue heads straight for the target point.
func Pursue(from, target state.Vec2, speed float64) state.Vec2 {
	if speed <= 0 {
		return state.Vec2{}
	}
	return target.Sub(from).Normalized().Scale(speed)
}

// Flee is the mirror of Pursue: straight away from the threat.
func Flee(from, threat state.Vec2, speed float64) state.Vec2 {
	if speed <= 0 {
		return state.Vec2{}
	}
	return from.Sub(threat).Normalized().Scale(speed)
}

// ForceBlend sums a normalized attraction toward the attractor with a
// radius-limited repulsion away from the repulsor, then re-normalizes.
// Repulsion is zero outside repulsorRadius and scales linearly with
// (1 − distance/radius) × strength inside it. Used for delivering a
// carried resource while steering clear of a threat.
func ForceBlend(from, attractor, repulsor state.Vec2, repulsorRadius, repulsorStrength, speed float64) state.Vec2 {
	if speed <= 0 {
		return state.Vec2{}
	}
	blend := attractor.Sub(from).Normalized()
	if repulsorRadius > 0 && repulsorStrength > 0 {
		away := from.Sub(repulsor)
		dist := away.Length()
		if dist < repulsorRadius {
			weight := (1 - dist/repulsorRadius) * repulsorStrength
			blend = blend.Add(away.Normalized().Scale(weight))
		}
	}
	return blend.Normalized().Scale(speed)
}
