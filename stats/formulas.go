package stats

import "time"

const (
	baseHealthFlat    = 20.0
	vigorHealthScalar = 8.0

	baseAttackDamage     = 2.0
	ferocityDamageScalar = 1.5

	baseMoveSpeed        = 60.0
	swiftnessSpeedScalar = 4.0

	baseAttackInterval    = 2.0
	swiftnessHasteScalar  = 0.04
	minAttackInterval     = 0.25
	maxAttackInterval     = 8.0
	baseHealPower         = 3.0
	willHealScalar        = 1.2
)

func computeDerived(total ValueSet) DerivedSet {
	var derived DerivedSet

	vigor := clamp(total[StatVigor], 0, 1e9)
	ferocity := clamp(total[StatFerocity], 0, 1e9)
	swiftness := clamp(total[StatSwiftness], 0, 1e9)
	will := clamp(total[StatWill], 0, 1e9)

	derived[DerivedMaxHealth] = baseHealthFlat + vigor*vigorHealthScalar
	derived[DerivedAttackDamage] = baseAttackDamage + ferocity*ferocityDamageScalar
	derived[DerivedMoveSpeed] = baseMoveSpeed + swiftness*swiftnessSpeedScalar
	derived[DerivedAttackCooldown] = computeAttackInterval(swiftness)
	derived[DerivedHealPower] = baseHealPower + will*willHealScalar

	return derived
}

// computeAttackInterval converts the attack-speed attribute into a cooldown
// in seconds. Swiftness shortens the interval multiplicatively so stacking
// haste has diminishing absolute returns.
func computeAttackInterval(swiftness float64) float64 {
	interval := baseAttackInterval / (1 + swiftness*swiftnessHasteScalar)
	return clamp(interval, minAttackInterval, maxAttackInterval)
}

// CooldownFor exposes the attack-speed to cooldown conversion for callers
// that hold a resolved component.
func CooldownFor(c *Component) time.Duration {
	if c == nil {
		return time.Duration(baseAttackInterval * float64(time.Second))
	}
	seconds := c.GetDerived(DerivedAttackCooldown)
	if seconds <= 0 {
		seconds = baseAttackInterval
	}
	return time.Duration(seconds * float64(time.Second))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
