package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"puppet-master/sim/internal/state"
)

// Library is the resolved set of profiles the world hands to behaviors.
type Library struct {
	profiles map[state.Variant]Profile
}

// knownVariants fixes the closed variant set resolved by every library.
var knownVariants = []state.Variant{
	state.VariantAggressive,
	state.VariantDefensive,
	state.VariantRanged,
	state.VariantCoward,
	state.VariantSupport,
	state.VariantPeasant,
	state.VariantMiner,
}

// NewLibrary resolves the compiled defaults with no overrides.
func NewLibrary() *Library {
	lib := &Library{profiles: make(map[state.Variant]Profile, len(knownVariants))}
	for _, variant := range knownVariants {
		lib.profiles[variant] = Defaults(variant)
	}
	return lib
}

// Profile returns the tuning for a variant. An unknown variant degrades to
// the aggressive baseline — a missing profile is never fatal.
func (l *Library) Profile(variant state.Variant) Profile {
	if l != nil {
		if profile, ok := l.profiles[variant]; ok {
			return profile
		}
	}
	return Defaults(state.VariantAggressive)
}

// LoadFile overlays designer-authored YAML documents onto the defaults.
// Each document must name a known variant; numeric fields left at zero keep
// their default values.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse resolves a YAML profile document against the compiled defaults.
func Parse(data []byte) (*Library, error) {
	var docs []Profile
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("catalog: parse profiles: %w", err)
	}
	lib := NewLibrary()
	for i, doc := range docs {
		if doc.Variant == "" {
			return nil, fmt.Errorf("catalog: entry %d missing variant", i)
		}
		if _, ok := lib.profiles[doc.Variant]; !ok {
			return nil, fmt.Errorf("catalog: entry %d names unknown variant %q", i, doc.Variant)
		}
		lib.profiles[doc.Variant] = merge(lib.profiles[doc.Variant], doc)
	}
	return lib, nil
}

// merge overlays nonzero override fields onto the base profile.
func merge(base, over Profile) Profile {
	out := base

	overlayFloat(&out.Vigor, over.Vigor)
	overlayFloat(&out.Ferocity, over.Ferocity)
	overlayFloat(&out.Swiftness, over.Swiftness)
	overlayFloat(&out.Will, over.Will)

	overlayFloat(&out.DetectionRange, over.DetectionRange)
	overlayFloat(&out.ChaseRange, over.ChaseRange)
	overlayFloat(&out.AttackRange, over.AttackRange)
	overlayFloat(&out.FearRange, over.FearRange)
	overlayFloat(&out.PreferredRange, over.PreferredRange)
	overlayFloat(&out.DesperateRange, over.DesperateRange)
	overlayFloat(&out.StrikeRange, over.StrikeRange)
	overlayFloat(&out.HealRadius, over.HealRadius)

	overlayFloat(&out.FleeSeconds, over.FleeSeconds)
	overlayFloat(&out.CornerDistance, over.CornerDistance)
	overlayFloat(&out.CorneredSeconds, over.CorneredSeconds)
	overlayFloat(&out.CornerProgress, over.CornerProgress)
	overlayFloat(&out.ExitDistance, over.ExitDistance)

	overlayFloat(&out.WanderRadius, over.WanderRadius)
	overlayFloat(&out.IdleSecondsMin, over.IdleSecondsMin)
	overlayFloat(&out.IdleSecondsMax, over.IdleSecondsMax)
	overlayFloat(&out.ArriveRadius, over.ArriveRadius)

	overlayFloat(&out.ResourceSightRadius, over.ResourceSightRadius)
	overlayFloat(&out.PickupRadius, over.PickupRadius)
	overlayFloat(&out.RepulsorRadius, over.RepulsorRadius)
	overlayFloat(&out.RepulsorStrength, over.RepulsorStrength)
	overlayFloat(&out.GuardRadius, over.GuardRadius)

	overlayFloat(&out.ActionSeconds, over.ActionSeconds)

	overlayFloat(&out.Lifesteal, over.Lifesteal)
	if over.StunEveryNth > 0 {
		out.StunEveryNth = over.StunEveryNth
	}
	overlayFloat(&out.StunSeconds, over.StunSeconds)
	overlayFloat(&out.SplashRadius, over.SplashRadius)
	overlayFloat(&out.SplashFactor, over.SplashFactor)
	overlayFloat(&out.MindControlSeconds, over.MindControlSeconds)
	overlayFloat(&out.MindControlCooldown, over.MindControlCooldown)

	if over.Drainable != nil {
		out.Drainable = over.Drainable
	}
	overlayFloat(&out.DecaySeconds, over.DecaySeconds)
	if over.ExperienceReward > 0 {
		out.ExperienceReward = over.ExperienceReward
	}
	overlayFloat(&out.SkullChance, over.SkullChance)
	if len(over.Drops) > 0 {
		out.Drops = append([]DropEntry(nil), over.Drops...)
	}

	return out
}

func overlayFloat(target *float64, value float64) {
	if value != 0 {
		*target = value
	}
}
