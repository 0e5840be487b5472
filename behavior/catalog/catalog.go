// Package catalog holds the designer-authored tuning profiles that
// parameterize each behavior variant. Profiles resolve against compiled
// defaults so a missing or partial document degrades to safe values
// instead of failing the simulation.
package catalog

import "puppet-master/sim/internal/state"

// DropEntry is one independently gated resource drop. Each entry rolls its
// own chance and amount range; one kind failing its gate never affects
// another kind's roll.
type DropEntry struct {
	Kind   state.ResourceKind `yaml:"kind" json:"kind" jsonschema:"required"`
	Min    int                `yaml:"min" json:"min"`
	Max    int                `yaml:"max" json:"max"`
	Chance float64            `yaml:"chance" json:"chance" jsonschema:"minimum=0,maximum=1"`
}

// Profile is the full tuning surface for one variant. Distances are world
// units, durations are seconds (converted at the world boundary).
type Profile struct {
	Variant state.Variant `yaml:"variant" json:"variant" jsonschema:"required"`

	// Attribute seeds fed into the stats component.
	Vigor     float64 `yaml:"vigor" json:"vigor"`
	Ferocity  float64 `yaml:"ferocity" json:"ferocity"`
	Swiftness float64 `yaml:"swiftness" json:"swiftness"`
	Will      float64 `yaml:"will" json:"will"`

	// Perception and engagement radii.
	DetectionRange float64 `yaml:"detectionRange" json:"detectionRange"`
	ChaseRange     float64 `yaml:"chaseRange" json:"chaseRange"`
	AttackRange    float64 `yaml:"attackRange" json:"attackRange"`
	FearRange      float64 `yaml:"fearRange" json:"fearRange"`
	PreferredRange float64 `yaml:"preferredRange" json:"preferredRange"`
	DesperateRange float64 `yaml:"desperateRange" json:"desperateRange"`
	StrikeRange    float64 `yaml:"strikeRange" json:"strikeRange"`
	HealRadius     float64 `yaml:"healRadius" json:"healRadius"`

	// Flee and cornered escalation.
	FleeSeconds     float64 `yaml:"fleeSeconds" json:"fleeSeconds"`
	CornerDistance  float64 `yaml:"cornerDistance" json:"cornerDistance"`
	CorneredSeconds float64 `yaml:"corneredSeconds" json:"corneredSeconds"`
	CornerProgress  float64 `yaml:"cornerProgress" json:"cornerProgress"`
	ExitDistance    float64 `yaml:"exitDistance" json:"exitDistance"`

	// Wander loop.
	WanderRadius   float64 `yaml:"wanderRadius" json:"wanderRadius"`
	IdleSecondsMin float64 `yaml:"idleSecondsMin" json:"idleSecondsMin"`
	IdleSecondsMax float64 `yaml:"idleSecondsMax" json:"idleSecondsMax"`
	ArriveRadius   float64 `yaml:"arriveRadius" json:"arriveRadius"`

	// Resource errands.
	ResourceSightRadius float64 `yaml:"resourceSightRadius" json:"resourceSightRadius"`
	PickupRadius        float64 `yaml:"pickupRadius" json:"pickupRadius"`
	RepulsorRadius      float64 `yaml:"repulsorRadius" json:"repulsorRadius"`
	RepulsorStrength    float64 `yaml:"repulsorStrength" json:"repulsorStrength"`
	GuardRadius         float64 `yaml:"guardRadius" json:"guardRadius"`

	// Action timing. Zero ActionSeconds falls back to a window proportional
	// to the attack cooldown.
	ActionSeconds float64 `yaml:"actionSeconds" json:"actionSeconds"`

	// Completed-strike hooks.
	Lifesteal           float64 `yaml:"lifesteal" json:"lifesteal"`
	StunEveryNth        int     `yaml:"stunEveryNth" json:"stunEveryNth"`
	StunSeconds         float64 `yaml:"stunSeconds" json:"stunSeconds"`
	SplashRadius        float64 `yaml:"splashRadius" json:"splashRadius"`
	SplashFactor        float64 `yaml:"splashFactor" json:"splashFactor"`
	MindControlSeconds  float64 `yaml:"mindControlSeconds" json:"mindControlSeconds"`
	MindControlCooldown float64 `yaml:"mindControlCooldown" json:"mindControlCooldown"`

	// Death handling.
	Drainable        *bool       `yaml:"drainable" json:"drainable,omitempty"`
	DecaySeconds     float64     `yaml:"decaySeconds" json:"decaySeconds"`
	ExperienceReward int         `yaml:"experienceReward" json:"experienceReward"`
	SkullChance      float64     `yaml:"skullChance" json:"skullChance"`
	Drops            []DropEntry `yaml:"drops" json:"drops,omitempty"`
}

// IsDrainable resolves the optional drainable flag, defaulting to false.
func (p Profile) IsDrainable() bool {
	return p.Drainable != nil && *p.Drainable
}

func boolPtr(v bool) *bool { return &v }

// Defaults returns the compiled baseline profile for a variant. Unknown
// variants fall back to the aggressive baseline, mirroring the missing
// behavior-profile fallback at the world layer.
func Defaults(variant state.Variant) Profile {
	base := Profile{
		Variant:        variant,
		Vigor:          4,
		Ferocity:       2,
		Swiftness:      3,
		Will:           0,
		DetectionRange: 160,
		ChaseRange:     240,
		AttackRange:    22,
		ActionSeconds:  0,
		WanderRadius:   120,
		IdleSecondsMin: 1.5,
		IdleSecondsMax: 4,
		ArriveRadius:   10,
		DecaySeconds:   20,

		ExperienceReward: 5,
		SkullChance:      0.15,
		Drops: []DropEntry{
			{Kind: state.ResourceGold, Min: 1, Max: 6, Chance: 0.6},
		},
	}

	switch variant {
	case state.VariantDefensive:
		base.ExperienceReward = 6
	case state.VariantRanged:
		base.AttackRange = 140
		base.FearRange = 60
		base.PreferredRange = 110
		base.ExperienceReward = 7
	case state.VariantCoward:
		base.FearRange = 120
		base.FleeSeconds = 2.5
		base.ExperienceReward = 2
	case state.VariantSupport:
		base.FearRange = 100
		base.HealRadius = 130
		base.Will = 4
		base.Ferocity = 0
		base.ExperienceReward = 8
	case state.VariantPeasant:
		base.Ferocity = 1
		base.FearRange = 110
		base.FleeSeconds = 2
		base.DesperateRange = 18
		base.StrikeRange = 16
		base.CornerDistance = 48
		base.CorneredSeconds = 1.6
		base.CornerProgress = 0.5
		base.ExitDistance = 150
		base.ResourceSightRadius = 140
		base.PickupRadius = 14
		base.RepulsorRadius = 120
		base.RepulsorStrength = 1.4
		base.Drainable = boolPtr(true)
		base.ExperienceReward = 3
		base.SkullChance = 0.25
		base.Drops = []DropEntry{
			{Kind: state.ResourceGold, Min: 1, Max: 3, Chance: 0.4},
			{Kind: state.ResourceFood, Min: 1, Max: 2, Chance: 0.5},
		}
	case state.VariantMiner:
		base.Ferocity = 3
		base.GuardRadius = 110
		base.ResourceSightRadius = 150
		base.PickupRadius = 14
		base.Drainable = boolPtr(true)
		base.ExperienceReward = 6
		base.Drops = []DropEntry{
			{Kind: state.ResourceGold, Min: 2, Max: 8, Chance: 0.8},
			{Kind: state.ResourceStone, Min: 1, Max: 3, Chance: 0.3},
		}
	}

	return base
}
