package stats

import "sort"

// StatID enumerates the primary attributes tracked for every entity.
type StatID uint8

const (
	StatVigor StatID = iota
	StatFerocity
	StatSwiftness
	StatWill

	StatCount
)

// DerivedID enumerates stats computed from the attribute totals.
type DerivedID uint8

const (
	DerivedMaxHealth DerivedID = iota
	DerivedAttackDamage
	DerivedMoveSpeed
	DerivedAttackCooldown
	DerivedHealPower

	DerivedCount
)

// Layer orders modifier precedence. Later layers fold over earlier ones.
type Layer uint8

const (
	LayerBase Layer = iota
	LayerPermanent
	LayerTemporary

	LayerCount
)

// SourceKey identifies the origin of a modifier inside a layer so repeated
// applications replace rather than stack.
type SourceKey struct {
	Kind string
	ID   string
}

// ValueSet stores a fixed vector of attribute values.
type ValueSet [StatCount]float64

// DerivedSet stores derived stat values.
type DerivedSet [DerivedCount]float64

// Delta captures additive and multiplicative contributions from one source.
type Delta struct {
	Add ValueSet
	Mul ValueSet
}

// NewDelta creates a delta with neutral multiplicative values.
func NewDelta() Delta {
	d := Delta{}
	for i := range d.Mul {
		d.Mul[i] = 1
	}
	return d
}

type layerSource struct {
	delta         Delta
	expiresAtTick uint64
}

// Component owns the stat state for one entity and caches derived totals.
type Component struct {
	sources [LayerCount]map[SourceKey]layerSource
	totals  ValueSet
	derived DerivedSet
	dirty   bool
	version uint64
}

// NewComponent seeds a component with base attribute values.
func NewComponent(base ValueSet) Component {
	c := Component{}
	delta := NewDelta()
	delta.Add = base
	c.Apply(LayerBase, SourceKey{Kind: "archetype", ID: "base"}, delta, 0)
	return c
}

// Apply installs or replaces a modifier. A zero expiry never expires.
func (c *Component) Apply(layer Layer, key SourceKey, delta Delta, expiresAtTick uint64) {
	if c == nil || layer >= LayerCount {
		return
	}
	if c.sources[layer] == nil {
		c.sources[layer] = make(map[SourceKey]layerSource)
	}
	c.sources[layer][key] = layerSource{delta: delta, expiresAtTick: expiresAtTick}
	c.dirty = true
}

// Remove drops a modifier if present.
func (c *Component) Remove(layer Layer, key SourceKey) {
	if c == nil || layer >= LayerCount || c.sources[layer] == nil {
		return
	}
	if _, ok := c.sources[layer][key]; !ok {
		return
	}
	delete(c.sources[layer], key)
	c.dirty = true
}

// Resolve folds all layers in deterministic order, culls expired temporary
// modifiers, and recomputes the derived set.
func (c *Component) Resolve(tick uint64) {
	if c == nil {
		return
	}
	if c.cullExpired(tick) {
		c.dirty = true
	}
	if !c.dirty {
		return
	}

	total := ValueSet{}
	for layer := Layer(0); layer < LayerCount; layer++ {
		entries := c.sources[layer]
		if len(entries) == 0 {
			continue
		}
		keys := make([]SourceKey, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Kind != keys[j].Kind {
				return keys[i].Kind < keys[j].Kind
			}
			return keys[i].ID < keys[j].ID
		})
		for _, key := range keys {
			src := entries[key]
			for i := range total {
				total[i] += src.delta.Add[i]
			}
		}
		for _, key := range keys {
			src := entries[key]
			for i := range total {
				if src.delta.Mul[i] != 0 {
					total[i] *= src.delta.Mul[i]
				}
			}
		}
	}

	c.totals = total
	c.derived = computeDerived(total)
	c.version++
	c.dirty = false
}

func (c *Component) cullExpired(tick uint64) bool {
	entries := c.sources[LayerTemporary]
	if len(entries) == 0 {
		return false
	}
	removed := false
	for key, src := range entries {
		if src.expiresAtTick > 0 && tick >= src.expiresAtTick {
			delete(entries, key)
			removed = true
		}
	}
	return removed
}

// Totals returns the cached attribute totals.
func (c *Component) Totals() ValueSet {
	return c.totals
}

// GetDerived returns the cached derived stat value.
func (c *Component) GetDerived(id DerivedID) float64 {
	if id >= DerivedCount {
		return 0
	}
	return c.derived[id]
}

// Version increments on every resolve that changed anything.
func (c *Component) Version() uint64 {
	return c.version
}
