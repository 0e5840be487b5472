package stats

import (
	"math"
	"testing"
	"time"
)

func TestResolveFoldsLayersDeterministically(t *testing.T) {
	t.Parallel()

	base := ValueSet{}
	base[StatVigor] = 10
	base[StatSwiftness] = 5
	c := NewComponent(base)
	c.Resolve(1)

	wantHealth := baseHealthFlat + 10*vigorHealthScalar
	if got := c.GetDerived(DerivedMaxHealth); math.Abs(got-wantHealth) > 1e-9 {
		t.Fatalf("max health = %f, want %f", got, wantHealth)
	}

	buff := NewDelta()
	buff.Add[StatVigor] = 4
	c.Apply(LayerPermanent, SourceKey{Kind: "blessing", ID: "shrine"}, buff, 0)
	c.Resolve(2)

	wantHealth = baseHealthFlat + 14*vigorHealthScalar
	if got := c.GetDerived(DerivedMaxHealth); math.Abs(got-wantHealth) > 1e-9 {
		t.Fatalf("buffed max health = %f, want %f", got, wantHealth)
	}
}

func TestTemporaryModifierExpires(t *testing.T) {
	t.Parallel()

	c := NewComponent(ValueSet{})
	haste := NewDelta()
	haste.Add[StatSwiftness] = 10
	c.Apply(LayerTemporary, SourceKey{Kind: "potion", ID: "haste"}, haste, 5)

	c.Resolve(4)
	boosted := c.GetDerived(DerivedAttackCooldown)
	c.Resolve(5)
	restored := c.GetDerived(DerivedAttackCooldown)

	if boosted >= restored {
		t.Fatalf("haste should shorten the cooldown: boosted=%f restored=%f", boosted, restored)
	}
	if math.Abs(restored-baseAttackInterval) > 1e-9 {
		t.Fatalf("cooldown after expiry = %f, want base %f", restored, baseAttackInterval)
	}
}

func TestCooldownForClampsAndDefaults(t *testing.T) {
	t.Parallel()

	if got := CooldownFor(nil); got != time.Duration(baseAttackInterval*float64(time.Second)) {
		t.Fatalf("nil component cooldown = %s", got)
	}

	fast := ValueSet{}
	fast[StatSwiftness] = 1e9
	c := NewComponent(fast)
	c.Resolve(1)
	if got := c.GetDerived(DerivedAttackCooldown); got < minAttackInterval {
		t.Fatalf("cooldown %f fell below the floor %f", got, minAttackInterval)
	}
}
