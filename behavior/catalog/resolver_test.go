package catalog

import (
	"strings"
	"testing"

	"puppet-master/sim/internal/state"
)

func TestProfileFallsBackToAggressiveBaseline(t *testing.T) {
	t.Parallel()

	lib := NewLibrary()
	got := lib.Profile(state.Variant("goblin"))
	want := Defaults(state.VariantAggressive)
	if got.DetectionRange != want.DetectionRange || got.Vigor != want.Vigor {
		t.Fatalf("unknown variant did not degrade to the aggressive baseline: %+v", got)
	}
}

func TestParseOverlaysNonzeroFields(t *testing.T) {
	t.Parallel()

	doc := `
- variant: peasant
  fearRange: 200
  drops:
    - kind: food
      min: 2
      max: 4
      chance: 0.9
`
	lib, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	peasant := lib.Profile(state.VariantPeasant)
	if peasant.FearRange != 200 {
		t.Fatalf("override lost: fearRange=%v", peasant.FearRange)
	}
	// Untouched fields keep their compiled defaults.
	if want := Defaults(state.VariantPeasant).DesperateRange; peasant.DesperateRange != want {
		t.Fatalf("default clobbered: desperateRange=%v want %v", peasant.DesperateRange, want)
	}
	if len(peasant.Drops) != 1 || peasant.Drops[0].Kind != state.ResourceFood {
		t.Fatalf("drop table not replaced: %+v", peasant.Drops)
	}
	if !peasant.IsDrainable() {
		t.Fatalf("drainable default lost in overlay")
	}

	// Other variants stay at defaults.
	miner := lib.Profile(state.VariantMiner)
	if want := Defaults(state.VariantMiner).GuardRadius; miner.GuardRadius != want {
		t.Fatalf("unrelated variant changed: guardRadius=%v want %v", miner.GuardRadius, want)
	}
}

func TestParseRejectsUnknownVariant(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("- variant: dragon\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown variant") {
		t.Fatalf("expected unknown-variant error, got %v", err)
	}

	_, err = Parse([]byte("- fearRange: 50\n"))
	if err == nil || !strings.Contains(err.Error(), "missing variant") {
		t.Fatalf("expected missing-variant error, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("variant: [")); err == nil {
		t.Fatalf("malformed document accepted")
	}
}
