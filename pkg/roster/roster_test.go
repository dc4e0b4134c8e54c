package roster

import (
	"math/rand"
	"testing"
)

func TestVillagers(t *testing.T) {
	if len(Villagers) != 10 {
		t.Fatalf("roster size = %d, want 10", len(Villagers))
	}

	seen := make(map[string]bool, len(Villagers))
	for _, v := range Villagers {
		if v.Name == "" || v.Title == "" || v.Location == "" || v.Backstory == "" {
			t.Errorf("villager %q has empty fields", v.Name)
		}
		if seen[v.Name] {
			t.Errorf("duplicate villager name %q", v.Name)
		}
		seen[v.Name] = true

		if len(v.Personality) == 0 {
			t.Errorf("villager %q has no personality traits", v.Name)
		}
		for trait, intensity := range v.Personality {
			if intensity < 1 || intensity > 5 {
				t.Errorf("villager %q trait %q intensity %d outside [1,5]", v.Name, trait, intensity)
			}
		}
	}
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	sampled := Sample(8, rng)
	if len(sampled) != 8 {
		t.Fatalf("Sample(8) returned %d villagers", len(sampled))
	}

	seen := make(map[string]bool)
	for _, v := range sampled {
		if seen[v.Name] {
			t.Errorf("villager %q sampled twice", v.Name)
		}
		seen[v.Name] = true
	}

	// Requesting more than the roster yields the whole roster.
	all := Sample(50, rng)
	if len(all) != len(Villagers) {
		t.Errorf("Sample(50) returned %d, want %d", len(all), len(Villagers))
	}
}

func TestSample_Deterministic(t *testing.T) {
	a := Sample(5, rand.New(rand.NewSource(7)))
	b := Sample(5, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Fatalf("same seed gave different samples at %d: %q vs %q", i, a[i].Name, b[i].Name)
		}
	}
}
