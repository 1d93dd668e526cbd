package random

import "testing"

func TestNewSeedPositiveAndVaried(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 16; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		if seed <= 0 {
			t.Fatalf("expected a positive seed, got %d", seed)
		}
		seen[seed] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected seeds to vary between calls")
	}
}
