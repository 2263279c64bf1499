package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestParseRunID(t *testing.T) {
	fresh := NewRunID()
	parsed, err := ParseRunID(fresh.String())
	if err != nil {
		t.Fatalf("Expected generated run ID to parse, got %v", err)
	}
	if parsed != fresh {
		t.Errorf("Round trip mismatch: %s vs %s", parsed, fresh)
	}

	for _, bad := range []string{"", "   ", "not-a-uuid"} {
		if _, err := ParseRunID(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestComputeSampleHash_Deterministic(t *testing.T) {
	a := ComputeSampleHash([]float64{0.1, 0.2, 0.3})
	b := ComputeSampleHash([]float64{0.1, 0.2, 0.3})
	if a != b {
		t.Errorf("Hashes not identical: %s vs %s", a, b)
	}

	// Order matters
	c := ComputeSampleHash([]float64{0.3, 0.2, 0.1})
	if a == c {
		t.Error("Expected reordered sample to hash differently")
	}

	if ComputeSampleHash(nil).String() == "" {
		t.Error("Expected empty sample to still produce a digest")
	}
}
