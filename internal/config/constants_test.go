package config

import "testing"

func TestReservedPrefix(t *testing.T) {
	if ReservedPrefix != "__checkmate_" {
		t.Fatalf("got %q, want __checkmate_", ReservedPrefix)
	}
}

func TestFlagsDefaultFalseWithoutEnv(t *testing.T) {
	// These are read once at package init from CHECKMATE_* env vars; in a
	// clean test process none are set, so every flag should default off.
	if OptimizedMode {
		t.Fatalf("OptimizedMode should default to false")
	}
	if StrictPositionalOnly {
		t.Fatalf("StrictPositionalOnly should default to false")
	}
	if StrictVarKeyword {
		t.Fatalf("StrictVarKeyword should default to false")
	}
	if ReturnNoneIsContract {
		t.Fatalf("ReturnNoneIsContract should default to false")
	}
}
