package mcp

import "testing"

func TestKnownOperationsReturnsACopy(t *testing.T) {
	ops := KnownOperations()
	if len(ops) == 0 {
		t.Fatalf("static catalog is empty")
	}
	ops[0].Name = "mutated"
	if knownOperations[0].Name == "mutated" {
		t.Fatalf("callers must not be able to mutate the static catalog")
	}
}

func TestSearchOperationsFuzzyMatch(t *testing.T) {
	got := SearchOperations(KnownOperations(), "collection")
	if len(got) == 0 {
		t.Fatalf("expected matches for %q", "collection")
	}
	for _, op := range got {
		if op.Name == "get_token" {
			t.Errorf("get_token should not match %q", "collection")
		}
	}
}

func TestSearchOperationsEmptyQuery(t *testing.T) {
	ops := KnownOperations()
	got := SearchOperations(ops, "")
	if len(got) != len(ops) {
		t.Fatalf("empty query should return everything, got %d of %d", len(got), len(ops))
	}
}
