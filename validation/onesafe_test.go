package validation

import (
	"testing"

	"github.com/opflow/reachnet/petri"
)

func TestCheckOneSafeAcceptsWellFormedNet(t *testing.T) {
	net := petri.Build().
		Place("p1", 1).
		Place("p2", 0).
		Transition("t").
		Arc("p1", "t", 1).
		Arc("t", "p2", 1).
		Done()

	result := NewValidator(net).Validate()
	for _, e := range result.Errors {
		if e.Category == "one-safe" {
			t.Errorf("unexpected one-safe error: %s", e.Message)
		}
	}
}

func TestCheckOneSafeRejectsNonBinaryInitialMarking(t *testing.T) {
	net := petri.Build().
		Place("p1", 3).
		Transition("t").
		Arc("p1", "t", 1).
		Done()

	result := NewValidator(net).Validate()
	found := false
	for _, e := range result.Errors {
		if e.Category == "one-safe" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a one-safe error for initial marking 3, got errors: %v", result.Errors)
	}
}

func TestCheckOneSafeRejectsInhibitorArc(t *testing.T) {
	net := petri.Build().
		Place("p1", 1).
		Place("guard", 0).
		Transition("t").
		Arc("p1", "t", 1).
		InhibitorArc("guard", "t", 1).
		Done()

	result := NewValidator(net).Validate()
	found := false
	for _, e := range result.Errors {
		if e.Category == "one-safe" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a one-safe error for the inhibitor arc")
	}
}
