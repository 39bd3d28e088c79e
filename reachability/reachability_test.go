package reachability

import (
	"testing"

	"github.com/opflow/reachnet/petri"
)

func createSimpleNet() *petri.PetriNet {
	return petri.Build().
		Place("A", 2).
		Place("B", 0).
		Transition("t1").
		Arc("A", "t1", 1).
		Arc("t1", "B", 1).
		Done()
}

func createDeadlockNet() *petri.PetriNet {
	return petri.Build().
		Place("start", 1).
		Place("working", 0).
		Place("resource", 1).
		Place("done", 0).
		Transition("begin").
		Transition("finish").
		Arc("start", "begin", 1).
		Arc("begin", "working", 1).
		Arc("working", "finish", 1).
		Arc("resource", "finish", 2). // needs 2, only 1 exists -> deadlock
		Arc("finish", "done", 1).
		Done()
}

func createCyclicNet() *petri.PetriNet {
	return petri.Build().
		Place("idle", 1).
		Place("working", 0).
		Transition("start").
		Transition("finish").
		Arc("idle", "start", 1).
		Arc("start", "working", 1).
		Arc("working", "finish", 1).
		Arc("finish", "idle", 1).
		Done()
}

func TestMarkingCopy(t *testing.T) {
	m := Marking{"A": 5, "B": 3}
	c := m.Copy()

	c["A"] = 99
	if m["A"] != 5 {
		t.Error("Copy should not affect original")
	}
}

func TestMarkingHash(t *testing.T) {
	m1 := Marking{"A": 5, "B": 3}
	m2 := Marking{"B": 3, "A": 5} // different order, same content
	m3 := Marking{"A": 5, "B": 4}

	if m1.Hash() != m2.Hash() {
		t.Error("Same marking should have same hash regardless of order")
	}
	if m1.Hash() == m3.Hash() {
		t.Error("Different markings should have different hashes")
	}
}

func TestMarkingMax(t *testing.T) {
	m := Marking{"A": 5, "B": 3, "C": 9}
	if m.Max() != 9 {
		t.Errorf("Expected max 9, got %d", m.Max())
	}
}

func TestAnalyzeSimple(t *testing.T) {
	net := createSimpleNet()
	result := NewAnalyzer(net).Analyze()

	// A=2,B=0 -> A=1,B=1 -> A=0,B=2
	if result.StateCount != 3 {
		t.Errorf("Expected 3 states, got %d", result.StateCount)
	}
	if result.EdgeCount != 2 {
		t.Errorf("Expected 2 edges, got %d", result.EdgeCount)
	}
	if !result.Bounded {
		t.Error("Simple net should be bounded")
	}
}

func TestAnalyzeDeadlock(t *testing.T) {
	net := createDeadlockNet()
	result := NewAnalyzer(net).Analyze()

	// Two reachable states: the initial marking and the one after "begin";
	// "finish" is never enabled (needs 2 resource tokens, only 1 exists).
	if result.StateCount != 2 {
		t.Errorf("Expected 2 states, got %d", result.StateCount)
	}
}

func TestAnalyzeCyclic(t *testing.T) {
	net := createCyclicNet()
	result := NewAnalyzer(net).Analyze()

	if result.StateCount != 2 {
		t.Errorf("Expected 2 states, got %d", result.StateCount)
	}
}

func TestIsReachable(t *testing.T) {
	net := createSimpleNet()
	analyzer := NewAnalyzer(net)

	target := Marking{"A": 0, "B": 2}
	if !analyzer.IsReachable(target) {
		t.Error("A=0,B=2 should be reachable")
	}

	unreachable := Marking{"A": 3, "B": 0}
	if analyzer.IsReachable(unreachable) {
		t.Error("A=3,B=0 should not be reachable")
	}
}

func TestEmptyNet(t *testing.T) {
	net := petri.NewPetriNet()
	result := NewAnalyzer(net).Analyze()

	if result.StateCount != 1 {
		t.Errorf("Empty net should have 1 state (empty marking), got %d", result.StateCount)
	}
}

func TestMaxStatesLimit(t *testing.T) {
	net := petri.Build().
		Place("A", 100).
		Place("B", 0).
		Transition("t1").
		Arc("A", "t1", 1).
		Arc("t1", "B", 1).
		Done()

	result := NewAnalyzer(net).WithMaxStates(10).Analyze()

	if result.StateCount > 10 {
		t.Errorf("Should respect max states limit, got %d", result.StateCount)
	}
	if !result.Truncated {
		t.Error("Should be marked as truncated")
	}
}
