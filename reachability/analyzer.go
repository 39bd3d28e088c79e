package reachability

import (
	"github.com/opflow/reachnet/petri"
)

// Analyzer performs explicit-state BFS reachability analysis, used as the
// cross-check oracle for SymbolicReachability's BDD-based state count.
type Analyzer struct {
	net       *petri.PetriNet
	initial   Marking
	maxStates int
	maxTokens int
}

// NewAnalyzer creates a new reachability analyzer over net's initial marking.
func NewAnalyzer(net *petri.PetriNet) *Analyzer {
	initial := make(Marking)
	for name, place := range net.Places {
		initial[name] = int(place.GetTokenCount())
	}

	return &Analyzer{
		net:       net,
		initial:   initial,
		maxStates: 10000,
		maxTokens: 1000,
	}
}

// WithMaxStates sets the maximum number of states to explore.
func (a *Analyzer) WithMaxStates(max int) *Analyzer {
	a.maxStates = max
	return a
}

// Result contains the result of a BFS reachability run.
type Result struct {
	Graph       *Graph
	StateCount  int
	EdgeCount   int
	Bounded     bool
	Truncated   bool
	TruncateMsg string
}

// Analyze runs the BFS exploration of the reachability graph.
func (a *Analyzer) Analyze() *Result {
	graph := NewGraph(a.net, a.initial)
	result := &Result{Graph: graph, Bounded: true}

	queue := []Marking{a.initial}
	graph.AddState(a.initial)

	for len(queue) > 0 && graph.StateCount() < a.maxStates {
		current := queue[0]
		queue = queue[1:]

		currentState := graph.GetState(current)
		if currentState == nil {
			continue
		}

		for _, trans := range currentState.Enabled {
			newMarking := graph.Fire(current, trans)
			if newMarking == nil {
				continue
			}

			if newMarking.Max() > a.maxTokens {
				result.Bounded = false
				result.Truncated = true
				result.TruncateMsg = "unbounded: token count exceeded limit"
				break
			}

			newState := graph.GetState(newMarking)
			if newState == nil {
				newState = graph.AddState(newMarking)
				queue = append(queue, newMarking)
			}
			graph.AddEdge(currentState, newState, trans)
		}

		if result.Truncated {
			break
		}
	}

	if graph.StateCount() >= a.maxStates && !result.Truncated {
		result.Truncated = true
		result.TruncateMsg = "state limit reached"
	}

	result.StateCount = graph.StateCount()
	result.EdgeCount = graph.EdgeCount()

	return result
}

// IsReachable checks if a target marking is reachable from the initial marking.
func (a *Analyzer) IsReachable(target Marking) bool {
	result := a.Analyze()
	return result.Graph.GetState(target) != nil
}
