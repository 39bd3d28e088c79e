package reachability

import (
	"github.com/opflow/reachnet/petri"
)

// Graph represents the explored portion of the reachability graph (state
// space) of a Petri net.
type Graph struct {
	Net     *petri.PetriNet
	Initial Marking
	States  map[string]*State
	Edges   []*Edge
}

// State represents a node in the reachability graph.
type State struct {
	Marking    Marking
	Hash       string
	Enabled    []string // Enabled transitions
	IsTerminal bool     // No enabled transitions
}

// Edge represents a transition firing from one state to another.
type Edge struct {
	From       *State
	To         *State
	Transition string
}

// NewGraph creates a new empty reachability graph.
func NewGraph(net *petri.PetriNet, initial Marking) *Graph {
	return &Graph{
		Net:     net,
		Initial: initial.Copy(),
		States:  make(map[string]*State),
	}
}

// AddState adds a state to the graph, or returns the existing one for the
// same marking.
func (g *Graph) AddState(marking Marking) *State {
	hash := marking.Hash()
	if existing, ok := g.States[hash]; ok {
		return existing
	}

	state := &State{
		Marking: marking.Copy(),
		Hash:    hash,
		Enabled: g.findEnabled(marking),
	}
	state.IsTerminal = len(state.Enabled) == 0

	g.States[hash] = state
	return state
}

// AddEdge adds an edge (transition firing) to the graph.
func (g *Graph) AddEdge(from, to *State, transition string) *Edge {
	edge := &Edge{From: from, To: to, Transition: transition}
	g.Edges = append(g.Edges, edge)
	return edge
}

// GetState retrieves a state by its marking.
func (g *Graph) GetState(marking Marking) *State {
	return g.States[marking.Hash()]
}

// StateCount returns the number of states discovered so far.
func (g *Graph) StateCount() int {
	return len(g.States)
}

// EdgeCount returns the number of edges discovered so far.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// findEnabled returns transitions enabled in the given marking.
func (g *Graph) findEnabled(marking Marking) []string {
	var enabled []string
	for transName := range g.Net.Transitions {
		if g.isEnabled(marking, transName) {
			enabled = append(enabled, transName)
		}
	}
	return enabled
}

// isEnabled checks if a transition can fire.
func (g *Graph) isEnabled(marking Marking, transName string) bool {
	for _, arc := range g.Net.Arcs {
		if arc.Target == transName {
			tokens := marking.Get(arc.Source)
			required := int(arc.GetWeightSum())

			if !arc.InhibitTransition && tokens < required {
				return false
			}
			if arc.InhibitTransition && tokens > 0 {
				return false
			}
		}
	}
	return true
}

// Fire fires a transition and returns the new marking.
// Returns nil if the transition is not enabled.
func (g *Graph) Fire(marking Marking, transName string) Marking {
	if !g.isEnabled(marking, transName) {
		return nil
	}

	newMarking := marking.Copy()

	for _, arc := range g.Net.Arcs {
		if arc.Target == transName && !arc.InhibitTransition {
			newMarking.Sub(arc.Source, int(arc.GetWeightSum()))
		}
	}
	for _, arc := range g.Net.Arcs {
		if arc.Source == transName {
			newMarking.Add(arc.Target, int(arc.GetWeightSum()))
		}
	}

	return newMarking
}
