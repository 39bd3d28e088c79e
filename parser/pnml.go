package parser

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/opflow/reachnet/petri"
)

// pnmlDoc mirrors the subset of the PNML schema the detector's original
// Python parser consumed: a <pnml><net>...</net></pnml> document, with
// places/transitions/arcs either directly under <net> or nested one
// level deeper under a single <page>.
type pnmlDoc struct {
	XMLName xml.Name `xml:"pnml"`
	Net     pnmlNet  `xml:"net"`
}

type pnmlNet struct {
	Page        *pnmlPage        `xml:"page"`
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPage struct {
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPlace struct {
	ID             string    `xml:"id,attr"`
	InitialMarking *pnmlText `xml:"initialMarking"`
}

type pnmlText struct {
	Text string `xml:"text"`
}

type pnmlTransition struct {
	ID string `xml:"id,attr"`
}

type pnmlArc struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// FromPNML parses a PNML document into a *petri.PetriNet, applying the
// same validation the original parser did: every place/transition id is
// unique, every arc endpoint refers to a declared node, and every arc
// connects a place to a transition (never place-place or
// transition-transition). Nodes with no incident arc produce a warning
// on stderr rather than a rejection, matching the original's "orphan
// node" behavior.
func FromPNML(data []byte) (*petri.PetriNet, error) {
	var doc pnmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid PNML: %w", err)
	}

	src := doc.Net.Page
	if src == nil {
		src = &pnmlPage{
			Places:      doc.Net.Places,
			Transitions: doc.Net.Transitions,
			Arcs:        doc.Net.Arcs,
		}
	}

	net := petri.NewPetriNet()
	placeSet := make(map[string]bool, len(src.Places))
	transitionSet := make(map[string]bool, len(src.Transitions))

	for _, p := range src.Places {
		if p.ID == "" {
			return nil, fmt.Errorf("invalid place: missing id attribute")
		}
		if placeSet[p.ID] {
			return nil, fmt.Errorf("duplicate place id: %s", p.ID)
		}
		placeSet[p.ID] = true

		mark := 0
		if p.InitialMarking != nil && p.InitialMarking.Text != "" {
			if _, err := fmt.Sscanf(p.InitialMarking.Text, "%d", &mark); err != nil {
				mark = 0
			}
		}
		if mark != 0 && mark != 1 {
			fmt.Fprintf(os.Stderr, "warning: initialMarking for %s is %d, expected 0 or 1 for a 1-safe net\n", p.ID, mark)
		}
		net.AddPlace(p.ID, float64(mark), nil, 0, 0, nil)
	}

	for _, t := range src.Transitions {
		if t.ID == "" {
			return nil, fmt.Errorf("invalid transition: missing id attribute")
		}
		if transitionSet[t.ID] {
			return nil, fmt.Errorf("duplicate transition id: %s", t.ID)
		}
		transitionSet[t.ID] = true
		net.AddTransition(t.ID, "", 0, 0, nil)
	}

	connected := make(map[string]bool, len(src.Arcs)*2)
	for _, a := range src.Arcs {
		if a.Source == "" || a.Target == "" {
			return nil, fmt.Errorf("invalid arc: missing source/target attribute")
		}
		srcIsPlace, srcIsTransition := placeSet[a.Source], transitionSet[a.Source]
		tgtIsPlace, tgtIsTransition := placeSet[a.Target], transitionSet[a.Target]
		if !srcIsPlace && !srcIsTransition {
			return nil, fmt.Errorf("inconsistent arc (%s -> %s): node %q not defined", a.Source, a.Target, a.Source)
		}
		if !tgtIsPlace && !tgtIsTransition {
			return nil, fmt.Errorf("inconsistent arc (%s -> %s): node %q not defined", a.Source, a.Target, a.Target)
		}
		if (srcIsPlace && tgtIsPlace) || (srcIsTransition && tgtIsTransition) {
			return nil, fmt.Errorf("invalid arc (%s -> %s): arcs must connect place <-> transition", a.Source, a.Target)
		}
		net.AddArc(a.Source, a.Target, 1.0, false)
		connected[a.Source] = true
		connected[a.Target] = true
	}

	for p := range placeSet {
		if !connected[p] {
			fmt.Fprintf(os.Stderr, "warning: node %q is not connected to any arc\n", p)
		}
	}
	for t := range transitionSet {
		if !connected[t] {
			fmt.Fprintf(os.Stderr, "warning: node %q is not connected to any arc\n", t)
		}
	}

	return net, nil
}
