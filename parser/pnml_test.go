package parser

import "testing"

const sampleDoc = `<?xml version="1.0"?>
<pnml>
  <net id="n1">
    <page id="p0">
      <place id="p1"><initialMarking><text>1</text></initialMarking></place>
      <place id="p2"><initialMarking><text>0</text></initialMarking></place>
      <transition id="t"/>
      <arc id="a1" source="p1" target="t"/>
      <arc id="a2" source="t" target="p2"/>
    </page>
  </net>
</pnml>`

func TestFromPNMLParsesPlacesTransitionsArcs(t *testing.T) {
	net, err := FromPNML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("FromPNML: %v", err)
	}
	if len(net.Places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(net.Places))
	}
	if len(net.Transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(net.Transitions))
	}
	if got := net.Places["p1"].GetTokenCount(); got != 1 {
		t.Fatalf("p1 initial marking = %v, want 1", got)
	}
	if len(net.GetInputArcs("t")) != 1 || len(net.GetOutputArcs("t")) != 1 {
		t.Fatalf("expected t to have exactly one input and one output arc")
	}
}

func TestFromPNMLWithoutPageElement(t *testing.T) {
	const doc = `<pnml><net>
		<place id="p1"/>
		<transition id="t"/>
		<arc source="p1" target="t"/>
	</net></pnml>`
	net, err := FromPNML([]byte(doc))
	if err != nil {
		t.Fatalf("FromPNML: %v", err)
	}
	if len(net.Places) != 1 || len(net.Transitions) != 1 {
		t.Fatalf("expected 1 place and 1 transition")
	}
}

func TestFromPNMLRejectsDuplicatePlaceID(t *testing.T) {
	const doc = `<pnml><net><page>
		<place id="p1"/>
		<place id="p1"/>
	</page></net></pnml>`
	if _, err := FromPNML([]byte(doc)); err == nil {
		t.Fatalf("expected an error for duplicate place id")
	}
}

func TestFromPNMLRejectsPlaceToPlaceArc(t *testing.T) {
	const doc = `<pnml><net><page>
		<place id="p1"/>
		<place id="p2"/>
		<arc source="p1" target="p2"/>
	</page></net></pnml>`
	if _, err := FromPNML([]byte(doc)); err == nil {
		t.Fatalf("expected an error for a place-to-place arc")
	}
}

func TestFromPNMLRejectsDanglingArc(t *testing.T) {
	const doc = `<pnml><net><page>
		<place id="p1"/>
		<transition id="t"/>
		<arc source="p1" target="missing"/>
	</page></net></pnml>`
	if _, err := FromPNML([]byte(doc)); err == nil {
		t.Fatalf("expected an error for a dangling arc reference")
	}
}
