package track

import "testing"

func buildLoop(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	// A simple three-section loop: 24 -> 22 -> 21 -> 24, no switches.
	must := func(err error) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(g.InsertSection(24, &Section{Name: "24", Forward: DirectConnection(22, Start), Backward: DirectConnection(21, End)}))
	must(g.InsertSection(22, &Section{Name: "22", Forward: DirectConnection(21, Start), Backward: DirectConnection(24, End)}))
	must(g.InsertSection(21, &Section{Name: "21", Forward: DirectConnection(24, Start), Backward: DirectConnection(22, End)}))
	return g
}

func TestTransitionsDirect(t *testing.T) {
	g := buildLoop(t)
	ts, err := g.Transitions(24, Forward)
	if err != nil {
		t.Fatalf("Transitions: %v", err)
	}
	if len(ts) != 1 || ts[0].Destination() != 22 {
		t.Fatalf("got %+v, want single transition to 22", ts)
	}
}

func TestTransitionsSwitchLeftBeforeRight(t *testing.T) {
	g := NewGraph()
	must := func(err error) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(g.InsertSection(1, &Section{Name: "1", Forward: SwitchConnectionEnd("pt1")}))
	must(g.InsertSection(2, &Section{Name: "2", Backward: DirectConnection(1, Start)}))
	must(g.InsertSection(3, &Section{Name: "3", Backward: DirectConnection(1, Start)}))
	must(g.InsertSwitch("pt1", &Switch{
		Name:    "pt1",
		From:    SectionSwitchConnection(1, Start),
		ToLeft:  SectionSwitchConnection(2, Start),
		ToRight: SectionSwitchConnection(3, Start),
	}))

	ts, err := g.Transitions(1, Forward)
	if err != nil {
		t.Fatalf("Transitions: %v", err)
	}
	if len(ts) != 2 {
		t.Fatalf("got %d transitions, want 2", len(ts))
	}
	if ts[0].Destination() != 2 || ts[0].State != Left {
		t.Fatalf("first transition should be the Left branch to section 2, got %+v", ts[0])
	}
	if ts[1].Destination() != 3 || ts[1].State != Right {
		t.Fatalf("second transition should be the Right branch to section 3, got %+v", ts[1])
	}
}

func TestSwitchSectionIDChain(t *testing.T) {
	g := NewGraph()
	must := func(err error) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(g.InsertSection(5, &Section{Name: "5"}))
	must(g.InsertSwitch("a", &Switch{Name: "a", From: SectionSwitchConnection(5, Start)}))
	must(g.InsertSwitch("b", &Switch{Name: "b", From: BackSwitchConnection("a", Left)}))

	id, err := g.SwitchSectionID("b")
	if err != nil {
		t.Fatalf("SwitchSectionID: %v", err)
	}
	if id != 5 {
		t.Fatalf("got %d, want 5", id)
	}
}
