package ttl

import (
	"fmt"

	"github.com/jangala-dev/liketrain-go/track"
)

// Load parses and evaluates TTL source text in one step.
func Load(src string) (*track.Graph, error) {
	defs, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Evaluate(defs)
}

// Evaluate walks the parsed definitions in file order and produces a
// validated track.Graph. Sections are interned (created on first sight);
// each switch "from" or branch slot may be claimed exactly once.
func Evaluate(defs []def) (*track.Graph, error) {
	g := track.NewGraph()
	e := &evaluator{g: g, switches: make(map[string]*track.Switch)}

	for _, d := range defs {
		switch v := d.(type) {
		case *sectionDef:
			if err := e.applySectionDef(v); err != nil {
				return nil, err
			}
		case *switchLinkDef:
			if err := e.applySwitchLink(v); err != nil {
				return nil, err
			}
		}
	}

	for name, sw := range e.switches {
		if err := g.InsertSwitch(track.SwitchId(name), sw); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

type evaluator struct {
	g        *track.Graph
	switches map[string]*track.Switch
}

func (e *evaluator) section(num int) *track.Section {
	id := track.SectionId(num)
	s, err := e.g.Section(id)
	if err == nil {
		return s
	}
	s = &track.Section{Name: fmt.Sprintf("S%d", num)}
	_ = e.g.InsertSection(id, s)
	return s
}

func (e *evaluator) switchNamed(name string) *track.Switch {
	if sw, ok := e.switches[name]; ok {
		return sw
	}
	sw := &track.Switch{Name: name}
	e.switches[name] = sw
	return sw
}

func (e *evaluator) applySectionDef(d *sectionDef) error {
	if d.forward != nil {
		if err := e.applyConn(d.num, track.Forward, d.forward); err != nil {
			return err
		}
	}
	if d.backward != nil {
		if err := e.applyConn(d.num, track.Backward, d.backward); err != nil {
			return err
		}
	}
	return nil
}

// applyConn installs the section-side Connection, and, for switch/back
// connections, also claims the corresponding slot on the named switch.
func (e *evaluator) applyConn(secNum int, dir track.Direction, c *connSpec) error {
	s := e.section(secNum)
	// SectionEnd on the neighbour (Direct) or on this section's attachment
	// to a switch (Switch/SwitchBack) is computed from the declaration
	// direction: Forward means entered through End, Backward through Start.
	end := track.End
	if dir == track.Backward {
		end = track.Start
	}

	var conn track.Connection
	switch c.kind {
	case csNone:
		conn = track.NoneConnection()
	case csDirect:
		conn = track.DirectConnection(track.SectionId(c.target), end)
	case csSwitch:
		sw := e.switchNamed(c.name)
		if sw.From.Bound {
			return ErrSwitchFromBound
		}
		sw.From = track.SectionSwitchConnection(track.SectionId(secNum), end)
		conn = track.SwitchConnectionEnd(track.SwitchId(c.name))
	case csBack:
		sw := e.switchNamed(c.name)
		if err := claimBranch(sw, c.state, track.SectionSwitchConnection(track.SectionId(secNum), end)); err != nil {
			return err
		}
		conn = track.SwitchBackConnection(track.SwitchId(c.name), c.state)
	}

	if dir == track.Forward {
		s.Forward = conn
	} else {
		s.Backward = conn
	}
	return nil
}

func (e *evaluator) applySwitchLink(d *switchLinkDef) error {
	a := e.switchNamed(d.nameA)
	b := e.switchNamed(d.nameB)
	if err := claimBranch(a, d.stateA, track.BackSwitchConnection(track.SwitchId(d.nameB), d.stateB)); err != nil {
		return err
	}
	if err := claimBranch(b, d.stateB, track.BackSwitchConnection(track.SwitchId(d.nameA), d.stateA)); err != nil {
		return err
	}
	return nil
}

func claimBranch(sw *track.Switch, state track.SwitchState, conn track.SwitchConnection) error {
	if state == track.Left {
		if sw.ToLeft.Bound {
			return ErrSwitchToBound
		}
		sw.ToLeft = conn
	} else {
		if sw.ToRight.Bound {
			return ErrSwitchToBound
		}
		sw.ToRight = conn
	}
	return nil
}
