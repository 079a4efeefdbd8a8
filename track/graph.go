package track

// maxRecursionDepth bounds the SwitchBack chain walk. The graph has no
// SwitchBack → SwitchBack cycle in practice, but construction must still
// treat overflow as an error rather than loop forever.
const maxRecursionDepth = 4

// Graph holds the track's sections and switches, keyed by opaque id.
type Graph struct {
	sections map[SectionId]*Section
	switches map[SwitchId]*Switch
	names    map[string]SectionId
}

func NewGraph() *Graph {
	return &Graph{
		sections: make(map[SectionId]*Section),
		switches: make(map[SwitchId]*Switch),
		names:    make(map[string]SectionId),
	}
}

func (g *Graph) InsertSection(id SectionId, s *Section) error {
	if _, ok := g.sections[id]; ok {
		return ErrSectionExists
	}
	g.sections[id] = s
	g.names[s.Name] = id
	return nil
}

func (g *Graph) InsertSwitch(id SwitchId, sw *Switch) error {
	if _, ok := g.switches[id]; ok {
		return ErrSwitchExists
	}
	g.switches[id] = sw
	return nil
}

func (g *Graph) Section(id SectionId) (*Section, error) {
	s, ok := g.sections[id]
	if !ok {
		return nil, ErrSectionNotFound
	}
	return s, nil
}

func (g *Graph) SectionByName(name string) (SectionId, error) {
	id, ok := g.names[name]
	if !ok {
		return 0, ErrSectionNotFound
	}
	return id, nil
}

func (g *Graph) Switch(id SwitchId) (*Switch, error) {
	sw, ok := g.switches[id]
	if !ok {
		return nil, ErrSwitchNotFound
	}
	return sw, nil
}

// Sections returns every section id currently in the graph (unordered).
func (g *Graph) Sections() []SectionId {
	out := make([]SectionId, 0, len(g.sections))
	for id := range g.sections {
		out = append(out, id)
	}
	return out
}

// Switches returns every switch id currently in the graph (unordered).
func (g *Graph) Switches() []SwitchId {
	out := make([]SwitchId, 0, len(g.switches))
	for id := range g.switches {
		out = append(out, id)
	}
	return out
}

// Validate checks the graph-finalization invariant: every switch's From and
// at least one branch must be bound.
func (g *Graph) Validate() error {
	for _, sw := range g.switches {
		if !sw.Valid() {
			return ErrSwitchFromBound
		}
	}
	return nil
}

// Transitions returns every transition leaving the given end of `from`, in
// the deterministic Left-branch-first-then-Right order the controller's
// route selection depends on.
func (g *Graph) Transitions(from SectionId, dir Direction) ([]*Transition, error) {
	s, err := g.Section(from)
	if err != nil {
		return nil, err
	}
	return g.expandConnection(s.Connection(dir), 0)
}

func (g *Graph) expandConnection(c Connection, depth int) ([]*Transition, error) {
	if depth > maxRecursionDepth {
		return nil, ErrRecursionExceeded
	}
	switch c.Kind {
	case ConnNone:
		return nil, nil
	case ConnDirect:
		return []*Transition{{Kind: TDirect, SectionID: c.To, SectionEnd: c.SectionEnd}}, nil
	case ConnSwitch:
		sw, err := g.Switch(c.SwitchID)
		if err != nil {
			return nil, err
		}
		left, err := g.expandSwitchConnection(sw.ToLeft, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := g.expandSwitchConnection(sw.ToRight, depth+1)
		if err != nil {
			return nil, err
		}
		out := make([]*Transition, 0, len(left)+len(right))
		for _, inner := range left {
			out = append(out, &Transition{Kind: TSwitch, SwitchID: c.SwitchID, State: Left, To: inner})
		}
		for _, inner := range right {
			out = append(out, &Transition{Kind: TSwitch, SwitchID: c.SwitchID, State: Right, To: inner})
		}
		return out, nil
	case ConnSwitchBack:
		sw, err := g.Switch(c.SwitchID)
		if err != nil {
			return nil, err
		}
		inner, err := g.expandSwitchConnection(sw.From, depth+1)
		if err != nil {
			return nil, err
		}
		out := make([]*Transition, 0, len(inner))
		for _, t := range inner {
			out = append(out, &Transition{Kind: TSwitchBack, SwitchID: c.SwitchID, State: c.RequiredState, To: t})
		}
		return out, nil
	default:
		return nil, nil
	}
}

func (g *Graph) expandSwitchConnection(sc SwitchConnection, depth int) ([]*Transition, error) {
	if depth > maxRecursionDepth {
		return nil, ErrRecursionExceeded
	}
	switch sc.Kind {
	case SCSection:
		return []*Transition{{Kind: TDirect, SectionID: sc.SectionID, SectionEnd: sc.SectionEnd}}, nil
	case SCSwitchBack:
		sw2, err := g.Switch(sc.SwitchID)
		if err != nil {
			return nil, err
		}
		inner, err := g.expandSwitchConnection(sw2.From, depth+1)
		if err != nil {
			return nil, err
		}
		out := make([]*Transition, 0, len(inner))
		for _, t := range inner {
			out = append(out, &Transition{Kind: TSwitchBack, SwitchID: sc.SwitchID, State: sc.State, To: t})
		}
		return out, nil
	default:
		return nil, nil
	}
}

// TransitionsTo filters Transitions(from, dir) to those landing on target.
func (g *Graph) TransitionsTo(from SectionId, dir Direction, target SectionId) ([]*Transition, error) {
	all, err := g.Transitions(from, dir)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, t := range all {
		if t.Destination() == target {
			out = append(out, t)
		}
	}
	return out, nil
}

// SwitchSectionID resolves a switch, by following From through any chain of
// SwitchBack relations, to the one real section that powers it.
func (g *Graph) SwitchSectionID(id SwitchId) (SectionId, error) {
	depth := 0
	for {
		if depth > maxRecursionDepth {
			return 0, ErrRecursionExceeded
		}
		sw, err := g.Switch(id)
		if err != nil {
			return 0, err
		}
		switch sw.From.Kind {
		case SCSection:
			return sw.From.SectionID, nil
		case SCSwitchBack:
			id = sw.From.SwitchID
			depth++
		default:
			return 0, ErrSwitchNotFound
		}
	}
}
