package ttl

import (
	"fmt"
	"strconv"

	"github.com/jangala-dev/liketrain-go/track"
)

type connSpecKind int

const (
	csNone connSpecKind = iota
	csDirect
	csSwitch
	csBack
)

type connSpec struct {
	kind   connSpecKind
	target int
	name   string
	state  track.SwitchState
}

type sectionDef struct {
	num      int
	forward  *connSpec // declared with ->
	backward *connSpec // declared with <-
}

type switchLinkDef struct {
	nameA  string
	stateA track.SwitchState
	nameB  string
	stateB track.SwitchState
}

// def is either a *sectionDef or a *switchLinkDef.
type def any

// Parse reads TTL source text and returns the ordered list of definitions,
// in file order, as the evaluator requires.
func Parse(src string) ([]def, error) {
	var defs []def
	line := 0
	start := 0
	for i := 0; i <= len(src); i++ {
		if i == len(src) || src[i] == '\n' {
			raw := src[start:i]
			start = i + 1
			line++
			text := stripComment(raw)
			if isBlank(text) {
				continue
			}
			d, err := parseLine(text)
			if err != nil {
				return nil, fmt.Errorf("ttl: line %d: %w", line, err)
			}
			if d != nil {
				defs = append(defs, d)
			}
		}
	}
	return defs, nil
}

func isBlank(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

func parseLine(text string) (def, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	// switch(name,state) -> switch(name,state)
	if p.peek().kind == tokIdent && p.peek().text == "switch" {
		save := p.pos
		if link, ok := p.tryParseSwitchLink(); ok {
			return link, nil
		}
		p.pos = save
	}

	// S<int>: ...
	if p.peek().kind == tokIdent && len(p.peek().text) > 1 && p.peek().text[0] == 'S' && isDigits(p.peek().text[1:]) {
		return p.parseSectionDef()
	}

	return nil, fmt.Errorf("%w: unrecognized statement", ErrSyntax)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}
func (p *parser) expect(k tokenKind) (token, error) {
	t := p.next()
	if t.kind != k {
		return t, fmt.Errorf("%w: unexpected token %q", ErrSyntax, t.text)
	}
	return t, nil
}

func (p *parser) tryParseSwitchLink() (*switchLinkDef, bool) {
	a, okA := p.parseSwitchRef()
	if !okA {
		return nil, false
	}
	if p.peek().kind != tokArrow {
		return nil, false
	}
	p.next()
	b, okB := p.parseSwitchRef()
	if !okB {
		return nil, false
	}
	return &switchLinkDef{nameA: a.name, stateA: a.state, nameB: b.name, stateB: b.state}, true
}

type switchRef struct {
	name  string
	state track.SwitchState
}

func (p *parser) parseSwitchRef() (switchRef, bool) {
	if p.peek().kind != tokIdent || p.peek().text != "switch" {
		return switchRef{}, false
	}
	p.next()
	if p.peek().kind != tokLParen {
		return switchRef{}, false
	}
	p.next()
	if p.peek().kind != tokIdent {
		return switchRef{}, false
	}
	name := p.next().text
	if p.peek().kind != tokComma {
		return switchRef{}, false
	}
	p.next()
	if p.peek().kind != tokIdent {
		return switchRef{}, false
	}
	state, err := parseState(p.next().text)
	if err != nil {
		return switchRef{}, false
	}
	if p.peek().kind != tokRParen {
		return switchRef{}, false
	}
	p.next()
	return switchRef{name: name, state: state}, true
}

func (p *parser) parseSectionDef() (*sectionDef, error) {
	ident := p.next() // S<int>
	num, err := strconv.Atoi(ident.text[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: bad section number %q", ErrSyntax, ident.text)
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}

	def := &sectionDef{num: num}
	for {
		switch p.peek().kind {
		case tokArrow:
			p.next()
			c, err := p.parseConnSpec()
			if err != nil {
				return nil, err
			}
			def.forward = c
		case tokBackArrow:
			p.next()
			c, err := p.parseConnSpec()
			if err != nil {
				return nil, err
			}
			def.backward = c
		case tokPipe:
			p.next()
			continue
		case tokEOF:
			return def, nil
		default:
			return nil, fmt.Errorf("%w: unexpected token %q in section definition", ErrSyntax, p.peek().text)
		}
	}
}

func (p *parser) parseConnSpec() (*connSpec, error) {
	if p.peek().kind != tokIdent {
		return nil, fmt.Errorf("%w: expected connection kind", ErrSyntax)
	}
	kind := p.next().text
	switch kind {
	case "none":
		return &connSpec{kind: csNone}, nil
	case "direct":
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		ident, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		if len(ident.text) < 2 || ident.text[0] != 'S' || !isDigits(ident.text[1:]) {
			return nil, fmt.Errorf("%w: expected section reference, got %q", ErrSyntax, ident.text)
		}
		target, _ := strconv.Atoi(ident.text[1:])
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &connSpec{kind: csDirect, target: target}, nil
	case "switch":
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &connSpec{kind: csSwitch, name: name.text}, nil
	case "back":
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokComma); err != nil {
			return nil, err
		}
		stateTok, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		state, err := parseState(stateTok.text)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &connSpec{kind: csBack, name: name.text, state: state}, nil
	default:
		return nil, fmt.Errorf("%w: unknown connection kind %q", ErrSyntax, kind)
	}
}

func parseState(s string) (track.SwitchState, error) {
	switch s {
	case "left":
		return track.Left, nil
	case "right":
		return track.Right, nil
	default:
		return 0, fmt.Errorf("%w: unknown switch state %q", ErrSyntax, s)
	}
}
