package decl

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseType parses a host-language type expression into its tree form.
// The grammar covers what record fields can legally be declared with:
// identifiers, generic application (type and value arguments), optional
// and forced-unwrap markers, labeled tuples, array and dictionary sugar,
// function types with effect keywords and parameter modifiers, protocol
// compositions, member types, and any/some markers.
func ParseType(src string) (TypeExpr, error) {
	toks, err := scanType(src)
	if err != nil {
		return nil, err
	}
	p := &typeParser{src: src, toks: toks}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("decl: trailing tokens after type expression %q", src)
	}
	if g, ok := t.(*parenGroup); ok {
		return g.collapse()
	}
	return t, nil
}

// token kinds produced by the type scanner.
const (
	tokIdent = iota
	tokNumber
	tokPunct // single punctuation: ( ) [ ] < > , : ? ! & .
	tokArrow // ->
	tokDots  // ...
)

type token struct {
	kind int
	text string
}

func scanType(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '-' && i+1 < len(rs) && rs[i+1] == '>':
			toks = append(toks, token{tokArrow, "->"})
			i += 2
		case r == '.' && i+2 < len(rs) && rs[i+1] == '.' && rs[i+2] == '.':
			toks = append(toks, token{tokDots, "..."})
			i += 3
		case strings.ContainsRune("()[]<>,:?!&.", r):
			toks = append(toks, token{tokPunct, string(r)})
			i++
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(rs[i:j])})
			i = j
		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			toks = append(toks, token{tokNumber, string(rs[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("decl: unexpected character %q in type expression %q", r, src)
		}
	}
	return toks, nil
}

type typeParser struct {
	src  string
	toks []token
	pos  int
}

// parenGroup is a parsed parenthesized element list that has not yet been
// resolved into a parenthesized type, a tuple, or a parameter list. It
// escapes the postfix parser only when a function arrow follows.
type parenGroup struct {
	elems []groupElem
}

func (*parenGroup) typeExpr() {}

type groupElem struct {
	label    string
	inout    bool
	variadic bool
	typ      TypeExpr
}

func (p *typeParser) eof() bool { return p.pos >= len(p.toks) }

func (p *typeParser) peek() (token, bool) {
	if p.eof() {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *typeParser) acceptPunct(s string) bool {
	if t, ok := p.peek(); ok && (t.kind == tokPunct || t.kind == tokArrow) && t.text == s {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) acceptIdent(s string) bool {
	if t, ok := p.peek(); ok && t.kind == tokIdent && t.text == s {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expectPunct(s string) error {
	if !p.acceptPunct(s) {
		return fmt.Errorf("decl: expected %q in type expression %q", s, p.src)
	}
	return nil
}

func (p *typeParser) parseType() (TypeExpr, error) {
	for _, kw := range []string{"any", "some"} {
		if p.acceptIdent(kw) {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return &Constrained{Keyword: kw, Elem: elem}, nil
		}
	}
	return p.parseFunctionOrComposition()
}

func (p *typeParser) parseFunctionOrComposition() (TypeExpr, error) {
	left, err := p.parseComposition()
	if err != nil {
		return nil, err
	}
	var async, throws bool
	for {
		switch {
		case p.acceptIdent("async"):
			async = true
		case p.acceptIdent("throws"):
			throws = true
		default:
			goto effectsDone
		}
	}
effectsDone:
	if p.acceptPunct("->") {
		params, err := paramsOf(left)
		if err != nil {
			return nil, err
		}
		result, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &Function{Params: params, Async: async, Throws: throws, Result: result}, nil
	}
	if async || throws {
		return nil, fmt.Errorf("decl: effect keyword without function arrow in %q", p.src)
	}
	return left, nil
}

// paramsOf converts the left-hand side of a function arrow into a
// parameter list. The host grammar requires a parenthesized list there.
func paramsOf(t TypeExpr) ([]Param, error) {
	g, ok := t.(*parenGroup)
	if !ok {
		return nil, fmt.Errorf("decl: function parameters must be parenthesized")
	}
	params := make([]Param, 0, len(g.elems))
	for _, e := range g.elems {
		if e.label != "" {
			return nil, fmt.Errorf("decl: function type parameter cannot be labeled %q", e.label)
		}
		params = append(params, Param{Inout: e.inout, Variadic: e.variadic, Type: e.typ})
	}
	return params, nil
}

func (p *typeParser) parseComposition() (TypeExpr, error) {
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, ok := first.(*parenGroup); ok {
		return first, nil
	}
	terms := []TypeExpr{first}
	for p.acceptPunct("&") {
		next, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		if g, ok := next.(*parenGroup); ok {
			if next, err = g.collapse(); err != nil {
				return nil, err
			}
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &Composition{Terms: terms}, nil
}

func (p *typeParser) parsePostfix() (TypeExpr, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if g, ok := t.(*parenGroup); ok {
		// Keep the group unresolved only when a function signature follows.
		if nt, ok := p.peek(); ok && (nt.kind == tokArrow || (nt.kind == tokIdent && (nt.text == "async" || nt.text == "throws"))) {
			return g, nil
		}
		if t, err = g.collapse(); err != nil {
			return nil, err
		}
	}
	for {
		switch {
		case p.acceptPunct("?"):
			t = &Optional{Elem: t}
		case p.acceptPunct("!"):
			t = &Optional{Elem: t, Forced: true}
		case p.acceptPunct("."):
			nt, ok := p.peek()
			if !ok || nt.kind != tokIdent {
				return nil, fmt.Errorf("decl: expected identifier after %q in %q", ".", p.src)
			}
			p.pos++
			t = &MemberType{Base: t, Name: nt.text}
		default:
			return t, nil
		}
	}
}

func (p *typeParser) parsePrimary() (TypeExpr, error) {
	nt, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("decl: unexpected end of type expression %q", p.src)
	}
	switch {
	case nt.kind == tokIdent:
		p.pos++
		named := &Named{Name: nt.text}
		if p.acceptPunct("<") {
			for {
				arg, err := p.parseGenericArg()
				if err != nil {
					return nil, err
				}
				named.Args = append(named.Args, arg)
				if !p.acceptPunct(",") {
					break
				}
			}
			if err := p.expectPunct(">"); err != nil {
				return nil, err
			}
		}
		return named, nil
	case nt.kind == tokPunct && nt.text == "(":
		p.pos++
		return p.parseParenGroup()
	case nt.kind == tokPunct && nt.text == "[":
		p.pos++
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.acceptPunct(":") {
			val, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			return &Dictionary{Key: key, Value: val}, nil
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return &Array{Elem: key}, nil
	default:
		return nil, fmt.Errorf("decl: unexpected token %q in type expression %q", nt.text, p.src)
	}
}

// parseGenericArg parses one generic argument: a type, or a value
// parameter such as the 8 in Buffer<8>.
func (p *typeParser) parseGenericArg() (TypeExpr, error) {
	if nt, ok := p.peek(); ok && nt.kind == tokNumber {
		p.pos++
		return &Literal{Text: nt.text}, nil
	}
	return p.parseType()
}

func (p *typeParser) parseParenGroup() (TypeExpr, error) {
	g := &parenGroup{}
	if p.acceptPunct(")") {
		return g, nil
	}
	for {
		var e groupElem
		// A label is an identifier immediately followed by a colon.
		if nt, ok := p.peek(); ok && nt.kind == tokIdent && nt.text != "inout" &&
			p.pos+1 < len(p.toks) && p.toks[p.pos+1].kind == tokPunct && p.toks[p.pos+1].text == ":" {
			e.label = nt.text
			p.pos += 2
		}
		if p.acceptIdent("inout") {
			e.inout = true
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if inner, ok := t.(*parenGroup); ok {
			if t, err = inner.collapse(); err != nil {
				return nil, err
			}
		}
		e.typ = t
		if nt, ok := p.peek(); ok && nt.kind == tokDots {
			e.variadic = true
			p.pos++
		}
		g.elems = append(g.elems, e)
		if !p.acceptPunct(",") {
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return g, nil
}

// collapse resolves a parenthesized group that is not followed by a
// function arrow: a single unlabeled element is just a parenthesized
// type, anything else is a tuple.
func (g *parenGroup) collapse() (TypeExpr, error) {
	for _, e := range g.elems {
		if e.inout || e.variadic {
			return nil, fmt.Errorf("decl: parameter modifier outside a function type")
		}
	}
	if len(g.elems) == 1 && g.elems[0].label == "" {
		return g.elems[0].typ, nil
	}
	elems := make([]TupleElem, 0, len(g.elems))
	for _, e := range g.elems {
		elems = append(elems, TupleElem{Label: e.label, Type: e.typ})
	}
	return &Tuple{Elems: elems}, nil
}
