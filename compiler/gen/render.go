package gen

import (
	"strings"

	"github.com/cowgen/cowgen/compiler/decl"
)

// Render reconstructs the source text of a type expression token by
// token. The host front-end's own stringification mishandles
// value-parameterized generics (Buffer<8>) and nested labeled-tuple,
// optional and function-type combinations, so generated declarations are
// always rendered through this path. The output feeds compiled
// declarations directly: the joining rules below are load-bearing, not
// cosmetic.
func Render(t decl.TypeExpr) string {
	return joinTokens(tokens(t))
}

// IsOptional reports whether a field of this type can be absent: a
// trailing optional marker, a trailing forced-unwrap marker, or a
// generic application of the canonical Optional wrapper. Fields of such
// types synthesize an implicit nil default in generated constructors
// when the declaration carries no explicit default.
func IsOptional(t decl.TypeExpr) bool {
	switch t := t.(type) {
	case *decl.Optional:
		return true
	case *decl.Named:
		return t.Name == "Optional" && len(t.Args) > 0
	default:
		return false
	}
}

// tokens flattens a type expression into its token sequence.
func tokens(t decl.TypeExpr) []string {
	switch t := t.(type) {
	case *decl.Named:
		toks := []string{t.Name}
		if len(t.Args) > 0 {
			toks = append(toks, "<")
			for i, a := range t.Args {
				if i > 0 {
					toks = append(toks, ",")
				}
				toks = append(toks, tokens(a)...)
			}
			toks = append(toks, ">")
		}
		return toks
	case *decl.Literal:
		return []string{t.Text}
	case *decl.Optional:
		marker := "?"
		if t.Forced {
			marker = "!"
		}
		return append(grouped(t.Elem), marker)
	case *decl.Tuple:
		toks := []string{"("}
		for i, e := range t.Elems {
			if i > 0 {
				toks = append(toks, ",")
			}
			if e.Label != "" {
				toks = append(toks, e.Label, ":")
			}
			toks = append(toks, tokens(e.Type)...)
		}
		return append(toks, ")")
	case *decl.Function:
		toks := []string{"("}
		for i, p := range t.Params {
			if i > 0 {
				toks = append(toks, ",")
			}
			if p.Inout {
				toks = append(toks, "inout")
			}
			toks = append(toks, tokens(p.Type)...)
			if p.Variadic {
				toks = append(toks, "...")
			}
		}
		toks = append(toks, ")")
		if t.Async {
			toks = append(toks, "async")
		}
		if t.Throws {
			toks = append(toks, "throws")
		}
		toks = append(toks, "->")
		return append(toks, tokens(t.Result)...)
	case *decl.Composition:
		var toks []string
		for i, term := range t.Terms {
			if i > 0 {
				toks = append(toks, "&")
			}
			toks = append(toks, grouped(term)...)
		}
		return toks
	case *decl.MemberType:
		return append(append(grouped(t.Base), "."), t.Name)
	case *decl.Constrained:
		return append([]string{t.Keyword}, tokens(t.Elem)...)
	case *decl.Array:
		return append(append([]string{"["}, tokens(t.Elem)...), "]")
	case *decl.Dictionary:
		toks := append([]string{"["}, tokens(t.Key)...)
		toks = append(toks, ":")
		toks = append(toks, tokens(t.Value)...)
		return append(toks, "]")
	default:
		return nil
	}
}

// grouped emits a subexpression, parenthesizing the forms that would
// otherwise bind differently when a postfix marker, composition, or
// member access is applied to them.
func grouped(t decl.TypeExpr) []string {
	switch t.(type) {
	case *decl.Function, *decl.Composition, *decl.Constrained:
		return append(append([]string{"("}, tokens(t)...), ")")
	default:
		return tokens(t)
	}
}

// joinTokens joins a token sequence applying the spacing rules of the
// host grammar, first match wins.
func joinTokens(toks []string) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && spaceBetween(toks[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

// spaceBetween decides whether a single space separates two adjacent
// tokens. The rules are ordered; the first that applies decides.
func spaceBetween(prev, next string) bool {
	switch {
	case prev == "(" || prev == "[" || prev == "<":
		return false
	case next == ")" || next == "]" || next == ">":
		return false
	case prev == "." || next == ".":
		return false
	case next == ",":
		return false
	case prev == ",":
		return true
	case next == ":":
		return false
	case prev == ":":
		return true
	case prev == "?" || next == "?" || prev == "!" || next == "!":
		return false
	case next == "...":
		return false
	case prev == "&" || next == "&" || prev == "->" || next == "->":
		return true
	case modifierKeyword[prev] || modifierKeyword[next]:
		return true
	default:
		return false
	}
}

// Modifier keywords take a space on both sides: one after them per the
// grammar, and one before so they never fuse with a closing delimiter.
var modifierKeyword = map[string]bool{
	"any":    true,
	"some":   true,
	"inout":  true,
	"async":  true,
	"throws": true,
}
