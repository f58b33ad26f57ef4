package decl

import (
	"strconv"
	"strings"
)

// LiteralKind classifies an initializer expression for the purpose of
// inferring the type of an unannotated member.
type LiteralKind int

const (
	// LiteralNone means the expression is not a recognizable literal.
	LiteralNone LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralNil
)

// InferredTypeName returns the host type name a literal of this kind
// infers, or the empty string when no inference is possible.
func (k LiteralKind) InferredTypeName() string {
	switch k {
	case LiteralInt:
		return "Int"
	case LiteralFloat:
		return "Double"
	case LiteralString:
		return "String"
	case LiteralBool:
		return "Bool"
	default:
		return ""
	}
}

// ClassifyLiteral classifies the given initializer expression text.
// Only plain literals are recognized; arbitrary expressions (calls,
// operators, member references) classify as LiteralNone.
func ClassifyLiteral(expr string) LiteralKind {
	s := strings.TrimSpace(expr)
	switch {
	case s == "":
		return LiteralNone
	case s == "nil":
		return LiteralNil
	case s == "true" || s == "false":
		return LiteralBool
	case len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"':
		// Interpolations reference members and carry no inferable type.
		if strings.Contains(s, `\(`) {
			return LiteralNone
		}
		return LiteralString
	}
	if _, err := strconv.ParseInt(stripSign(s), 10, 64); err == nil {
		return LiteralInt
	}
	if _, err := strconv.ParseFloat(stripSign(s), 64); err == nil {
		// Hex and exponent-less integers were handled above; anything
		// parseable here carries a fractional or exponent part.
		return LiteralFloat
	}
	return LiteralNone
}

func stripSign(s string) string {
	if len(s) > 1 && (s[0] == '-' || s[0] == '+') {
		return s[1:]
	}
	return s
}

// CollapseWhitespace normalizes the whitespace of a captured initializer
// expression: runs of spaces, tabs and newlines become a single space.
func CollapseWhitespace(expr string) string {
	return strings.Join(strings.Fields(expr), " ")
}
