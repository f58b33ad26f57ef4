package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules     = ruleset()
	titleCase = cases.Title(language.Und, cases.NoLower)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Host-language type names that the default ruleset mangles.
	for _, w := range []string{"Data", "Metadata", "Info"} {
		rules.AddUncountable(w)
	}
	return rules
}

// IsIdentifier reports whether the given string is a valid identifier in
// the host language: a letter or underscore followed by letters, digits,
// or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Pascal converts a field or record name to upper-camel form, as used
// when deriving type names from identifiers.
func Pascal(s string) string {
	if s == "" {
		return s
	}
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = titleCase.String(w)
	}
	return strings.Join(words, "")
}

// Camel converts a name to lower-camel form, as used when deriving
// parameter names from type names.
func Camel(s string) string {
	r := []rune(Pascal(s))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// Snake converts a name to snake_case, as used for diagnostic labels.
func Snake(s string) string {
	return rules.Underscore(s)
}

// Humanize renders an identifier as a human-readable phrase for
// diagnostics and the inspection listing.
func Humanize(s string) string {
	return rules.Humanize(rules.Underscore(s))
}

// Plural returns the plural form of a noun, used when summarizing
// counts in diagnostics.
func Plural(s string) string {
	return rules.Pluralize(s)
}
