package gen

import (
	"fmt"
	"strings"

	"github.com/cowgen/cowgen/compiler/decl"
)

// CapabilitySet holds which cross-cutting behaviors the record opted
// into, and which contracts the record already declares itself. The two
// are tracked separately: a requested capability always gets its
// implementation body, but a conformance clause is emitted only when the
// record has not already declared the contract (re-declaring is a
// compile error in the host language).
type CapabilitySet struct {
	Equal       bool
	Hash        bool
	Encode      bool
	Decode      bool
	Description bool

	equatableDeclared   bool
	hashableDeclared    bool
	encodableDeclared   bool
	decodableDeclared   bool
	describableDeclared bool
}

// Any reports whether at least one capability was requested.
func (s CapabilitySet) Any() bool {
	return s.Equal || s.Hash || s.Encode || s.Decode || s.Description
}

// Serializable reports whether either serialization direction was
// requested. The coding-key enumeration is shared between them.
func (s CapabilitySet) Serializable() bool {
	return s.Encode || s.Decode
}

// EquatableClause returns the conformance suffix for the equality
// extension. Empty when the record declares Equatable itself, or
// declares Hashable (which already carries the equality contract).
func (s CapabilitySet) EquatableClause() string {
	if s.equatableDeclared || s.hashableDeclared {
		return ""
	}
	return ": Equatable"
}

// EncodableClause returns the conformance suffix for the encode extension.
func (s CapabilitySet) EncodableClause() string {
	if s.encodableDeclared {
		return ""
	}
	return ": Encodable"
}

// DecodableClause returns the conformance suffix for the decode extension.
func (s CapabilitySet) DecodableClause() string {
	if s.decodableDeclared {
		return ""
	}
	return ": Decodable"
}

// DescriptionClause returns the conformance suffix for the description
// extension.
func (s CapabilitySet) DescriptionClause() string {
	if s.describableDeclared {
		return ""
	}
	return ": CustomStringConvertible"
}

// capabilitiesOf derives the capability set from the annotation's
// arguments and the record's declared conformance list. Hashing always
// implies equality: the hash contract is meaningless without a
// consistent equality operation.
func capabilitiesOf(d *decl.Record) (CapabilitySet, error) {
	var s CapabilitySet
	for _, name := range d.Capabilities {
		switch name {
		case "equal":
			s.Equal = true
		case "hash":
			s.Hash = true
		case "encode":
			s.Encode = true
		case "decode":
			s.Decode = true
		case "description":
			s.Description = true
		default:
			return s, fmt.Errorf("cowgen: record %q requests unknown capability %q", d.Name, name)
		}
	}
	for _, c := range d.Conforms {
		switch c {
		case "Equatable":
			s.Equal = true
			s.equatableDeclared = true
		case "Hashable":
			s.Hash = true
			s.hashableDeclared = true
		case "Codable":
			s.Encode = true
			s.Decode = true
			s.encodableDeclared = true
			s.decodableDeclared = true
		case "Encodable":
			s.Encode = true
			s.encodableDeclared = true
		case "Decodable":
			s.Decode = true
			s.decodableDeclared = true
		case "CustomStringConvertible":
			s.Description = true
			s.describableDeclared = true
		}
	}
	if s.Hash {
		s.Equal = true
	}
	return s, nil
}

// =============================================================================
// Capability synthesis
// =============================================================================

// capabilityView is the template data for capability extensions.
type capabilityView struct {
	Record  *Record
	Mutable []*Field
	Clause  string
}

// Extensions synthesizes one extension block per requested capability,
// each derived from the mutable-field subsequence in declaration order.
// The returned fragments are channel C of the expansion.
func (r *Record) Extensions() ([]Fragment, error) {
	var frags []Fragment
	emit := func(name, tmpl string) error {
		src, err := execTemplate(tmpl, &capabilityView{
			Record:  r,
			Mutable: r.MutableFields(),
			Clause:  r.capabilityClause(name),
		})
		if err != nil {
			return NewGenerationError(r.Name, name, "capability synthesis", err)
		}
		frags = append(frags, Fragment{Name: name, Source: src})
		return nil
	}
	// Declaration order of the capability blocks is fixed: equality,
	// hashing, serialization, description. Field order inside each block
	// follows the classifier's sequence exactly.
	if r.Caps.Equal {
		if err := emit("equatable", "cap_equatable.tmpl"); err != nil {
			return nil, err
		}
	}
	if r.Caps.Hash {
		if err := emit("hashable", "cap_hashable.tmpl"); err != nil {
			return nil, err
		}
	}
	if r.Caps.Serializable() {
		if err := emit("coding-keys", "cap_codingkeys.tmpl"); err != nil {
			return nil, err
		}
	}
	if r.Caps.Encode {
		if err := emit("encodable", "cap_encode.tmpl"); err != nil {
			return nil, err
		}
	}
	if r.Caps.Decode {
		if err := emit("decodable", "cap_decode.tmpl"); err != nil {
			return nil, err
		}
	}
	if r.Caps.Description {
		if err := emit("description", "cap_description.tmpl"); err != nil {
			return nil, err
		}
	}
	return frags, nil
}

func (r *Record) capabilityClause(name string) string {
	switch name {
	case "equatable":
		return r.Caps.EquatableClause()
	case "encodable":
		return r.Caps.EncodableClause()
	case "decodable":
		return r.Caps.DecodableClause()
	case "description":
		return r.Caps.DescriptionClause()
	default:
		return ""
	}
}

// Comparison returns the equality expression: a conjunction of per-field
// checks in declaration order, short-circuiting left to right.
func (r *Record) Comparison() string {
	terms := make([]string, 0, len(r.Fields))
	for _, f := range r.MutableFields() {
		terms = append(terms, fmt.Sprintf("lhs.%s == rhs.%s", f.Name, f.Name))
	}
	return strings.Join(terms, " && ")
}

// Interpolation returns the description body: field name/value pairs in
// declaration order, using the host's string interpolation.
func (r *Record) Interpolation() string {
	parts := make([]string, 0, len(r.Fields))
	for _, f := range r.MutableFields() {
		parts = append(parts, fmt.Sprintf(`%s: \(%s)`, f.Name, f.Name))
	}
	return strings.Join(parts, ", ")
}

// DecodeExpr returns the container call decoding this field: optional
// fields decode through decodeIfPresent on the wrapped type so an absent
// key round-trips to the absent value.
func (f *Field) DecodeExpr() string {
	if base, ok := unwrapOptional(f.Type); ok {
		return fmt.Sprintf("decodeIfPresent(%s.self, forKey: .%s)", Render(base), f.Name)
	}
	return fmt.Sprintf("decode(%s.self, forKey: .%s)", Render(f.Type), f.Name)
}

// unwrapOptional strips one optional layer off a type, reporting whether
// the type was optional-shaped at all.
func unwrapOptional(t decl.TypeExpr) (decl.TypeExpr, bool) {
	switch t := t.(type) {
	case *decl.Optional:
		return t.Elem, true
	case *decl.Named:
		if t.Name == "Optional" && len(t.Args) > 0 {
			return t.Args[0], true
		}
	}
	return nil, false
}
