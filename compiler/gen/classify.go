package gen

import (
	"github.com/cowgen/cowgen/compiler/decl"
)

// The following types and their exported methods are used by the
// templates to generate the assets.
type (
	// Record is the classified form of one annotated declaration: the
	// ordered field descriptor sequence every synthesizer consumes.
	Record struct {
		cfg *Config
		def *decl.Record
		// Name holds the record type name.
		Name string
		// Visibility is the record's own declared access level. Generated
		// members that are part of the public surface (constructor,
		// identity comparison) are emitted at this level.
		Visibility decl.Visibility
		// Fields holds the field descriptors in declaration order.
		Fields []*Field
		fields map[string]*Field
		// Caps is the record's requested capability set.
		Caps CapabilitySet
		// Warnings holds non-fatal diagnostics raised during
		// classification, such as dropped unresolvable members.
		Warnings []Warning
	}

	// Field is the descriptor of one stored field.
	Field struct {
		cfg *Config
		def *decl.Member
		// Name is the field identifier, unique within the record.
		Name string
		// Type is the declared or inferred type expression.
		Type decl.TypeExpr
		// Default is the initializer expression text, whitespace
		// collapsed; empty when the declaration carries none.
		Default string
		// Visibility is the field's declared access level.
		Visibility decl.Visibility
		// Mutable reports whether the field uses the reassignable
		// binding form and therefore lives in shared storage.
		Mutable bool
	}

	// Warning is a non-fatal classification diagnostic.
	Warning struct {
		Record  string
		Member  string
		Message string
	}
)

// NewRecord classifies the given declaration into a Record descriptor.
// It returns one of the fatal classifier errors when generation cannot
// proceed; in that case no output channel receives anything.
func NewRecord(c *Config, d *decl.Record) (*Record, error) {
	if c == nil {
		c = DefaultConfig()
	}
	if d.Kind != decl.KindStruct {
		return nil, &NotARecordError{Record: d.Name, Kind: d.Kind}
	}
	r := &Record{
		cfg:        c,
		def:        d,
		Name:       d.Name,
		Visibility: d.Visibility,
		Fields:     make([]*Field, 0, len(d.Members)),
		fields:     make(map[string]*Field, len(d.Members)),
	}
	caps, err := capabilitiesOf(d)
	if err != nil {
		return nil, err
	}
	r.Caps = caps
	for _, m := range d.Members {
		switch {
		case m.Computed:
			// Accessor blocks mark computed members; nothing to store.
			continue
		case m.Static:
			continue
		case m.Name == c.StorageField:
			// A member colliding with the injected storage field is the
			// engine's own output, or a user collision. Either way it
			// must not be re-processed.
			continue
		}
		if r.fields[m.Name] != nil {
			return nil, &FieldRedeclaredError{Record: d.Name, Field: m.Name}
		}
		f := &Field{
			cfg:        c,
			def:        m,
			Name:       m.Name,
			Type:       m.Type,
			Default:    decl.CollapseWhitespace(m.Default),
			Visibility: m.Visibility,
			Mutable:    m.Binding == decl.BindingVar,
		}
		if f.Type == nil {
			if name := decl.ClassifyLiteral(f.Default).InferredTypeName(); name != "" {
				f.Type = &decl.Named{Name: name}
			}
		}
		if f.Type == nil {
			r.Warnings = append(r.Warnings, Warning{
				Record:  d.Name,
				Member:  m.Name,
				Message: "member has neither a type annotation nor an inferable literal default; skipped",
			})
			continue
		}
		r.Fields = append(r.Fields, f)
		r.fields[f.Name] = f
	}
	if len(r.Fields) == 0 {
		return nil, &NoStorableFieldsError{Record: d.Name}
	}
	if len(r.MutableFields()) == 0 {
		return nil, &NoMutableFieldsError{Record: d.Name}
	}
	if r.Caps.Decode {
		for _, f := range r.ImmutableFields() {
			if !f.HasDefault() && !f.IsOptional() {
				r.Warnings = append(r.Warnings, Warning{
					Record:  d.Name,
					Member:  f.Name,
					Message: "immutable field without a default is not decodable; the generated init(from:) cannot supply it",
				})
			}
		}
	}
	return r, nil
}

// =============================================================================
// Record methods
// =============================================================================

// MutableFields returns the subsequence of fields routed through shared
// storage, in declaration order.
func (r *Record) MutableFields() []*Field {
	fields := make([]*Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		if f.Mutable {
			fields = append(fields, f)
		}
	}
	return fields
}

// ImmutableFields returns the fields that stay ordinary stored fields on
// the record, in declaration order.
func (r *Record) ImmutableFields() []*Field {
	fields := make([]*Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		if !f.Mutable {
			fields = append(fields, f)
		}
	}
	return fields
}

// FieldBy returns the first field the given function returns true on.
func (r *Record) FieldBy(fn func(*Field) bool) (*Field, bool) {
	for _, f := range r.Fields {
		if fn(f) {
			return f, true
		}
	}
	return nil, false
}

// AccessLevel returns the record's access modifier with a trailing
// space, or the empty string when unspecified. Generated public-surface
// members carry exactly the record's own level, never a narrower one.
func (r *Record) AccessLevel() string {
	if s := r.Visibility.String(); s != "" {
		return s + " "
	}
	return ""
}

// ConformanceClause returns the record's declared conformance list as a
// declaration suffix (": A, B"), or the empty string.
func (r *Record) ConformanceClause() string {
	if len(r.def.Conforms) == 0 {
		return ""
	}
	clause := ": "
	for i, c := range r.def.Conforms {
		if i > 0 {
			clause += ", "
		}
		clause += c
	}
	return clause
}

// StorageType returns the name of the generated storage container type.
func (r *Record) StorageType() string { return r.cfg.StorageType }

// StorageField returns the name of the generated storage field.
func (r *Record) StorageField() string { return r.cfg.StorageField }

// GuardName returns the name of the generated uniqueness-guard routine.
func (r *Record) GuardName() string { return r.cfg.Guard }

// =============================================================================
// Field methods
// =============================================================================

// RenderedType returns the canonical source text of the field's type.
func (f *Field) RenderedType() string {
	return Render(f.Type)
}

// HasDefault reports whether the declaration carried an initializer.
func (f *Field) HasDefault() bool { return f.Default != "" }

// IsOptional reports whether the field's type is optional-shaped.
func (f *Field) IsOptional() bool { return IsOptional(f.Type) }

// ParamDefault returns the default-value suffix for a constructor
// parameter covering this field: the declared default when present, nil
// for optional-typed fields without one, nothing otherwise.
func (f *Field) ParamDefault() string {
	switch {
	case f.HasDefault():
		return " = " + f.Default
	case f.IsOptional():
		return " = nil"
	default:
		return ""
	}
}

// CodingKey returns the serialized key the field is read and written
// under: its snake_case form when the configuration asks for snake
// keys, the field name otherwise.
func (f *Field) CodingKey() string {
	if f.cfg.SnakeCaseKeys {
		return Snake(f.Name)
	}
	return f.Name
}

// AccessLevel returns the field's access modifier with a trailing space,
// or the empty string when unspecified.
func (f *Field) AccessLevel() string {
	if s := f.Visibility.String(); s != "" {
		return s + " "
	}
	return ""
}
