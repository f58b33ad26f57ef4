package gen

// This file synthesizes the storage machinery injected into an expanded
// record: the reference-typed storage container, the storage field, the
// uniqueness guard, the primary constructor, the identity comparison,
// and the accessor pair each mutable field is rewritten into.

// memberView is the template data for injected member declarations.
type memberView struct {
	Record    *Record
	Fields    []*Field
	Mutable   []*Field
	Immutable []*Field
}

func (r *Record) memberView() *memberView {
	return &memberView{
		Record:    r,
		Fields:    r.Fields,
		Mutable:   r.MutableFields(),
		Immutable: r.ImmutableFields(),
	}
}

// Members synthesizes the declarations spliced into the record body, in
// a fixed order: immutable stored fields first, then the storage
// container, the storage field, the uniqueness guard, the primary
// constructor, and the identity comparison. Immutable fields are emitted
// without their inline initializer; their defaults move onto the
// constructor parameters so the constructor stays the single
// initialization path.
func (r *Record) Members() ([]Fragment, error) {
	type artifact struct {
		name string
		tmpl string
		skip bool
	}
	artifacts := []artifact{
		{name: "immutable-fields", tmpl: "let_fields.tmpl", skip: len(r.ImmutableFields()) == 0},
		{name: "storage-class", tmpl: "storage_class.tmpl"},
		{name: "storage-field", tmpl: "storage_field.tmpl"},
		{name: "uniqueness-guard", tmpl: "guard.tmpl"},
		{name: "constructor", tmpl: "init.tmpl"},
		{name: "identity", tmpl: "identical.tmpl"},
	}
	frags := make([]Fragment, 0, len(artifacts))
	for _, a := range artifacts {
		if a.skip {
			continue
		}
		src, err := execTemplate(a.tmpl, r.memberView())
		if err != nil {
			return nil, NewGenerationError(r.Name, a.name, "member synthesis", err)
		}
		frags = append(frags, Fragment{Name: a.name, Source: src})
	}
	return frags, nil
}

// Attributes returns the marker each mutable field declaration is tagged
// with. The marker carries no configuration itself; it only flags the
// field for the accessor expansion phase.
func (r *Record) Attributes() []FieldAttribute {
	attrs := make([]FieldAttribute, 0, len(r.Fields))
	for _, f := range r.MutableFields() {
		attrs = append(attrs, FieldAttribute{Field: f.Name, Attribute: "@CowStorage"})
	}
	return attrs
}

// ExpandAccessor synthesizes the accessor pair replacing the stored
// backing of one marked field. The getter reads through shared storage
// and never copies; the setter calls the uniqueness guard before any
// write, unconditionally and first.
func (r *Record) ExpandAccessor(name string) (Fragment, error) {
	f, ok := r.FieldBy(func(f *Field) bool { return f.Name == name })
	if !ok {
		return Fragment{}, NewGenerationError(r.Name, name, "accessor expansion: unknown field", nil)
	}
	if !f.Mutable {
		return Fragment{}, NewGenerationError(r.Name, name, "accessor expansion: field is immutable", nil)
	}
	src, err := execTemplate("accessor.tmpl", &accessorView{Record: r, Field: f})
	if err != nil {
		return Fragment{}, NewGenerationError(r.Name, name, "accessor expansion", err)
	}
	return Fragment{Name: "accessor-" + name, Source: src}, nil
}

// accessorView is the template data for one accessor pair.
type accessorView struct {
	Record *Record
	Field  *Field
}
