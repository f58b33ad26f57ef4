// Package decl defines the declaration-tree abstraction the generation
// engine consumes. It is the boundary between cowgen and whatever front-end
// parsed the host-language source: the engine never inspects source text,
// only the narrow set of queries this package exposes (member list, binding
// kind, modifiers, type annotation, initializer expression).
package decl

// Kind is the declaration kind of an annotated type.
type Kind int

// Declaration kinds. Only KindStruct is a record; the classifier rejects
// everything else.
const (
	KindStruct Kind = iota
	KindClass
	KindEnum
	KindActor
)

// String returns the host-language keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindActor:
		return "actor"
	default:
		return "unknown"
	}
}

// Binding is the binding form of a member declaration.
type Binding int

const (
	// BindingVar is the reassignable binding form.
	BindingVar Binding = iota
	// BindingLet is the single-assignment binding form.
	BindingLet
)

// String returns the host-language keyword for the binding.
func (b Binding) String() string {
	if b == BindingLet {
		return "let"
	}
	return "var"
}

// Visibility is the declared access level of a record or member.
type Visibility int

// Access levels, ordered from most to least visible. VisibilityUnspecified
// means no explicit access modifier was written; the host default applies.
const (
	VisibilityUnspecified Visibility = iota
	VisibilityPublic
	VisibilityPackage
	VisibilityInternal
	VisibilityFilePrivate
	VisibilityPrivate
)

// String returns the host-language access modifier, or the empty
// string for VisibilityUnspecified.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPackage:
		return "package"
	case VisibilityInternal:
		return "internal"
	case VisibilityFilePrivate:
		return "fileprivate"
	case VisibilityPrivate:
		return "private"
	default:
		return ""
	}
}

// Record is one annotated type declaration, as parsed by the host front-end.
type Record struct {
	// Name is the declared type name.
	Name string
	// Kind is the declaration kind. The engine only accepts KindStruct.
	Kind Kind
	// Visibility is the record's own declared access level. The generated
	// constructor and identity operation are emitted at this level.
	Visibility Visibility
	// Conforms holds the protocol names the record itself declares
	// conformance to, in declaration order.
	Conforms []string
	// Capabilities holds the capability names requested through the
	// annotation's arguments (e.g. "equal", "hash", "encode").
	Capabilities []string
	// Members holds all member declarations in declaration order.
	Members []*Member
}

// DeclaresConformance reports whether the record's own conformance list
// names the given protocol.
func (r *Record) DeclaresConformance(name string) bool {
	for _, c := range r.Conforms {
		if c == name {
			return true
		}
	}
	return false
}

// Member is one member declaration of a record.
type Member struct {
	// Name is the member identifier.
	Name string
	// Binding is the binding form (var or let).
	Binding Binding
	// Static reports whether the member is declared at type scope.
	Static bool
	// Computed reports whether the member carries an accessor block
	// (getter, or getter and setter) instead of backing storage.
	Computed bool
	// Visibility is the member's declared access level.
	Visibility Visibility
	// Type is the explicit type annotation, or nil if omitted.
	Type TypeExpr
	// Default is the initializer expression text, or the empty string
	// if the declaration carries none.
	Default string
}
