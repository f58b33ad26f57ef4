package decl

// TypeExpr is a parsed host-language type expression. The engine treats
// types as opaque beyond the shape queries it needs (optionality, token
// rendering), so the tree mirrors the host grammar rather than any Go
// notion of a type.
type TypeExpr interface {
	typeExpr()
}

// Named is a type identifier, optionally with generic arguments.
// Arguments may be types or value parameters (see Literal), so
// value-parameterized generics such as Buffer<8> are representable.
type Named struct {
	Name string
	Args []TypeExpr
}

// Literal is a value argument inside a generic argument list (the 8 in
// Buffer<8>). It is not a type; it only ever appears in Named.Args.
type Literal struct {
	Text string
}

// Optional wraps a type written with a trailing optional marker.
// Forced distinguishes T! from T?.
type Optional struct {
	Elem   TypeExpr
	Forced bool
}

// TupleElem is one element of a tuple type, optionally labeled.
type TupleElem struct {
	Label string
	Type  TypeExpr
}

// Tuple is a tuple type with two or more elements.
type Tuple struct {
	Elems []TupleElem
}

// Param is one parameter of a function type.
type Param struct {
	Inout    bool
	Variadic bool
	Type     TypeExpr
}

// Function is a function type, including its effect keywords.
type Function struct {
	Params []Param
	Async  bool
	Throws bool
	Result TypeExpr
}

// Composition is a protocol composition (A & B & C).
type Composition struct {
	Terms []TypeExpr
}

// MemberType is a member type access (Base.Name).
type MemberType struct {
	Base TypeExpr
	Name string
}

// Constrained wraps a type written with an existential or opaque
// marker keyword (any, some).
type Constrained struct {
	Keyword string
	Elem    TypeExpr
}

// Array is the bracketed array sugar [T].
type Array struct {
	Elem TypeExpr
}

// Dictionary is the bracketed dictionary sugar [K: V].
type Dictionary struct {
	Key   TypeExpr
	Value TypeExpr
}

func (*Named) typeExpr()       {}
func (*Literal) typeExpr()     {}
func (*Optional) typeExpr()    {}
func (*Tuple) typeExpr()       {}
func (*Function) typeExpr()    {}
func (*Composition) typeExpr() {}
func (*MemberType) typeExpr()  {}
func (*Constrained) typeExpr() {}
func (*Array) typeExpr()       {}
func (*Dictionary) typeExpr()  {}
