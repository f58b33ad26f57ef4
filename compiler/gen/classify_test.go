package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cowgen/cowgen/compiler/decl"
)

func member(name string, binding decl.Binding, typ, deflt string) *decl.Member {
	m := &decl.Member{Name: name, Binding: binding, Default: deflt}
	if typ != "" {
		t, err := decl.ParseType(typ)
		if err != nil {
			panic(err)
		}
		m.Type = t
	}
	return m
}

func personDecl() *decl.Record {
	return &decl.Record{
		Name:       "Person",
		Kind:       decl.KindStruct,
		Visibility: decl.VisibilityPublic,
		Conforms:   []string{"Hashable", "CustomStringConvertible"},
		Members: []*decl.Member{
			member("id", decl.BindingLet, "String", ""),
			member("name", decl.BindingVar, "String", `"unknown"`),
			member("age", decl.BindingVar, "Int", "0"),
			member("email", decl.BindingVar, "String?", ""),
		},
	}
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	require.Equal(t, "Person", r.Name)
	require.Equal(t, "public ", r.AccessLevel())
	require.Equal(t, ": Hashable, CustomStringConvertible", r.ConformanceClause())
	require.Len(t, r.Fields, 4)
	require.Empty(t, r.Warnings)

	mutable := r.MutableFields()
	require.Len(t, mutable, 3)
	require.Equal(t, "name", mutable[0].Name)
	require.Equal(t, "age", mutable[1].Name)
	require.Equal(t, "email", mutable[2].Name)

	immutable := r.ImmutableFields()
	require.Len(t, immutable, 1)
	require.Equal(t, "id", immutable[0].Name)

	require.Equal(t, "Storage", r.StorageType())
	require.Equal(t, "_storage", r.StorageField())
	require.Equal(t, "_ensureUniqueStorage", r.GuardName())
}

func TestNewRecordSkipsNonStored(t *testing.T) {
	d := &decl.Record{
		Name: "Counter",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			member("count", decl.BindingVar, "Int", "0"),
			{Name: "isZero", Binding: decl.BindingVar, Computed: true},
			{Name: "shared", Binding: decl.BindingLet, Static: true},
			member("_storage", decl.BindingVar, "Int", ""),
		},
	}
	r, err := NewRecord(nil, d)
	require.NoError(t, err)
	require.Len(t, r.Fields, 1)
	require.Equal(t, "count", r.Fields[0].Name)
}

func TestNewRecordTypeInference(t *testing.T) {
	d := &decl.Record{
		Name: "Flags",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			member("count", decl.BindingVar, "", "0"),
			member("ratio", decl.BindingVar, "", "0.5"),
			member("label", decl.BindingVar, "", `"x"`),
			member("on", decl.BindingVar, "", "true"),
		},
	}
	r, err := NewRecord(nil, d)
	require.NoError(t, err)
	require.Equal(t, "Int", r.Fields[0].RenderedType())
	require.Equal(t, "Double", r.Fields[1].RenderedType())
	require.Equal(t, "String", r.Fields[2].RenderedType())
	require.Equal(t, "Bool", r.Fields[3].RenderedType())
}

func TestNewRecordUnresolvableMemberWarns(t *testing.T) {
	d := &decl.Record{
		Name: "Event",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			member("name", decl.BindingVar, "String", ""),
			member("createdAt", decl.BindingVar, "", "Date()"),
		},
	}
	r, err := NewRecord(nil, d)
	require.NoError(t, err)
	require.Len(t, r.Fields, 1)
	require.Len(t, r.Warnings, 1)
	require.Equal(t, "createdAt", r.Warnings[0].Member)
	require.Contains(t, r.Warnings[0].Message, "neither a type annotation nor an inferable literal default")
}

func TestNewRecordNotAStruct(t *testing.T) {
	d := &decl.Record{Name: "Point", Kind: decl.KindClass}
	_, err := NewRecord(nil, d)
	require.EqualError(t, err, `cowgen: "Point" is declared as class; copy-on-write storage can only be generated for a struct`)
	require.True(t, IsNotARecord(err))
	require.ErrorIs(t, err, ErrNotARecord)
}

func TestNewRecordNoStorableFields(t *testing.T) {
	d := &decl.Record{
		Name: "Empty",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			{Name: "computed", Binding: decl.BindingVar, Computed: true},
		},
	}
	_, err := NewRecord(nil, d)
	require.EqualError(t, err, `cowgen: "Empty" declares no stored fields; declare at least one non-computed, non-static field`)
	require.True(t, IsNoStorableFields(err))
	require.ErrorIs(t, err, ErrNoStorableFields)
}

func TestNewRecordNoMutableFields(t *testing.T) {
	d := &decl.Record{
		Name: "Frozen",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			member("id", decl.BindingLet, "String", ""),
		},
	}
	_, err := NewRecord(nil, d)
	require.EqualError(t, err, `cowgen: every stored field of "Frozen" is immutable; change at least one let binding to var`)
	require.True(t, IsNoMutableFields(err))
	require.ErrorIs(t, err, ErrNoMutableFields)
}

func TestNewRecordRedeclaredField(t *testing.T) {
	d := &decl.Record{
		Name: "Dup",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			member("x", decl.BindingVar, "Int", ""),
			member("x", decl.BindingVar, "Int", ""),
		},
	}
	_, err := NewRecord(nil, d)
	require.EqualError(t, err, `cowgen: field "x" redeclared for record "Dup"`)
	require.ErrorIs(t, err, ErrFieldRedeclared)
	require.True(t, IsFieldRedeclared(err))

	var fe *FieldRedeclaredError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "Dup", fe.Record)
	require.Equal(t, "x", fe.Field)
}

func TestFieldMemberAccessType(t *testing.T) {
	// A record member whose type is itself a member access exercises the
	// member model and the member-type node side by side.
	d := &decl.Record{
		Name: "Event",
		Kind: decl.KindStruct,
		Members: []*decl.Member{
			member("when", decl.BindingVar, "Foundation.Date", ""),
		},
	}
	r, err := NewRecord(nil, d)
	require.NoError(t, err)
	require.IsType(t, &decl.MemberType{}, r.Fields[0].Type)
	require.Equal(t, "Foundation.Date", r.Fields[0].RenderedType())
}

func TestNewRecordDecodeWarnsOnImmutableWithoutDefault(t *testing.T) {
	d := &decl.Record{
		Name:     "Account",
		Kind:     decl.KindStruct,
		Conforms: []string{"Decodable"},
		Members: []*decl.Member{
			member("id", decl.BindingLet, "String", ""),
			member("note", decl.BindingLet, "String?", ""),
			member("name", decl.BindingVar, "String", ""),
		},
	}
	r, err := NewRecord(nil, d)
	require.NoError(t, err)
	// Only the non-optional, defaultless immutable field warns.
	require.Len(t, r.Warnings, 1)
	require.Equal(t, "id", r.Warnings[0].Member)
	require.Contains(t, r.Warnings[0].Message, "init(from:) cannot supply it")
}

func TestFieldParamDefault(t *testing.T) {
	tests := []struct {
		name  string
		field *decl.Member
		want  string
	}{
		{name: "declared default", field: member("a", decl.BindingVar, "Int", "7"), want: " = 7"},
		{name: "optional implies nil", field: member("b", decl.BindingVar, "Int?", ""), want: " = nil"},
		{name: "declared beats implicit nil", field: member("c", decl.BindingVar, "Int?", "3"), want: " = 3"},
		{name: "required", field: member("d", decl.BindingVar, "Int", ""), want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := &decl.Record{Name: "T", Kind: decl.KindStruct, Members: []*decl.Member{tc.field}}
			r, err := NewRecord(nil, d)
			require.NoError(t, err)
			require.Equal(t, tc.want, r.Fields[0].ParamDefault())
		})
	}
}
