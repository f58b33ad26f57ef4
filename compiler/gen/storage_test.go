package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMembers(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	require.Equal(t, []string{
		"immutable-fields",
		"storage-class",
		"storage-field",
		"uniqueness-guard",
		"constructor",
		"identity",
	}, fragmentNames(frags))
}

func TestMembersImmutableFields(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	// The inline initializer moves onto the constructor parameter; the
	// field declaration itself stays bare.
	require.Equal(t, "let id: String", frags[0].Source)
}

func TestMembersStorageClass(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	storage := frags[1].Source
	require.True(t, strings.HasPrefix(storage, "private final class Storage {"))
	require.Contains(t, storage, "var name: String\n")
	require.Contains(t, storage, "var email: String?\n")
	// Only mutable fields live in shared storage.
	require.NotContains(t, storage, "id")
	require.Contains(t, storage, `init(name: String = "unknown", age: Int = 0, email: String? = nil) {`)
	require.Contains(t, storage, "init(copying other: Storage) {")
	require.Contains(t, storage, "self.name = other.name")
}

func TestMembersGuard(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	require.Equal(t, "private var _storage: Storage", frags[2].Source)
	require.Equal(t, `private mutating func _ensureUniqueStorage() {
	if !isKnownUniquelyReferenced(&_storage) {
		_storage = Storage(copying: _storage)
	}
}`, frags[3].Source)
}

func TestMembersConstructor(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	require.Equal(t, `public init(id: String, name: String = "unknown", age: Int = 0, email: String? = nil) {
	self.id = id
	self._storage = Storage(name: name, age: age, email: email)
}`, frags[4].Source)
}

func TestMembersIdentity(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	require.Equal(t, `public func isIdentical(to other: Person) -> Bool {
	_storage === other._storage
}`, frags[5].Source)
}

func TestAttributes(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	attrs := r.Attributes()
	require.Equal(t, []FieldAttribute{
		{Field: "name", Attribute: "@CowStorage"},
		{Field: "age", Attribute: "@CowStorage"},
		{Field: "email", Attribute: "@CowStorage"},
	}, attrs)
}

func TestExpandAccessor(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)
	frag, err := r.ExpandAccessor("name")
	require.NoError(t, err)
	require.Equal(t, "accessor-name", frag.Name)
	require.Equal(t, `var name: String {
	get { _storage.name }
	set {
		_ensureUniqueStorage()
		_storage.name = newValue
	}
}`, frag.Source)

	// The getter never touches the guard; the setter guards before the
	// write, unconditionally and first.
	getter := frag.Source[strings.Index(frag.Source, "get"):strings.Index(frag.Source, "set")]
	require.NotContains(t, getter, "_ensureUniqueStorage")
	setter := frag.Source[strings.Index(frag.Source, "set"):]
	guardAt := strings.Index(setter, "_ensureUniqueStorage()")
	writeAt := strings.Index(setter, "_storage.name = newValue")
	require.Greater(t, writeAt, guardAt)
}

func TestExpandAccessorErrors(t *testing.T) {
	r, err := NewRecord(nil, personDecl())
	require.NoError(t, err)

	_, err = r.ExpandAccessor("missing")
	require.Error(t, err)
	require.True(t, IsGenerationError(err))
	require.ErrorIs(t, err, ErrGenerationFailed)

	_, err = r.ExpandAccessor("id")
	require.Error(t, err)
	require.Contains(t, err.Error(), "field is immutable")
}

func TestMembersNoImmutableFields(t *testing.T) {
	d := personDecl()
	d.Members = d.Members[1:] // drop the let field
	r, err := NewRecord(nil, d)
	require.NoError(t, err)
	frags, err := r.Members()
	require.NoError(t, err)
	require.Equal(t, []string{
		"storage-class",
		"storage-field",
		"uniqueness-guard",
		"constructor",
		"identity",
	}, fragmentNames(frags))
	// No immutable fields: the constructor only fills shared storage.
	require.Equal(t, `public init(name: String = "unknown", age: Int = 0, email: String? = nil) {
	self._storage = Storage(name: name, age: age, email: email)
}`, frags[3].Source)
}
