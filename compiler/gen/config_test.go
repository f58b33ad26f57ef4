package gen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "// Code generated by cowgen. DO NOT EDIT.", cfg.Header)
	require.Equal(t, "Storage", cfg.StorageType)
	require.Equal(t, "_storage", cfg.StorageField)
	require.Equal(t, "_ensureUniqueStorage", cfg.Guard)
	require.Equal(t, "+CoW.swift", cfg.FileSuffix)
	require.Empty(t, cfg.Target)
	require.Zero(t, cfg.Workers)
}

func TestConfiguredNamesFlowThrough(t *testing.T) {
	cfg, err := NewConfig(WithStorageType("Box"), WithStorageField("_box"), WithGuard("_ensureUniqueBox"))
	require.NoError(t, err)
	r, err := NewRecord(cfg, personDecl())
	require.NoError(t, err)

	frags, err := r.Members()
	require.NoError(t, err)
	require.Contains(t, frags[1].Source, "private final class Box {")
	require.Equal(t, "private var _box: Box", frags[2].Source)
	require.Contains(t, frags[3].Source, "private mutating func _ensureUniqueBox() {")
	require.Contains(t, frags[3].Source, "isKnownUniquelyReferenced(&_box)")

	frag, err := r.ExpandAccessor("name")
	require.NoError(t, err)
	require.Contains(t, frag.Source, "get { _box.name }")
	require.Contains(t, frag.Source, "_ensureUniqueBox()")
}

func TestDerivedNamesFollowStorageType(t *testing.T) {
	cfg, err := NewConfig(WithStorageType("Box"))
	require.NoError(t, err)
	require.Equal(t, "_box", cfg.StorageField)
	require.Equal(t, "_ensureUniqueBox", cfg.Guard)

	// Explicitly chosen names survive a later storage type change.
	cfg, err = NewConfig(WithGuard("_makeUnique"), WithStorageField("_backing"), WithStorageType("Box"))
	require.NoError(t, err)
	require.Equal(t, "_makeUnique", cfg.Guard)
	require.Equal(t, "_backing", cfg.StorageField)
}

func TestConfiguredStorageFieldExcludedFromClassification(t *testing.T) {
	cfg, err := NewConfig(WithStorageField("_box"))
	require.NoError(t, err)
	d := personDecl()
	d.Members[1].Name = "_box" // collides with the configured storage field
	r, err := NewRecord(cfg, d)
	require.NoError(t, err)
	for _, f := range r.Fields {
		require.NotEqual(t, "_box", f.Name)
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, ok := range []string{"_storage", "Storage", "ångström", "x1"} {
		require.True(t, IsIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "1x", "my box", "a-b", "a.b"} {
		require.False(t, IsIdentifier(bad), bad)
	}
}
