package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cowgen/cowgen/compiler/decl"
)

func TestExpand(t *testing.T) {
	x, err := Expand(nil, personDecl())
	require.NoError(t, err)
	require.Equal(t, "Person", x.Record.Name)
	require.Equal(t, "Person+CoW.swift", x.Filename())
	require.Len(t, x.Attributes, 3)
	require.Equal(t, []string{
		"immutable-fields",
		"storage-class",
		"storage-field",
		"uniqueness-guard",
		"constructor",
		"identity",
	}, fragmentNames(x.Members))
	require.Equal(t, []string{"equatable", "hashable", "description"}, fragmentNames(x.Extensions))
}

func TestExpandAllOrNothing(t *testing.T) {
	d := personDecl()
	d.Kind = decl.KindEnum
	x, err := Expand(nil, d)
	require.Error(t, err)
	require.Nil(t, x)
}

func TestAssembleGolden(t *testing.T) {
	x, err := Expand(nil, personDecl())
	require.NoError(t, err)
	got, err := x.Assemble()
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join("testdata", "Person+CoW.swift.golden"))
	require.NoError(t, err)
	require.Equal(t, string(want), got)
}

func TestAssembleDeterministic(t *testing.T) {
	first, err := Expand(nil, personDecl())
	require.NoError(t, err)
	a, err := first.Assemble()
	require.NoError(t, err)

	second, err := Expand(nil, personDecl())
	require.NoError(t, err)
	b, err := second.Assemble()
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestAssembleHeaderOverride(t *testing.T) {
	cfg, err := NewConfig(WithHeader("// custom header"))
	require.NoError(t, err)
	x, err := Expand(cfg, personDecl())
	require.NoError(t, err)
	src, err := x.Assemble()
	require.NoError(t, err)
	require.True(t, len(src) > 0)
	require.Equal(t, "// custom header\n", src[:17])
}

func TestGeneratorWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewConfig(WithTarget(dir))
	require.NoError(t, err)

	g := NewGenerator(cfg)
	err = g.Generate(context.Background(), []*decl.Record{personDecl()})
	require.NoError(t, err)

	buf, err := os.ReadFile(filepath.Join(dir, "Person+CoW.swift"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "Person+CoW.swift.golden"))
	require.NoError(t, err)
	require.Equal(t, string(want), string(buf))

	m := g.Metrics()
	require.Equal(t, 1, m.FilesGenerated)
	require.Equal(t, int64(len(buf)), m.TotalBytes)
}

func TestGeneratorRequiresTarget(t *testing.T) {
	g := NewGenerator(nil)
	err := g.Generate(context.Background(), []*decl.Record{personDecl()})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGeneratorFailingRecordWritesNothingForIt(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewConfig(WithTarget(dir), WithWorkers(1))
	require.NoError(t, err)

	bad := &decl.Record{Name: "Broken", Kind: decl.KindClass}
	g := NewGenerator(cfg)
	err = g.Generate(context.Background(), []*decl.Record{bad})
	require.Error(t, err)
	require.True(t, IsNotARecord(err))

	_, statErr := os.Stat(filepath.Join(dir, "Broken+CoW.swift"))
	require.True(t, os.IsNotExist(statErr))
}

func TestGeneratorWarningsSorted(t *testing.T) {
	unresolvable := func(name string) *decl.Record {
		return &decl.Record{
			Name: name,
			Kind: decl.KindStruct,
			Members: []*decl.Member{
				member("kept", decl.BindingVar, "Int", ""),
				member("dropped", decl.BindingVar, "", "Date()"),
			},
		}
	}
	dir := t.TempDir()
	cfg, err := NewConfig(WithTarget(dir))
	require.NoError(t, err)

	g := NewGenerator(cfg)
	err = g.Generate(context.Background(), []*decl.Record{unresolvable("Zeta"), unresolvable("Alpha")})
	require.NoError(t, err)

	warnings := g.Warnings()
	require.Len(t, warnings, 2)
	require.Equal(t, "Alpha", warnings[0].Record)
	require.Equal(t, "Zeta", warnings[1].Record)
}
