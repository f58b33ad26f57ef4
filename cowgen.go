// Package cowgen generates copy-on-write storage code for annotated
// record declarations: a reference-typed storage container, accessors
// that share storage until the first write, a uniqueness guard, a
// primary constructor, and optional capability extensions for equality,
// hashing, serialization, and description.
//
// The package is a thin facade over compiler/load (manifest reading)
// and compiler/gen (expansion and file generation).
package cowgen

import (
	"context"

	"github.com/cowgen/cowgen/compiler/decl"
	"github.com/cowgen/cowgen/compiler/gen"
	"github.com/cowgen/cowgen/compiler/load"
)

// Version is the release version stamped into the binary.
const Version = "0.3.1"

// Generate reads the record manifest at the given path and writes one
// generated source file per record under target. It returns the
// non-fatal warnings raised while expanding, even when it also returns
// an error.
func Generate(ctx context.Context, manifest, target string, opts ...gen.Option) ([]gen.Warning, error) {
	records, err := load.File(manifest)
	if err != nil {
		return nil, err
	}
	cfg, err := gen.NewConfig(append([]gen.Option{gen.WithTarget(target)}, opts...)...)
	if err != nil {
		return nil, err
	}
	g := gen.NewGenerator(cfg)
	err = g.Generate(ctx, records)
	return g.Warnings(), err
}

// Expand expands a single declaration in memory, without touching the
// filesystem. Callers embedding the engine in a host front-end consume
// the returned channels directly.
func Expand(d *decl.Record, opts ...gen.Option) (*gen.Expansion, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return gen.Expand(cfg, d)
}
