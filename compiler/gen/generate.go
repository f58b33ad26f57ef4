package gen

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/sync/errgroup"

	"github.com/cowgen/cowgen/compiler/decl"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("gen").
	Funcs(template.FuncMap{
		"params": paramList,
		"args":   argList,
	}).
	ParseFS(templateFS, "templates/*.tmpl"))

// execTemplate renders one embedded template into a trimmed fragment.
func execTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// paramList renders fields as a parameter list: each field becomes a
// labeled parameter carrying its declared default, or an implicit nil
// default when the type is optional-shaped.
func paramList(fields []*Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+": "+f.RenderedType()+f.ParamDefault())
	}
	return strings.Join(parts, ", ")
}

// argList renders fields as a labeled argument list forwarding each
// parameter by its own name.
func argList(fields []*Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+": "+f.Name)
	}
	return strings.Join(parts, ", ")
}

// Fragment is one generated declaration block, named after the artifact
// it implements.
type Fragment struct {
	Name   string
	Source string
}

// FieldAttribute marks one stored field for accessor expansion.
type FieldAttribute struct {
	Field     string
	Attribute string
}

// Expansion is the full output of expanding one record, split into the
// three channels the host front-end consumes: member declarations
// spliced into the record body, attribute markers attached to mutable
// field declarations, and extension blocks appended after the record.
type Expansion struct {
	Record     *Record
	Members    []Fragment
	Attributes []FieldAttribute
	Extensions []Fragment
}

// Expand classifies a declaration and synthesizes all three output
// channels. Expansion is all-or-nothing: any error means no channel
// received anything for this record.
func Expand(c *Config, d *decl.Record) (*Expansion, error) {
	r, err := NewRecord(c, d)
	if err != nil {
		return nil, err
	}
	members, err := r.Members()
	if err != nil {
		return nil, err
	}
	exts, err := r.Extensions()
	if err != nil {
		return nil, err
	}
	return &Expansion{
		Record:     r,
		Members:    members,
		Attributes: r.Attributes(),
		Extensions: exts,
	}, nil
}

// Filename returns the file the expansion is written to, derived from
// the record name and the configured suffix.
func (x *Expansion) Filename() string {
	return x.Record.Name + x.Record.cfg.FileSuffix
}

// Assemble renders the expansion as one complete source file: the header
// comment, the record shell with all injected members and expanded
// accessors, and the capability extensions. The result is byte-for-byte
// deterministic for a given declaration and configuration.
func (x *Expansion) Assemble() (string, error) {
	r := x.Record
	blocks := make([]string, 0, len(x.Members)+len(x.Attributes))
	// Immutable stored fields open the body, followed by the accessor
	// pairs replacing each marked field, then the storage machinery.
	for _, m := range x.Members {
		if m.Name == "immutable-fields" {
			blocks = append(blocks, m.Source)
		}
	}
	for _, attr := range x.Attributes {
		frag, err := r.ExpandAccessor(attr.Field)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, frag.Source)
	}
	for _, m := range x.Members {
		if m.Name != "immutable-fields" {
			blocks = append(blocks, m.Source)
		}
	}

	var b strings.Builder
	if h := r.cfg.Header; h != "" {
		b.WriteString(h)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%sstruct %s%s {\n", r.AccessLevel(), r.Name, r.ConformanceClause())
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indent(block, "\t"))
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	for _, ext := range x.Extensions {
		b.WriteString("\n")
		b.WriteString(ext.Source)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// indent prefixes every non-empty line of a block.
func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// Metrics tracks generation throughput.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// Generator expands record declarations and writes one generated file
// per record, in parallel.
type Generator struct {
	cfg *Config

	mu       sync.Mutex
	warnings []Warning
	metrics  Metrics
}

// NewGenerator creates a generator with the given configuration. A nil
// configuration runs with the defaults, which leave the target directory
// unset; Generate validates it.
func NewGenerator(cfg *Config) *Generator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Generator{cfg: cfg}
}

// Warnings returns the non-fatal diagnostics collected by the last run,
// ordered by record name for stable output.
func (g *Generator) Warnings() []Warning {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Warning(nil), g.warnings...)
}

// Metrics returns the generation metrics of the last run.
func (g *Generator) Metrics() Metrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.metrics
}

// Generate expands every record and writes each one's file under the
// target directory. Records are processed concurrently; a failure in any
// record fails the whole run, and no partial file is ever written for a
// failing record.
func (g *Generator) Generate(ctx context.Context, records []*decl.Record) error {
	if g.cfg.Target == "" {
		return NewConfigError("Target", nil, "no target directory set: use WithTarget()")
	}
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return fmt.Errorf("cowgen: create target directory: %w", err)
	}
	workers := g.cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.mu.Lock()
	g.warnings = nil
	g.metrics = Metrics{}
	g.mu.Unlock()

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(workers)
	for _, d := range records {
		d := d
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			x, err := Expand(g.cfg, d)
			if err != nil {
				return err
			}
			src, err := x.Assemble()
			if err != nil {
				return err
			}
			path := filepath.Join(g.cfg.Target, x.Filename())
			if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
				return NewGenerationError(d.Name, x.Filename(), "write file", err)
			}
			g.mu.Lock()
			g.warnings = append(g.warnings, x.Record.Warnings...)
			g.metrics.FilesGenerated++
			g.metrics.TotalBytes += int64(len(src))
			g.mu.Unlock()
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}
	g.sortWarnings()
	return nil
}

func (g *Generator) sortWarnings() {
	g.mu.Lock()
	defer g.mu.Unlock()
	sort.Slice(g.warnings, func(i, j int) bool {
		if g.warnings[i].Record != g.warnings[j].Record {
			return g.warnings[i].Record < g.warnings[j].Record
		}
		return g.warnings[i].Member < g.warnings[j].Member
	})
}
