// Package load reads record declarations from YAML manifests and turns
// them into the declaration trees the generation engine consumes. A
// manifest is the serialized form of an already-parsed declaration: it
// carries exactly what a host front-end would hand over (binding kinds,
// modifiers, type annotations as source text, initializer expressions),
// nothing more.
package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cowgen/cowgen/compiler/decl"
)

// Manifest is the top-level document of a declaration manifest.
type Manifest struct {
	Records []*RecordDecl `yaml:"records"`
}

// RecordDecl is the manifest form of one annotated type declaration.
type RecordDecl struct {
	Name         string        `yaml:"name"`
	Kind         string        `yaml:"kind,omitempty"`
	Visibility   string        `yaml:"visibility,omitempty"`
	Conforms     []string      `yaml:"conforms,omitempty"`
	Capabilities []string      `yaml:"capabilities,omitempty"`
	Members      []*MemberDecl `yaml:"members"`
}

// MemberDecl is the manifest form of one member declaration.
type MemberDecl struct {
	Name       string `yaml:"name"`
	Binding    string `yaml:"binding,omitempty"`
	Static     bool   `yaml:"static,omitempty"`
	Computed   bool   `yaml:"computed,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Default    string `yaml:"default,omitempty"`
}

// File reads and parses the manifest at the given path.
func File(path string) ([]*decl.Record, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read manifest: %w", err)
	}
	records, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("load: manifest %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes manifest bytes into declaration trees, in document order.
func Parse(buf []byte) ([]*decl.Record, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(buf, m); err != nil {
		return nil, err
	}
	records := make([]*decl.Record, 0, len(m.Records))
	for _, rd := range m.Records {
		r, err := rd.record()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (rd *RecordDecl) record() (*decl.Record, error) {
	if rd.Name == "" {
		return nil, fmt.Errorf("record name cannot be empty")
	}
	kind, err := parseKind(rd.Kind)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", rd.Name, err)
	}
	vis, err := parseVisibility(rd.Visibility)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", rd.Name, err)
	}
	r := &decl.Record{
		Name:         rd.Name,
		Kind:         kind,
		Visibility:   vis,
		Conforms:     rd.Conforms,
		Capabilities: rd.Capabilities,
		Members:      make([]*decl.Member, 0, len(rd.Members)),
	}
	for _, md := range rd.Members {
		m, err := md.member()
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rd.Name, err)
		}
		r.Members = append(r.Members, m)
	}
	return r, nil
}

func (md *MemberDecl) member() (*decl.Member, error) {
	if md.Name == "" {
		return nil, fmt.Errorf("member name cannot be empty")
	}
	binding, err := parseBinding(md.Binding)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", md.Name, err)
	}
	vis, err := parseVisibility(md.Visibility)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", md.Name, err)
	}
	m := &decl.Member{
		Name:       md.Name,
		Binding:    binding,
		Static:     md.Static,
		Computed:   md.Computed,
		Visibility: vis,
		Default:    decl.CollapseWhitespace(md.Default),
	}
	if md.Type != "" {
		t, err := decl.ParseType(md.Type)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", md.Name, err)
		}
		m.Type = t
	}
	return m, nil
}

func parseKind(s string) (decl.Kind, error) {
	switch s {
	case "", "struct":
		return decl.KindStruct, nil
	case "class":
		return decl.KindClass, nil
	case "enum":
		return decl.KindEnum, nil
	case "actor":
		return decl.KindActor, nil
	default:
		return 0, fmt.Errorf("unknown declaration kind %q", s)
	}
}

func parseBinding(s string) (decl.Binding, error) {
	switch s {
	case "", "var":
		return decl.BindingVar, nil
	case "let":
		return decl.BindingLet, nil
	default:
		return 0, fmt.Errorf("unknown binding form %q", s)
	}
}

func parseVisibility(s string) (decl.Visibility, error) {
	switch s {
	case "":
		return decl.VisibilityUnspecified, nil
	case "public":
		return decl.VisibilityPublic, nil
	case "package":
		return decl.VisibilityPackage, nil
	case "internal":
		return decl.VisibilityInternal, nil
	case "fileprivate":
		return decl.VisibilityFilePrivate, nil
	case "private":
		return decl.VisibilityPrivate, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q", s)
	}
}
