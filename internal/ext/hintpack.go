// Package ext provides pluggable, declaratively-registered extensions to
// the core decorator: named validator packs loaded from YAML manifests,
// a protobuf-aware Generic-sign recognizer, and a demo gRPC interceptor
// that exercises the decorator against a real call boundary.
//
// Grounded on this teacher's internal/ext package, which loads funxy.yaml
// dependency manifests via gopkg.in/yaml.v3 and registers the declared
// bindings as virtual packages the analyzer can resolve -- adapted here
// from "declare Go bindings for the language" to "declare named,
// reusable AttrValidator/Equality composites for the decorator".
package ext

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/checkmate/internal/validator"
)

// Manifest is the top-level shape of a checkmate hint-pack YAML file.
type Manifest struct {
	Validators []ValidatorSpec `yaml:"validators"`
}

// ValidatorSpec declares one named, reusable validator composed from the
// Validator Algebra's leaves (spec §4.4): an attribute probe compared
// against an equality constant. Richer shapes (nested AttrValidator,
// user predicates) are intentionally out of the declarative surface --
// predicates require Go code, not YAML, to supply the function value.
type ValidatorSpec struct {
	// Name is how this validator is later looked up via Pack.Lookup.
	Name string `yaml:"name"`
	// Attr is the attribute name probed by the generated IsAttr composite.
	Attr string `yaml:"attr"`
	// Equals is the value an IsEqual validator compares the attribute's
	// value against; when omitted it is nil, so the attribute must equal nil.
	Equals any `yaml:"equals,omitempty"`
}

// Pack is a loaded, ready-to-use set of named validators.
type Pack struct {
	byName map[string]validator.Validator
}

// LoadPack parses a hint-pack manifest from path and builds every declared
// validator, the way internal/ext/virtual_package.go groups bindings by
// module name and builds a VirtualPackage per group.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hint pack %s: %w", path, err)
	}
	return LoadPackBytes(data)
}

// LoadPackBytes parses a hint-pack manifest already read into memory.
func LoadPackBytes(data []byte) (*Pack, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing hint pack: %w", err)
	}

	p := &Pack{byName: make(map[string]validator.Validator, len(m.Validators))}
	for _, spec := range m.Validators {
		if spec.Name == "" {
			return nil, fmt.Errorf("hint pack validator missing name")
		}
		if spec.Attr == "" {
			return nil, fmt.Errorf("hint pack validator %q missing attr", spec.Name)
		}
		inner := validator.NewEquality(spec.Equals)
		v, err := validator.NewAttr(spec.Attr, inner)
		if err != nil {
			return nil, fmt.Errorf("hint pack validator %q: %w", spec.Name, err)
		}
		p.byName[spec.Name] = v
	}
	return p, nil
}

// Lookup returns the named validator, or (nil, false) if undeclared.
func (p *Pack) Lookup(name string) (validator.Validator, bool) {
	v, ok := p.byName[name]
	return v, ok
}

// Names lists every validator declared in the pack, in no particular order.
func (p *Pack) Names() []string {
	names := make([]string, 0, len(p.byName))
	for n := range p.byName {
		names = append(names, n)
	}
	return names
}
