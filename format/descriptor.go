package format

import (
	"strings"

	"github.com/kbukum/nlpwire/validation"
)

// Descriptor declares an accepted raw input kind.
type Descriptor struct {
	ID         string   `yaml:"id" validate:"required,identifier"`
	Extensions []string `yaml:"extensions" validate:"required,min=1,dive,extension"`
	Directory  bool     `yaml:"directory"`
}

// NewDescriptor builds a validated descriptor. Leading dots are stripped
// from extensions and duplicates dropped, keeping declaration order.
func NewDescriptor(id string, directory bool, extensions ...string) (*Descriptor, error) {
	d := &Descriptor{ID: id, Directory: directory, Extensions: normalizeExtensions(extensions)}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on an invalid declaration.
func MustDescriptor(id string, directory bool, extensions ...string) *Descriptor {
	d, err := NewDescriptor(id, directory, extensions...)
	if err != nil {
		panic(err)
	}
	return d
}

// Normalize strips leading dots and duplicates from the extension list.
func (d *Descriptor) Normalize() {
	d.Extensions = normalizeExtensions(d.Extensions)
}

// Validate checks the declaration.
func (d *Descriptor) Validate() error {
	return validation.Validate(d)
}

// Kind describes the descriptor in log lines.
func (d *Descriptor) Kind() string {
	if d.Directory {
		return "directory"
	}
	return "file"
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.TrimPrefix(e, ".")
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
