package format

import (
	"fmt"
	"sort"
)

type entry struct {
	format    *Format
	withValue func(value string) *Format
}

// Registry holds formats by name.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Builtins returns a registry with the stock formats.
func Builtins() *Registry {
	r := NewRegistry()
	for _, f := range []*Format{Bold(), Italic(), Underline(), Strikethrough(), Subscript(), Superscript()} {
		_ = r.Register(f)
	}
	_ = r.RegisterValued(Color("#ff0000"), Color)
	_ = r.RegisterValued(Highlight("#ffff00"), Highlight)
	return r
}

// Register adds f under its name.
func (r *Registry) Register(f *Format) error {
	return r.add(f.Name, entry{format: f})
}

// RegisterValued adds f under its name, with withValue building the same
// format for another value.
func (r *Registry) RegisterValued(f *Format, withValue func(string) *Format) error {
	return r.add(f.Name, entry{format: f, withValue: withValue})
}

// Set adds or replaces f.
func (r *Registry) Set(f *Format) {
	r.entries[f.Name] = entry{format: f}
}

func (r *Registry) add(name string, e entry) error {
	if name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSpec)
	}
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.entries[name] = e
	return nil
}

// Get returns the format registered under name.
func (r *Registry) Get(name string) (*Format, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return e.format, nil
}

// GetWithValue returns the format registered under name, set up for value.
func (r *Registry) GetWithValue(name, value string) (*Format, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	if e.withValue == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotValued, name)
	}
	return e.withValue(value), nil
}

// Valued reports whether the format under name takes a value.
func (r *Registry) Valued(name string) bool {
	return r.entries[name].withValue != nil
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterSpec builds a format from spec and adds it, replacing a format of
// the same name. A style format can later be fetched for another value with
// GetWithValue.
func (r *Registry) RegisterSpec(spec Spec) error {
	f, err := FromSpec(spec)
	if err != nil {
		return err
	}
	e := entry{format: f}
	if spec.Valued() {
		e.withValue = func(value string) *Format {
			valued := spec
			valued.Value = value
			f, _ := FromSpec(valued)
			return f
		}
	}
	r.entries[spec.Name] = e
	return nil
}
