package bind

import (
	"errors"
	"slices"
)

// Registry maps type names to their serialization capabilities. It is
// populated during startup, before any schema referencing it is built,
// and is read-only afterwards.
type Registry struct {
	codecs map[string]Codec
	names  []string
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register associates a type name with a codec. Registering the same name
// twice is a construction error; the first registration stays in effect.
func (r *Registry) Register(name string, c Codec) error {
	if name == "" {
		return errors.New("bind: type name must not be empty")
	}
	if _, exists := r.codecs[name]; exists {
		return &DuplicateTypeError{Name: name}
	}
	r.codecs[name] = c
	r.names = append(r.names, name)
	return nil
}

// MustRegister is Register panicking on error, for startup wiring.
func (r *Registry) MustRegister(name string, c Codec) *Registry {
	if err := r.Register(name, c); err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the codec registered under name.
func (r *Registry) Resolve(name string) (Codec, error) {
	c, ok := r.codecs[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return c, nil
}

// Types returns all registered type names in sorted order.
func (r *Registry) Types() []string {
	names := slices.Clone(r.names)
	slices.Sort(names)
	return names
}
