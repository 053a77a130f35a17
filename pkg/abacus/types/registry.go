package types

import (
	"fmt"
	"strings"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/registry"
)

// Registry maps type names to types. The generic forms list(<t>) and
// dict(<t>) are resolved on demand from the registered item types.
type Registry struct {
	types *registry.Registry[string, Type]
	// generics caches parsed generic names, e.g. "list(number)".
	generics *registry.Registry[string, Type]
}

// NewRegistry returns a registry holding number, string and boolean.
func NewRegistry() *Registry {
	r := &Registry{
		types:    registry.New[string, Type](),
		generics: registry.New[string, Type](),
	}
	r.Register(Number{})
	r.Register(String{})
	r.Register(Boolean{})
	return r
}

// Register adds t under t.Name(), replacing any type with the same name.
// Cached generic types are dropped, since their item type may have changed.
func (r *Registry) Register(t Type) {
	r.types.Register(t.Name(), t)
	for _, name := range r.generics.Keys() {
		r.generics.Delete(name)
	}
}

// Lookup returns the type named name. Whitespace around names and inside
// generic brackets is ignored: "list( number )" is list(number).
func (r *Registry) Lookup(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if t, ok := r.types.Get(name); ok {
		return t, nil
	}
	if t, ok := r.generics.Get(name); ok {
		return t, nil
	}
	for _, generic := range []struct {
		prefix string
		build  func(Type) Type
	}{
		{"list(", func(t Type) Type { return ListOf(t) }},
		{"dict(", func(t Type) Type { return DictOf(t) }},
	} {
		inner, ok := strings.CutPrefix(name, generic.prefix)
		if !ok {
			continue
		}
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			break
		}
		item, err := r.Lookup(inner)
		if err != nil {
			return nil, err
		}
		return r.generics.GetOrCreate(name, func() Type { return generic.build(item) }), nil
	}
	return nil, fmt.Errorf("%w: %q", abserrors.ErrUnknownType, name)
}

// Names returns the registered type names in registration order, followed
// by the generic forms.
func (r *Registry) Names() []string {
	return append(r.types.Keys(), "list(<type>)", "dict(<type>)")
}
