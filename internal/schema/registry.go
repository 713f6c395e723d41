package schema

import (
	"fmt"
	"sort"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
)

// Registry is a closed, immutable mapping from component name to its ordered
// fields, rooted at the envelope component. A new contract version is
// expressed by building a new Registry, never by mutating one.
type Registry struct {
	root       string
	components map[string][]Field
	variants   []Variant
}

// NewRegistry validates and freezes a schema. Every referenced component must
// exist and the reference graph must be acyclic.
func NewRegistry(root string, components map[string][]Field, variants []Variant) (*Registry, error) {
	frozen := make(map[string][]Field, len(components))
	for name, fields := range components {
		frozen[name] = append([]Field(nil), fields...)
	}
	r := &Registry{
		root:       root,
		components: frozen,
		variants:   append([]Variant(nil), variants...),
	}

	if _, ok := r.components[root]; !ok {
		return nil, fmt.Errorf("root component %s not defined", root)
	}

	state := make(map[string]int, len(r.components)) // 0 unvisited, 1 visiting, 2 done
	for _, name := range r.ComponentNames() {
		if err := r.checkComponent(name, state); err != nil {
			return nil, err
		}
	}
	for i, v := range r.variants {
		if err := r.checkDescriptor(v.Payload, state); err != nil {
			return nil, fmt.Errorf("variant %d (%s): %w", i, v.Name, err)
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level tables.
func MustRegistry(root string, components map[string][]Field, variants []Variant) *Registry {
	r, err := NewRegistry(root, components, variants)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) checkComponent(name string, state map[string]int) error {
	switch state[name] {
	case 1:
		return fmt.Errorf("component %s is part of a reference cycle", name)
	case 2:
		return nil
	}
	fields, ok := r.components[name]
	if !ok {
		return apperr.New(apperr.CodeUnknownComponent, "component "+name+" not defined")
	}
	state[name] = 1
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return fmt.Errorf("component %s declares field %s twice", name, f.Name)
		}
		seen[f.Name] = true
		if err := r.checkDescriptor(f.Type, state); err != nil {
			return fmt.Errorf("%s.%s: %w", name, f.Name, err)
		}
	}
	state[name] = 2
	return nil
}

func (r *Registry) checkDescriptor(d Descriptor, state map[string]int) error {
	switch t := d.(type) {
	case Primitive:
		if _, ok := kindNames[t.Kind]; !ok {
			return fmt.Errorf("unknown primitive kind %d", t.Kind)
		}
		return nil
	case Array:
		if t.Elem == nil {
			return fmt.Errorf("array without element type")
		}
		return r.checkDescriptor(t.Elem, state)
	case Component:
		return r.checkComponent(t.Name, state)
	default:
		return fmt.Errorf("unsupported descriptor %T", d)
	}
}

// Root returns the envelope component name.
func (r *Registry) Root() string {
	return r.root
}

// Fields returns the declared fields of a component.
func (r *Registry) Fields(name string) ([]Field, bool) {
	fields, ok := r.components[name]
	return fields, ok
}

// ComponentNames lists every component, sorted.
func (r *Registry) ComponentNames() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variant returns the payload alternative selected by a wire type tag.
func (r *Registry) Variant(tag uint64) (Variant, bool) {
	if tag >= uint64(len(r.variants)) {
		return Variant{}, false
	}
	return r.variants[tag], true
}

// Variants returns the tagged alternatives in wire order.
func (r *Registry) Variants() []Variant {
	return append([]Variant(nil), r.variants...)
}

// width returns how many wire values a descriptor consumes, or false when the
// count depends on the data (arrays).
func (r *Registry) width(d Descriptor) (int, bool) {
	switch t := d.(type) {
	case Primitive:
		return 1, true
	case Array:
		return 0, false
	case Component:
		total := 0
		for _, f := range r.components[t.Name] {
			w, ok := r.width(f.Type)
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	}
	return 0, false
}
