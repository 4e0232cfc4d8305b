package schema

import (
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"
)

// Registry maps struct names to schemas. It is safe for concurrent use.
type Registry struct {
	schemas *xsync.Map[string, *Schema]
}

func NewRegistry() *Registry {
	return &Registry{schemas: xsync.NewMap[string, *Schema]()}
}

// Add registers s. A name can be registered once.
func (r *Registry) Add(s *Schema) error {
	s.registry = r
	if _, loaded := r.schemas.LoadOrStore(s.Name, s); loaded {
		return fmt.Errorf("%w: struct %q defined twice", ErrInvalidSchema, s.Name)
	}
	return nil
}

// AddDocuments compiles and registers docs, then verifies that every
// struct they refer to is registered.
func (r *Registry) AddDocuments(docs ...Document) error {
	for i := range docs {
		s, err := docs[i].Compile()
		if err != nil {
			return err
		}
		if err := r.Add(s); err != nil {
			return err
		}
	}
	return r.Check()
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	return r.schemas.Load(name)
}

// Names returns the registered struct names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.schemas.Size())
	r.schemas.Range(func(name string, _ *Schema) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Schemas returns the registered schemas ordered by name.
func (r *Registry) Schemas() []*Schema {
	names := r.Names()
	out := make([]*Schema, 0, len(names))
	for _, name := range names {
		if s, ok := r.schemas.Load(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// Check reports the first field type that refers to an unregistered struct.
func (r *Registry) Check() error {
	for _, s := range r.Schemas() {
		for _, f := range s.Fields {
			for _, ref := range f.Type.Refs(nil) {
				if _, ok := r.schemas.Load(ref); !ok {
					return fmt.Errorf("%w: %s.%s refers to %q", ErrUnknownStruct, s.Name, f.Name, ref)
				}
			}
		}
	}
	return nil
}
