// Package schema describes JCE structs by name, field name and type, so
// encoded messages can be decoded into named trees and Go code can be
// generated for them.
package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema indicates a document that cannot describe a struct.
	ErrInvalidSchema = errors.New("schema: invalid schema")

	// ErrUnknownStruct indicates a reference to a struct that is not registered.
	ErrUnknownStruct = errors.New("schema: unknown struct")
)

// Document is the on-disk form of one struct schema.
//
//	metadata:
//	  name: Person
//	spec:
//	  start_tag: 0
//	  fields:
//	    - {name: name, type: string}
//	    - {name: email, type: string, optional: true, tag: 4}
type Document struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Spec     Spec     `json:"spec" yaml:"spec"`
}

type Metadata struct {
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

type Spec struct {
	// StartTag is the tag of the first field. Each later field takes the
	// previous field's tag plus one unless it names its own.
	StartTag uint8        `json:"start_tag" yaml:"start_tag"`
	Fields   []FieldEntry `json:"fields" yaml:"fields"`
}

type FieldEntry struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Tag      *uint8 `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Field is a resolved struct field.
type Field struct {
	Name     string
	Tag      byte
	Type     *Type
	Optional bool
}

// Schema is a resolved struct description.
type Schema struct {
	Name    string
	Comment string
	Fields  []Field

	byTag    map[byte]int
	registry *Registry
}

// Compile resolves d into a Schema: it parses field types and assigns tags.
// Field names and tags must be unique.
func (d *Document) Compile() (*Schema, error) {
	if d.Metadata.Name == "" {
		return nil, fmt.Errorf("%w: missing metadata.name", ErrInvalidSchema)
	}
	s := &Schema{
		Name:    d.Metadata.Name,
		Comment: d.Metadata.Comment,
		Fields:  make([]Field, 0, len(d.Spec.Fields)),
		byTag:   make(map[byte]int, len(d.Spec.Fields)),
	}

	names := make(map[string]bool, len(d.Spec.Fields))
	next := int(d.Spec.StartTag)
	for _, e := range d.Spec.Fields {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: %s: field without a name", ErrInvalidSchema, s.Name)
		}
		if names[e.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, s.Name, e.Name)
		}
		names[e.Name] = true

		if e.Tag != nil {
			next = int(*e.Tag)
		}
		if next > 255 {
			return nil, fmt.Errorf("%w: %s.%s: tag %d out of range", ErrInvalidSchema, s.Name, e.Name, next)
		}
		tag := byte(next)
		if prev, ok := s.byTag[tag]; ok {
			return nil, fmt.Errorf("%w: %s: fields %q and %q share tag %d", ErrInvalidSchema, s.Name, s.Fields[prev].Name, e.Name, tag)
		}

		t, err := ParseType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidSchema, s.Name, e.Name, err)
		}
		s.byTag[tag] = len(s.Fields)
		s.Fields = append(s.Fields, Field{Name: e.Name, Tag: tag, Type: t, Optional: e.Optional})
		next++
	}
	return s, nil
}

// Field returns the field carrying tag.
func (s *Schema) Field(tag byte) (Field, bool) {
	i, ok := s.byTag[tag]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}
