package schema

import (
	"fmt"
	"strconv"

	"github.com/oy3o/jce"
)

// Named converts a decoded struct value into a map keyed by field name.
// Fields whose tag the schema does not declare are kept under "_<tag>".
// Nested structs are named through the schema's registry when their type
// is registered there.
//
// A declared field whose wire type cannot hold its declared type fails
// with jce.ErrTypeMismatch.
func (s *Schema) Named(v jce.Value) (map[string]any, error) {
	if v.Type != jce.StructBegin {
		return nil, fmt.Errorf("%w: %s expects a struct, got %s", jce.ErrTypeMismatch, s.Name, v.Type)
	}
	return s.NameFields(v.Fields)
}

// NameFields names an unframed field sequence, such as the result of
// jce.ParseValues.
func (s *Schema) NameFields(fields []jce.Value) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, fv := range fields {
		f, ok := s.Field(fv.Tag)
		if !ok {
			out["_"+strconv.Itoa(int(fv.Tag))] = fv.Interface()
			continue
		}
		named, err := s.nameValue(f.Type, fv)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name, f.Name, err)
		}
		out[f.Name] = named
	}
	return out, nil
}

func (s *Schema) nameValue(t *Type, v jce.Value) (any, error) {
	if !compatible(t, v.Type) {
		return nil, fmt.Errorf("%w: %s cannot hold %s", jce.ErrTypeMismatch, v.Type, t)
	}
	switch t.Kind {
	case KindBool:
		return v.Int != 0, nil
	case KindList:
		if v.Type == jce.SimpleList {
			return v.Interface(), nil
		}
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			n, err := s.nameValue(t.Elem, e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case KindMap:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			key, err := s.nameValue(t.Key, e.Key)
			if err != nil {
				return nil, fmt.Errorf("key: %w", err)
			}
			val, err := s.nameValue(t.Elem, e.Val)
			if err != nil {
				return nil, fmt.Errorf("[%v]: %w", key, err)
			}
			out[fmt.Sprint(key)] = val
		}
		return out, nil
	case KindStruct:
		if s.registry != nil {
			if nested, ok := s.registry.Lookup(t.Name); ok {
				return nested.Named(v)
			}
		}
	}
	return v.Interface(), nil
}

// compatible reports whether wire type w can carry a value of type t.
func compatible(t *Type, w jce.WireType) bool {
	switch t.Kind {
	case KindFloat32, KindFloat64:
		return w == jce.Float || w == jce.Double || w == jce.ZeroTag
	case KindString:
		return w == jce.String1 || w == jce.String4
	case KindBytes:
		return w == jce.SimpleList || w == jce.List
	case KindList:
		return w == jce.List || w == jce.SimpleList && t.Elem.Kind == KindInt8
	case KindMap:
		return w == jce.Map
	case KindStruct:
		return w == jce.StructBegin
	}
	return t.Kind.IsInteger() && w.IsInteger()
}
