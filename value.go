package jce

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one field of any wire type, decoded without a schema.
// Exactly one of the payload fields is meaningful, selected by Type.
type Value struct {
	Type    WireType `json:"type" yaml:"type"`
	Tag     byte     `json:"tag" yaml:"tag"`
	Int     int64    `json:"int,omitempty" yaml:"int,omitempty"`         // Byte, Short, Int, Long, ZeroTag
	Float   float64  `json:"float,omitempty" yaml:"float,omitempty"`     // Float, Double
	Str     string   `json:"str,omitempty" yaml:"str,omitempty"`         // String1, String4
	Bytes   []byte   `json:"bytes,omitempty" yaml:"bytes,omitempty"`     // SimpleList
	Elems   []Value  `json:"elems,omitempty" yaml:"elems,omitempty"`     // List
	Entries []Entry  `json:"entries,omitempty" yaml:"entries,omitempty"` // Map
	Fields  []Value  `json:"fields,omitempty" yaml:"fields,omitempty"`   // StructBegin
}

// Entry is one key/value pair of a Map value.
type Entry struct {
	Key Value `json:"key" yaml:"key"`
	Val Value `json:"val" yaml:"val"`
}

func (v Value) Head() Head { return Head{v.Type, v.Tag} }

// MarshalText implements encoding.TextMarshaler so wire types read as names
// in JSON and YAML.
func (t WireType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown wire type %d", ErrTypeMismatch, byte(t))
	}
	return []byte(t.String()), nil
}

func (t *WireType) UnmarshalText(text []byte) error {
	v, err := ParseWireType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ReadValue decodes the payload of the field described by h into a Value.
// It consumes the same bytes as Skip(h).
func (r *Reader) ReadValue(h Head) Value {
	v := Value{Type: h.Type, Tag: h.Tag}
	if r.err != nil {
		return v
	}
	switch h.Type {
	case Byte, Short, Int, Long, ZeroTag:
		r.ReadInt64(h.Type, &v.Int)
	case Float, Double:
		r.ReadFloat64(h.Type, &v.Float)
	case String1, String4:
		r.ReadString(h.Type, &v.Str)
	case SimpleList:
		r.ReadBytes(h.Type, &v.Bytes)
	case List:
		if !r.enter() {
			return v
		}
		defer r.leave()
		n := r.ReadCount()
		for i := 0; i < n && r.err == nil; i++ {
			v.Elems = append(v.Elems, r.ReadValue(r.ReadHead()))
		}
	case Map:
		if !r.enter() {
			return v
		}
		defer r.leave()
		n := r.ReadCount()
		for i := 0; i < n && r.err == nil; i++ {
			var e Entry
			e.Key = r.ReadValue(r.ReadHead())
			e.Val = r.ReadValue(r.ReadHead())
			v.Entries = append(v.Entries, e)
		}
	case StructBegin:
		var fields valueFields
		r.ReadStruct(h.Type, &fields)
		v.Fields = fields
	case StructEnd:
		r.setError(fmt.Errorf("%w: unexpected %s outside a struct", ErrTypeMismatch, h))
	default:
		r.setError(fmt.Errorf("%w: unknown wire type %d", ErrTypeMismatch, byte(h.Type)))
	}
	return v
}

// valueFields collects every field of a struct in wire order.
type valueFields []Value

func (f *valueFields) EncodeFields(w *Writer) {
	for _, v := range *f {
		w.WriteValue(v)
	}
}

func (f *valueFields) DecodeField(r *Reader, h Head) bool {
	*f = append(*f, r.ReadValue(h))
	return true
}

// intRange is the range an integer wire type can carry.
func intRange(t WireType) (lo, hi int64, ok bool) {
	switch t {
	case ZeroTag:
		return 0, 0, true
	case Byte:
		return math.MinInt8, math.MaxInt8, true
	case Short:
		return math.MinInt16, math.MaxInt16, true
	case Int:
		return math.MinInt32, math.MaxInt32, true
	}
	return 0, 0, false
}

// WriteValue encodes v with its own wire type and tag. Container counts
// are written in compact form, so re-encoding decoded input yields the
// canonical encoding of the same value.
//
// An Int that does not fit the width of v's integer wire type fails with
// ErrInvalidLength instead of being truncated.
func (w *Writer) WriteValue(v Value) {
	if w.err != nil {
		return
	}
	if lo, hi, ok := intRange(v.Type); ok && (v.Int < lo || v.Int > hi) {
		w.setError(fmt.Errorf("%w: %d does not fit %s", ErrInvalidLength, v.Int, v.Type))
		return
	}
	h := v.Head()
	switch v.Type {
	case ZeroTag:
		w.WriteHead(h, 0)
	case Byte:
		w.WriteHead(h, 1)
		_ = w.WriteByte(byte(v.Int))
	case Short:
		w.WriteHead(h, 2)
		w.putUint16(uint16(v.Int))
	case Int:
		w.WriteHead(h, 4)
		w.putUint32(uint32(v.Int))
	case Long:
		w.WriteHead(h, 8)
		w.putUint64(uint64(v.Int))
	case Float:
		w.WriteHead(h, 4)
		w.putUint32(math.Float32bits(float32(v.Float)))
	case Double:
		w.WriteHead(h, 8)
		w.putUint64(math.Float64bits(v.Float))
	case String1:
		if len(v.Str) > math.MaxUint8 {
			w.setError(fmt.Errorf("%w: %d bytes do not fit String1", ErrInvalidLength, len(v.Str)))
			return
		}
		w.WriteHead(h, 1+len(v.Str))
		_ = w.WriteByte(byte(len(v.Str)))
		w.writeString(v.Str)
	case String4:
		if len(v.Str) > math.MaxInt32 {
			w.setError(fmt.Errorf("%w: string of %d bytes", ErrInvalidLength, len(v.Str)))
			return
		}
		w.WriteHead(h, 4+len(v.Str))
		w.putUint32(uint32(len(v.Str)))
		w.writeString(v.Str)
	case SimpleList:
		w.WriteBytes(v.Tag, v.Bytes)
	case List:
		w.WriteHead(h, 0)
		w.writeCount(len(v.Elems))
		for _, e := range v.Elems {
			w.WriteValue(e)
		}
	case Map:
		w.WriteHead(h, 0)
		w.writeCount(len(v.Entries))
		for _, e := range v.Entries {
			w.WriteValue(e.Key)
			w.WriteValue(e.Val)
		}
	case StructBegin:
		fields := valueFields(v.Fields)
		w.WriteStruct(v.Tag, &fields)
	default:
		w.setError(fmt.Errorf("%w: cannot encode %s", ErrTypeMismatch, h))
	}
}

// Interface returns v as plain Go data: int64, float64, string, []byte,
// []any for lists, and map[string]any for structs (keyed by tag) and maps
// (keyed by the key's text form).
func (v Value) Interface() any {
	switch v.Type {
	case Byte, Short, Int, Long, ZeroTag:
		return v.Int
	case Float, Double:
		return v.Float
	case String1, String4:
		return v.Str
	case SimpleList:
		if v.Bytes == nil {
			return []byte{}
		}
		return v.Bytes
	case List:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = e.Interface()
		}
		return out
	case Map:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Key.keyString()] = e.Val.Interface()
		}
		return out
	case StructBegin:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[strconv.Itoa(int(f.Tag))] = f.Interface()
		}
		return out
	}
	return nil
}

func (v Value) keyString() string {
	switch k := v.Interface().(type) {
	case string:
		return k
	case int64:
		return strconv.FormatInt(k, 10)
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	default:
		return fmt.Sprint(k)
	}
}

// ParseValues decodes data as a sequence of top-level fields, the way an
// unframed message is laid out.
func ParseValues(data []byte) ([]Value, error) {
	r := NewReaderBytes(data)
	var out []Value
	for r.err == nil && !r.atEOF() {
		out = append(out, r.ReadValue(r.ReadHead()))
	}
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}
