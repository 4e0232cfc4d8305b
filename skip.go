package jce

import "fmt"

// fixedWidth is the payload size of the fixed-width wire types.
var fixedWidth = [...]int{
	Byte:   1,
	Short:  2,
	Int:    4,
	Long:   8,
	Float:  4,
	Double: 8,
}

// Skip consumes the payload of the field described by h without
// materializing it, leaving the reader at the first byte after the value.
// It consumes exactly what a full decode of the same value would.
//
// ZeroTag and StructEnd headers carry no payload and consume nothing;
// deciding whether a terminator is legal at that point is left to the
// caller. Only a wire type outside 0-13 fails, with ErrTypeMismatch.
func (r *Reader) Skip(h Head) {
	if r.err != nil {
		return
	}
	switch h.Type {
	case Byte, Short, Int, Long, Float, Double:
		r.discard(fixedWidth[h.Type])
	case String1, String4:
		r.discard(r.readStringLength(h.Type))
	case Map:
		if !r.enter() {
			return
		}
		defer r.leave()
		n := r.ReadCount()
		for i := 0; i < n && r.err == nil; i++ {
			r.SkipField() // key
			r.SkipField() // value
		}
	case List:
		if !r.enter() {
			return
		}
		defer r.leave()
		n := r.ReadCount()
		for i := 0; i < n && r.err == nil; i++ {
			r.SkipField()
		}
	case StructBegin:
		if !r.enter() {
			return
		}
		defer r.leave()
		start := r.count
		for {
			f := r.ReadHead()
			if r.err == nil && f.Type != StructEnd {
				r.Skip(f)
			}
			if r.err != nil {
				r.missingTerminator(start)
				return
			}
			if f.Type == StructEnd {
				if f.Tag != 0 {
					r.setError(fmt.Errorf("%w: struct terminator has tag %d, want 0", ErrTypeMismatch, f.Tag))
				}
				return
			}
		}
	case SimpleList:
		r.discard(r.ReadCount())
	case ZeroTag, StructEnd:
	default:
		r.setError(fmt.Errorf("%w: unknown wire type %d", ErrTypeMismatch, byte(h.Type)))
	}
}

// SkipField reads a field header and skips the value it describes.
func (r *Reader) SkipField() {
	r.Skip(r.ReadHead())
}
