package jce

import (
	"errors"
	"fmt"
)

// WriteStruct writes s framed by a StructBegin header carrying tag and a
// StructEnd header with tag 0.
func (w *Writer) WriteStruct(tag byte, s Struct) {
	if w.err != nil {
		return
	}
	w.WriteHead(Head{StructBegin, tag}, 0)
	s.EncodeFields(w)
	w.WriteHead(Head{StructEnd, 0}, 0)
}

// ReadStruct decodes the fields of a struct whose StructBegin header has
// already been read. Fields are dispatched to s in whatever order they
// appear; tags s does not recognise are skipped. It consumes the
// terminating StructEnd header, which must carry tag 0.
func (r *Reader) ReadStruct(t WireType, s Struct) {
	if r.err != nil {
		return
	}
	if t != StructBegin {
		r.setError(mismatch("struct", t))
		return
	}
	if !r.enter() {
		return
	}
	defer r.leave()

	start := r.count
	for {
		h := r.ReadHead()
		if r.err != nil {
			r.missingTerminator(start)
			return
		}
		if h.Type == StructEnd {
			if h.Tag != 0 {
				r.setError(fmt.Errorf("%w: struct terminator has tag %d, want 0", ErrTypeMismatch, h.Tag))
			}
			return
		}
		if !s.DecodeField(r, h) && r.err == nil {
			r.Skip(h)
		}
		if r.err != nil {
			r.missingTerminator(start)
			return
		}
	}
}

// missingTerminator reports input that ran out while a struct was open.
func (r *Reader) missingTerminator(start int64) {
	if errors.Is(r.err, ErrBufferUnderrun) && !errors.Is(r.err, ErrMissingTerminator) {
		r.err = fmt.Errorf("%w: struct opened at offset %d: %w", ErrMissingTerminator, start, r.err)
	}
}

type structCodec[T any, PT interface {
	*T
	Struct
}] struct{}

// StructOf returns the codec for a struct type whose pointer implements Struct.
// Decoding starts from the zero value of T.
func StructOf[T any, PT interface {
	*T
	Struct
}]() Codec[T] {
	return structCodec[T, PT]{}
}

func (structCodec[T, PT]) Encode(w *Writer, tag byte, v T) {
	w.WriteStruct(tag, PT(&v))
}

func (structCodec[T, PT]) Decode(r *Reader, t WireType, dest *T) {
	var v T
	r.ReadStruct(t, PT(&v))
	if r.err == nil {
		*dest = v
	}
}
