package jce

type listCodec[T any] struct{ elem Codec[T] }

// ListOf returns the codec for slices whose elements use elem.
func ListOf[T any](elem Codec[T]) Codec[[]T] {
	return listCodec[T]{elem: elem}
}

func (c listCodec[T]) Encode(w *Writer, tag byte, v []T)       { WriteList(w, tag, c.elem, v) }
func (c listCodec[T]) Decode(r *Reader, t WireType, dest *[]T) { ReadList(r, t, c.elem, dest) }

// WriteList writes a List header carrying tag, the zero-tagged element
// count, then every element at tag 0.
func WriteList[T any](w *Writer, tag byte, elem Codec[T], v []T) {
	if w.err != nil {
		return
	}
	w.WriteHead(Head{List, tag}, 0)
	w.writeCount(len(v))
	for _, e := range v {
		elem.Encode(w, 0, e)
	}
}

// ReadList decodes a List payload. An empty list decodes as nil.
func ReadList[T any](r *Reader, t WireType, elem Codec[T], dest *[]T) {
	if r.err != nil {
		return
	}
	if t != List {
		r.setError(mismatch("list", t))
		return
	}
	if !r.enter() {
		return
	}
	defer r.leave()

	n := r.ReadCount()
	if r.err != nil {
		return
	}
	var out []T
	if n > 0 {
		// The count is untrusted; let append grow past the first chunk.
		out = make([]T, 0, min(n, 64))
	}
	for i := 0; i < n; i++ {
		h := r.ReadHead()
		var e T
		elem.Decode(r, h.Type, &e)
		if r.err != nil {
			return
		}
		out = append(out, e)
	}
	*dest = out
}
