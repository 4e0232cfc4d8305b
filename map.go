package jce

import (
	"bytes"
	"slices"
)

type mapCodec[K comparable, V any] struct {
	key Codec[K]
	val Codec[V]
}

// MapOf returns the codec for maps whose keys and values use key and val.
func MapOf[K comparable, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, val: val}
}

func (c mapCodec[K, V]) Encode(w *Writer, tag byte, m map[K]V) { WriteMap(w, tag, c.key, c.val, m) }
func (c mapCodec[K, V]) Decode(r *Reader, t WireType, dest *map[K]V) {
	ReadMap(r, t, c.key, c.val, dest)
}

type encodedKey[K any] struct {
	raw []byte
	key K
}

// WriteMap writes a Map header carrying tag, the zero-tagged entry count,
// then each key and value at tag 0. Entries are ordered by their encoded
// key bytes, so equal maps always produce equal output.
func WriteMap[K comparable, V any](w *Writer, tag byte, key Codec[K], val Codec[V], m map[K]V) {
	if w.err != nil {
		return
	}
	w.WriteHead(Head{Map, tag}, 0)
	w.writeCount(len(m))
	if len(m) == 0 {
		return
	}

	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	kw := NewBufferWriter(buf)
	keys := make([]encodedKey[K], 0, len(m))
	offsets := make([]int, 0, len(m)+1)
	for k := range m {
		offsets = append(offsets, buf.Len())
		key.Encode(kw, 0, k)
		keys = append(keys, encodedKey[K]{key: k})
	}
	if err := kw.Err(); err != nil {
		w.setError(err)
		return
	}
	offsets = append(offsets, buf.Len())
	for i := range keys {
		keys[i].raw = buf.Bytes()[offsets[i]:offsets[i+1]]
	}
	slices.SortFunc(keys, func(a, b encodedKey[K]) int { return bytes.Compare(a.raw, b.raw) })

	for _, k := range keys {
		_, _ = w.Write(k.raw)
		val.Encode(w, 0, m[k.key])
	}
}

// ReadMap decodes a Map payload. A repeated key keeps its last value; an
// empty map decodes as nil.
func ReadMap[K comparable, V any](r *Reader, t WireType, key Codec[K], val Codec[V], dest *map[K]V) {
	if r.err != nil {
		return
	}
	if t != Map {
		r.setError(mismatch("map", t))
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
	var out map[K]V
	if n > 0 {
		out = make(map[K]V, min(n, 64))
	}
	for i := 0; i < n; i++ {
		var (
			k K
			v V
		)
		key.Decode(r, r.ReadHead().Type, &k)
		val.Decode(r, r.ReadHead().Type, &v)
		if r.err != nil {
			return
		}
		out[k] = v
	}
	*dest = out
}
