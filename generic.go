package jce

import (
	"bytes"
	"fmt"
)

// Marshal encodes s as a struct at tag 0: StructBegin, fields, StructEnd.
func Marshal(s Struct) ([]byte, error) {
	return marshal(func(w *Writer) { w.WriteStruct(0, s) })
}

// MarshalFields encodes the fields of s without struct framing, the layout
// of a top-level message body.
func MarshalFields(s Struct) ([]byte, error) {
	return marshal(s.EncodeFields)
}

// Encode encodes a single field of any codec.
func Encode[T any](c Codec[T], tag byte, v T) ([]byte, error) {
	return marshal(func(w *Writer) { c.Encode(w, tag, v) })
}

func marshal(encode func(w *Writer)) ([]byte, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	w := NewBufferWriter(buf)
	encode(w)
	if err := w.Err(); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// MarshalTo encodes s like Marshal into p without allocating.
// It returns io.ErrShortWrite if p is too small.
func MarshalTo(p []byte, s Struct) (int, error) {
	bw := NewBytesWriter(p)
	w := &Writer{w: bw}
	w.WriteStruct(0, s)
	return bw.Len(), w.Err()
}

// Unmarshal decodes data produced by Marshal into s.
// Bytes left after the struct are reported as ErrTrailingData.
func Unmarshal(data []byte, s Struct) error {
	r := NewReaderBytes(data)
	r.ReadStruct(r.ReadHead().Type, s)
	return r.finish()
}

// UnmarshalFields decodes an unframed field sequence into s, skipping
// fields s does not know, until data is exhausted.
func UnmarshalFields(data []byte, s Struct) error {
	r := NewReaderBytes(data)
	for r.err == nil && !r.atEOF() {
		h := r.ReadHead()
		if r.err == nil && !s.DecodeField(r, h) {
			r.Skip(h)
		}
	}
	return r.err
}

// Decode decodes one field of any codec from data and returns its header.
func Decode[T any](c Codec[T], data []byte) (T, Head, error) {
	var v T
	r := NewReaderBytes(data)
	h := r.ReadHead()
	c.Decode(r, h.Type, &v)
	if err := r.finish(); err != nil {
		var zero T
		return zero, h, err
	}
	return v, h, nil
}

// ReadMessage decodes the next framed struct from the stream into s.
func (r *Reader) ReadMessage(s Struct) error {
	r.ReadStruct(r.ReadHead().Type, s)
	return r.err
}

// WriteMessage writes s as a struct at tag 0 and flushes.
func (w *Writer) WriteMessage(s Struct) error {
	w.WriteStruct(0, s)
	return w.Flush()
}

// finish reports the decode error, or ErrTrailingData when input remains.
func (r *Reader) finish() error {
	if r.err != nil {
		return r.err
	}
	if !r.atEOF() {
		return fmt.Errorf("%w: input continues after offset %d", ErrTrailingData, r.count)
	}
	return nil
}
