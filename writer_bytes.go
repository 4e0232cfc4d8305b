package jce

import "io"

// BytesWriter encodes into a caller-supplied buffer and never grows it.
// A write that does not fit copies what it can and fails with
// io.ErrShortWrite, which the enclosing Writer latches.
type BytesWriter struct {
	B []byte // the caller's buffer, bounded by its length
	N int    // bytes written so far
}

// NewBytesWriter writes into p[:len(p)]; capacity beyond len(p) is never touched.
func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p[:len(p):len(p)]}
}

func (w *BytesWriter) Write(p []byte) (int, error) {
	return w.advance(copy(w.B[w.N:], p), len(p))
}

func (w *BytesWriter) WriteString(s string) (int, error) {
	return w.advance(copy(w.B[w.N:], s), len(s))
}

func (w *BytesWriter) WriteByte(c byte) error {
	if w.N == len(w.B) {
		return io.ErrShortWrite
	}
	w.B[w.N] = c
	w.N++
	return nil
}

func (w *BytesWriter) advance(n, want int) (int, error) {
	w.N += n
	if n < want {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Reset rewinds to the start of the buffer.
func (w *BytesWriter) Reset() { w.N = 0 }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.N }

// Available returns the space left in the buffer.
func (w *BytesWriter) Available() int { return len(w.B) - w.N }

// Bytes returns the encoded prefix of the buffer.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }
