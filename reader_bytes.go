package jce

import "io"

// BytesReader is an io.Reader over an in-memory byte slice.
// The Reader uses it as a cursor: lengths are checked against the bytes
// left before anything is allocated, and skips are a pointer move.
type BytesReader struct {
	B []byte // source slice
	N int    // current read position
}

// NewBytesReader creates a new BytesReader.
func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{B: b}
}

// Read implements the [io.Reader] interface.
func (r *BytesReader) Read(p []byte) (int, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	n := copy(p, r.B[r.N:])
	r.N += n
	return n, nil
}

// ReadByte implements the [io.ByteReader] interface.
func (r *BytesReader) ReadByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// Next returns a view of the next n bytes and advances past them.
// If fewer than n bytes remain, it consumes nothing and returns io.ErrUnexpectedEOF.
func (r *BytesReader) Next(n int) ([]byte, error) {
	if n < 0 || n > r.Available() {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.B[r.N : r.N+n : r.N+n]
	r.N += n
	return b, nil
}

// Reset rewinds the reader to the start of its slice.
func (r *BytesReader) Reset() { r.N = 0 }

// Len returns the number of bytes read.
func (r *BytesReader) Len() int { return r.N }

// Available returns the number of bytes left to read.
func (r *BytesReader) Available() int {
	if n := len(r.B) - r.N; n > 0 {
		return n
	}
	return 0
}
