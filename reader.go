package jce

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

const (
	// DefaultMaxDepth bounds how deeply structs, lists and maps may nest.
	DefaultMaxDepth = 100
	// DefaultMaxLength bounds string lengths and container counts.
	DefaultMaxLength = 100 << 20

	// streamChunk is the largest single allocation readFull makes on
	// non-memory sources.
	streamChunk = 64 << 10
)

type source interface {
	io.Reader
	io.ByteReader
}

// Reader decodes JCE fields from an io.Reader.
// It tracks the first error; subsequent reads become no-ops and leave
// their destinations untouched.
type Reader struct {
	r         source
	mem       *BytesReader // set when decoding from memory
	count     int64        // total bytes read
	err       error        // first error encountered
	depth     int
	maxDepth  int
	maxLength int
}

var _ source = (*Reader)(nil)

// NewReader creates a Reader on top of r. Sources that already provide
// io.ByteReader (BytesReader, bytes.Reader, bytes.Buffer, bufio.Reader)
// are read directly; anything else is wrapped in a bufio.Reader.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch src := r.(type) {
	case *Reader:
		return &Reader{r: src, maxDepth: src.maxDepth, maxLength: src.maxLength}, nil
	case *BytesReader:
		return &Reader{r: src, mem: src, maxDepth: DefaultMaxDepth, maxLength: DefaultMaxLength}, nil
	case source:
		return &Reader{r: src, maxDepth: DefaultMaxDepth, maxLength: DefaultMaxLength}, nil
	}
	return &Reader{r: bufio.NewReader(r), maxDepth: DefaultMaxDepth, maxLength: DefaultMaxLength}, nil
}

// NewReaderBytes creates a Reader over data.
func NewReaderBytes(data []byte) *Reader {
	src := NewBytesReader(data)
	return &Reader{r: src, mem: src, maxDepth: DefaultMaxDepth, maxLength: DefaultMaxLength}
}

// WithMaxDepth sets the nesting limit and returns the reader for chaining.
func (r *Reader) WithMaxDepth(n int) *Reader {
	r.maxDepth = n
	return r
}

// WithMaxLength sets the string length and container count limit and
// returns the reader for chaining.
func (r *Reader) WithMaxLength(n int) *Reader {
	r.maxLength = n
	return r
}

// Read implements the io.Reader interface, reading raw payload bytes.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	if err != io.EOF {
		r.setError(err)
	}
	return n, err
}

// ReadByte implements the io.ByteReader interface, reading one raw byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			r.setError(err)
		}
		return 0, err
	}
	r.count++
	return b, nil
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// setError records the first non-nil error. End-of-input is reported as
// ErrBufferUnderrun: a decoder only reads bytes that a value requires.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = underrun(err, r.count)
	}
}

func (r *Reader) readByte() byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.setError(err)
		return 0
	}
	r.count++
	return b
}

// readInto fills buf completely.
func (r *Reader) readInto(buf []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.r, buf)
	r.count += int64(n)
	r.setError(err)
}

// readFull reads n bytes. When decoding from memory the result aliases the
// input; callers that keep it must copy.
func (r *Reader) readFull(n int) []byte {
	if r.err != nil || n == 0 {
		return nil
	}
	if r.mem != nil {
		b, err := r.mem.Next(n)
		if err != nil {
			r.setError(err)
			return nil
		}
		r.count += int64(n)
		return b
	}
	// Streams grow the result as bytes arrive, so a forged length costs
	// at most one chunk before the source runs dry.
	buf := make([]byte, 0, min(n, streamChunk))
	for len(buf) < n && r.err == nil {
		k := min(n-len(buf), streamChunk)
		buf = slices.Grow(buf, k)
		r.readInto(buf[len(buf) : len(buf)+k])
		buf = buf[:len(buf)+k]
	}
	if r.err != nil {
		return nil
	}
	return buf
}

// discard advances past n bytes without materializing them.
func (r *Reader) discard(n int) {
	if r.err != nil || n == 0 {
		return
	}
	if r.mem != nil {
		if _, err := r.mem.Next(n); err != nil {
			r.setError(err)
			return
		}
		r.count += int64(n)
		return
	}
	written, err := io.CopyN(io.Discard, r.r, int64(n))
	r.count += written
	r.setError(err)
}

// checkLength validates a decoded length against the reader's limit and,
// for in-memory input, against the bytes actually left.
func (r *Reader) checkLength(n int64, what string) int {
	if r.err != nil {
		return 0
	}
	if n < 0 || n > int64(r.maxLength) {
		r.setError(fmt.Errorf("%w: %s %d (limit %d)", ErrInvalidLength, what, n, r.maxLength))
		return 0
	}
	if r.mem != nil && n > int64(r.mem.Available()) {
		r.setError(fmt.Errorf("%w: %s %d exceeds %d remaining bytes", ErrBufferUnderrun, what, n, r.mem.Available()))
		return 0
	}
	return int(n)
}

// enter and leave bracket every nested struct, list and map.
func (r *Reader) enter() bool {
	if r.err != nil {
		return false
	}
	if r.depth >= r.maxDepth {
		r.setError(fmt.Errorf("%w: limit %d", ErrDepthExceeded, r.maxDepth))
		return false
	}
	r.depth++
	return true
}

func (r *Reader) leave() { r.depth-- }

// atEOF reports whether the input is exhausted, for sources that can tell.
func (r *Reader) atEOF() bool {
	switch src := r.r.(type) {
	case *Reader:
		return src.atEOF()
	case *BytesReader:
		return src.Available() == 0
	case *bytes.Reader:
		return src.Len() == 0
	case *bytes.Buffer:
		return src.Len() == 0
	case interface{ Peek(int) ([]byte, error) }:
		_, err := src.Peek(1)
		return err != nil
	}
	return false
}

// --- Primitive field readers ---
//
// Each reader takes the wire type from the field's header and fails with
// ErrTypeMismatch if it cannot produce its Go type from it.

// readInteger decodes any integer wire type no wider than width bytes.
func (r *Reader) readInteger(t WireType, width int, want string) int64 {
	if r.err != nil {
		return 0
	}
	if !t.IsInteger() || integerWidth(t) > width {
		r.setError(mismatch(want, t))
		return 0
	}
	switch t {
	case Byte:
		return int64(int8(r.readByte()))
	case Short:
		var b [2]byte
		r.readInto(b[:])
		return int64(int16(Order.Uint16(b[:])))
	case Int:
		var b [4]byte
		r.readInto(b[:])
		return int64(int32(Order.Uint32(b[:])))
	case Long:
		var b [8]byte
		r.readInto(b[:])
		return int64(Order.Uint64(b[:]))
	}
	return 0 // ZeroTag
}

func readInt[T constraints.Integer](r *Reader, t WireType, width int, lo, hi int64, dest *T, want string) {
	v := r.readInteger(t, width, want)
	if r.err != nil {
		return
	}
	if v < lo || v > hi {
		r.setError(fmt.Errorf("%w: %d out of range for %s", ErrTypeMismatch, v, want))
		return
	}
	*dest = T(v)
}

func (r *Reader) ReadInt8(t WireType, dest *int8) {
	readInt(r, t, 1, math.MinInt8, math.MaxInt8, dest, "int8")
}

func (r *Reader) ReadInt16(t WireType, dest *int16) {
	readInt(r, t, 2, math.MinInt16, math.MaxInt16, dest, "int16")
}

func (r *Reader) ReadInt32(t WireType, dest *int32) {
	readInt(r, t, 4, math.MinInt32, math.MaxInt32, dest, "int32")
}

func (r *Reader) ReadInt64(t WireType, dest *int64) {
	readInt(r, t, 8, math.MinInt64, math.MaxInt64, dest, "int64")
}

func (r *Reader) ReadUint8(t WireType, dest *uint8) {
	readInt(r, t, 2, 0, math.MaxUint8, dest, "uint8")
}

func (r *Reader) ReadUint16(t WireType, dest *uint16) {
	readInt(r, t, 4, 0, math.MaxUint16, dest, "uint16")
}

func (r *Reader) ReadUint32(t WireType, dest *uint32) {
	readInt(r, t, 8, 0, math.MaxUint32, dest, "uint32")
}

func (r *Reader) ReadBool(t WireType, dest *bool) {
	var v int8
	readInt(r, t, 1, 0, 1, &v, "bool")
	if r.err == nil {
		*dest = v != 0
	}
}

func (r *Reader) ReadFloat32(t WireType, dest *float32) {
	if r.err != nil {
		return
	}
	switch t {
	case ZeroTag:
		*dest = 0
	case Float:
		var b [4]byte
		r.readInto(b[:])
		if r.err == nil {
			*dest = math.Float32frombits(Order.Uint32(b[:]))
		}
	default:
		r.setError(mismatch("float32", t))
	}
}

func (r *Reader) ReadFloat64(t WireType, dest *float64) {
	if r.err != nil {
		return
	}
	switch t {
	case ZeroTag:
		*dest = 0
	case Float:
		var f float32
		r.ReadFloat32(t, &f)
		if r.err == nil {
			*dest = float64(f)
		}
	case Double:
		var b [8]byte
		r.readInto(b[:])
		if r.err == nil {
			*dest = math.Float64frombits(Order.Uint64(b[:]))
		}
	default:
		r.setError(mismatch("float64", t))
	}
}

// readStringLength reads the length prefix of a String1 or String4 payload.
func (r *Reader) readStringLength(t WireType) int {
	switch t {
	case String1:
		return r.checkLength(int64(r.readByte()), "string length")
	case String4:
		var b [4]byte
		r.readInto(b[:])
		if r.err != nil {
			return 0
		}
		return r.checkLength(int64(int32(Order.Uint32(b[:]))), "string length")
	}
	r.setError(mismatch("string", t))
	return 0
}

func (r *Reader) ReadString(t WireType, dest *string) {
	if r.err != nil {
		return
	}
	b := r.readFull(r.readStringLength(t))
	if r.err == nil {
		*dest = string(b)
	}
}
