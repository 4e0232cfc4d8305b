package jce

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Order is the byte order of every multi-byte value on the wire.
var Order = binary.BigEndian

type sink interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// Writer encodes JCE fields onto an io.Writer.
// It tracks the first error that occurs; after an error, all subsequent
// write operations become no-ops.
type Writer struct {
	w     sink
	buf   *bufio.Writer // set when Writer owns the buffering and must flush it
	count int64         // total bytes written
	err   error         // first error encountered
}

// NewWriter creates a Writer on top of w.
// In-memory sinks (*bytes.Buffer, *BytesWriter) and writers that are already
// buffered are written to directly; anything else gets a bufio.Writer that
// is flushed by Flush or Result.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch bw := w.(type) {
	case *Writer:
		// Share the sink of an enclosing writer; the outer one owns the flush.
		return &Writer{w: bw.w}, nil
	case *bytes.Buffer:
		return &Writer{w: bw}, nil
	case *BytesWriter:
		return &Writer{w: bw}, nil
	case *bufio.Writer:
		return &Writer{w: bw}, nil
	}

	b := bufio.NewWriter(w)
	return &Writer{w: b, buf: b}, nil
}

// NewBufferWriter returns a Writer that appends to buf.
func NewBufferWriter(buf *bytes.Buffer) *Writer {
	return &Writer{w: buf}
}

// Write implements the io.Writer interface. Bytes are written verbatim, without a header.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteByte implements the io.ByteWriter interface. The byte is written verbatim.
func (w *Writer) WriteByte(c byte) error {
	if w.err != nil {
		return w.err
	}
	err := w.w.WriteByte(c)
	if err == nil {
		w.count++
	} else {
		w.err = err
	}
	return err
}

func (w *Writer) writeString(s string) {
	if s == "" || w.err != nil {
		return
	}
	n, err := w.w.WriteString(s)
	w.count += int64(n)
	w.setError(err)
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.buf == nil || w.err != nil {
		return w.err
	}
	w.setError(w.buf.Flush())
	return w.err
}

// grow pre-sizes in-memory sinks for n more bytes.
func (w *Writer) grow(n int) {
	if b, ok := w.w.(*bytes.Buffer); ok && n > 0 {
		b.Grow(n)
	}
}

func (w *Writer) putUint16(v uint16) {
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) putUint32(v uint32) {
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) putUint64(v uint64) {
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	_, _ = w.Write(buf[:])
}

// --- Field writers ---
//
// Each writer emits the field header for tag followed by the payload.

// WriteInt64 writes v in the narrowest integer wire type that holds it.
// Zero is written as a bare ZeroTag header.
func (w *Writer) WriteInt64(tag byte, v int64) {
	if w.err != nil {
		return
	}
	switch {
	case v == 0:
		w.WriteHead(Head{ZeroTag, tag}, 0)
	case v >= math.MinInt8 && v <= math.MaxInt8:
		w.WriteHead(Head{Byte, tag}, 1)
		_ = w.WriteByte(byte(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		w.WriteHead(Head{Short, tag}, 2)
		w.putUint16(uint16(v))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		w.WriteHead(Head{Int, tag}, 4)
		w.putUint32(uint32(v))
	default:
		w.WriteHead(Head{Long, tag}, 8)
		w.putUint64(uint64(v))
	}
}

func (w *Writer) WriteInt8(tag byte, v int8)   { w.WriteInt64(tag, int64(v)) }
func (w *Writer) WriteInt16(tag byte, v int16) { w.WriteInt64(tag, int64(v)) }
func (w *Writer) WriteInt32(tag byte, v int32) { w.WriteInt64(tag, int64(v)) }

// Unsigned values travel in the next wider signed type.
func (w *Writer) WriteUint8(tag byte, v uint8)   { w.WriteInt64(tag, int64(v)) }
func (w *Writer) WriteUint16(tag byte, v uint16) { w.WriteInt64(tag, int64(v)) }
func (w *Writer) WriteUint32(tag byte, v uint32) { w.WriteInt64(tag, int64(v)) }

func (w *Writer) WriteBool(tag byte, v bool) {
	if v {
		w.WriteInt64(tag, 1)
	} else {
		w.WriteInt64(tag, 0)
	}
}

// WriteFloat32 writes v as Float; positive zero is written as ZeroTag.
func (w *Writer) WriteFloat32(tag byte, v float32) {
	bits := math.Float32bits(v)
	if bits == 0 {
		w.WriteHead(Head{ZeroTag, tag}, 0)
		return
	}
	w.WriteHead(Head{Float, tag}, 4)
	w.putUint32(bits)
}

// WriteFloat64 writes v as Double; positive zero is written as ZeroTag.
func (w *Writer) WriteFloat64(tag byte, v float64) {
	bits := math.Float64bits(v)
	if bits == 0 {
		w.WriteHead(Head{ZeroTag, tag}, 0)
		return
	}
	w.WriteHead(Head{Double, tag}, 8)
	w.putUint64(bits)
}

// WriteString writes s as String1 when its length fits in a byte, String4 otherwise.
func (w *Writer) WriteString(tag byte, s string) {
	if w.err != nil {
		return
	}
	switch n := len(s); {
	case n <= math.MaxUint8:
		w.WriteHead(Head{String1, tag}, 1+n)
		_ = w.WriteByte(byte(n))
	case n <= math.MaxInt32:
		w.WriteHead(Head{String4, tag}, 4+n)
		w.putUint32(uint32(n))
	default:
		w.setError(fmt.Errorf("%w: string of %d bytes", ErrInvalidLength, n))
		return
	}
	w.writeString(s)
}

// WriteBytes writes b as a SimpleList: header, zero-tagged count, raw bytes.
func (w *Writer) WriteBytes(tag byte, b []byte) {
	if w.err != nil {
		return
	}
	w.WriteHead(Head{SimpleList, tag}, 5+len(b))
	w.writeCount(len(b))
	_, _ = w.Write(b)
}

// writeCount writes the zero-tagged length field that opens every container.
func (w *Writer) writeCount(n int) {
	if n > math.MaxInt32 {
		w.setError(fmt.Errorf("%w: container of %d elements", ErrInvalidLength, n))
		return
	}
	w.WriteInt64(0, int64(n))
}
