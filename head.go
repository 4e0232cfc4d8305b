package jce

import "fmt"

// tagEscape in the high nibble of a header byte means the tag follows in
// the next byte.
const tagEscape = 0x0F

// Head is a field header: the wire type of the payload and the field tag
// that identifies it within its struct.
//
// On the wire a header is one byte, type in the low nibble and tag in the
// high nibble, for tags 0..14. Larger tags set the high nibble to 0xF and
// follow with one byte holding the full tag.
type Head struct {
	Type WireType
	Tag  byte
}

// Len returns the encoded size of the header, 1 or 2 bytes.
func (h Head) Len() int {
	if h.Tag < tagEscape {
		return 1
	}
	return 2
}

// AppendTo appends the encoded header to dst.
func (h Head) AppendTo(dst []byte) []byte {
	if h.Tag < tagEscape {
		return append(dst, byte(h.Type)|h.Tag<<4)
	}
	return append(dst, byte(h.Type)|tagEscape<<4, h.Tag)
}

func (h Head) String() string {
	return fmt.Sprintf("%s@%d", h.Type, h.Tag)
}

// WriteHead writes a field header. extra is the size of the payload that
// will follow and is only used to pre-size in-memory buffers.
func (w *Writer) WriteHead(h Head, extra int) {
	if w.err != nil {
		return
	}
	w.grow(h.Len() + extra)
	if h.Tag < tagEscape {
		_ = w.WriteByte(byte(h.Type) | h.Tag<<4)
		return
	}
	_ = w.WriteByte(byte(h.Type) | tagEscape<<4)
	_ = w.WriteByte(h.Tag)
}

// ReadHead parses a field header.
func (r *Reader) ReadHead() Head {
	f := r.readByte()
	if r.err != nil {
		return Head{}
	}
	h := Head{Type: WireType(f & 0x0F), Tag: f >> 4}
	if h.Tag == tagEscape {
		h.Tag = r.readByte()
	}
	return h
}

// ReadCount parses the zero-tagged integer field that precedes the
// elements of Map, List and SimpleList payloads and returns it as a count.
func (r *Reader) ReadCount() int {
	h := r.ReadHead()
	if r.err != nil {
		return 0
	}
	if h.Tag != 0 {
		r.setError(fmt.Errorf("%w: count field has tag %d, want 0", ErrTypeMismatch, h.Tag))
		return 0
	}
	var n int64
	r.ReadInt64(h.Type, &n)
	return r.checkLength(n, "count")
}
