package jce

// Codec is the single encode/decode capability shared by every value type,
// leaf or composite. Composite codecs are built from the codecs of their
// elements, so a struct's field code treats every field the same way.
type Codec[T any] interface {
	// Encode appends a field header carrying tag, then the payload of v.
	Encode(w *Writer, tag byte, v T)
	// Decode reads the payload of a field whose header declared wire type t.
	// It fails with ErrTypeMismatch if t cannot produce a T. On error dest
	// is left untouched.
	Decode(r *Reader, t WireType, dest *T)
}

// Struct is implemented by application types that serialize their own fields.
type Struct interface {
	// EncodeFields writes every field, each with its own header and tag.
	EncodeFields(w *Writer)
	// DecodeField decodes the field described by h into the receiver.
	// It returns false when the tag is unknown to the schema; the field is
	// then skipped by the caller.
	DecodeField(r *Reader, h Head) bool
}

type (
	boolCodec    struct{}
	int8Codec    struct{}
	int16Codec   struct{}
	int32Codec   struct{}
	int64Codec   struct{}
	uint8Codec   struct{}
	uint16Codec  struct{}
	uint32Codec  struct{}
	float32Codec struct{}
	float64Codec struct{}
	stringCodec  struct{}
	bytesCodec   struct{}
)

// Leaf codecs.
var (
	Bool    Codec[bool]    = boolCodec{}
	Int8    Codec[int8]    = int8Codec{}
	Int16   Codec[int16]   = int16Codec{}
	Int32   Codec[int32]   = int32Codec{}
	Int64   Codec[int64]   = int64Codec{}
	Uint8   Codec[uint8]   = uint8Codec{}
	Uint16  Codec[uint16]  = uint16Codec{}
	Uint32  Codec[uint32]  = uint32Codec{}
	Float32 Codec[float32] = float32Codec{}
	Float64 Codec[float64] = float64Codec{}
	String  Codec[string]  = stringCodec{}
	Bytes   Codec[[]byte]  = bytesCodec{}
)

func (boolCodec) Encode(w *Writer, tag byte, v bool)       { w.WriteBool(tag, v) }
func (boolCodec) Decode(r *Reader, t WireType, dest *bool) { r.ReadBool(t, dest) }

func (int8Codec) Encode(w *Writer, tag byte, v int8)       { w.WriteInt8(tag, v) }
func (int8Codec) Decode(r *Reader, t WireType, dest *int8) { r.ReadInt8(t, dest) }

func (int16Codec) Encode(w *Writer, tag byte, v int16)       { w.WriteInt16(tag, v) }
func (int16Codec) Decode(r *Reader, t WireType, dest *int16) { r.ReadInt16(t, dest) }

func (int32Codec) Encode(w *Writer, tag byte, v int32)       { w.WriteInt32(tag, v) }
func (int32Codec) Decode(r *Reader, t WireType, dest *int32) { r.ReadInt32(t, dest) }

func (int64Codec) Encode(w *Writer, tag byte, v int64)       { w.WriteInt64(tag, v) }
func (int64Codec) Decode(r *Reader, t WireType, dest *int64) { r.ReadInt64(t, dest) }

func (uint8Codec) Encode(w *Writer, tag byte, v uint8)       { w.WriteUint8(tag, v) }
func (uint8Codec) Decode(r *Reader, t WireType, dest *uint8) { r.ReadUint8(t, dest) }

func (uint16Codec) Encode(w *Writer, tag byte, v uint16)       { w.WriteUint16(tag, v) }
func (uint16Codec) Decode(r *Reader, t WireType, dest *uint16) { r.ReadUint16(t, dest) }

func (uint32Codec) Encode(w *Writer, tag byte, v uint32)       { w.WriteUint32(tag, v) }
func (uint32Codec) Decode(r *Reader, t WireType, dest *uint32) { r.ReadUint32(t, dest) }

func (float32Codec) Encode(w *Writer, tag byte, v float32)       { w.WriteFloat32(tag, v) }
func (float32Codec) Decode(r *Reader, t WireType, dest *float32) { r.ReadFloat32(t, dest) }

func (float64Codec) Encode(w *Writer, tag byte, v float64)       { w.WriteFloat64(tag, v) }
func (float64Codec) Decode(r *Reader, t WireType, dest *float64) { r.ReadFloat64(t, dest) }

func (stringCodec) Encode(w *Writer, tag byte, v string)       { w.WriteString(tag, v) }
func (stringCodec) Decode(r *Reader, t WireType, dest *string) { r.ReadString(t, dest) }

func (bytesCodec) Encode(w *Writer, tag byte, v []byte)       { w.WriteBytes(tag, v) }
func (bytesCodec) Decode(r *Reader, t WireType, dest *[]byte) { r.ReadBytes(t, dest) }

type optionalCodec[T any] struct{ elem Codec[T] }

// Optional wraps c for pointer fields: a nil pointer writes nothing at all,
// and decoding allocates a fresh value.
func Optional[T any](c Codec[T]) Codec[*T] {
	return optionalCodec[T]{elem: c}
}

func (c optionalCodec[T]) Encode(w *Writer, tag byte, v *T) {
	if v != nil {
		c.elem.Encode(w, tag, *v)
	}
}

func (c optionalCodec[T]) Decode(r *Reader, t WireType, dest **T) {
	v := new(T)
	c.elem.Decode(r, t, v)
	if r.err == nil {
		*dest = v
	}
}
