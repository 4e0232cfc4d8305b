package jce

// ReadBytes decodes a byte slice from a SimpleList payload, or from a List
// whose elements are single bytes. The result never aliases the input.
func (r *Reader) ReadBytes(t WireType, dest *[]byte) {
	if r.err != nil {
		return
	}
	switch t {
	case SimpleList:
		n := r.ReadCount()
		raw := r.readFull(n)
		if r.err != nil {
			return
		}
		var out []byte
		if n > 0 {
			out = make([]byte, n)
			copy(out, raw)
		}
		*dest = out
	case List:
		var out []int8
		ReadList(r, t, Int8, &out)
		if r.err != nil {
			return
		}
		var b []byte
		if len(out) > 0 {
			b = make([]byte, len(out))
			for i, v := range out {
				b[i] = byte(v)
			}
		}
		*dest = b
	default:
		r.setError(mismatch("bytes", t))
	}
}
