package jce

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzDecode(f *testing.F) {
	v2 := samplePersonV2()
	for _, s := range []Struct{&v2, &named{Name: "x"}, &empty{}} {
		data, err := Marshal(s)
		require.NoError(f, err)
		f.Add(data)
		fields, err := MarshalFields(s)
		require.NoError(f, err)
		f.Add(fields)
	}
	f.Add([]byte{0x09, 0x01, 0x7F, 0xFF})
	f.Add([]byte{0x0D, 0x00, 0x02, 0xAB})
	f.Add([]byte{0xF0, 0xFF, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		var p personV2
		_ = Unmarshal(data, &p)

		// A stray StructEnd is skippable but has no Value form, so only
		// a successful parse constrains the skipper.
		skipped := NewReaderBytes(data)
		parsed := NewReaderBytes(data)
		for parsed.Err() == nil && !parsed.atEOF() {
			skipped.SkipField()
			parsed.ReadValue(parsed.ReadHead())
			if parsed.Err() == nil {
				require.NoError(t, skipped.Err())
				require.Equal(t, skipped.Count(), parsed.Count())
			}
		}

		values, err := ParseValues(data)
		if err != nil {
			return
		}
		once := encodeValues(t, values)
		again, err := ParseValues(once)
		require.NoError(t, err)
		require.True(t, bytes.Equal(once, encodeValues(t, again)))
	})
}

func encodeValues(t *testing.T, values []Value) []byte {
	var buf bytes.Buffer
	w := NewBufferWriter(&buf)
	for _, v := range values {
		w.WriteValue(v)
	}
	require.NoError(t, w.Err())
	return buf.Bytes()
}
