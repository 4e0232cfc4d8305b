package jce

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var roundTripTags = []byte{0, 14, 15, 255}

// checkRoundTrip encodes v at every representative tag, verifies the
// header it produced and that decoding gives v back.
func checkRoundTrip[T any](t *testing.T, c Codec[T], v T, want WireType) {
	t.Helper()
	for _, tag := range roundTripTags {
		data, err := Encode(c, tag, v)
		require.NoError(t, err)

		got, h, err := Decode(c, data)
		require.NoError(t, err, "tag %d", tag)
		assert.Equal(t, Head{want, tag}, h)
		assert.Equal(t, v, got, "tag %d", tag)
	}
}

type CodecTestSuite struct {
	suite.Suite
}

func (s *CodecTestSuite) TestIntegerWidths() {
	t := s.T()
	checkRoundTrip(t, Int64, 0, ZeroTag)
	checkRoundTrip(t, Int64, 100, Byte)
	checkRoundTrip(t, Int64, -128, Byte)
	checkRoundTrip(t, Int64, 1000, Short)
	checkRoundTrip(t, Int64, math.MinInt16, Short)
	checkRoundTrip(t, Int64, 100000, Int)
	checkRoundTrip(t, Int64, math.MaxInt32, Int)
	checkRoundTrip(t, Int64, 1<<40, Long)
	checkRoundTrip(t, Int64, math.MinInt64, Long)

	checkRoundTrip(t, Int8, int8(-3), Byte)
	checkRoundTrip(t, Int16, int16(300), Short)
	checkRoundTrip(t, Int32, int32(-70000), Int)
	checkRoundTrip(t, Uint8, uint8(200), Short)
	checkRoundTrip(t, Uint16, uint16(60000), Int)
	checkRoundTrip(t, Uint32, uint32(math.MaxUint32), Long)
	checkRoundTrip(t, Bool, true, Byte)
	checkRoundTrip(t, Bool, false, ZeroTag)
}

func (s *CodecTestSuite) TestFloats() {
	t := s.T()
	checkRoundTrip(t, Float32, float32(1.5), Float)
	checkRoundTrip(t, Float32, float32(0), ZeroTag)
	checkRoundTrip(t, Float64, 2.25, Double)
	checkRoundTrip(t, Float64, math.Copysign(0, -1), Double)
	checkRoundTrip(t, Float64, math.Inf(-1), Double)

	// A Float field widens into a float64 destination.
	data, err := Encode(Float32, 0, float32(0.75))
	s.Require().NoError(err)
	v, _, err := Decode(Float64, data)
	s.Require().NoError(err)
	s.Assert().Equal(0.75, v)
}

func (s *CodecTestSuite) TestDoubleVector() {
	data, err := Encode(Float64, 0, 114.5141919810)
	s.Require().NoError(err)
	s.Assert().Equal([]byte{5, 64, 92, 160, 232, 133, 123, 144, 171}, data)

	r := NewReaderBytes(data[1:])
	var f float64
	r.ReadFloat64(Double, &f)
	s.Require().NoError(r.Err())
	s.Assert().Equal(114.5141919810, f)
}

func (s *CodecTestSuite) TestByteVector() {
	data, err := Encode(Int8, 0, int8(114))
	s.Require().NoError(err)
	s.Assert().Equal([]byte{0, 114}, data)
}

func (s *CodecTestSuite) TestStrings() {
	t := s.T()
	checkRoundTrip(t, String, "", String1)
	checkRoundTrip(t, String, "千", String1)
	checkRoundTrip(t, String, strings.Repeat("x", 255), String1)
	checkRoundTrip(t, String, strings.Repeat("y", 256), String4)

	data, err := Encode(String, 0, "千")
	s.Require().NoError(err)
	s.Assert().Equal([]byte{6, 3, 229, 141, 131}, data)
}

func (s *CodecTestSuite) TestContainers() {
	t := s.T()
	checkRoundTrip(t, ListOf(Int32), []int32{1, -2, 300000}, List)
	checkRoundTrip(t, ListOf(ListOf(String)), [][]string{{"a"}, {"b", "c"}}, List)
	checkRoundTrip(t, MapOf(String, Float64), map[string]float64{"pi": 3.14, "e": 2.71}, Map)
	checkRoundTrip(t, MapOf(Int64, MapOf(String, Bool)), map[int64]map[string]bool{7: {"ok": true}}, Map)
	checkRoundTrip(t, Bytes, []byte{1, 2, 3}, SimpleList)
	checkRoundTrip(t, StructOf[named](), named{Name: "inner"}, StructBegin)
	checkRoundTrip(t, StructOf[person](), samplePerson(), StructBegin)
	checkRoundTrip(t, ListOf(StructOf[named]()), []named{{"a"}, {"b"}}, List)
}

func (s *CodecTestSuite) TestEmptyContainersDecodeAsNil() {
	var nilInts []int32
	checkRoundTrip(s.T(), ListOf(Int32), nilInts, List)

	data, err := Encode(ListOf(Int32), 0, []int32{})
	s.Require().NoError(err)
	s.Assert().Equal([]byte{0x09, 0x0C}, data)
	got, _, err := Decode(ListOf(Int32), data)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *CodecTestSuite) TestOptional() {
	c := Optional(Int32)

	data, err := Encode(c, 3, nil)
	s.Require().NoError(err)
	s.Assert().Empty(data)

	v := int32(42)
	checkRoundTrip(s.T(), c, &v, Byte)
}

func (s *CodecTestSuite) TestTypeMismatch() {
	cases := []struct {
		name   string
		decode func(r *Reader)
		t      WireType
	}{
		{"DoubleFromString", func(r *Reader) { var v float64; r.ReadFloat64(String1, &v) }, String1},
		{"Int32FromLong", func(r *Reader) { var v int32; r.ReadInt32(Long, &v) }, Long},
		{"Int8FromShort", func(r *Reader) { var v int8; r.ReadInt8(Short, &v) }, Short},
		{"Float32FromDouble", func(r *Reader) { var v float32; r.ReadFloat32(Double, &v) }, Double},
		{"StringFromInt", func(r *Reader) { var v string; r.ReadString(Int, &v) }, Int},
		{"ListFromMap", func(r *Reader) { var v []int32; ReadList(r, Map, Int32, &v) }, Map},
		{"MapFromList", func(r *Reader) { var v map[int32]int32; ReadMap(r, List, Int32, Int32, &v) }, List},
		{"StructFromList", func(r *Reader) { r.ReadStruct(List, &named{}) }, List},
		{"BytesFromString", func(r *Reader) { var v []byte; r.ReadBytes(String1, &v) }, String1},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			r := NewReaderBytes(make([]byte, 16))
			c.decode(r)
			s.Assert().ErrorIs(r.Err(), ErrTypeMismatch)
			s.Assert().Contains(r.Err().Error(), c.t.String())
		})
	}
}

func (s *CodecTestSuite) TestUnsignedRange() {
	// 300 arrives as a Short, which a uint8 accepts by width but not by value.
	data, err := Encode(Int16, 0, int16(300))
	s.Require().NoError(err)
	_, _, err = Decode(Uint8, data)
	s.Assert().ErrorIs(err, ErrTypeMismatch)

	data, err = Encode(Int8, 0, int8(-1))
	s.Require().NoError(err)
	_, _, err = Decode(Uint32, data)
	s.Assert().ErrorIs(err, ErrTypeMismatch)
}

func (s *CodecTestSuite) TestBytesFromByteList() {
	data, err := Encode(ListOf(Int8), 4, []int8{1, 0, -1})
	s.Require().NoError(err)
	got, h, err := Decode(Bytes, data)
	s.Require().NoError(err)
	s.Assert().Equal(Head{List, 4}, h)
	s.Assert().Equal([]byte{1, 0, 0xFF}, got)
}

func (s *CodecTestSuite) TestDecodeDoesNotAliasInput() {
	data, err := Encode(Bytes, 0, []byte{9, 9})
	s.Require().NoError(err)
	got, _, err := Decode(Bytes, data)
	s.Require().NoError(err)
	data[len(data)-1] = 0
	s.Assert().Equal([]byte{9, 9}, got)
}

func (s *CodecTestSuite) TestDestinationUntouchedOnError() {
	v := int32(5)
	r := NewReaderBytes([]byte{0x01})
	r.ReadInt32(Int, &v)
	s.Assert().ErrorIs(r.Err(), ErrBufferUnderrun)
	s.Assert().Equal(int32(5), v)
}

func TestCodec(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}
