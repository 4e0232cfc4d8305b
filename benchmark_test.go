package jce

import (
	"testing"
)

func BenchmarkMarshal(b *testing.B) {
	p := samplePersonV2()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Marshal(&p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshalTo(b *testing.B) {
	p := samplePersonV2()
	buf := make([]byte, 4096)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := MarshalTo(buf, &p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	p := samplePersonV2()
	data, err := Marshal(&p)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		var got personV2
		if err := Unmarshal(data, &got); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSkip(b *testing.B) {
	p := samplePersonV2()
	data, err := Marshal(&p)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		r := NewReaderBytes(data)
		r.SkipField()
		if r.Err() != nil {
			b.Fatal(r.Err())
		}
	}
}

func BenchmarkParseValues(b *testing.B) {
	p := samplePersonV2()
	data, err := Marshal(&p)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := ParseValues(data); err != nil {
			b.Fatal(err)
		}
	}
}
