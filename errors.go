package jce

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("jce: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrBufferUnderrun indicates the input ended before a value was complete.
	// Errors carrying it also match io.ErrUnexpectedEOF.
	ErrBufferUnderrun = errors.New("jce: buffer underrun")

	// ErrTypeMismatch indicates a decoder received a wire type it does not accept,
	// a count field with a non-zero tag, or a wire type outside the closed set.
	ErrTypeMismatch = errors.New("jce: type mismatch")

	// ErrMissingTerminator indicates a struct ended without its StructEnd header.
	ErrMissingTerminator = errors.New("jce: missing struct terminator")

	// ErrInvalidLength indicates a negative or implausibly large length or count.
	ErrInvalidLength = errors.New("jce: invalid length")

	// ErrDepthExceeded indicates nesting deeper than the reader's limit.
	ErrDepthExceeded = errors.New("jce: nesting depth exceeded")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the decoded value.
	ErrTrailingData = errors.New("jce: trailing data found after decoding")
)

// underrun converts an end-of-input condition into ErrBufferUnderrun, keeping
// io.ErrUnexpectedEOF in the chain for callers that test for it.
func underrun(err error, offset int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w at offset %d: %w", ErrBufferUnderrun, offset, io.ErrUnexpectedEOF)
	}
	return err
}

func mismatch(want string, got WireType) error {
	return fmt.Errorf("%w: cannot decode %s from %s", ErrTypeMismatch, want, got)
}
