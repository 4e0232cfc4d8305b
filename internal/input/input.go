// Package input loads the bytes a jce command operates on: a file or
// stdin, optionally hex encoded and optionally compressed.
package input

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names the container around the JCE bytes.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
	// CompressionAuto detects gzip, zstd and lz4 frames by their magic bytes.
	CompressionAuto
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	case CompressionAuto:
		return "auto"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name as accepted by --inflate.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	case "auto":
		return CompressionAuto, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect identifies the compression of data from its leading bytes.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	}
	return CompressionNone
}

// Options controls how raw input is turned into JCE bytes.
type Options struct {
	// Hex treats the input as hexadecimal text. Whitespace, commas and
	// 0x prefixes are ignored.
	Hex bool
	// Inflate decompresses the input after hex decoding.
	Inflate Compression
	// MaxSize bounds the decompressed size; zero means unlimited.
	MaxSize int64
}

// ReadFile reads path, or stdin when path is "" or "-", and decodes it
// according to opts.
func ReadFile(path string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
		path = "stdin"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Decode applies opts to data already in memory.
func Decode(data []byte, opts Options) ([]byte, error) {
	if opts.Hex {
		var err error
		if data, err = DecodeHex(data); err != nil {
			return nil, err
		}
	}
	c := opts.Inflate
	if c == CompressionAuto {
		c = Detect(data)
	}
	return Inflate(data, c, opts.MaxSize)
}

// DecodeHex decodes hexadecimal text such as "0a 06 03 e5 8d 83 0b" or
// "0x0A,0x0B".
func DecodeHex(text []byte) ([]byte, error) {
	s := strings.ReplaceAll(strings.ReplaceAll(string(text), "0x", ""), "0X", "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, s)
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}
	return out, nil
}

// Inflate decompresses data. maxSize bounds the output; zero means
// unlimited.
func Inflate(data []byte, c Compression, maxSize int64) ([]byte, error) {
	var (
		r   io.Reader
		err error
	)
	src := bytes.NewReader(data)
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var zr *gzip.Reader
		if zr, err = gzip.NewReader(src); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionZstd:
		var zr *zstd.Decoder
		if zr, err = zstd.NewReader(src); err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionLZ4:
		r = lz4.NewReader(src)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}

	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	if maxSize > 0 && int64(len(out)) > maxSize {
		return nil, fmt.Errorf("%s: decompressed input exceeds %d bytes", c, maxSize)
	}
	return out, nil
}
