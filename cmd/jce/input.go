package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/oy3o/jce"
	"github.com/oy3o/jce/internal/input"
	"github.com/oy3o/jce/schema"
)

// inputFlags are shared by the commands that read JCE bytes.
type inputFlags struct {
	hex       bool
	inflate   string
	maxSize   int64
	maxDepth  int
	maxLength int
	fields    bool
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.hex, "hex", false, "input is hexadecimal text")
	fs.StringVar(&f.inflate, "inflate", "none", "decompress input: none, gzip, zstd, lz4 or auto")
	fs.Int64Var(&f.maxSize, "max-size", 1<<30, "largest decompressed input in bytes")
	fs.IntVar(&f.maxDepth, "max-depth", jce.DefaultMaxDepth, "deepest nesting of structs, lists and maps")
	fs.IntVar(&f.maxLength, "max-length", jce.DefaultMaxLength, "longest string or container")
	fs.BoolVar(&f.fields, "fields", false, "input is an unframed field sequence rather than one value")
}

func (f *inputFlags) read(e *env, path string) ([]byte, error) {
	c, err := input.ParseCompression(f.inflate)
	if err != nil {
		return nil, err
	}
	data, err := input.ReadFile(path, input.Options{Hex: f.hex, Inflate: c, MaxSize: f.maxSize})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("read input", "path", path, "bytes", len(data), "hex", f.hex, "inflate", c)
	return data, nil
}

func (f *inputFlags) reader(data []byte) *jce.Reader {
	return jce.NewReaderBytes(data).WithMaxDepth(f.maxDepth).WithMaxLength(f.maxLength)
}

// values decodes data into top-level values. Framed input must hold
// exactly one value.
func (f *inputFlags) values(data []byte) ([]jce.Value, error) {
	r := f.reader(data)
	var out []jce.Value
	for r.Err() == nil && r.Count() < int64(len(data)) {
		out = append(out, r.ReadValue(r.ReadHead()))
		if !f.fields {
			break
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("offset %d: %w", r.Count(), err)
	}
	if !f.fields {
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: empty input", jce.ErrBufferUnderrun)
		}
		if r.Count() < int64(len(data)) {
			return nil, fmt.Errorf("%w: %d bytes after the value (use --fields for unframed input)",
				jce.ErrTrailingData, int64(len(data))-r.Count())
		}
	}
	return out, nil
}

// schemaFlags select a struct schema for decode and validate.
type schemaFlags struct {
	path     string
	typeName string
}

func (f *schemaFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.path, "schema", "", "schema file (YAML, or JSON with comments)")
	fs.StringVar(&f.typeName, "type", "", "struct in --schema describing the input")
}

// load returns nil when no schema was requested.
func (f *schemaFlags) load(e *env) (*schema.Schema, error) {
	if f.path == "" {
		if f.typeName != "" {
			return nil, errors.New("--type requires --schema")
		}
		return nil, nil
	}
	reg, err := schema.LoadFile(f.path)
	if err != nil {
		return nil, err
	}
	names := reg.Names()
	if f.typeName == "" && len(names) == 1 {
		f.typeName = names[0]
	}
	s, ok := reg.Lookup(f.typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %s (have %v)", schema.ErrUnknownStruct, f.typeName, f.path, names)
	}
	e.logger.Debug("loaded schema", "path", f.path, "structs", len(names), "type", s.Name)
	return s, nil
}

// name applies s to decoded values.
func name(s *schema.Schema, values []jce.Value, fields bool) (map[string]any, error) {
	if fields {
		return s.NameFields(values)
	}
	return s.Named(values[0])
}
