package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/oy3o/jce"
)

var validateCommand = &command{
	name:    "validate",
	args:    "[flags] [file]",
	summary: "check that JCE input is well formed, optionally against a schema",
	run:     runValidate,
}

func runValidate(e *env, args []string) error {
	var (
		in inputFlags
		sf schemaFlags
	)
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	in.register(fs)
	sf.register(fs)
	if done, err := parseFlags(e, fs, args); done || err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	s, err := sf.load(e)
	if err != nil {
		return err
	}
	data, err := in.read(e, path)
	if err != nil {
		return err
	}

	// Skipping checks framing without materializing anything.
	r := in.reader(data)
	n := 0
	for r.Err() == nil && r.Count() < int64(len(data)) {
		h := r.ReadHead()
		if r.Err() == nil && h.Type == jce.StructEnd {
			return fmt.Errorf("offset %d: %w: unexpected %s outside a struct", r.Count()-int64(h.Len()), jce.ErrTypeMismatch, h)
		}
		r.Skip(h)
		n++
		if !in.fields {
			break
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("offset %d: %w", r.Count(), err)
	}
	if n == 0 && !in.fields {
		return fmt.Errorf("%w: empty input", jce.ErrBufferUnderrun)
	}
	if r.Count() < int64(len(data)) {
		return fmt.Errorf("%w: %d bytes after the value", jce.ErrTrailingData, int64(len(data))-r.Count())
	}

	if s != nil {
		values, err := in.values(data)
		if err != nil {
			return err
		}
		if _, err := name(s, values, in.fields); err != nil {
			return err
		}
	}

	e.logger.Info("valid", "bytes", len(data), "values", n)
	_, err = fmt.Fprintf(e.stdout, "ok: %d bytes, %d top-level values\n", len(data), n)
	return err
}
