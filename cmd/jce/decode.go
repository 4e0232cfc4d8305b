package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var decodeCommand = &command{
	name:    "decode",
	args:    "[flags] [file]",
	summary: "decode JCE input to JSON, YAML or CBOR",
	run:     runDecode,
}

// cborEncMode writes Core Deterministic CBOR, with wire types as text.
var cborEncMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString
	var err error
	if cborEncMode, err = opts.EncMode(); err != nil {
		panic("jce: CBOR encoder initialization failed: " + err.Error())
	}
}

func runDecode(e *env, args []string) error {
	var (
		in     inputFlags
		sf     schemaFlags
		format string
		raw    bool
	)
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	in.register(fs)
	sf.register(fs)
	fs.StringVarP(&format, "format", "f", "json", "output format: json, yaml or cbor")
	fs.BoolVar(&raw, "raw", false, "print the typed value tree that encode accepts")
	if done, err := parseFlags(e, fs, args); done || err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	if raw && sf.path != "" {
		return fmt.Errorf("--raw and --schema are mutually exclusive")
	}

	s, err := sf.load(e)
	if err != nil {
		return err
	}
	data, err := in.read(e, path)
	if err != nil {
		return err
	}
	values, err := in.values(data)
	if err != nil {
		return err
	}
	e.logger.Debug("decoded", "values", len(values))

	var out any
	switch {
	case raw && in.fields:
		out = values
	case raw:
		out = values[0]
	case s != nil:
		if out, err = name(s, values, in.fields); err != nil {
			return err
		}
	case in.fields:
		byTag := make(map[string]any, len(values))
		for _, v := range values {
			byTag[strconv.Itoa(int(v.Tag))] = v.Interface()
		}
		out = byTag
	default:
		out = values[0].Interface()
	}
	return writeFormatted(e.stdout, format, out)
}

func writeFormatted(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "cbor":
		b, err := cborEncMode.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
