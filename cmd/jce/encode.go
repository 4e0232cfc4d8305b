package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/oy3o/jce"
	"github.com/oy3o/jce/internal/input"
)

var encodeCommand = &command{
	name:    "encode",
	args:    "[flags] [file]",
	summary: "encode a JSON value tree (as printed by decode --raw) to JCE",
	run:     runEncode,
}

func runEncode(e *env, args []string) error {
	var asHex bool
	fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	fs.BoolVar(&asHex, "hex", false, "write hexadecimal text instead of raw bytes")
	if done, err := parseFlags(e, fs, args); done || err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	text, err := input.ReadFile(path, input.Options{})
	if err != nil {
		return err
	}
	values, err := parseValueTree(text)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := jce.NewBufferWriter(&buf)
	for _, v := range values {
		w.WriteValue(v)
	}
	if err := w.Err(); err != nil {
		return err
	}
	e.logger.Debug("encoded", "values", len(values), "bytes", buf.Len())

	if asHex {
		_, err = fmt.Fprintln(e.stdout, hex.EncodeToString(buf.Bytes()))
		return err
	}
	_, err = e.stdout.Write(buf.Bytes())
	return err
}

// parseValueTree accepts one value object or an array of them, with
// comments and trailing commas.
func parseValueTree(text []byte) ([]jce.Value, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(text))
	if len(stripped) > 0 && stripped[0] == '[' {
		var values []jce.Value
		if err := json.Unmarshal(stripped, &values); err != nil {
			return nil, fmt.Errorf("parsing value tree: %w", err)
		}
		return values, nil
	}
	var v jce.Value
	if err := json.Unmarshal(stripped, &v); err != nil {
		return nil, fmt.Errorf("parsing value tree: %w", err)
	}
	return []jce.Value{v}, nil
}
