package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format selects the syntax of a schema file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSONC
)

// FormatOf picks the format from a file extension: .json and .jsonc are
// JSONC, everything else YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSONC
	}
	return FormatYAML
}

// Parse decodes every struct document in data. YAML input may hold several
// documents separated by "---"; JSONC input is either one document object
// or an array of them.
func Parse(data []byte, format Format) ([]Document, error) {
	if format == FormatJSONC {
		return parseJSONC(data)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) ([]Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var docs []Document
	for {
		var d Document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing schema: %w", err)
		}
		docs = append(docs, d)
	}
}

func parseJSONC(data []byte) ([]Document, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) > 0 && stripped[0] == '[' {
		var docs []Document
		if err := json.Unmarshal(stripped, &docs); err != nil {
			return nil, fmt.Errorf("parsing schema: %w", err)
		}
		return docs, nil
	}
	var d Document
	if err := json.Unmarshal(stripped, &d); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return []Document{d}, nil
}

// ReadFile parses the schema file at path, choosing the format from its
// extension.
func ReadFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	docs, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// LoadFile reads path and registers every struct it describes into a new
// Registry, then checks that all struct references resolve.
func LoadFile(path string) (*Registry, error) {
	docs, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	if err := reg.AddDocuments(docs...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
