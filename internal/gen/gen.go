// Package gen generates Go types implementing jce.Struct from schemas.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"

	"github.com/oy3o/jce/schema"
)

// ErrUnsupported indicates a schema that has no valid Go rendering.
var ErrUnsupported = errors.New("gen: unsupported schema")

// DefaultPackage is the package clause used when Options.Package is empty.
const DefaultPackage = "messages"

type Options struct {
	Package string
	// Source is recorded in the generated header, typically the schema path.
	Source string
}

type fileData struct {
	Package string
	Source  string
	Structs []structData
}

type structData struct {
	GoName  string
	Comment string
	Fields  []fieldData
	Vars    []codecVar
}

type fieldData struct {
	Name   string
	GoName string
	GoType string
	Tag    byte
	Codec  string
}

type codecVar struct {
	Name string
	Expr string
}

// Generate returns gofmt-formatted Go source declaring one type per
// schema in reg, with EncodeFields and DecodeField methods.
func Generate(reg *schema.Registry, opts Options) ([]byte, error) {
	if err := reg.Check(); err != nil {
		return nil, err
	}
	data := fileData{Package: opts.Package, Source: opts.Source}
	if data.Package == "" {
		data.Package = DefaultPackage
	}
	if !token.IsIdentifier(data.Package) {
		return nil, fmt.Errorf("%w: package name %q", ErrUnsupported, data.Package)
	}

	schemas := reg.Schemas()
	if err := checkRecursion(reg, schemas); err != nil {
		return nil, err
	}
	types := make(map[string]string, len(schemas))
	for _, s := range schemas {
		name := exportName(s.Name)
		if prev, ok := types[name]; ok {
			return nil, fmt.Errorf("%w: structs %q and %q both map to %s", ErrUnsupported, prev, s.Name, name)
		}
		types[name] = s.Name
	}

	for _, s := range schemas {
		sd, err := buildStruct(s)
		if err != nil {
			return nil, err
		}
		data.Structs = append(data.Structs, sd)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("gen: executing template: %w", err)
	}
	pretty, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: generated invalid Go code: %w", err)
	}
	return pretty, nil
}

func buildStruct(s *schema.Schema) (structData, error) {
	sd := structData{GoName: exportName(s.Name), Comment: s.Comment}
	seen := map[string]string{"EncodeFields": "", "DecodeField": ""}
	for _, f := range s.Fields {
		goName := exportName(f.Name)
		if prev, ok := seen[goName]; ok {
			if prev == "" {
				return sd, fmt.Errorf("%w: %s.%s collides with a method name", ErrUnsupported, s.Name, f.Name)
			}
			return sd, fmt.Errorf("%w: %s fields %q and %q both map to %s", ErrUnsupported, s.Name, prev, f.Name, goName)
		}
		seen[goName] = f.Name

		goType, err := goTypeOf(f.Type)
		if err != nil {
			return sd, fmt.Errorf("%s.%s: %w", s.Name, f.Name, err)
		}
		expr := codecOf(f.Type)
		if f.Optional {
			goType = "*" + goType
			expr = "jce.Optional(" + expr + ")"
		}

		fd := fieldData{Name: f.Name, GoName: goName, GoType: goType, Tag: f.Tag, Codec: expr}
		if strings.Contains(expr, "(") {
			v := codecVar{Name: unexport(sd.GoName) + goName + "Codec", Expr: expr}
			sd.Vars = append(sd.Vars, v)
			fd.Codec = v.Name
		}
		sd.Fields = append(sd.Fields, fd)
	}
	return sd, nil
}

var scalarTypes = map[schema.Kind]struct{ goType, codec string }{
	schema.KindBool:    {"bool", "jce.Bool"},
	schema.KindInt8:    {"int8", "jce.Int8"},
	schema.KindInt16:   {"int16", "jce.Int16"},
	schema.KindInt32:   {"int32", "jce.Int32"},
	schema.KindInt64:   {"int64", "jce.Int64"},
	schema.KindUint8:   {"uint8", "jce.Uint8"},
	schema.KindUint16:  {"uint16", "jce.Uint16"},
	schema.KindUint32:  {"uint32", "jce.Uint32"},
	schema.KindFloat32: {"float32", "jce.Float32"},
	schema.KindFloat64: {"float64", "jce.Float64"},
	schema.KindString:  {"string", "jce.String"},
	schema.KindBytes:   {"[]byte", "jce.Bytes"},
}

func goTypeOf(t *schema.Type) (string, error) {
	switch t.Kind {
	case schema.KindList:
		elem, err := goTypeOf(t.Elem)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case schema.KindMap:
		switch t.Key.Kind {
		case schema.KindBytes, schema.KindList, schema.KindMap, schema.KindStruct:
			return "", fmt.Errorf("%w: map key %s is not comparable", ErrUnsupported, t.Key)
		}
		key, err := goTypeOf(t.Key)
		if err != nil {
			return "", err
		}
		elem, err := goTypeOf(t.Elem)
		if err != nil {
			return "", err
		}
		return "map[" + key + "]" + elem, nil
	case schema.KindStruct:
		return exportName(t.Name), nil
	}
	return scalarTypes[t.Kind].goType, nil
}

func codecOf(t *schema.Type) string {
	switch t.Kind {
	case schema.KindList:
		return "jce.ListOf(" + codecOf(t.Elem) + ")"
	case schema.KindMap:
		return "jce.MapOf(" + codecOf(t.Key) + ", " + codecOf(t.Elem) + ")"
	case schema.KindStruct:
		return "jce.StructOf[" + exportName(t.Name) + "]()"
	}
	return scalarTypes[t.Kind].codec
}

// checkRecursion rejects structs that contain themselves by value. Optional
// fields, lists and maps break a cycle.
func checkRecursion(reg *schema.Registry, schemas []*schema.Schema) error {
	const (
		visiting = 1
		done     = 2
	)
	state := map[string]int{}
	var visit func(s *schema.Schema, path []string) error
	visit = func(s *schema.Schema, path []string) error {
		switch state[s.Name] {
		case visiting:
			return fmt.Errorf("%w: %s contains itself", ErrUnsupported, strings.Join(append(path, s.Name), " -> "))
		case done:
			return nil
		}
		state[s.Name] = visiting
		for _, f := range s.Fields {
			if f.Optional || f.Type.Kind != schema.KindStruct {
				continue
			}
			next, ok := reg.Lookup(f.Type.Name)
			if !ok {
				continue
			}
			if err := visit(next, append(path, s.Name)); err != nil {
				return err
			}
		}
		state[s.Name] = done
		return nil
	}
	for _, s := range schemas {
		if err := visit(s, nil); err != nil {
			return err
		}
	}
	return nil
}

// exportName converts snake_case, kebab-case and dotted names to an
// exported Go identifier.
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == '.' || r == ' ' {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteByte('X')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

func unexport(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by jce gen. DO NOT EDIT.
{{- if .Source}}
// source: {{.Source}}
{{- end}}

package {{.Package}}

import "github.com/oy3o/jce"
{{range .Structs}}
{{if .Comment}}// {{.GoName}}: {{.Comment}}
{{end -}}
type {{.GoName}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}} // {{.Tag}}: {{.Name}}
{{- end}}
}

var _ jce.Struct = (*{{.GoName}})(nil)
{{if .Vars}}
var (
{{- range .Vars}}
	{{.Name}} = {{.Expr}}
{{- end}}
)
{{end}}
func (x *{{.GoName}}) EncodeFields(w *jce.Writer) {
{{- range .Fields}}
	{{.Codec}}.Encode(w, {{.Tag}}, x.{{.GoName}})
{{- end}}
}

func (x *{{.GoName}}) DecodeField(r *jce.Reader, h jce.Head) bool {
{{- if .Fields}}
	switch h.Tag {
{{- range .Fields}}
	case {{.Tag}}:
		{{.Codec}}.Decode(r, h.Type, &x.{{.GoName}})
{{- end}}
	default:
		return false
	}
	return true
{{- else}}
	return false
{{- end}}
}
{{end}}`))
