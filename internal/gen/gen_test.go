package gen

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/jce/schema"
)

func personSchema(t *testing.T) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("people", "person.yaml"))
	require.NoError(t, err)
	return string(src)
}

func registry(t *testing.T, src string) *schema.Registry {
	t.Helper()
	docs, err := schema.Parse([]byte(src), schema.FormatYAML)
	require.NoError(t, err)
	reg := schema.NewRegistry()
	require.NoError(t, reg.AddDocuments(docs...))
	return reg
}

type parsedFile struct {
	fset  *token.FileSet
	file  *ast.File
	types map[string]*ast.StructType
	vars  map[string]string
	meths map[string][]string
}

func parse(t *testing.T, src []byte) parsedFile {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
	require.NoError(t, err)

	p := parsedFile{fset: fset, file: f, types: map[string]*ast.StructType{}, vars: map[string]string{}, meths: map[string][]string{}}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					p.types[s.Name.Name] = s.Type.(*ast.StructType)
				case *ast.ValueSpec:
					if s.Names[0].Name != "_" {
						p.vars[s.Names[0].Name] = p.expr(t, s.Values[0])
					}
				}
			}
		case *ast.FuncDecl:
			recv := p.expr(t, d.Recv.List[0].Type)
			p.meths[recv] = append(p.meths[recv], d.Name.Name)
		}
	}
	return p
}

func (p parsedFile) expr(t *testing.T, e ast.Expr) string {
	var buf bytes.Buffer
	require.NoError(t, printer.Fprint(&buf, p.fset, e))
	return buf.String()
}

func (p parsedFile) fields(t *testing.T, name string) map[string]string {
	st, ok := p.types[name]
	require.True(t, ok, name)
	out := map[string]string{}
	for _, f := range st.Fields.List {
		out[f.Names[0].Name] = p.expr(t, f.Type)
	}
	return out
}

func TestGenerate(t *testing.T) {
	src, err := Generate(registry(t, personSchema(t)), Options{Package: "wire", Source: "person.yaml"})
	require.NoError(t, err)

	p := parse(t, src)
	assert.True(t, ast.IsGenerated(p.file))
	assert.Equal(t, "wire", p.file.Name.Name)
	assert.Contains(t, string(src), "// source: person.yaml")
	assert.Contains(t, string(src), "// Person: is someone with friends.")

	assert.Equal(t, map[string]string{
		"Name":   "string",
		"Age":    "int32",
		"Email":  "*string",
		"Tags":   "[]string",
		"Scores": "map[string]int64",
		"Avatar": "[]byte",
		"Friend": "*Person",
		"Home":   "HomeAddress",
	}, p.fields(t, "Person"))
	assert.Equal(t, map[string]string{"City": "string"}, p.fields(t, "HomeAddress"))
	assert.Empty(t, p.fields(t, "Empty"))

	assert.Equal(t, map[string]string{
		"personEmailCodec":  "jce.Optional(jce.String)",
		"personTagsCodec":   "jce.ListOf(jce.String)",
		"personScoresCodec": "jce.MapOf(jce.String, jce.Int64)",
		"personFriendCodec": "jce.Optional(jce.StructOf[Person]())",
		"personHomeCodec":   "jce.StructOf[HomeAddress]()",
	}, p.vars)

	for _, recv := range []string{"*Person", "*HomeAddress", "*Empty"} {
		assert.ElementsMatch(t, []string{"EncodeFields", "DecodeField"}, p.meths[recv], recv)
	}
	assert.Contains(t, string(src), "personFriendCodec.Encode(w, 20, x.Friend)")
	assert.Contains(t, string(src), "case 20:")
	assert.Contains(t, string(src), "jce.String.Decode(r, h.Type, &x.Name)")
}

func TestGenerateMatchesPeople(t *testing.T) {
	src, err := Generate(registry(t, personSchema(t)), Options{Package: "people", Source: "person.yaml"})
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("people", "person_jce.go"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(src), "run go generate ./internal/gen/people")
}

func TestGenerateDefaultPackage(t *testing.T) {
	src, err := Generate(registry(t, personSchema(t)), Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPackage, parse(t, src).file.Name.Name)
	assert.NotContains(t, string(src), "// source:")
}

func TestGenerateRejects(t *testing.T) {
	tests := map[string]string{
		"recursive by value": `
metadata: {name: A}
spec: {fields: [{name: b, type: B}]}
---
metadata: {name: B}
spec: {fields: [{name: a, type: A}]}
`,
		"list map key": `
metadata: {name: A}
spec: {fields: [{name: m, type: "map<list<int>,int>"}]}
`,
		"method collision": `
metadata: {name: A}
spec: {fields: [{name: encode_fields, type: int}]}
`,
		"field collision": `
metadata: {name: A}
spec: {fields: [{name: user_id, type: int}, {name: userId, type: int}]}
`,
		"struct collision": `
metadata: {name: a_b}
spec: {fields: []}
---
metadata: {name: AB}
spec: {fields: []}
`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Generate(registry(t, src), Options{})
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}

	_, err := Generate(registry(t, personSchema(t)), Options{Package: "not-a-name"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExportName(t *testing.T) {
	tests := map[string]string{
		"name":        "Name",
		"os_version":  "OsVersion",
		"kebab-case":  "KebabCase",
		"AlreadyGood": "AlreadyGood",
		"2fa":         "X2fa",
		"__":          "X",
	}
	for in, want := range tests {
		assert.Equal(t, want, exportName(in), in)
	}
}
