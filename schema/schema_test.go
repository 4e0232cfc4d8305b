package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int32"},
		{"LONG", "int64"},
		{"double", "float64"},
		{"list<byte>", "list<int8>"},
		{"vector<string>", "list<string>"},
		{"map<string, list<map<int,Person>>>", "map<string,list<map<int32,Person>>>"},
		{" Person ", "Person"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseType(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	for _, bad := range []string{"", "list", "list<int", "map<int>", "map<,int>", "int>", "list<int>x"} {
		_, err := ParseType(bad)
		assert.Error(t, err, bad)
	}
}

func TestTypeRefs(t *testing.T) {
	typ, err := ParseType("map<Key, list<Value>>")
	require.NoError(t, err)
	assert.Equal(t, []string{"Key", "Value"}, typ.Refs(nil))
}

func uint8p(v uint8) *uint8 { return &v }

func TestCompileAssignsTags(t *testing.T) {
	d := Document{
		Metadata: Metadata{Name: "T"},
		Spec: Spec{StartTag: 3, Fields: []FieldEntry{
			{Name: "a", Type: "int"},
			{Name: "b", Type: "string"},
			{Name: "c", Type: "bool", Tag: uint8p(10)},
			{Name: "d", Type: "bytes"},
			{Name: "e", Type: "long", Tag: uint8p(1)},
		}},
	}
	s, err := d.Compile()
	require.NoError(t, err)

	tags := map[string]byte{}
	for _, f := range s.Fields {
		tags[f.Name] = f.Tag
	}
	assert.Equal(t, map[string]byte{"a": 3, "b": 4, "c": 10, "d": 11, "e": 1}, tags)

	f, ok := s.Field(11)
	require.True(t, ok)
	assert.Equal(t, "d", f.Name)
	_, ok = s.Field(5)
	assert.False(t, ok)
}

func TestCompileRejects(t *testing.T) {
	tests := map[string]Document{
		"no name":       {},
		"unnamed field": {Metadata: Metadata{Name: "T"}, Spec: Spec{Fields: []FieldEntry{{Type: "int"}}}},
		"duplicate name": {Metadata: Metadata{Name: "T"}, Spec: Spec{Fields: []FieldEntry{
			{Name: "a", Type: "int"}, {Name: "a", Type: "int"},
		}}},
		"duplicate tag": {Metadata: Metadata{Name: "T"}, Spec: Spec{Fields: []FieldEntry{
			{Name: "a", Type: "int"}, {Name: "b", Type: "int", Tag: uint8p(0)},
		}}},
		"tag overflow": {Metadata: Metadata{Name: "T"}, Spec: Spec{StartTag: 255, Fields: []FieldEntry{
			{Name: "a", Type: "int"}, {Name: "b", Type: "int"},
		}}},
		"bad type": {Metadata: Metadata{Name: "T"}, Spec: Spec{Fields: []FieldEntry{{Name: "a", Type: "map<int"}}}},
	}
	for name, d := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := d.Compile()
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	reg, err := LoadFile("testdata/person.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"Address", "Person"}, reg.Names())

	p, ok := reg.Lookup("Person")
	require.True(t, ok)
	assert.Equal(t, "A person and their contacts.", p.Comment)
	require.Len(t, p.Fields, 9)
	friend := p.Fields[8]
	assert.Equal(t, byte(20), friend.Tag)
	assert.True(t, friend.Optional)
	assert.Equal(t, KindStruct, friend.Type.Kind)

	a, ok := reg.Lookup("Address")
	require.True(t, ok)
	assert.Equal(t, byte(1), a.Fields[0].Tag)
	assert.Equal(t, "map<int32,list<Person>>", a.Fields[1].Type.String())
}

func TestLoadJSONC(t *testing.T) {
	reg, err := LoadFile("testdata/login.jsonc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Device", "LoginRequest"}, reg.Names())

	req, _ := reg.Lookup("LoginRequest")
	var tags []byte
	for _, f := range req.Fields {
		tags = append(tags, f.Tag)
	}
	assert.Equal(t, []byte{1, 2, 6, 7}, tags)
}

func TestParseSingleJSONC(t *testing.T) {
	docs, err := Parse([]byte(`{"metadata": {"name": "X"}, "spec": {"fields": [],}} // one`), FormatJSONC)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "X", docs[0].Metadata.Name)
}

func TestParseYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("metadata: {name: X}\nspec: {feilds: []}\n"), FormatYAML)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSONC, FormatOf("a/b.JSONC"))
	assert.Equal(t, FormatJSONC, FormatOf("b.json"))
	assert.Equal(t, FormatYAML, FormatOf("b.yml"))
	assert.Equal(t, FormatYAML, FormatOf("b"))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddDocuments(Document{
		Metadata: Metadata{Name: "A"},
		Spec:     Spec{Fields: []FieldEntry{{Name: "b", Type: "list<B>"}}},
	})
	assert.ErrorIs(t, err, ErrUnknownStruct)

	require.NoError(t, reg.AddDocuments(Document{Metadata: Metadata{Name: "B"}}))
	assert.NoError(t, reg.Check())

	dup, err := (&Document{Metadata: Metadata{Name: "B"}}).Compile()
	require.NoError(t, err)
	assert.ErrorIs(t, reg.Add(dup), ErrInvalidSchema)
}
