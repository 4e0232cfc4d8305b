package schema

import (
	"fmt"
	"strings"
)

// Kind classifies a field type.
type Kind int

const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindList
	KindMap
	KindStruct
)

var scalarKinds = map[string]Kind{
	"bool":    KindBool,
	"int8":    KindInt8,
	"byte":    KindInt8,
	"int16":   KindInt16,
	"short":   KindInt16,
	"int32":   KindInt32,
	"int":     KindInt32,
	"int64":   KindInt64,
	"long":    KindInt64,
	"uint8":   KindUint8,
	"uint16":  KindUint16,
	"uint32":  KindUint32,
	"float32": KindFloat32,
	"float":   KindFloat32,
	"float64": KindFloat64,
	"double":  KindFloat64,
	"string":  KindString,
	"bytes":   KindBytes,
}

var kindNames = [...]string{
	KindBool:    "bool",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindBytes:   "bytes",
	KindList:    "list",
	KindMap:     "map",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsInteger reports whether values of k travel as integer wire types.
func (k Kind) IsInteger() bool {
	return k >= KindBool && k <= KindUint32
}

// Type is a parsed field type: a scalar, list<Elem>, map<Key,Elem> or a
// reference to another struct by Name.
type Type struct {
	Kind Kind
	Key  *Type
	Elem *Type
	Name string
}

// ParseType parses the type grammar used in schema documents:
//
//	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32
//	float32 | float64 | string | bytes
//	list<T> | map<K,V> | StructName
//
// byte, short, int, long, float and double are accepted as aliases.
func ParseType(s string) (*Type, error) {
	p := typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.skipSpace(); p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q", s, p.src[p.pos:])
	}
	return t, nil
}

func (t *Type) String() string {
	switch t.Kind {
	case KindList:
		return "list<" + t.Elem.String() + ">"
	case KindMap:
		return "map<" + t.Key.String() + "," + t.Elem.String() + ">"
	case KindStruct:
		return t.Name
	}
	return t.Kind.String()
}

// Refs appends the names of every struct t refers to.
func (t *Type) Refs(dst []string) []string {
	switch t.Kind {
	case KindStruct:
		return append(dst, t.Name)
	case KindList:
		return t.Elem.Refs(dst)
	case KindMap:
		return t.Elem.Refs(t.Key.Refs(dst))
	}
	return dst
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("type %q: expected %q at offset %d", p.src, c, p.pos)
	}
	p.pos++
	return nil
}

func (p *typeParser) parse() (*Type, error) {
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("type %q: expected a type name at offset %d", p.src, p.pos)
	}
	if k, ok := scalarKinds[strings.ToLower(name)]; ok {
		return &Type{Kind: k}, nil
	}

	switch strings.ToLower(name) {
	case "list", "vector":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return &Type{Kind: KindList, Elem: elem}, nil
	case "map":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return &Type{Kind: KindMap, Key: key, Elem: elem}, nil
	}
	return &Type{Kind: KindStruct, Name: name}, nil
}
