package jce

import "fmt"

// WireType is the 4-bit code in every field header that says how the
// payload is laid out.
type WireType byte

const (
	Byte        WireType = 0  // 1 byte
	Short       WireType = 1  // 2 bytes, big endian
	Int         WireType = 2  // 4 bytes, big endian
	Long        WireType = 3  // 8 bytes, big endian
	Float       WireType = 4  // IEEE-754 binary32
	Double      WireType = 5  // IEEE-754 binary64
	String1     WireType = 6  // 1-byte length + bytes
	String4     WireType = 7  // 4-byte signed length + bytes
	Map         WireType = 8  // count field + key/value pairs
	List        WireType = 9  // count field + elements
	StructBegin WireType = 10 // fields until StructEnd
	StructEnd   WireType = 11 // no payload
	ZeroTag     WireType = 12 // no payload, numeric zero
	SimpleList  WireType = 13 // count field + raw bytes

	maxWireType = SimpleList
)

var wireTypeNames = [...]string{
	Byte:        "Byte",
	Short:       "Short",
	Int:         "Int",
	Long:        "Long",
	Float:       "Float",
	Double:      "Double",
	String1:     "String1",
	String4:     "String4",
	Map:         "Map",
	List:        "List",
	StructBegin: "StructBegin",
	StructEnd:   "StructEnd",
	ZeroTag:     "ZeroTag",
	SimpleList:  "SimpleList",
}

// Valid reports whether t is one of the fourteen defined wire types.
func (t WireType) Valid() bool { return t <= maxWireType }

// IsInteger reports whether t can carry an integer value.
func (t WireType) IsInteger() bool {
	switch t {
	case Byte, Short, Int, Long, ZeroTag:
		return true
	}
	return false
}

func (t WireType) String() string {
	if t.Valid() {
		return wireTypeNames[t]
	}
	return fmt.Sprintf("Unknown(%d)", byte(t))
}

// ParseWireType returns the wire type with the given name, as printed by String.
func ParseWireType(name string) (WireType, error) {
	for i, n := range wireTypeNames {
		if n == name {
			return WireType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown wire type name %q", ErrTypeMismatch, name)
}

// integerWidth returns the payload size of the integer wire types.
func integerWidth(t WireType) int {
	switch t {
	case Byte:
		return 1
	case Short:
		return 2
	case Int:
		return 4
	case Long:
		return 8
	}
	return 0
}
