package token

import (
	"fmt"
	"strconv"
)

// A Token is one step in the flattened form of a JSON value.  Containers
// become a pair of delimiter tokens and everything else is a *Scalar, so the
// event
//
//	{"v": "KERI10JSON00012b_", "k": ["DaU6JR2n"]}
//
// flattens to
//
//	StartObject
//	Scalar("v")  key
//	Scalar("KERI10JSON00012b_")
//	Scalar("k")  key
//	StartArray
//	Scalar("DaU6JR2n")
//	EndArray
//	EndObject
type Token interface {
	fmt.Stringer
}

// StartObject opens an object ('{').
type StartObject struct{}

func (*StartObject) String() string { return "StartObject" }

// EndObject closes an object ('}').
type EndObject struct{}

func (*EndObject) String() string { return "EndObject" }

// StartArray opens an array ('[').
type StartArray struct{}

func (*StartArray) String() string { return "StartArray" }

// EndArray closes an array (']').
type EndArray struct{}

func (*EndArray) String() string { return "EndArray" }

var (
	_ Token = &StartObject{}
	_ Token = &EndObject{}
	_ Token = &StartArray{}
	_ Token = &EndArray{}
	_ Token = &Scalar{}
)

// A Scalar is a string, number, boolean or null.  Bytes holds the literal
// exactly as it was read, quotes and escapes included, so numbers keep
// their original spelling.  TypeAndFlags packs the ScalarType in its low
// bits with KeyMask and UnescapedMask above them.
type Scalar struct {
	Bytes        []byte
	TypeAndFlags uint8
}

func NewScalar(tp ScalarType, b []byte) *Scalar {
	return &Scalar{Bytes: b, TypeAndFlags: uint8(tp)}
}

func (s *Scalar) Type() ScalarType {
	return ScalarType(s.TypeAndFlags & TypeMask)
}

// IsKey is true for the name half of an object member.
func (s *Scalar) IsKey() bool {
	return s.TypeAndFlags&KeyMask != 0
}

// IsUnescaped is true for strings whose literal has no backslash, so the
// text between the quotes is the value itself.
func (s *Scalar) IsUnescaped() bool {
	return s.TypeAndFlags&UnescapedMask != 0
}

func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// Unquote returns the Go string a String scalar represents.  It fails with
// ErrNotRepresentable if the literal holds invalid UTF-8 or a lone surrogate
// escape.
func (s *Scalar) Unquote() (string, error) {
	if s.Type() != String {
		return "", fmt.Errorf("not a string: %s", s.Bytes)
	}
	if s.IsUnescaped() {
		return checkUTF8(s.Bytes[1 : len(s.Bytes)-1])
	}
	return Unquote(s.Bytes)
}

// ToGo converts the scalar to a Go value: string, float64, bool or nil.
// Strings that cannot be represented are converted lossily.
func (s *Scalar) ToGo() any {
	switch s.Type() {
	case String:
		v, err := s.Unquote()
		if err != nil {
			return string(s.Bytes[1 : len(s.Bytes)-1])
		}
		return v
	case Number:
		// Out of range literals become ±Inf, NaN and Infinity parse as such
		f, _ := strconv.ParseFloat(string(s.Bytes), 64)
		return f
	case Boolean:
		return s.Bytes[0] == 't'
	default:
		return nil
	}
}

// ScalarType is one of Null, Boolean, Number or String.
type ScalarType uint8

const (
	Null    ScalarType = 0x0
	Boolean ScalarType = 0x1
	Number  ScalarType = 0x2
	String  ScalarType = 0x3
)

const (
	TypeMask      = 0b0011
	KeyMask       = 0b0100
	UnescapedMask = 0b1000
)

// Shared scalars for the JSON literals.  NaN and Infinity are not JSON but
// are accepted as numbers, as Python's json module does.
var (
	TrueScalar     = NewScalar(Boolean, []byte("true"))
	FalseScalar    = NewScalar(Boolean, []byte("false"))
	NullScalar     = NewScalar(Null, []byte("null"))
	NaNScalar      = NewScalar(Number, []byte("NaN"))
	InfinityScalar = NewScalar(Number, []byte("Infinity"))
)
