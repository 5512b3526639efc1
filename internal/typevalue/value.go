package typevalue

import (
	"fmt"
	"math/big"
)

// StringFormat distinguishes how a recovered string's bytes should be
// interpreted for display.
type StringFormat int

const (
	Ascii StringFormat = iota
	Utf8
)

// ValueKind tags the alternative a Value currently holds.
type ValueKind int

const (
	VUnit ValueKind = iota
	VObject
	VBool
	VChar
	VInt
	VUint
	VFloat
	VAddress
	VString
	VArray
	VEnumeration
	VTypedef
)

// Value is the decoded payload of a tree node, once a read has
// succeeded. Int/Uint use math/big.Int since DWARF base types can be up
// to 128 bits wide and Go has no native integer that size; see
// DESIGN.md for why no corpus library covers this instead.
type Value struct {
	Kind ValueKind

	Bool    bool
	Char    rune
	Int     *big.Int
	Uint    *big.Int
	Float   float64
	Address uint64

	StringBytes  []byte
	StringFormat StringFormat
}

func Unit() Value                { return Value{Kind: VUnit} }
func Object() Value              { return Value{Kind: VObject} }
func Bool(b bool) Value          { return Value{Kind: VBool, Bool: b} }
func Char(c rune) Value          { return Value{Kind: VChar, Char: c} }
func Int(v *big.Int) Value       { return Value{Kind: VInt, Int: v} }
func Uint(v *big.Int) Value      { return Value{Kind: VUint, Uint: v} }
func Float(f float64) Value      { return Value{Kind: VFloat, Float: f} }
func Address(a uint64) Value     { return Value{Kind: VAddress, Address: a} }
func Array() Value                { return Value{Kind: VArray} }
func Enumeration() Value          { return Value{Kind: VEnumeration} }
func Typedef() Value              { return Value{Kind: VTypedef} }

func String(b []byte, format StringFormat) Value {
	return Value{Kind: VString, StringBytes: b, StringFormat: format}
}

// IntFromInt64 is a convenience constructor for small signed integers,
// used throughout the type builder (enumerator constants, discriminant
// values) where a plain int64 is all that's ever produced.
func IntFromInt64(v int64) Value {
	return Int(big.NewInt(v))
}

func (v Value) String() string {
	switch v.Kind {
	case VUnit:
		return "()"
	case VObject:
		return "{...}"
	case VBool:
		return fmt.Sprintf("%t", v.Bool)
	case VChar:
		return fmt.Sprintf("%q", v.Char)
	case VInt:
		return v.Int.String()
	case VUint:
		return v.Uint.String()
	case VFloat:
		return fmt.Sprintf("%g", v.Float)
	case VAddress:
		return fmt.Sprintf("%#x", v.Address)
	case VString:
		return fmt.Sprintf("%q", v.StringBytes)
	case VArray:
		return "[...]"
	case VEnumeration:
		return "enum{...}"
	case VTypedef:
		return "typedef{...}"
	default:
		return "?"
	}
}
