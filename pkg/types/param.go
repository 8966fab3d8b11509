// Package types defines the ABI codec's schema and value model: the
// tagged-variant Parameter/Value hierarchy, Function and FunctionCall
// descriptions, and the account snapshot consumed by the get-method
// runner.
package types

import (
	"fmt"
	"strings"
)

// ParamKind tags the variant of a Parameter. Dispatch on Kind replaces
// the source's virtual serialize/deserialize methods — no vtable is
// needed, just a switch in the per-type codec.
type ParamKind int

const (
	KindUint ParamKind = iota
	KindInt
	KindBool
	KindTuple
	KindArray
	KindFixedArray
	KindCell
	KindMap
	KindAddress
	KindBytes
	KindFixedBytes
	KindGram
	KindTime
	KindExpire
	KindPublicKey
)

func (k ParamKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindFixedArray:
		return "fixedarray"
	case KindCell:
		return "cell"
	case KindMap:
		return "map"
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return "fixedbytes"
	case KindGram:
		return "gram"
	case KindTime:
		return "time"
	case KindExpire:
		return "expire"
	case KindPublicKey:
		return "pubkey"
	default:
		return "unknown"
	}
}

// Parameter is a schema node: a named, typed slot in a header, input or
// output list. Parameters are immutable after construction and freely
// shareable — many Values and Functions may reference the same node.
type Parameter struct {
	Name string
	Kind ParamKind

	// BitWidth is meaningful for KindUint, KindInt and KindFixedBytes.
	BitWidth int

	// Elem is the element Parameter for KindArray and KindFixedArray.
	Elem *Parameter

	// FixedLen is the element count for KindFixedArray.
	FixedLen int

	// Tuple holds the ordered element Parameters for KindTuple.
	Tuple []*Parameter

	// Key and Value describe KindMap's key and value Parameters.
	Key   *Parameter
	Value *Parameter
}

// Constructors. Each returns a ready-to-share *Parameter; none mutate
// an existing node, so schema nodes are immutable and shared without
// ever needing to be copied.

func Uint(name string, bits int) *Parameter { return &Parameter{Name: name, Kind: KindUint, BitWidth: bits} }
func Int(name string, bits int) *Parameter  { return &Parameter{Name: name, Kind: KindInt, BitWidth: bits} }
func Bool(name string) *Parameter           { return &Parameter{Name: name, Kind: KindBool} }

func Tuple(name string, elems ...*Parameter) *Parameter {
	return &Parameter{Name: name, Kind: KindTuple, Tuple: elems}
}

func Array(name string, elem *Parameter) *Parameter {
	return &Parameter{Name: name, Kind: KindArray, Elem: elem}
}

func FixedArray(name string, elem *Parameter, n int) *Parameter {
	return &Parameter{Name: name, Kind: KindFixedArray, Elem: elem, FixedLen: n}
}

func Cell(name string) *Parameter { return &Parameter{Name: name, Kind: KindCell} }

func Map(name string, key, value *Parameter) *Parameter {
	return &Parameter{Name: name, Kind: KindMap, Key: key, Value: value}
}

func Address(name string) *Parameter { return &Parameter{Name: name, Kind: KindAddress} }
func Bytes(name string) *Parameter   { return &Parameter{Name: name, Kind: KindBytes} }

func FixedBytes(name string, n int) *Parameter {
	return &Parameter{Name: name, Kind: KindFixedBytes, BitWidth: n}
}

func Gram(name string) *Parameter      { return &Parameter{Name: name, Kind: KindGram} }
func Time(name string) *Parameter      { return &Parameter{Name: name, Kind: KindTime} }
func Expire(name string) *Parameter    { return &Parameter{Name: name, Kind: KindExpire} }
func PublicKey(name string) *Parameter { return &Parameter{Name: name, Kind: KindPublicKey} }

// TypeSignature returns the canonical textual form of the type, used
// for equality and for the function-id canonical signature. It never
// depends on Name.
func (p *Parameter) TypeSignature() string {
	switch p.Kind {
	case KindUint:
		return fmt.Sprintf("uint%d", p.BitWidth)
	case KindInt:
		return fmt.Sprintf("int%d", p.BitWidth)
	case KindBool:
		return "bool"
	case KindTuple:
		parts := make([]string, len(p.Tuple))
		for i, e := range p.Tuple {
			parts[i] = e.TypeSignature()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case KindArray:
		return p.Elem.TypeSignature() + "[]"
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", p.Elem.TypeSignature(), p.FixedLen)
	case KindCell:
		return "cell"
	case KindMap:
		return fmt.Sprintf("map(%s,%s)", p.Key.TypeSignature(), p.Value.TypeSignature())
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return fmt.Sprintf("fixedbytes%d", p.BitWidth)
	case KindGram:
		return "gram"
	case KindTime:
		return "time"
	case KindExpire:
		return "expire"
	case KindPublicKey:
		return "pubkey"
	default:
		return "?"
	}
}

// String implements fmt.Stringer for debug printing; it includes the
// parameter name alongside its type signature.
func (p *Parameter) String() string {
	if p.Name == "" {
		return p.TypeSignature()
	}
	return p.Name + " " + p.TypeSignature()
}

// Equal reports type-equivalence: two Parameters are equivalent iff
// their TypeSignature is byte-equal. Names never participate.
func (p *Parameter) Equal(other *Parameter) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.TypeSignature() == other.TypeSignature()
}

// BitLen returns the fixed bit length of a primitive Parameter. It is
// defined only for Uint, Int and Bool (=1); compound and variable-width
// types return (0, false).
func (p *Parameter) BitLen() (int, bool) {
	switch p.Kind {
	case KindUint, KindInt:
		return p.BitWidth, true
	case KindBool:
		return 1, true
	default:
		return 0, false
	}
}

// IsCompound reports whether the Parameter is a structural (non-leaf)
// type: Tuple, Array, FixedArray or Map.
func (p *Parameter) IsCompound() bool {
	switch p.Kind {
	case KindTuple, KindArray, KindFixedArray, KindMap:
		return true
	default:
		return false
	}
}
