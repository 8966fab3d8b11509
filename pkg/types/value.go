package types

import (
	"fmt"
	"math/big"

	"github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

// MapEntry is one key/value pair of a Map-typed Value, held in
// insertion order. The per-type codec does not sort entries: wire
// order is left to the dictionary implementation, and decoded entries
// come back in the order the dictionary enumerates them.
type MapEntry struct {
	Key   *Value
	Value *Value
}

// Value pairs a Parameter (its schema) with a payload matching the
// Parameter's Kind. Only the field(s) relevant to Kind are populated;
// Values own their payload (unlike Parameters, which are shared).
type Value struct {
	Param *Parameter

	Int      *big.Int   // KindUint, KindInt
	BoolVal  bool       // KindBool
	Elements []*Value   // KindTuple, KindArray, KindFixedArray
	CellVal  cell.Cell  // KindCell
	Entries  []MapEntry // KindMap
	Addr     Address    // KindAddress
	Raw      []byte     // KindBytes, KindFixedBytes
	Grams    *big.Int   // KindGram
	TimeMs   uint64     // KindTime
	ExpireAt uint32     // KindExpire
	PubKey   *[32]byte  // KindPublicKey (nil means "absent")
}

// NewUint constructs a KindUint Value, validating range.
func NewUint(p *Parameter, v *big.Int) (*Value, error) {
	if p.Kind != KindUint {
		return nil, fmt.Errorf("%w: NewUint requires a uint parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	if v.Sign() < 0 || v.BitLen() > p.BitWidth {
		return nil, fmt.Errorf("%w: %s does not fit in uint%d", ErrValueOutOfRange, v.String(), p.BitWidth)
	}
	return &Value{Param: p, Int: new(big.Int).Set(v)}, nil
}

// NewInt constructs a KindInt Value, validating two's-complement range.
func NewInt(p *Parameter, v *big.Int) (*Value, error) {
	if p.Kind != KindInt {
		return nil, fmt.Errorf("%w: NewInt requires an int parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	if !fitsSigned(v, p.BitWidth) {
		return nil, fmt.Errorf("%w: %s does not fit in int%d", ErrValueOutOfRange, v.String(), p.BitWidth)
	}
	return &Value{Param: p, Int: new(big.Int).Set(v)}, nil
}

func fitsSigned(v *big.Int, bits int) bool {
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(max)
	return v.Cmp(min) >= 0 && v.Cmp(max) < 0
}

// NewBool constructs a KindBool Value.
func NewBool(p *Parameter, v bool) (*Value, error) {
	if p.Kind != KindBool {
		return nil, fmt.Errorf("%w: NewBool requires a bool parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, BoolVal: v}, nil
}

// NewTuple constructs a KindTuple Value; each element's signature must
// match the schema's corresponding position.
func NewTuple(p *Parameter, elems []*Value) (*Value, error) {
	if p.Kind != KindTuple {
		return nil, fmt.Errorf("%w: NewTuple requires a tuple parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	if len(elems) != len(p.Tuple) {
		return nil, fmt.Errorf("%w: tuple %s expects %d elements, got %d", ErrValueOutOfRange, p.Name, len(p.Tuple), len(elems))
	}
	for i, e := range elems {
		if !e.Param.Equal(p.Tuple[i]) {
			return nil, fmt.Errorf("%w: tuple element %d: expected %s, got %s", ErrTypeMismatch, i, p.Tuple[i].TypeSignature(), e.Param.TypeSignature())
		}
	}
	return &Value{Param: p, Elements: elems}, nil
}

// NewArray constructs a KindArray Value; every element's signature
// must match the schema's element type.
func NewArray(p *Parameter, elems []*Value) (*Value, error) {
	if p.Kind != KindArray {
		return nil, fmt.Errorf("%w: NewArray requires an array parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	for i, e := range elems {
		if !e.Param.Equal(p.Elem) {
			return nil, fmt.Errorf("%w: array element %d: expected %s, got %s", ErrTypeMismatch, i, p.Elem.TypeSignature(), e.Param.TypeSignature())
		}
	}
	return &Value{Param: p, Elements: elems}, nil
}

// NewFixedArray constructs a KindFixedArray Value; the element count
// must exactly equal the schema's declared length.
func NewFixedArray(p *Parameter, elems []*Value) (*Value, error) {
	if p.Kind != KindFixedArray {
		return nil, fmt.Errorf("%w: NewFixedArray requires a fixedarray parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	if len(elems) != p.FixedLen {
		return nil, fmt.Errorf("%w: fixedarray %s expects %d elements, got %d", ErrValueOutOfRange, p.Name, p.FixedLen, len(elems))
	}
	for i, e := range elems {
		if !e.Param.Equal(p.Elem) {
			return nil, fmt.Errorf("%w: fixedarray element %d: expected %s, got %s", ErrTypeMismatch, i, p.Elem.TypeSignature(), e.Param.TypeSignature())
		}
	}
	return &Value{Param: p, Elements: elems}, nil
}

// NewCell constructs a KindCell Value.
func NewCell(p *Parameter, c cell.Cell) (*Value, error) {
	if p.Kind != KindCell {
		return nil, fmt.Errorf("%w: NewCell requires a cell parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, CellVal: c}, nil
}

// NewMap constructs a KindMap Value; every entry's key/value signature
// must match the schema's Key/Value Parameters.
func NewMap(p *Parameter, entries []MapEntry) (*Value, error) {
	if p.Kind != KindMap {
		return nil, fmt.Errorf("%w: NewMap requires a map parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	for i, e := range entries {
		if !e.Key.Param.Equal(p.Key) {
			return nil, fmt.Errorf("%w: map entry %d key: expected %s, got %s", ErrTypeMismatch, i, p.Key.TypeSignature(), e.Key.Param.TypeSignature())
		}
		if !e.Value.Param.Equal(p.Value) {
			return nil, fmt.Errorf("%w: map entry %d value: expected %s, got %s", ErrTypeMismatch, i, p.Value.TypeSignature(), e.Value.Param.TypeSignature())
		}
	}
	return &Value{Param: p, Entries: entries}, nil
}

// NewAddress constructs a KindAddress Value.
func NewAddress(p *Parameter, addr Address) (*Value, error) {
	if p.Kind != KindAddress {
		return nil, fmt.Errorf("%w: NewAddress requires an address parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, Addr: addr}, nil
}

// NewBytes constructs a KindBytes Value.
func NewBytes(p *Parameter, raw []byte) (*Value, error) {
	if p.Kind != KindBytes {
		return nil, fmt.Errorf("%w: NewBytes requires a bytes parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, Raw: raw}, nil
}

// NewFixedBytes constructs a KindFixedBytes Value; len(raw) must equal
// the schema's declared byte length exactly.
func NewFixedBytes(p *Parameter, raw []byte) (*Value, error) {
	if p.Kind != KindFixedBytes {
		return nil, fmt.Errorf("%w: NewFixedBytes requires a fixedbytes parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	if len(raw) != p.BitWidth {
		return nil, fmt.Errorf("%w: fixedbytes%d expects %d bytes, got %d", ErrValueOutOfRange, p.BitWidth, p.BitWidth, len(raw))
	}
	return &Value{Param: p, Raw: raw}, nil
}

// NewGram constructs a KindGram Value. Grams are unsigned and must fit
// in the variable-length encoding's 15-byte maximum (4-bit length
// prefix).
func NewGram(p *Parameter, amount *big.Int) (*Value, error) {
	if p.Kind != KindGram {
		return nil, fmt.Errorf("%w: NewGram requires a gram parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: gram amount must be non-negative", ErrValueOutOfRange)
	}
	if byteLen(amount) > 15 {
		return nil, fmt.Errorf("%w: gram amount exceeds the 15-byte encoding limit", ErrValueOutOfRange)
	}
	return &Value{Param: p, Grams: new(big.Int).Set(amount)}, nil
}

func byteLen(v *big.Int) int {
	bits := v.BitLen()
	return (bits + 7) / 8
}

// NewTime constructs a KindTime Value (64-bit unsigned millisecond timestamp).
func NewTime(p *Parameter, ms uint64) (*Value, error) {
	if p.Kind != KindTime {
		return nil, fmt.Errorf("%w: NewTime requires a time parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, TimeMs: ms}, nil
}

// NewExpire constructs a KindExpire Value (32-bit unsigned unix second timestamp).
func NewExpire(p *Parameter, at uint32) (*Value, error) {
	if p.Kind != KindExpire {
		return nil, fmt.Errorf("%w: NewExpire requires an expire parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, ExpireAt: at}, nil
}

// NewPublicKey constructs a KindPublicKey Value. A nil key means "absent".
func NewPublicKey(p *Parameter, key *[32]byte) (*Value, error) {
	if p.Kind != KindPublicKey {
		return nil, fmt.Errorf("%w: NewPublicKey requires a pubkey parameter, got %s", ErrTypeMismatch, p.Kind)
	}
	return &Value{Param: p, PubKey: key}, nil
}

// DefaultValue returns the zero-equivalent Value for primitive
// Parameters: zero for numeric/gram/time/expire types, false
// for bool, an absent key for pubkey, a zero address, and an empty byte
// slice for bytes. Compound types (Array, FixedArray, Map, and Tuples
// containing any unsupported element) report ok=false.
func (p *Parameter) DefaultValue() (*Value, bool) {
	switch p.Kind {
	case KindUint, KindInt:
		return &Value{Param: p, Int: big.NewInt(0)}, true
	case KindBool:
		return &Value{Param: p, BoolVal: false}, true
	case KindAddress:
		return &Value{Param: p, Addr: Address{}}, true
	case KindBytes:
		return &Value{Param: p, Raw: []byte{}}, true
	case KindFixedBytes:
		return &Value{Param: p, Raw: make([]byte, p.BitWidth)}, true
	case KindGram:
		return &Value{Param: p, Grams: big.NewInt(0)}, true
	case KindTime:
		return &Value{Param: p, TimeMs: 0}, true
	case KindExpire:
		return &Value{Param: p, ExpireAt: 0}, true
	case KindPublicKey:
		return &Value{Param: p, PubKey: nil}, true
	case KindTuple:
		elems := make([]*Value, len(p.Tuple))
		for i, e := range p.Tuple {
			dv, ok := e.DefaultValue()
			if !ok {
				return nil, false
			}
			elems[i] = dv
		}
		return &Value{Param: p, Elements: elems}, true
	default:
		// Array, FixedArray, Map, Cell have no default.
		return nil, false
	}
}
