// Package abi implements the per-type codec and the bit/ref
// packer; the function encoder/decoder built on top of them
// lives in the separate internal/core/function package.
package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// Codec dispatches serialize/deserialize by ParamKind. It holds no
// mutable state of its own beyond the cell Factory it was built with —
// every method is referentially transparent given identical inputs.
type Codec struct {
	Factory iface.Factory
}

func New(factory iface.Factory) *Codec {
	return &Codec{Factory: factory}
}

// Serialize returns the ordered list of leaf builders a Value expands
// to. The caller (the Function Encoder, or a test) is responsible for
// feeding the concatenation of all leaves into the Bit/Ref Packer.
func (c *Codec) Serialize(v *types.Value) ([]iface.Builder, error) {
	if v == nil || v.Param == nil {
		return nil, fmt.Errorf("%w: nil value or parameter", types.ErrSerialization)
	}
	switch v.Param.Kind {
	case types.KindUint, types.KindInt:
		return c.serializeNumeric(v)
	case types.KindBool:
		return c.serializeBool(v)
	case types.KindTuple:
		return c.serializeTuple(v)
	case types.KindArray:
		return c.serializeArray(v, false)
	case types.KindFixedArray:
		return c.serializeArray(v, true)
	case types.KindCell:
		return c.serializeCell(v)
	case types.KindMap:
		return c.serializeMap(v)
	case types.KindAddress:
		return c.serializeAddress(v)
	case types.KindBytes:
		return c.serializeBytes(v, false)
	case types.KindFixedBytes:
		return c.serializeBytes(v, true)
	case types.KindGram:
		return c.serializeGram(v)
	case types.KindTime:
		return c.serializeTime(v)
	case types.KindExpire:
		return c.serializeExpire(v)
	case types.KindPublicKey:
		return c.serializePublicKey(v)
	default:
		return nil, fmt.Errorf("%w: unknown parameter kind %s", types.ErrSerialization, v.Param.Kind)
	}
}

// Deserialize consumes one Parameter's worth of data from the slice,
// returning the decoded Value. isLast tells a deserializer whether it
// is the terminal element of the current cell's slot. Tuple forwards it
// to its last element and Bytes/FixedBytes accept it, but no
// deserializer reads differently because of it: every kind consumes
// exactly its own encoded width, and leftover bits are not rejected.
func (c *Codec) Deserialize(p *types.Parameter, s iface.Slice, isLast bool) (*types.Value, error) {
	switch p.Kind {
	case types.KindUint, types.KindInt:
		return c.deserializeNumeric(p, s)
	case types.KindBool:
		return c.deserializeBool(p, s)
	case types.KindTuple:
		return c.deserializeTuple(p, s, isLast)
	case types.KindArray:
		return c.deserializeArray(p, s, false)
	case types.KindFixedArray:
		return c.deserializeArray(p, s, true)
	case types.KindCell:
		return c.deserializeCell(p, s)
	case types.KindMap:
		return c.deserializeMap(p, s)
	case types.KindAddress:
		return c.deserializeAddress(p, s)
	case types.KindBytes:
		return c.deserializeBytes(p, s, false, isLast)
	case types.KindFixedBytes:
		return c.deserializeBytes(p, s, true, isLast)
	case types.KindGram:
		return c.deserializeGram(p, s)
	case types.KindTime:
		return c.deserializeTime(p, s)
	case types.KindExpire:
		return c.deserializeExpire(p, s)
	case types.KindPublicKey:
		return c.deserializePublicKey(p, s)
	default:
		return nil, fmt.Errorf("%w: unknown parameter kind %s", types.ErrDeserialization, p.Kind)
	}
}
