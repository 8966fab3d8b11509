package abi

import (
	"encoding/binary"
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

const arrayKeyBits = 32

// serializeArray handles both Array (32-bit count prefix) and
// FixedArray (count implied by the schema): each element is serialized
// independently, packed into its own cell, and stored by reference in
// a dictionary keyed by its 32-bit big-endian index.
func (c *Codec) serializeArray(v *types.Value, fixed bool) ([]iface.Builder, error) {
	n := len(v.Elements)
	if fixed && n != v.Param.FixedLen {
		return nil, fmt.Errorf("%w: %s expects %d elements, got %d", types.ErrValueOutOfRange, v.Param.Name, v.Param.FixedLen, n)
	}

	dict := c.Factory.NewDictionary(arrayKeyBits)
	for i, elem := range v.Elements {
		leaves, err := c.Serialize(elem)
		if err != nil {
			return nil, err
		}
		elemCell, err := Pack(c.Factory, leaves)
		if err != nil {
			return nil, err
		}
		key := make([]byte, 4)
		binary.BigEndian.PutUint32(key, uint32(i))
		if err := dict.Set(key, elemCell); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", types.ErrSerialization, v.Param.Name, i, err)
		}
	}

	b := c.Factory.NewBuilder()
	if !fixed {
		if err := b.StoreUint(uint64(n), arrayKeyBits); err != nil {
			return nil, fmt.Errorf("%w: %s: count: %v", types.ErrSerialization, v.Param.Name, err)
		}
	}
	if n == 0 {
		if err := b.StoreBoolBit(false); err != nil {
			return nil, err
		}
		return []iface.Builder{b}, nil
	}
	dictCell, err := dict.AsCell()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if err := b.StoreBoolBit(true); err != nil {
		return nil, err
	}
	if err := b.StoreRef(dictCell); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeArray(p *types.Parameter, s iface.Slice, fixed bool) (*types.Value, error) {
	n := p.FixedLen
	if !fixed {
		count, err := s.LoadUint(arrayKeyBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: count: %v", types.ErrDeserialization, p.Name, err)
		}
		n = int(count)
	}

	present, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: presence bit: %v", types.ErrDeserialization, p.Name, err)
	}
	if !present {
		if n != 0 {
			return nil, fmt.Errorf("%w: %s: declared %d elements but dictionary absent", types.ErrDeserialization, p.Name, n)
		}
		return &types.Value{Param: p, Elements: nil}, nil
	}

	dictSlice, err := s.LoadRef()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	dict, err := c.Factory.LoadDictionary(dictSlice, arrayKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	entries, err := dict.All()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	byKey := make(map[uint32]iface.Cell, len(entries))
	for _, e := range entries {
		if len(e.Key) != 4 {
			return nil, fmt.Errorf("%w: %s: dictionary key width mismatch", types.ErrDeserialization, p.Name)
		}
		byKey[binary.BigEndian.Uint32(e.Key)] = e.Value
	}

	elems := make([]*types.Value, n)
	for i := 0; i < n; i++ {
		elemCell, ok := byKey[uint32(i)]
		if !ok {
			return nil, fmt.Errorf("%w: %s: missing index %d", types.ErrDeserialization, p.Name, i)
		}
		elemSlice := elemCell.BeginParse()
		ev, err := c.Deserialize(p.Elem, elemSlice, true)
		if err != nil {
			return nil, err
		}
		elems[i] = ev
	}
	return &types.Value{Param: p, Elements: elems}, nil
}
