package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

const pubKeyBits = 256

func (c *Codec) serializePublicKey(v *types.Value) ([]iface.Builder, error) {
	b := c.Factory.NewBuilder()
	if v.PubKey == nil {
		if err := b.StoreBoolBit(false); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
		}
		return []iface.Builder{b}, nil
	}
	if err := b.StoreBoolBit(true); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if err := b.StoreSlice(v.PubKey[:], pubKeyBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializePublicKey(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	present, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: presence bit: %v", types.ErrDeserialization, p.Name, err)
	}
	if !present {
		return &types.Value{Param: p, PubKey: nil}, nil
	}
	raw, err := s.LoadSlice(pubKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &types.Value{Param: p, PubKey: &key}, nil
}
