package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

func (c *Codec) serializeBool(v *types.Value) ([]iface.Builder, error) {
	b := c.Factory.NewBuilder()
	if err := b.StoreBoolBit(v.BoolVal); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeBool(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	if s.BitsLeft() < 1 {
		return nil, fmt.Errorf("%w: %s: no bits left for bool", types.ErrDeserialization, p.Name)
	}
	v, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	return &types.Value{Param: p, BoolVal: v}, nil
}
