package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

const (
	timeBits   = 64
	expireBits = 32
)

func (c *Codec) serializeTime(v *types.Value) ([]iface.Builder, error) {
	b := c.Factory.NewBuilder()
	if err := b.StoreUint(v.TimeMs, timeBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeTime(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	if s.BitsLeft() < timeBits {
		return nil, fmt.Errorf("%w: %s: need %d bits, have %d", types.ErrDeserialization, p.Name, timeBits, s.BitsLeft())
	}
	val, err := s.LoadUint(timeBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	return &types.Value{Param: p, TimeMs: val}, nil
}

func (c *Codec) serializeExpire(v *types.Value) ([]iface.Builder, error) {
	b := c.Factory.NewBuilder()
	if err := b.StoreUint(uint64(v.ExpireAt), expireBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeExpire(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	if s.BitsLeft() < expireBits {
		return nil, fmt.Errorf("%w: %s: need %d bits, have %d", types.ErrDeserialization, p.Name, expireBits, s.BitsLeft())
	}
	val, err := s.LoadUint(expireBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	return &types.Value{Param: p, ExpireAt: uint32(val)}, nil
}
