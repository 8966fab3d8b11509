package abi

import (
	"fmt"
	"math/big"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

func (c *Codec) serializeNumeric(v *types.Value) ([]iface.Builder, error) {
	b := c.Factory.NewBuilder()
	bits := v.Param.BitWidth
	var err error
	if v.Param.Kind == types.KindInt {
		err = b.StoreBigInt(v.Int, bits)
	} else {
		err = b.StoreBigUint(v.Int, bits)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrValueOutOfRange, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeNumeric(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	bits := p.BitWidth
	if s.BitsLeft() < bits {
		return nil, fmt.Errorf("%w: %s: need %d bits, have %d", types.ErrDeserialization, p.Name, bits, s.BitsLeft())
	}
	var val *big.Int
	var err error
	if p.Kind == types.KindInt {
		val, err = s.LoadBigInt(bits)
	} else {
		val, err = s.LoadBigUint(bits)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	return &types.Value{Param: p, Int: val}, nil
}
