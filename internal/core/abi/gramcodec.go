package abi

import (
	"fmt"
	"math/big"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// Gram values use a 4-bit length prefix (0-15) followed by that many
// bytes of big-endian unsigned amount, mirroring the
// VarUInteger 16 encoding used for TON balances.
const (
	gramLenBits    = 4
	gramMaxLenBytes = 15
)

func (c *Codec) serializeGram(v *types.Value) ([]iface.Builder, error) {
	raw := v.Grams.Bytes()
	if len(raw) > gramMaxLenBytes {
		return nil, fmt.Errorf("%w: %s: amount requires %d bytes, max %d", types.ErrValueOutOfRange, v.Param.Name, len(raw), gramMaxLenBytes)
	}
	b := c.Factory.NewBuilder()
	if err := b.StoreUint(uint64(len(raw)), gramLenBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if len(raw) > 0 {
		if err := b.StoreSlice(raw, len(raw)*8); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
		}
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeGram(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	length, err := s.LoadUint(gramLenBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: length: %v", types.ErrDeserialization, p.Name, err)
	}
	var raw []byte
	if length > 0 {
		raw, err = s.LoadSlice(int(length) * 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
		}
	}
	amount := new(big.Int).SetBytes(raw)
	return &types.Value{Param: p, Grams: amount}, nil
}
