package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// addr_std$10 layout: 2-bit tag (10), 1 anycast bit (always absent,
// stored as 0), 8-bit signed workchain id, 256-bit account hash — 267
// bits total.
const (
	addrTag       = 0b10
	addrTagBits   = 2
	addrWcBits    = 8
	addrHashBits  = 256
	addrTotalBits = addrTagBits + 1 + addrWcBits + addrHashBits
)

func (c *Codec) serializeAddress(v *types.Value) ([]iface.Builder, error) {
	b := c.Factory.NewBuilder()
	if err := b.StoreUint(addrTag, addrTagBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if err := b.StoreBoolBit(false); err != nil { // no anycast
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	wc := uint64(int64(v.Addr.WorkchainID)) & (1<<addrWcBits - 1)
	if int64(int8(wc)) != int64(v.Addr.WorkchainID) {
		return nil, fmt.Errorf("%w: %s: workchain %d does not fit in %d signed bits", types.ErrValueOutOfRange, v.Param.Name, v.Addr.WorkchainID, addrWcBits)
	}
	if err := b.StoreUint(wc, addrWcBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if err := b.StoreSlice(v.Addr.AccountHash[:], addrHashBits); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeAddress(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	if s.BitsLeft() < addrTotalBits {
		return nil, fmt.Errorf("%w: %s: need %d bits, have %d", types.ErrDeserialization, p.Name, addrTotalBits, s.BitsLeft())
	}
	tag, err := s.LoadUint(addrTagBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	if tag != addrTag {
		return nil, fmt.Errorf("%w: %s: unsupported address tag %#b", types.ErrDeserialization, p.Name, tag)
	}
	if _, err := s.LoadBoolBit(); err != nil {
		return nil, fmt.Errorf("%w: %s: anycast bit: %v", types.ErrDeserialization, p.Name, err)
	}
	wcRaw, err := s.LoadUint(addrWcBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: workchain: %v", types.ErrDeserialization, p.Name, err)
	}
	wc := int32(int8(uint8(wcRaw)))
	hashBytes, err := s.LoadSlice(addrHashBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	var hash [32]byte
	copy(hash[:], hashBytes)
	return &types.Value{Param: p, Addr: types.Address{WorkchainID: wc, AccountHash: hash}}, nil
}
