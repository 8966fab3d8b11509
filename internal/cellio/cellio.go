// Package cellio binds pkg/interfaces/cell's Builder/Cell/Slice
// contract to a real cell-tree implementation. It is a thin adapter —
// all bit-level bag-of-cells work is delegated to tonutils-go's
// tvm/cell package (grounded on other_examples/xssnick-tonutils-go
// files in the retrieved pack); this package never reimplements cell
// serialization itself — the Cell Library is treated as an
// out-of-scope external collaborator.
package cellio

import (
	"math/big"

	tucell "github.com/xssnick/tonutils-go/tvm/cell"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

// Factory is the default iface.Factory, backed by tonutils-go.
type Factory struct{}

func NewFactory() Factory { return Factory{} }

func (Factory) NewBuilder() iface.Builder {
	return &Builder{b: tucell.BeginCell()}
}

func (Factory) NewDictionary(keyBitLen int) iface.Dictionary {
	return &Dictionary{d: tucell.NewDict(keyBitLen), keyBits: keyBitLen}
}

func (Factory) LoadDictionary(s iface.Slice, keyBitLen int) (iface.Dictionary, error) {
	sl, ok := s.(*Slice)
	if !ok {
		return nil, errNotOurs
	}
	d, err := sl.s.LoadDict(keyBitLen)
	if err != nil {
		return nil, err
	}
	return &Dictionary{d: d, keyBits: keyBitLen}, nil
}

// Cell wraps *tucell.Cell.
type Cell struct{ c *tucell.Cell }

func WrapCell(c *tucell.Cell) *Cell { return &Cell{c: c} }
func (c *Cell) Unwrap() *tucell.Cell { return c.c }

func (c *Cell) Hash() [32]byte {
	var out [32]byte
	copy(out[:], c.c.Hash())
	return out
}

func (c *Cell) BeginParse() iface.Slice {
	return &Slice{s: c.c.BeginParse()}
}

func (c *Cell) BitLen() int  { return c.c.BitsSize() }
func (c *Cell) RefsLen() int { return c.c.RefsNum() }

// Builder wraps *tucell.Builder, tracking used bits/refs locally so
// BitsUsed/RefsUsed are available regardless of what the upstream
// builder exposes for "remaining" capacity.
type Builder struct {
	b        *tucell.Builder
	bitsUsed int
	refsUsed int
}

func (b *Builder) StoreUint(value uint64, bitLen int) error {
	if err := b.b.StoreUInt(value, uint(bitLen)); err != nil {
		return err
	}
	b.bitsUsed += bitLen
	return nil
}

func (b *Builder) StoreBigUint(value *big.Int, bitLen int) error {
	if err := b.b.StoreBigUInt(value, uint(bitLen)); err != nil {
		return err
	}
	b.bitsUsed += bitLen
	return nil
}

func (b *Builder) StoreBigInt(value *big.Int, bitLen int) error {
	u := toTwosComplement(value, bitLen)
	return b.StoreBigUint(u, bitLen)
}

func (b *Builder) StoreBoolBit(value bool) error {
	var bit uint64
	if value {
		bit = 1
	}
	return b.StoreUint(bit, 1)
}

func (b *Builder) StoreSlice(data []byte, bitLen int) error {
	if err := b.b.StoreSlice(data, uint(bitLen)); err != nil {
		return err
	}
	b.bitsUsed += bitLen
	return nil
}

func (b *Builder) StoreRef(ref iface.Cell) error {
	c, ok := ref.(*Cell)
	if !ok {
		return errNotOurs
	}
	if err := b.b.StoreRef(c.c); err != nil {
		return err
	}
	b.refsUsed++
	return nil
}

func (b *Builder) StoreBuilder(other iface.Builder) error {
	ob, ok := other.(*Builder)
	if !ok {
		return errNotOurs
	}
	if err := b.b.StoreBuilder(ob.b); err != nil {
		return err
	}
	b.bitsUsed += ob.bitsUsed
	b.refsUsed += ob.refsUsed
	return nil
}

func (b *Builder) BitsUsed() int { return b.bitsUsed }
func (b *Builder) RefsUsed() int { return b.refsUsed }

func (b *Builder) EndCell() (iface.Cell, error) {
	return &Cell{c: b.b.EndCell()}, nil
}

// Slice wraps *tucell.Slice.
type Slice struct{ s *tucell.Slice }

func WrapSlice(s *tucell.Slice) *Slice { return &Slice{s: s} }

func (s *Slice) LoadUint(bitLen int) (uint64, error) {
	return s.s.LoadUInt(uint(bitLen))
}

func (s *Slice) LoadBigUint(bitLen int) (*big.Int, error) {
	return s.s.LoadBigUInt(uint(bitLen))
}

func (s *Slice) LoadBigInt(bitLen int) (*big.Int, error) {
	u, err := s.LoadBigUint(bitLen)
	if err != nil {
		return nil, err
	}
	return fromTwosComplement(u, bitLen), nil
}

func (s *Slice) LoadBoolBit() (bool, error) {
	v, err := s.LoadUint(1)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

func (s *Slice) LoadSlice(bitLen int) ([]byte, error) {
	return s.s.LoadSlice(uint(bitLen))
}

func (s *Slice) LoadRef() (iface.Slice, error) {
	sub, err := s.s.LoadRef()
	if err != nil {
		return nil, err
	}
	return &Slice{s: sub}, nil
}

func (s *Slice) LoadRefCell() (iface.Cell, error) {
	c, err := s.s.LoadRefCell()
	if err != nil {
		return nil, err
	}
	return &Cell{c: c}, nil
}

func (s *Slice) BitsLeft() int { return int(s.s.BitsLeft()) }
func (s *Slice) RefsLeft() int { return int(s.s.RefsLeft()) }

// toTwosComplement folds a signed value into an unsigned bitLen-wide
// two's-complement representation.
func toTwosComplement(v *big.Int, bitLen int) *big.Int {
	if v.Sign() >= 0 {
		return new(big.Int).Set(v)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	return new(big.Int).Add(v, mod)
}

// fromTwosComplement interprets an unsigned bitLen-wide value as signed.
func fromTwosComplement(u *big.Int, bitLen int) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(bitLen-1))
	if u.Cmp(half) < 0 {
		return new(big.Int).Set(u)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	return new(big.Int).Sub(u, mod)
}
