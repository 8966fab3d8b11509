// Package celltest provides an in-memory implementation of
// pkg/interfaces/cell, for exercising the codec's bit/ref logic in
// tests without binding to a specific third-party cell library.
package celltest

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

// Factory is a ready-to-use iface.Factory backed entirely by Go slices.
type Factory struct{}

func NewFactory() Factory { return Factory{} }

func (Factory) NewBuilder() iface.Builder { return &builder{} }

func (Factory) NewDictionary(keyBitLen int) iface.Dictionary {
	return &dictionary{keyBits: keyBitLen}
}

func (Factory) LoadDictionary(s iface.Slice, keyBitLen int) (iface.Dictionary, error) {
	fs, ok := s.(*slice)
	if !ok {
		return nil, fmt.Errorf("celltest: slice not produced by this factory")
	}
	if fs.dict == nil {
		return nil, fmt.Errorf("celltest: slice does not carry a dictionary")
	}
	if fs.dictKeyBits != keyBitLen {
		return nil, fmt.Errorf("celltest: dictionary key width mismatch: have %d, want %d", fs.dictKeyBits, keyBitLen)
	}
	entries := make([]iface.DictEntry, len(fs.dict))
	copy(entries, fs.dict)
	return &dictionary{keyBits: keyBitLen, entries: entries}, nil
}

type cell struct {
	bits    []bool
	refs    []*cell
	dict    []iface.DictEntry
	dictKey int
}

func (c *cell) Hash() [32]byte {
	h := sha256.New()
	h.Write(packBits(c.bits))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(c.bits)))
	h.Write(lenBuf[:])
	for _, r := range c.refs {
		rh := r.Hash()
		h.Write(rh[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *cell) BeginParse() iface.Slice {
	return &slice{bits: c.bits, refs: c.refs, dict: c.dict, dictKeyBits: c.dictKey}
}

func (c *cell) BitLen() int  { return len(c.bits) }
func (c *cell) RefsLen() int { return len(c.refs) }

type builder struct {
	bits []bool
	refs []*cell
}

func (b *builder) StoreUint(value uint64, bitLen int) error {
	if bitLen < 0 || bitLen > 64 {
		return fmt.Errorf("celltest: StoreUint: bitLen %d out of range", bitLen)
	}
	for i := bitLen - 1; i >= 0; i-- {
		b.bits = append(b.bits, (value>>uint(i))&1 == 1)
	}
	return nil
}

func (b *builder) StoreBigUint(value *big.Int, bitLen int) error {
	if bitLen < 0 {
		return fmt.Errorf("celltest: StoreBigUint: negative bitLen")
	}
	if value.Sign() < 0 {
		return fmt.Errorf("celltest: StoreBigUint: negative value")
	}
	if value.BitLen() > bitLen {
		return fmt.Errorf("celltest: StoreBigUint: value does not fit in %d bits", bitLen)
	}
	bits := make([]bool, bitLen)
	v := new(big.Int).Set(value)
	one := big.NewInt(1)
	for i := bitLen - 1; i >= 0; i-- {
		if v.Bit(0) == 1 {
			bits[i] = true
		}
		v.Rsh(v, 1)
		_ = one
	}
	b.bits = append(b.bits, bits...)
	return nil
}

func (b *builder) StoreBigInt(value *big.Int, bitLen int) error {
	return b.StoreBigUint(toTwosComplement(value, bitLen), bitLen)
}

func (b *builder) StoreBoolBit(value bool) error {
	b.bits = append(b.bits, value)
	return nil
}

func (b *builder) StoreSlice(data []byte, bitLen int) error {
	if bitLen < 0 || (bitLen+7)/8 > len(data) {
		return fmt.Errorf("celltest: StoreSlice: bitLen %d exceeds data length", bitLen)
	}
	for i := 0; i < bitLen; i++ {
		byteIdx := i / 8
		bitIdx := 7 - uint(i%8)
		b.bits = append(b.bits, (data[byteIdx]>>bitIdx)&1 == 1)
	}
	return nil
}

func (b *builder) StoreRef(ref iface.Cell) error {
	c, ok := ref.(*cell)
	if !ok {
		return fmt.Errorf("celltest: StoreRef: cell not produced by this factory")
	}
	if len(b.refs) >= iface.MaxRefs {
		return fmt.Errorf("celltest: StoreRef: cell already has %d refs", iface.MaxRefs)
	}
	b.refs = append(b.refs, c)
	return nil
}

func (b *builder) StoreBuilder(other iface.Builder) error {
	ob, ok := other.(*builder)
	if !ok {
		return fmt.Errorf("celltest: StoreBuilder: builder not produced by this factory")
	}
	if len(b.bits)+len(ob.bits) > iface.MaxBits || len(b.refs)+len(ob.refs) > iface.MaxRefs {
		return fmt.Errorf("celltest: StoreBuilder: fold would exceed cell capacity")
	}
	b.bits = append(b.bits, ob.bits...)
	b.refs = append(b.refs, ob.refs...)
	return nil
}

func (b *builder) BitsUsed() int { return len(b.bits) }
func (b *builder) RefsUsed() int { return len(b.refs) }

func (b *builder) EndCell() (iface.Cell, error) {
	if len(b.bits) > iface.MaxBits || len(b.refs) > iface.MaxRefs {
		return nil, fmt.Errorf("celltest: EndCell: capacity exceeded")
	}
	return &cell{bits: append([]bool{}, b.bits...), refs: append([]*cell{}, b.refs...)}, nil
}

type slice struct {
	bits        []bool
	pos         int
	refs        []*cell
	refPos      int
	dict        []iface.DictEntry
	dictKeyBits int
}

func (s *slice) LoadUint(bitLen int) (uint64, error) {
	if s.BitsLeft() < bitLen {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint64
	for i := 0; i < bitLen; i++ {
		v <<= 1
		if s.bits[s.pos] {
			v |= 1
		}
		s.pos++
	}
	return v, nil
}

func (s *slice) LoadBigUint(bitLen int) (*big.Int, error) {
	if s.BitsLeft() < bitLen {
		return nil, io.ErrUnexpectedEOF
	}
	v := new(big.Int)
	for i := 0; i < bitLen; i++ {
		v.Lsh(v, 1)
		if s.bits[s.pos] {
			v.SetBit(v, 0, 1)
		}
		s.pos++
	}
	return v, nil
}

func (s *slice) LoadBigInt(bitLen int) (*big.Int, error) {
	u, err := s.LoadBigUint(bitLen)
	if err != nil {
		return nil, err
	}
	return fromTwosComplement(u, bitLen), nil
}

func (s *slice) LoadBoolBit() (bool, error) {
	v, err := s.LoadUint(1)
	return v == 1, err
}

func (s *slice) LoadSlice(bitLen int) ([]byte, error) {
	if s.BitsLeft() < bitLen {
		return nil, io.ErrUnexpectedEOF
	}
	out := make([]byte, (bitLen+7)/8)
	for i := 0; i < bitLen; i++ {
		if s.bits[s.pos] {
			out[i/8] |= 1 << uint(7-i%8)
		}
		s.pos++
	}
	return out, nil
}

func (s *slice) LoadRef() (iface.Slice, error) {
	if s.RefsLeft() == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	r := s.refs[s.refPos]
	s.refPos++
	return r.BeginParse(), nil
}

func (s *slice) LoadRefCell() (iface.Cell, error) {
	if s.RefsLeft() == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	r := s.refs[s.refPos]
	s.refPos++
	return r, nil
}

func (s *slice) BitsLeft() int { return len(s.bits) - s.pos }
func (s *slice) RefsLeft() int { return len(s.refs) - s.refPos }

type dictionary struct {
	keyBits int
	entries []iface.DictEntry
}

func (d *dictionary) Set(key []byte, value iface.Cell) error {
	c, ok := value.(*cell)
	if !ok {
		return fmt.Errorf("celltest: Set: cell not produced by this factory")
	}
	for i, e := range d.entries {
		if bytes.Equal(e.Key, key) {
			d.entries[i].Value = c
			return nil
		}
	}
	d.entries = append(d.entries, iface.DictEntry{Key: append([]byte{}, key...), Value: c})
	return nil
}

func (d *dictionary) AsCell() (iface.Cell, error) {
	return &cell{dict: d.entries, dictKey: d.keyBits}, nil
}

func (d *dictionary) All() ([]iface.DictEntry, error) {
	out := make([]iface.DictEntry, len(d.entries))
	copy(out, d.entries)
	return out, nil
}

func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func toTwosComplement(v *big.Int, bitLen int) *big.Int {
	if v.Sign() >= 0 {
		return new(big.Int).Set(v)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	return new(big.Int).Add(v, mod)
}

func fromTwosComplement(u *big.Int, bitLen int) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(bitLen-1))
	if u.Cmp(half) < 0 {
		return new(big.Int).Set(u)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	return new(big.Int).Sub(u, mod)
}
