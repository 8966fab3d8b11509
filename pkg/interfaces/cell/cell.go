// Package cell declares the Cell Library's consumed surface:
// a cell-tree builder/reader pair with hard bit and reference capacities.
// This package defines interfaces only — it never implements bag-of-cells
// serialization itself. The shipped binding lives in internal/cellio and
// delegates to a real third-party TON cell library.
package cell

import "math/big"

// MaxBits is a cell's hard bit-payload capacity.
const MaxBits = 1023

// MaxRefs is a cell's hard outgoing-reference capacity.
const MaxRefs = 4

// Cell is an immutable, content-addressed node: up to MaxBits bits of
// payload plus up to MaxRefs references to other cells.
type Cell interface {
	// Hash returns the cell's representation hash (256-bit Merkle-style
	// digest over its own bits and the hashes of its references).
	Hash() [32]byte

	// BeginParse returns a read-cursor positioned at the start of the
	// cell's bits and references.
	BeginParse() Slice

	BitLen() int
	RefsLen() int
}

// Builder is a write-cursor that accumulates bits and references before
// finalizing into a Cell.
type Builder interface {
	StoreUint(value uint64, bitLen int) error
	StoreBigUint(value *big.Int, bitLen int) error
	StoreBigInt(value *big.Int, bitLen int) error
	StoreBoolBit(value bool) error

	// StoreSlice appends bitLen bits of raw payload taken from the
	// leading bytes of data (bitLen need not be a multiple of 8).
	StoreSlice(data []byte, bitLen int) error

	// StoreRef attaches a finalized Cell as the next outgoing reference.
	StoreRef(ref Cell) error

	// StoreBuilder appends another builder's pending bits, then its
	// pending references, onto this one — the packer's fold operation.
	StoreBuilder(other Builder) error

	BitsUsed() int
	RefsUsed() int

	EndCell() (Cell, error)
}

// Slice is a read-cursor over a Cell's bits and references.
type Slice interface {
	LoadUint(bitLen int) (uint64, error)
	LoadBigUint(bitLen int) (*big.Int, error)
	LoadBigInt(bitLen int) (*big.Int, error)
	LoadBoolBit() (bool, error)
	LoadSlice(bitLen int) ([]byte, error)

	LoadRef() (Slice, error)
	LoadRefCell() (Cell, error)

	BitsLeft() int
	RefsLeft() int
}

// DictEntry is one key/value pair enumerated out of a Dictionary.
type DictEntry struct {
	Key   []byte // key bits, most significant first; a width that is not a multiple of 8 leaves zero padding in the low bits of the last byte
	Value Cell
}

// Dictionary is the hash-map-augmented binary tree used to back
// Array/FixedArray/Map serialization.
type Dictionary interface {
	Set(keyBits []byte, value Cell) error
	AsCell() (Cell, error)
	All() ([]DictEntry, error)
}

// Factory constructs fresh Builders and empty Dictionaries. The codec
// depends on this instead of a package-level constructor function so it
// can be swapped for a test double.
type Factory interface {
	NewBuilder() Builder
	NewDictionary(keyBitLen int) Dictionary
	LoadDictionary(s Slice, keyBitLen int) (Dictionary, error)
}
