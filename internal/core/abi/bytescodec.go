package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// bytesChunkSize is the maximum number of payload bytes stored per
// chain cell (127 bytes = 1016 bits, the largest whole number of bytes
// under the 1023-bit cell capacity). Chain cells are finalized here and
// reached only by reference, so the packer never folds anything into
// them.
const bytesChunkSize = 127

const bytesLengthBits = 32

// serializeBytes emits an optional 32-bit length (Bytes only) followed
// by an explicit reference to the chunk chain, never relying on the
// packer's generic inline-fold heuristic for the chain itself — the
// chain's start cell is only ever reachable via that ref, so the
// decoder's walk is unambiguous regardless of what precedes or follows
// this value in the enclosing leaf sequence.
func (c *Codec) serializeBytes(v *types.Value, fixed bool) ([]iface.Builder, error) {
	data := v.Raw
	if fixed && len(data) != v.Param.BitWidth {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", types.ErrValueOutOfRange, v.Param.Name, v.Param.BitWidth, len(data))
	}

	b := c.Factory.NewBuilder()
	if !fixed {
		if err := b.StoreUint(uint64(len(data)), bytesLengthBits); err != nil {
			return nil, fmt.Errorf("%w: %s: length: %v", types.ErrSerialization, v.Param.Name, err)
		}
	}
	if len(data) == 0 {
		return []iface.Builder{b}, nil
	}

	chainBuilder, err := c.buildByteChain(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	chainCell, err := chainBuilder.EndCell()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if err := b.StoreRef(chainCell); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

// buildByteChain splits data into bytesChunkSize-byte pieces and chains
// them tail-to-head: the last chunk becomes a leaf cell with no
// outgoing ref, and every earlier chunk stores a ref to the chunk
// after it. The first chunk's builder (still open) is returned so the
// caller can finalize it into the chain's root cell.
func (c *Codec) buildByteChain(data []byte) (iface.Builder, error) {
	var chunks [][]byte
	for off := 0; off < len(data); off += bytesChunkSize {
		end := off + bytesChunkSize
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[off:end])
	}

	var next iface.Cell
	var rootBuilder iface.Builder
	for i := len(chunks) - 1; i >= 0; i-- {
		b := c.Factory.NewBuilder()
		if err := b.StoreSlice(chunks[i], len(chunks[i])*8); err != nil {
			return nil, err
		}
		if next != nil {
			if err := b.StoreRef(next); err != nil {
				return nil, err
			}
		}
		if i == 0 {
			rootBuilder = b
			break
		}
		cellB, err := b.EndCell()
		if err != nil {
			return nil, err
		}
		next = cellB
	}
	return rootBuilder, nil
}

func (c *Codec) deserializeBytes(p *types.Parameter, s iface.Slice, fixed bool, isLast bool) (*types.Value, error) {
	n := p.BitWidth
	if !fixed {
		count, err := s.LoadUint(bytesLengthBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: length: %v", types.ErrDeserialization, p.Name, err)
		}
		n = int(count)
	}
	if n == 0 {
		return &types.Value{Param: p, Raw: []byte{}}, nil
	}

	cur, err := s.LoadRef()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: chain ref: %v", types.ErrDeserialization, p.Name, err)
	}

	buf := make([]byte, 0, n)
	remaining := n
	for remaining > 0 {
		chunkLen := remaining
		if chunkLen > bytesChunkSize {
			chunkLen = bytesChunkSize
		}
		chunk, err := cur.LoadSlice(chunkLen * 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: chunk: %v", types.ErrDeserialization, p.Name, err)
		}
		buf = append(buf, chunk...)
		remaining -= chunkLen
		if remaining > 0 {
			cur, err = cur.LoadRef()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: chain ref: %v", types.ErrDeserialization, p.Name, err)
			}
		}
	}
	_ = isLast // terminal reads need no extra bookkeeping beyond the chunk loop above
	return &types.Value{Param: p, Raw: buf}, nil
}
