package abi

import (
	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

// Pack folds an ordered sequence of leaf builders into a single root
// cell, spilling into continuation cells whenever a fold would exceed
// a cell's bit or reference budget.
//
// Walking right to left: for each leaf, either fold the accumulator's
// bits and refs into it (when it fits), or attach the accumulator as
// the leaf's last reference. Packing never fails for in-range leaves;
// a single leaf that itself overflows one cell is the codec's problem,
// not the packer's.
func Pack(factory iface.Factory, leaves []iface.Builder) (iface.Cell, error) {
	if len(leaves) == 0 {
		return factory.NewBuilder().EndCell()
	}

	var acc iface.Builder
	for i := len(leaves) - 1; i >= 0; i-- {
		leaf := leaves[i]
		if acc == nil {
			acc = leaf
			continue
		}
		if leaf.BitsUsed()+acc.BitsUsed() <= iface.MaxBits && leaf.RefsUsed()+acc.RefsUsed() <= iface.MaxRefs {
			if err := leaf.StoreBuilder(acc); err != nil {
				return nil, err
			}
		} else {
			accCell, err := acc.EndCell()
			if err != nil {
				return nil, err
			}
			if err := leaf.StoreRef(accCell); err != nil {
				return nil, err
			}
		}
		acc = leaf
	}
	return acc.EndCell()
}
