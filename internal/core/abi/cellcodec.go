package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// serializeCell stores a single outgoing reference to the cell value.
// A splice-into-parent optimization (folding the referenced cell's
// root directly into the parent when it has no pending bits or refs
// and this is the sole leaf) is not implemented — see DESIGN.md Open
// Question #3 for why a plain reference is always used instead.
func (c *Codec) serializeCell(v *types.Value) ([]iface.Builder, error) {
	if v.CellVal == nil {
		return nil, fmt.Errorf("%w: %s: nil cell value", types.ErrSerialization, v.Param.Name)
	}
	b := c.Factory.NewBuilder()
	if err := b.StoreRef(v.CellVal); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeCell(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	cv, err := s.LoadRefCell()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	return &types.Value{Param: p, CellVal: cv}, nil
}
