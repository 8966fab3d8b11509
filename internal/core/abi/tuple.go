package abi

import (
	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// serializeTuple concatenates element serializations inline; element
// boundaries are not re-escaped, so the result is simply
// the flattened concatenation of each element's leaf list.
func (c *Codec) serializeTuple(v *types.Value) ([]iface.Builder, error) {
	var leaves []iface.Builder
	for _, elem := range v.Elements {
		sub, err := c.Serialize(elem)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, sub...)
	}
	return leaves, nil
}

// deserializeTuple reads each schema element in order. Only the final
// element inherits the caller's isLast; interior elements are never
// the terminal read of the enclosing slot.
func (c *Codec) deserializeTuple(p *types.Parameter, s iface.Slice, isLast bool) (*types.Value, error) {
	elems := make([]*types.Value, len(p.Tuple))
	for i, ep := range p.Tuple {
		elemIsLast := isLast && i == len(p.Tuple)-1
		v, err := c.Deserialize(ep, s, elemIsLast)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &types.Value{Param: p, Elements: elems}, nil
}
