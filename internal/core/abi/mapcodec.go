package abi

import (
	"fmt"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/types"
)

// mapKeyBits returns the fixed bit width used as the dictionary key for
// a Map(K,V) value. Dictionary keys must be fixed-width in bits: Uint,
// Int and Bool via BitLen, plus Address (the fixed addr_std$10 width)
// and FixedBytes (its declared byte width times 8).
func mapKeyBits(key *types.Parameter) (int, error) {
	switch key.Kind {
	case types.KindAddress:
		return addrTotalBits, nil
	case types.KindFixedBytes:
		return key.BitWidth * 8, nil
	}
	bits, ok := key.BitLen()
	if !ok {
		return 0, fmt.Errorf("%w: map key kind %s has no fixed bit width", types.ErrTypeMismatch, key.Kind)
	}
	return bits, nil
}

func (c *Codec) serializeMap(v *types.Value) ([]iface.Builder, error) {
	keyBits, err := mapKeyBits(v.Param.Key)
	if err != nil {
		return nil, err
	}
	dict := c.Factory.NewDictionary(keyBits)
	for i, entry := range v.Entries {
		keyLeaves, err := c.Serialize(entry.Key)
		if err != nil {
			return nil, err
		}
		keyCell, err := Pack(c.Factory, keyLeaves)
		if err != nil {
			return nil, err
		}
		keySlice := keyCell.BeginParse()
		keyBytes, err := keySlice.LoadSlice(keyBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: key re-read: %v", types.ErrSerialization, v.Param.Name, i, err)
		}

		valLeaves, err := c.Serialize(entry.Value)
		if err != nil {
			return nil, err
		}
		valCell, err := Pack(c.Factory, valLeaves)
		if err != nil {
			return nil, err
		}
		if err := dict.Set(keyBytes, valCell); err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: %v", types.ErrSerialization, v.Param.Name, i, err)
		}
	}

	b := c.Factory.NewBuilder()
	if len(v.Entries) == 0 {
		if err := b.StoreBoolBit(false); err != nil {
			return nil, err
		}
		return []iface.Builder{b}, nil
	}
	dictCell, err := dict.AsCell()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	if err := b.StoreBoolBit(true); err != nil {
		return nil, err
	}
	if err := b.StoreRef(dictCell); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSerialization, v.Param.Name, err)
	}
	return []iface.Builder{b}, nil
}

func (c *Codec) deserializeMap(p *types.Parameter, s iface.Slice) (*types.Value, error) {
	present, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: presence bit: %v", types.ErrDeserialization, p.Name, err)
	}
	if !present {
		return &types.Value{Param: p, Entries: nil}, nil
	}

	dictSlice, err := s.LoadRef()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	keyBits, err := mapKeyBits(p.Key)
	if err != nil {
		return nil, err
	}
	dict, err := c.Factory.LoadDictionary(dictSlice, keyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}
	rawEntries, err := dict.All()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
	}

	entries := make([]types.MapEntry, 0, len(rawEntries))
	for _, re := range rawEntries {
		keyBuilder := c.Factory.NewBuilder()
		if err := keyBuilder.StoreSlice(re.Key, keyBits); err != nil {
			return nil, fmt.Errorf("%w: %s: key re-encode: %v", types.ErrDeserialization, p.Name, err)
		}
		keyCell, err := keyBuilder.EndCell()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrDeserialization, p.Name, err)
		}
		keyVal, err := c.Deserialize(p.Key, keyCell.BeginParse(), true)
		if err != nil {
			return nil, err
		}
		valVal, err := c.Deserialize(p.Value, re.Value.BeginParse(), true)
		if err != nil {
			return nil, err
		}
		entries = append(entries, types.MapEntry{Key: keyVal, Value: valVal})
	}
	return &types.Value{Param: p, Entries: entries}, nil
}
