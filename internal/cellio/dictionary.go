package cellio

import (
	"errors"

	tucell "github.com/xssnick/tonutils-go/tvm/cell"

	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

var errNotOurs = errors.New("cellio: value did not originate from this adapter")

// Dictionary wraps *tucell.Dictionary.
type Dictionary struct {
	d       *tucell.Dictionary
	keyBits int
}

func (d *Dictionary) Set(keyBits []byte, value iface.Cell) error {
	c, ok := value.(*Cell)
	if !ok {
		return errNotOurs
	}
	key := tucell.BeginCell().MustStoreSlice(keyBits, uint(d.keyBits)).EndCell()
	return d.d.Set(key, c.c)
}

func (d *Dictionary) AsCell() (iface.Cell, error) {
	c, err := d.d.AsCell()
	if err != nil {
		return nil, err
	}
	return &Cell{c: c}, nil
}

func (d *Dictionary) All() ([]iface.DictEntry, error) {
	kvs, err := d.d.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]iface.DictEntry, 0, len(kvs))
	for _, kv := range kvs {
		keyBits, err := kv.Key.BeginParse().LoadSlice(uint(d.keyBits))
		if err != nil {
			return nil, err
		}
		out = append(out, iface.DictEntry{Key: keyBits, Value: &Cell{c: kv.Value}})
	}
	return out, nil
}
