package abi_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/internal/celltest"
	"github.com/tonlayer/abicodec/internal/core/abi"
	"github.com/tonlayer/abicodec/pkg/types"
)

func TestAddressRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Address("dest")
	hash := [32]byte{}
	for i := range hash {
		hash[i] = byte(255 - i)
	}
	addr := types.Address{WorkchainID: -1, AccountHash: hash}
	v, err := types.NewAddress(p, addr)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.True(t, addr.Equal(got.Addr))
}

func TestAddressEncodingIs267Bits(t *testing.T) {
	c := newCodec()
	p := types.Address("dest")
	v, err := types.NewAddress(p, types.Address{WorkchainID: 0})
	require.NoError(t, err)

	leaves, err := c.Serialize(v)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, 267, leaves[0].BitsUsed())
}

func TestAddressWorkchainOutOfRange(t *testing.T) {
	c := newCodec()
	p := types.Address("dest")
	v, err := types.NewAddress(p, types.Address{WorkchainID: 1000})
	require.NoError(t, err)

	_, err = c.Serialize(v)
	assert.ErrorIs(t, err, types.ErrValueOutOfRange)
}

func TestAddressDeserializeRejectsWrongTag(t *testing.T) {
	factory := celltest.NewFactory()
	c := abi.New(factory)
	b := factory.NewBuilder()
	require.NoError(t, b.StoreUint(0b01, 2)) // wrong tag
	require.NoError(t, b.StoreBigUint(big.NewInt(0), 1+8+256))
	cellV, err := b.EndCell()
	require.NoError(t, err)

	_, err = c.Deserialize(types.Address("dest"), cellV.BeginParse(), true)
	assert.ErrorIs(t, err, types.ErrDeserialization)
}
