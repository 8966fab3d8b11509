package abi_test

import (
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/pkg/types"
)

func TestMapRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Map("m", types.Uint("k", 16), types.Bool("v"))

	mk := func(k int64, v bool) types.MapEntry {
		kv, err := types.NewUint(types.Uint("k", 16), big.NewInt(k))
		require.NoError(t, err)
		vv, err := types.NewBool(types.Bool("v"), v)
		require.NoError(t, err)
		return types.MapEntry{Key: kv, Value: vv}
	}

	entries := []types.MapEntry{mk(1, true), mk(2, false), mk(3, true)}
	v, err := types.NewMap(p, entries)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	require.Len(t, got.Entries, 3)

	sort.Slice(got.Entries, func(i, j int) bool {
		return got.Entries[i].Key.Int.Int64() < got.Entries[j].Key.Int.Int64()
	})
	assert.Equal(t, int64(1), got.Entries[0].Key.Int.Int64())
	assert.True(t, got.Entries[0].Value.BoolVal)
	assert.Equal(t, int64(2), got.Entries[1].Key.Int.Int64())
	assert.False(t, got.Entries[1].Value.BoolVal)
}

func TestMapRoundTripEmpty(t *testing.T) {
	c := newCodec()
	p := types.Map("m", types.Uint("k", 16), types.Bool("v"))
	v, err := types.NewMap(p, nil)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Empty(t, got.Entries)
}

func TestMapBoundaryKeyWidths(t *testing.T) {
	c := newCodec()
	for _, bits := range []int{1, 8, 32, 256} {
		p := types.Map("m", types.Uint("k", bits), types.Bool("v"))
		kv, err := types.NewUint(types.Uint("k", bits), big.NewInt(1))
		require.NoError(t, err)
		vv, err := types.NewBool(types.Bool("v"), true)
		require.NoError(t, err)
		v, err := types.NewMap(p, []types.MapEntry{{Key: kv, Value: vv}})
		require.NoError(t, err)

		got := roundTrip(t, c, v)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, int64(1), got.Entries[0].Key.Int.Int64())
		assert.True(t, got.Entries[0].Value.BoolVal)
	}
}

func TestMapAddressKeyRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Map("m", types.Address("k"), types.Bool("v"))

	var hash [32]byte
	hash[31] = 0x09
	kv, err := types.NewAddress(types.Address("k"), types.Address{WorkchainID: 0, AccountHash: hash})
	require.NoError(t, err)
	vv, err := types.NewBool(types.Bool("v"), true)
	require.NoError(t, err)
	v, err := types.NewMap(p, []types.MapEntry{{Key: kv, Value: vv}})
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, hash, got.Entries[0].Key.Addr.AccountHash)
	assert.True(t, got.Entries[0].Value.BoolVal)
}

func TestMapFixedBytesKeyRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Map("m", types.FixedBytes("k", 4), types.Bool("v"))

	kv, err := types.NewFixedBytes(types.FixedBytes("k", 4), []byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	vv, err := types.NewBool(types.Bool("v"), true)
	require.NoError(t, err)
	v, err := types.NewMap(p, []types.MapEntry{{Key: kv, Value: vv}})
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got.Entries[0].Key.Raw)
	assert.True(t, got.Entries[0].Value.BoolVal)
}

func TestMapRejectsUnsupportedKeyKind(t *testing.T) {
	c := newCodec()
	p := types.Map("m", types.Bytes("k"), types.Bool("v"))
	kv, err := types.NewBytes(types.Bytes("k"), []byte{1})
	require.NoError(t, err)
	vv, err := types.NewBool(types.Bool("v"), true)
	require.NoError(t, err)
	v, err := types.NewMap(p, []types.MapEntry{{Key: kv, Value: vv}})
	require.NoError(t, err)

	_, err = c.Serialize(v)
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}
