package abi_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/pkg/types"
)

func TestTupleRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Tuple("t", types.Uint("x", 16), types.Bool("y"), types.Gram("z"))
	x, err := types.NewUint(types.Uint("x", 16), big.NewInt(4242))
	require.NoError(t, err)
	y, err := types.NewBool(types.Bool("y"), true)
	require.NoError(t, err)
	z, err := types.NewGram(types.Gram("z"), big.NewInt(77))
	require.NoError(t, err)

	v, err := types.NewTuple(p, []*types.Value{x, y, z})
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	require.Len(t, got.Elements, 3)
	assert.Equal(t, int64(4242), got.Elements[0].Int.Int64())
	assert.True(t, got.Elements[1].BoolVal)
	assert.Equal(t, int64(77), got.Elements[2].Grams.Int64())
}

func TestTupleBoundaryElementCounts(t *testing.T) {
	c := newCodec()

	empty := types.Tuple("t0")
	v0, err := types.NewTuple(empty, nil)
	require.NoError(t, err)
	got0 := roundTrip(t, c, v0)
	assert.Empty(t, got0.Elements)

	single := types.Tuple("t1", types.Bool("a"))
	a, err := types.NewBool(types.Bool("a"), true)
	require.NoError(t, err)
	v1, err := types.NewTuple(single, []*types.Value{a})
	require.NoError(t, err)
	got1 := roundTrip(t, c, v1)
	require.Len(t, got1.Elements, 1)
	assert.True(t, got1.Elements[0].BoolVal)

	elemParams := make([]*types.Parameter, 20)
	elems := make([]*types.Value, 20)
	for i := range elemParams {
		elemParams[i] = types.Uint("e", 8)
		ev, err := types.NewUint(elemParams[i], big.NewInt(int64(i)))
		require.NoError(t, err)
		elems[i] = ev
	}
	many := types.Tuple("tN", elemParams...)
	vN, err := types.NewTuple(many, elems)
	require.NoError(t, err)
	gotN := roundTrip(t, c, vN)
	require.Len(t, gotN.Elements, 20)
	for i, e := range gotN.Elements {
		assert.Equal(t, int64(i), e.Int.Int64())
	}
}

func TestNestedTupleRoundTrip(t *testing.T) {
	c := newCodec()
	inner := types.Tuple("inner", types.Uint("a", 8), types.Uint("b", 8))
	outer := types.Tuple("outer", inner, types.Bool("flag"))

	a, err := types.NewUint(types.Uint("a", 8), big.NewInt(1))
	require.NoError(t, err)
	b, err := types.NewUint(types.Uint("b", 8), big.NewInt(2))
	require.NoError(t, err)
	innerVal, err := types.NewTuple(inner, []*types.Value{a, b})
	require.NoError(t, err)
	flag, err := types.NewBool(types.Bool("flag"), false)
	require.NoError(t, err)

	v, err := types.NewTuple(outer, []*types.Value{innerVal, flag})
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	require.Len(t, got.Elements, 2)
	require.Len(t, got.Elements[0].Elements, 2)
	assert.Equal(t, int64(1), got.Elements[0].Elements[0].Int.Int64())
	assert.Equal(t, int64(2), got.Elements[0].Elements[1].Int.Int64())
	assert.False(t, got.Elements[1].BoolVal)
}
