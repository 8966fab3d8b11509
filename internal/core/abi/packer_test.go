package abi_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/internal/celltest"
	"github.com/tonlayer/abicodec/internal/core/abi"
	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

func TestPackEmptyLeavesProducesEmptyCell(t *testing.T) {
	factory := celltest.NewFactory()
	root, err := abi.Pack(factory, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, root.BitLen())
	assert.Equal(t, 0, root.RefsLen())
}

func TestPackFoldsWhenItFits(t *testing.T) {
	factory := celltest.NewFactory()
	a := factory.NewBuilder()
	require.NoError(t, a.StoreBigUint(big.NewInt(1), 500))
	b := factory.NewBuilder()
	require.NoError(t, b.StoreBigUint(big.NewInt(2), 500))

	root, err := abi.Pack(factory, []iface.Builder{a, b})
	require.NoError(t, err)
	assert.Equal(t, 1000, root.BitLen())
	assert.Equal(t, 0, root.RefsLen())
}

func TestPackSpillsIntoARefWhenBitsOverflow(t *testing.T) {
	factory := celltest.NewFactory()
	a := factory.NewBuilder()
	require.NoError(t, a.StoreBigUint(big.NewInt(1), 600))
	b := factory.NewBuilder()
	require.NoError(t, b.StoreBigUint(big.NewInt(2), 600))

	root, err := abi.Pack(factory, []iface.Builder{a, b})
	require.NoError(t, err)
	assert.Equal(t, 600, root.BitLen())
	assert.Equal(t, 1, root.RefsLen())
}

func TestPackSpillsIntoARefWhenRefsOverflow(t *testing.T) {
	factory := celltest.NewFactory()
	leafCell, err := factory.NewBuilder().EndCell()
	require.NoError(t, err)

	a := factory.NewBuilder()
	for i := 0; i < 3; i++ {
		require.NoError(t, a.StoreRef(leafCell))
	}
	b := factory.NewBuilder()
	for i := 0; i < 3; i++ {
		require.NoError(t, b.StoreRef(leafCell))
	}

	root, err := abi.Pack(factory, []iface.Builder{a, b})
	require.NoError(t, err)
	// 3+3 = 6 > MaxRefs(4), so b becomes a separate cell referenced by a.
	assert.Equal(t, 4, root.RefsLen())
}

func TestPackThreeLeavesFoldsRightToLeft(t *testing.T) {
	factory := celltest.NewFactory()
	a := factory.NewBuilder()
	require.NoError(t, a.StoreUint(0xA, 8))
	b := factory.NewBuilder()
	require.NoError(t, b.StoreUint(0xB, 8))
	c := factory.NewBuilder()
	require.NoError(t, c.StoreUint(0xC, 8))

	root, err := abi.Pack(factory, []iface.Builder{a, b, c})
	require.NoError(t, err)
	require.Equal(t, 24, root.BitLen())

	s := root.BeginParse()
	v1, err := s.LoadUint(8)
	require.NoError(t, err)
	v2, err := s.LoadUint(8)
	require.NoError(t, err)
	v3, err := s.LoadUint(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xA), v1)
	assert.Equal(t, uint64(0xB), v2)
	assert.Equal(t, uint64(0xC), v3)
}
