package abi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/pkg/types"
)

func TestBytesRoundTripShort(t *testing.T) {
	c := newCodec()
	p := types.Bytes("payload")
	v, err := types.NewBytes(p, []byte("hello world"))
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Equal(t, []byte("hello world"), got.Raw)
}

func TestBytesRoundTripEmpty(t *testing.T) {
	c := newCodec()
	p := types.Bytes("payload")
	v, err := types.NewBytes(p, nil)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Empty(t, got.Raw)
}

// TestBytesChunking exercises data that spans multiple 127-byte chain
// cells, confirming the chunk boundary is transparent across a
// round trip.
func TestBytesChunking(t *testing.T) {
	c := newCodec()
	p := types.Bytes("payload")
	data := make([]byte, 127*3+40)
	for i := range data {
		data[i] = byte(i % 251)
	}
	v, err := types.NewBytes(p, data)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Equal(t, data, got.Raw)
}

func TestFixedBytesRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.FixedBytes("hash", 32)
	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i)
	}
	v, err := types.NewFixedBytes(p, data)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Equal(t, data, got.Raw)
}

func TestFixedBytesWrongLengthRejected(t *testing.T) {
	p := types.FixedBytes("hash", 32)
	_, err := types.NewFixedBytes(p, make([]byte, 31))
	assert.ErrorIs(t, err, types.ErrValueOutOfRange)
}

func TestFixedBytesBoundaryLengths(t *testing.T) {
	c := newCodec()
	for _, n := range []int{0, 1, 127, 128, 1024} {
		p := types.FixedBytes("blob", n)
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i % 256)
		}
		v, err := types.NewFixedBytes(p, data)
		require.NoError(t, err)

		got := roundTrip(t, c, v)
		assert.Equal(t, data, got.Raw)
	}
}
