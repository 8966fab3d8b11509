package abi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/pkg/types"
)

func TestTimeRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Time("t")
	v, err := types.NewTime(p, 1_700_000_000_123)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Equal(t, uint64(1_700_000_000_123), got.TimeMs)
}

func TestExpireRoundTrip(t *testing.T) {
	c := newCodec()
	p := types.Expire("e")
	v, err := types.NewExpire(p, 1_900_000_000)
	require.NoError(t, err)

	got := roundTrip(t, c, v)
	assert.Equal(t, uint32(1_900_000_000), got.ExpireAt)
}
