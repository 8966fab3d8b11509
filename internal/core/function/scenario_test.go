package function_test

import (
	"crypto/ed25519"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/internal/celltest"
	"github.com/tonlayer/abicodec/internal/core/abi"
	"github.com/tonlayer/abicodec/internal/core/function"
	"github.com/tonlayer/abicodec/pkg/types"
)

// TestScenario_EmptyPingCall: an internal call to a no-args, no-header
// function encodes to exactly the 32-bit selector.
func TestScenario_EmptyPingCall(t *testing.T) {
	fn := &types.Function{Name: "ping"}
	fn.EnsureIDs()
	assert.Equal(t, types.DeriveFunctionID("ping()()v2")&0x7FFFFFFF, fn.InputID)

	factory := celltest.NewFactory()
	codec := abi.New(factory)
	enc := function.NewEncoder(codec, factory)
	call := &types.FunctionCall{Internal: true}

	body, err := enc.Encode(fn, call)
	require.NoError(t, err)
	assert.Equal(t, 32, body.BitLen())
	assert.Equal(t, 0, body.RefsLen())

	s := body.BeginParse()
	selector, err := s.LoadUint(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(fn.InputID), selector)
}

// TestScenario_Uint32RoundTrip: ValueUint32(0xDEADBEEF) serializes to
// exactly 32 bits and decodes back unchanged.
func TestScenario_Uint32RoundTrip(t *testing.T) {
	c := newCodecForScenario()
	p := types.Uint("x", 32)
	v, err := types.NewUint(p, big.NewInt(0xDEADBEEF))
	require.NoError(t, err)

	leaves, err := c.Serialize(v)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, 32, leaves[0].BitsUsed())

	cell, err := leaves[0].EndCell()
	require.NoError(t, err)
	got, err := c.Deserialize(p, cell.BeginParse(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(0xDEADBEEF), got.Int.Int64())
}

// TestScenario_SignedExternalCall: a signed call to transfer(address,
// uint128) with a fixed header verifies against the paired public key.
func TestScenario_SignedExternalCall(t *testing.T) {
	factory := celltest.NewFactory()
	codec := abi.New(factory)
	enc := function.NewEncoder(codec, factory)
	dec := function.NewDecoder(codec)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	fn := &types.Function{
		Name:   "transfer",
		Header: []*types.Parameter{types.PublicKey("pubkey"), types.Time("time"), types.Expire("expire")},
		Inputs: []*types.Parameter{types.Address("dest"), types.Uint("amount", 128)},
	}
	fn.EnsureIDs()

	var pk [32]byte
	copy(pk[:], pub)
	pkVal, err := types.NewPublicKey(types.PublicKey("pubkey"), &pk)
	require.NoError(t, err)
	timeVal, err := types.NewTime(types.Time("time"), 1_700_000_000_000)
	require.NoError(t, err)
	expireVal, err := types.NewExpire(types.Expire("expire"), 1_700_000_060)
	require.NoError(t, err)

	dest, err := types.NewAddress(types.Address("dest"), types.Address{WorkchainID: 0, AccountHash: [32]byte{}})
	require.NoError(t, err)
	amount, err := types.NewUint(types.Uint("amount", 128), big.NewInt(1_000_000))
	require.NoError(t, err)

	call := &types.FunctionCall{
		Header: map[string]*types.Value{
			"pubkey": pkVal,
			"time":   timeVal,
			"expire": expireVal,
		},
		Inputs:     []*types.Value{dest, amount},
		PrivateKey: priv,
	}

	body, err := enc.Encode(fn, call)
	require.NoError(t, err)

	s := body.BeginParse()
	selector, err := s.LoadUint(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(fn.InputID), selector)
	present, err := s.LoadBoolBit()
	require.NoError(t, err)
	require.True(t, present)
	sig, err := s.LoadSlice(512)
	require.NoError(t, err)
	require.Len(t, sig, 64)

	decoded, err := dec.DecodeCall(fn, body.BeginParse(), false, false)
	require.NoError(t, err)
	assert.Equal(t, sig, decoded.Signature)
	require.NotNil(t, decoded.Header["pubkey"].PubKey)
	assert.Equal(t, pk, *decoded.Header["pubkey"].PubKey)

	// The signature must verify against the root's representation hash
	// with the signature slot cleared: re-encode the identical call with
	// a zeroed placeholder to reproduce that exact message.
	unsignedCall := &types.FunctionCall{
		Header:      call.Header,
		Inputs:      call.Inputs,
		ReserveSign: true,
	}
	unsignedBody, err := enc.Encode(fn, unsignedCall)
	require.NoError(t, err)
	hash := unsignedBody.Hash()
	assert.True(t, ed25519.Verify(pub, hash[:], decoded.Signature))
}

// TestScenario_AddressSerialization: workchain=0, hash=0x00...00 yields
// the 267-bit addr_std$10 encoding with anycast=0 and a zero hash.
func TestScenario_AddressSerialization(t *testing.T) {
	c := newCodecForScenario()
	p := types.Address("a")
	v, err := types.NewAddress(p, types.Address{WorkchainID: 0, AccountHash: [32]byte{}})
	require.NoError(t, err)

	leaves, err := c.Serialize(v)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, 267, leaves[0].BitsUsed())

	cell, err := leaves[0].EndCell()
	require.NoError(t, err)
	s := cell.BeginParse()
	tag, err := s.LoadUint(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b10), tag)
	anycast, err := s.LoadUint(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), anycast)
}

// TestScenario_BytesChunking: a 130-byte value spans a first cell
// holding 127 bytes and a second, referenced cell holding the rest.
func TestScenario_BytesChunking(t *testing.T) {
	c := newCodecForScenario()
	data := make([]byte, 130)
	for i := range data {
		data[i] = byte(i)
	}
	p := types.Bytes("blob")
	v, err := types.NewBytes(p, data)
	require.NoError(t, err)

	leaves, err := c.Serialize(v)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, 1, leaves[0].RefsUsed())

	root, err := leaves[0].EndCell()
	require.NoError(t, err)
	s := root.BeginParse()
	n, err := s.LoadUint(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(130), n)

	chain, err := s.LoadRefCell()
	require.NoError(t, err)
	assert.Equal(t, 127*8, chain.BitLen())
	assert.Equal(t, 1, chain.RefsLen())

	got, err := c.Deserialize(p, root.BeginParse(), true)
	require.NoError(t, err)
	assert.Equal(t, data, got.Raw)
}

// TestScenario_SelectorMismatch: decoding a result body whose prefix
// disagrees with the function's output_id fails with SelectorMismatch.
func TestScenario_SelectorMismatch(t *testing.T) {
	factory := celltest.NewFactory()
	codec := abi.New(factory)
	dec := function.NewDecoder(codec)

	fn := &types.Function{Name: "get_balance", Outputs: []*types.Parameter{types.Gram("balance")}}
	fn.EnsureIDs()

	envelope := factory.NewBuilder()
	require.NoError(t, envelope.StoreUint(uint64(fn.OutputID)^1, 32))
	root, err := envelope.EndCell()
	require.NoError(t, err)

	_, err = dec.DecodeResult(fn, root.BeginParse())
	assert.ErrorIs(t, err, types.ErrSelectorMismatch)
}

func newCodecForScenario() *abi.Codec {
	return abi.New(celltest.NewFactory())
}
