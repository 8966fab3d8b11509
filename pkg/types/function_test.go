package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonlayer/abicodec/pkg/types"
)

func TestCanonicalSignature(t *testing.T) {
	fn := &types.Function{
		Name:    "transfer",
		Inputs:  []*types.Parameter{types.Address("dest"), types.Gram("amount")},
		Outputs: []*types.Parameter{types.Bool("ok")},
	}
	assert.Equal(t, "transfer(address,gram)(bool)v2", fn.CanonicalSignature())
}

func TestEnsureIDsIsDeterministicAndSplitsHighBit(t *testing.T) {
	fn1 := &types.Function{Name: "ping"}
	fn1.EnsureIDs()
	fn2 := &types.Function{Name: "ping"}
	fn2.EnsureIDs()

	require.NotZero(t, fn1.InputID)
	assert.Equal(t, fn1.InputID, fn2.InputID)
	assert.Equal(t, fn1.OutputID, fn2.OutputID)

	assert.Equal(t, uint32(0), fn1.InputID&0x80000000)
	assert.Equal(t, uint32(0x80000000), fn1.OutputID&0x80000000)
	assert.Equal(t, fn1.InputID, fn1.OutputID&^0x80000000)
}

func TestEnsureIDsDoesNotOverwriteExplicitIDs(t *testing.T) {
	fn := &types.Function{Name: "ping", InputID: 0x11111111, OutputID: 0x91111111}
	fn.EnsureIDs()
	assert.Equal(t, uint32(0x11111111), fn.InputID)
	assert.Equal(t, uint32(0x91111111), fn.OutputID)
}

func TestDifferentSignaturesDeriveDifferentIDs(t *testing.T) {
	a := &types.Function{Name: "transfer", Inputs: []*types.Parameter{types.Gram("amount")}}
	b := &types.Function{Name: "transfer", Inputs: []*types.Parameter{types.Bool("amount")}}
	a.EnsureIDs()
	b.EnsureIDs()
	assert.NotEqual(t, a.InputID, b.InputID)
}

func TestHeaderAndSignatureHelpers(t *testing.T) {
	fn := &types.Function{
		Name:    "transfer",
		Header:  []*types.Parameter{types.PublicKey("pubkey"), types.Time("time")},
		Inputs:  []*types.Parameter{types.Address("dest"), types.Gram("amount")},
		Outputs: []*types.Parameter{types.Bool("ok")},
	}
	assert.Equal(t, []string{"pubkey", "time"}, fn.HeaderNames())
	assert.Equal(t, []string{"address", "gram"}, fn.InputSignatures())
	assert.Equal(t, []string{"bool"}, fn.OutputSignatures())
}
