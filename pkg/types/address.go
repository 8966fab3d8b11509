package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Address is the addr_std$10 triple: a workchain id and a 256-bit
// account hash. It carries no anycast info (the codec always emits the
// anycast bit as 0).
type Address struct {
	WorkchainID int32
	AccountHash [32]byte
}

func (a Address) String() string {
	return fmt.Sprintf("%d:%x", a.WorkchainID, a.AccountHash)
}

// Equal compares two addresses by value.
func (a Address) Equal(b Address) bool {
	return a.WorkchainID == b.WorkchainID && a.AccountHash == b.AccountHash
}

// DisplayAddress renders an address as a base58 string for logging and
// debugging. It is never used by the wire codec: workchain and hash
// are packed separately and raw, as addr_std$10 requires.
func DisplayAddress(a Address) string {
	raw := make([]byte, 5+32)
	raw[0] = byte(a.WorkchainID >> 24)
	raw[1] = byte(a.WorkchainID >> 16)
	raw[2] = byte(a.WorkchainID >> 8)
	raw[3] = byte(a.WorkchainID)
	raw[4] = 0
	copy(raw[5:], a.AccountHash[:])
	return base58.Encode(raw)
}
