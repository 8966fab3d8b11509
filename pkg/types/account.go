package types

// AccountState enumerates the lifecycle states a TVM account can be in.
type AccountState int

const (
	AccountStateUnknown AccountState = iota
	AccountStateEmpty
	AccountStateUninit
	AccountStateFrozen
	AccountStateActive
)

func (s AccountState) String() string {
	switch s {
	case AccountStateEmpty:
		return "empty"
	case AccountStateUninit:
		return "uninit"
	case AccountStateFrozen:
		return "frozen"
	case AccountStateActive:
		return "active"
	default:
		return "unknown"
	}
}

// AccountStateInfo is the materialized account snapshot the get-method
// runner loads a VM instance from.
type AccountStateInfo struct {
	Workchain   int32
	AddressHash [32]byte

	SyncTime uint64
	Balance  uint64

	State AccountState

	LastTransactionLT   uint64
	LastTransactionHash [32]byte

	// StateDetails carries opaque account-state data (code/data cells,
	// library references, …) the VM Runtime collaborator needs to
	// instantiate the contract. Its shape is owned by the VM Runtime
	// binding, not by this package.
	StateDetails map[string]interface{}
}

func (a AccountStateInfo) Address() Address {
	return Address{WorkchainID: a.Workchain, AccountHash: a.AddressHash}
}
