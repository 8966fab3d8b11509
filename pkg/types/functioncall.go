package types

import "crypto/ed25519"

// FunctionCall is a one-shot invocation description: constructed by the
// caller, consumed (never mutated) by the Function Encoder, then
// discarded. It carries no identity beyond its contents.
type FunctionCall struct {
	Header map[string]*Value
	Inputs []*Value

	// Internal marks an internal (contract-to-contract) message: no
	// signing header is emitted (step 2).
	Internal bool

	// PrivateKey, when set, signs the encoded body (step 5).
	PrivateKey ed25519.PrivateKey

	// ReserveSign requests a zeroed 512-bit signature placeholder even
	// when PrivateKey is absent, so the caller can sign out-of-band via
	// CreateUnsignedCall/FillSignature.
	ReserveSign bool

	// BodyAsRef wraps the encoded result in a fresh cell whose sole
	// reference is the body (step 6).
	BodyAsRef bool
}
