package types

import (
	"fmt"
	"hash/crc32"
	"strings"
)

// ABIVersion is the published ABI version byte/decimal embedded in the
// canonical signature and in the wire format's version byte.
const ABIVersion = 2

// Function is a schema: a named entry point with an ordered header,
// input and output parameter list, plus the 32-bit selectors used to
// dispatch to it.
type Function struct {
	Name    string
	Header  []*Parameter
	Inputs  []*Parameter
	Outputs []*Parameter

	InputID  uint32
	OutputID uint32

	// Description is free-text documentation; it never participates in
	// the canonical signature or the derived IDs.
	Description string
}

// CanonicalSignature builds the string whose CRC32 is the function id:
// name(in1,in2,...)(out1,out2,...)vN.
func (f *Function) CanonicalSignature() string {
	return fmt.Sprintf("%s(%s)(%s)v%d", f.Name, joinSignatures(f.Inputs), joinSignatures(f.Outputs), ABIVersion)
}

func joinSignatures(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.TypeSignature()
	}
	return strings.Join(parts, ",")
}

// DeriveFunctionID computes the CRC32 (IEEE 802.3, big-endian word) of
// the canonical signature. Two functions with equal CanonicalSignature
// always derive an equal id.
func DeriveFunctionID(canonical string) uint32 {
	return crc32.ChecksumIEEE([]byte(canonical))
}

// EnsureIDs fills InputID/OutputID from the canonical signature when
// they were not supplied explicitly (both zero). By convention,
// input_id clears the high bit and output_id sets it.
func (f *Function) EnsureIDs() {
	if f.InputID != 0 || f.OutputID != 0 {
		return
	}
	id := DeriveFunctionID(f.CanonicalSignature())
	f.InputID = id &^ 0x80000000
	f.OutputID = id | 0x80000000
}

// HeaderNames returns the declared header parameter names, in order.
func (f *Function) HeaderNames() []string {
	names := make([]string, len(f.Header))
	for i, p := range f.Header {
		names[i] = p.Name
	}
	return names
}

// InputSignatures returns each input parameter's canonical type signature, in order.
func (f *Function) InputSignatures() []string {
	return signaturesOf(f.Inputs)
}

// OutputSignatures returns each output parameter's canonical type signature, in order.
func (f *Function) OutputSignatures() []string {
	return signaturesOf(f.Outputs)
}

func signaturesOf(params []*Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.TypeSignature()
	}
	return out
}
