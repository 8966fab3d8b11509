// Package function implements the Function Encoder and Decoder: ABI
// header assembly, signature-slot handling, selector prefixing, and
// the corresponding decode path, built on top of the per-type codec
// and the bit/ref packer.
package function

import (
	"crypto/ed25519"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tonlayer/abicodec/internal/core/abi"
	"github.com/tonlayer/abicodec/internal/events"
	"github.com/tonlayer/abicodec/internal/metrics"
	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/log"
	"github.com/tonlayer/abicodec/pkg/types"
)

const signatureBits = 512

// Encoder assembles a FunctionCall against a Function's schema into a
// single root Cell: header values, then input values, optionally
// signed, prefixed with the 32-bit input selector.
type Encoder struct {
	Codec   *abi.Codec
	Factory iface.Factory
	Clock   types.Clock
	Logger  log.Logger
	Metrics *metrics.Collector
	Events  *events.Bus
}

// NewEncoder constructs an Encoder. Logger, Metrics and Events are
// optional (nil-safe); Clock defaults to types.SystemClock{}.
func NewEncoder(codec *abi.Codec, factory iface.Factory) *Encoder {
	return &Encoder{Codec: codec, Factory: factory, Clock: types.SystemClock{}, Logger: log.Nop()}
}

// Encode builds the wire representation of call against fn's schema.
func (e *Encoder) Encode(fn *types.Function, call *types.FunctionCall) (iface.Cell, error) {
	correlationID := uuid.NewString()
	logger := e.Logger
	if logger == nil {
		logger = log.Nop()
	}

	headerValues, err := e.assembleHeader(fn, call)
	if err != nil {
		e.markEncode(false)
		return nil, err
	}
	if err := validateInputs(fn, call); err != nil {
		e.markEncode(false)
		return nil, err
	}

	writeSigSection := !call.Internal
	needSig := writeSigSection && (call.PrivateKey != nil || call.ReserveSign)

	result, err := e.assembleSigned(fn, call, headerValues, writeSigSection, needSig)
	if err != nil {
		e.markEncode(false)
		return nil, err
	}

	e.markEncode(true)
	logger.Debug("encoded function call", zap.String("correlation_id", correlationID), zap.String("function", fn.Name))
	if e.Events != nil {
		e.Events.PublishEncoded(events.Encoded{
			CorrelationID: correlationID,
			FunctionName:  fn.Name,
			InputID:       fn.InputID,
			BodyBits:      result.BitLen(),
		})
	}
	return result, nil
}

// CreateUnsignedCall assembles the body and returns the representation
// hash of the full envelope (selector, present bit set, signature slot
// cleared) for out-of-band signing, alongside the finalized body cell
// to hand to FillSignature later.
func (e *Encoder) CreateUnsignedCall(fn *types.Function, call *types.FunctionCall) ([32]byte, iface.Cell, error) {
	headerValues, err := e.assembleHeader(fn, call)
	if err != nil {
		return [32]byte{}, nil, err
	}
	if err := validateInputs(fn, call); err != nil {
		return [32]byte{}, nil, err
	}
	bodyLeaves, err := e.serializeAll(headerValues, call.Inputs)
	if err != nil {
		return [32]byte{}, nil, err
	}
	bodyCell, err := abi.Pack(e.Factory, bodyLeaves)
	if err != nil {
		return [32]byte{}, nil, err
	}

	envelope, err := e.buildEnvelope(fn, true, true, make([]byte, signatureBits/8))
	if err != nil {
		return [32]byte{}, nil, err
	}
	if err := envelope.StoreRef(bodyCell); err != nil {
		return [32]byte{}, nil, fmt.Errorf("%w: body ref: %v", types.ErrSerialization, err)
	}
	unsigned, err := envelope.EndCell()
	if err != nil {
		return [32]byte{}, nil, err
	}
	return unsigned.Hash(), bodyCell, nil
}

// FillSignature wraps a previously assembled body cell with the
// selector, the 1-bit signature present flag, and (when sig is
// non-nil) an externally produced 64-byte signature, always as a
// referenced body (the body is already a finalized Cell and cannot be
// folded inline any further). A nil sig produces an unsigned external
// message (present bit cleared).
func (e *Encoder) FillSignature(fn *types.Function, bodyCell iface.Cell, sig []byte) (iface.Cell, error) {
	needSig := sig != nil
	if needSig && len(sig) != signatureBits/8 {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d", types.ErrSignature, signatureBits/8, len(sig))
	}
	envelope, err := e.buildEnvelope(fn, true, needSig, sig)
	if err != nil {
		return nil, err
	}
	if err := envelope.StoreRef(bodyCell); err != nil {
		return nil, fmt.Errorf("%w: body ref: %v", types.ErrSerialization, err)
	}
	return envelope.EndCell()
}

// buildEnvelope assembles the leading selector cell: a 32-bit selector,
// followed — for any non-internal message — by a 1-bit signature
// present flag and, when present, the 512-bit signature (or a zeroed
// placeholder prior to signing).
func (e *Encoder) buildEnvelope(fn *types.Function, writeSigSection, needSig bool, sig []byte) (iface.Builder, error) {
	envelope := e.Factory.NewBuilder()
	if err := envelope.StoreUint(uint64(fn.InputID), 32); err != nil {
		return nil, fmt.Errorf("%w: selector: %v", types.ErrSerialization, err)
	}
	if writeSigSection {
		if err := envelope.StoreBoolBit(needSig); err != nil {
			return nil, fmt.Errorf("%w: signature present bit: %v", types.ErrSerialization, err)
		}
		if needSig {
			if err := envelope.StoreSlice(sig, signatureBits); err != nil {
				return nil, fmt.Errorf("%w: signature: %v", types.ErrSerialization, err)
			}
		}
	}
	return envelope, nil
}

// assembleSigned builds the full encoded result for Encode. When a
// private key is supplied, it follows the sign-then-splice flow: the
// unsigned root (selector, present bit set, signature slot zeroed) is
// hashed and signed, then the identical structure is rebuilt with the
// real signature in place of the placeholder.
func (e *Encoder) assembleSigned(fn *types.Function, call *types.FunctionCall, headerValues []*types.Value, writeSigSection, needSig bool) (iface.Cell, error) {
	build := func(sig []byte) (iface.Cell, error) {
		bodyLeaves, err := e.serializeAll(headerValues, call.Inputs)
		if err != nil {
			return nil, err
		}
		envelope, err := e.buildEnvelope(fn, writeSigSection, needSig, sig)
		if err != nil {
			return nil, err
		}
		if call.BodyAsRef {
			bodyCell, err := abi.Pack(e.Factory, bodyLeaves)
			if err != nil {
				return nil, err
			}
			if err := envelope.StoreRef(bodyCell); err != nil {
				return nil, fmt.Errorf("%w: body ref: %v", types.ErrSerialization, err)
			}
			return envelope.EndCell()
		}
		leaves := append([]iface.Builder{envelope}, bodyLeaves...)
		return abi.Pack(e.Factory, leaves)
	}

	if !needSig || call.PrivateKey == nil {
		var sig []byte
		if needSig {
			sig = make([]byte, signatureBits/8)
		}
		return build(sig)
	}

	if len(call.PrivateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key has wrong size", types.ErrSignature)
	}
	unsigned, err := build(make([]byte, signatureBits/8))
	if err != nil {
		return nil, err
	}
	hash := unsigned.Hash()
	sig := ed25519.Sign(call.PrivateKey, hash[:])
	return build(sig)
}

func (e *Encoder) assembleHeader(fn *types.Function, call *types.FunctionCall) ([]*types.Value, error) {
	values := make([]*types.Value, len(fn.Header))
	for i, p := range fn.Header {
		if v, ok := call.Header[p.Name]; ok {
			if !v.Param.Equal(p) {
				return nil, fmt.Errorf("%w: header %q: expected %s, got %s", types.ErrTypeMismatch, p.Name, p.TypeSignature(), v.Param.TypeSignature())
			}
			values[i] = v
			continue
		}
		if p.Kind == types.KindTime {
			clock := e.Clock
			if clock == nil {
				clock = types.SystemClock{}
			}
			values[i] = &types.Value{Param: p, TimeMs: clock.NowMillis()}
			continue
		}
		dv, ok := p.DefaultValue()
		if !ok {
			return nil, fmt.Errorf("%w: header %q", types.ErrMissingHeaderValue, p.Name)
		}
		values[i] = dv
	}
	return values, nil
}

func validateInputs(fn *types.Function, call *types.FunctionCall) error {
	if len(call.Inputs) != len(fn.Inputs) {
		return fmt.Errorf("%w: %s expects %d inputs, got %d", types.ErrValueOutOfRange, fn.Name, len(fn.Inputs), len(call.Inputs))
	}
	for i, v := range call.Inputs {
		if !v.Param.Equal(fn.Inputs[i]) {
			return fmt.Errorf("%w: input %d: expected %s, got %s", types.ErrTypeMismatch, i, fn.Inputs[i].TypeSignature(), v.Param.TypeSignature())
		}
	}
	return nil
}

func (e *Encoder) serializeAll(header []*types.Value, inputs []*types.Value) ([]iface.Builder, error) {
	var leaves []iface.Builder
	for _, v := range header {
		sub, err := e.Codec.Serialize(v)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, sub...)
	}
	for _, v := range inputs {
		sub, err := e.Codec.Serialize(v)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, sub...)
	}
	return leaves, nil
}

func (e *Encoder) markEncode(ok bool) {
	if e.Metrics != nil {
		e.Metrics.IncEncode(ok)
	}
}
