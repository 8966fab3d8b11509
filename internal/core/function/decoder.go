package function

import (
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

// Decoder is the inverse of Encoder: it validates the selector prefix
// and decodes a cell back into typed Values against a Function's
// schema.
type Decoder struct {
	Codec   *abi.Codec
	Logger  log.Logger
	Metrics *metrics.Collector
	Events  *events.Bus
}

func NewDecoder(codec *abi.Codec) *Decoder {
	return &Decoder{Codec: codec, Logger: log.Nop()}
}

// DecodedCall is the result of decoding an inbound function call body.
type DecodedCall struct {
	Header map[string]*types.Value
	Inputs []*types.Value
	// Signature is the 64-byte signature, present when internal is false
	// and the message's signature present bit is set; otherwise nil. It
	// is not verified here — verification is the caller's
	// responsibility, since it requires the signer's public key.
	Signature []byte
}

// DecodeCall validates the selector against fn.InputID and decodes the
// header and input parameters. internal mirrors FunctionCall.Internal:
// when true, no signature field is expected on the wire. bodyAsRef
// mirrors FunctionCall.BodyAsRef: when true, the header/input
// parameters are read from a single referenced body cell rather than
// inline after the selector and signature.
func (d *Decoder) DecodeCall(fn *types.Function, s iface.Slice, internal, bodyAsRef bool) (*DecodedCall, error) {
	selector, err := s.LoadUint(32)
	if err != nil {
		d.markDecode(false)
		return nil, fmt.Errorf("%w: selector: %v", types.ErrDeserialization, err)
	}
	if uint32(selector) != fn.InputID {
		d.markDecode(false)
		return nil, fmt.Errorf("%w: got %#x, want %#x", types.ErrSelectorMismatch, selector, fn.InputID)
	}

	var sig []byte
	if !internal {
		present, err := s.LoadBoolBit()
		if err != nil {
			d.markDecode(false)
			return nil, fmt.Errorf("%w: signature present bit: %v", types.ErrDeserialization, err)
		}
		if present {
			sig, err = s.LoadSlice(signatureBits)
			if err != nil {
				d.markDecode(false)
				return nil, fmt.Errorf("%w: signature: %v", types.ErrDeserialization, err)
			}
		}
	}

	if bodyAsRef {
		s, err = s.LoadRef()
		if err != nil {
			d.markDecode(false)
			return nil, fmt.Errorf("%w: body ref: %v", types.ErrDeserialization, err)
		}
	}

	all := append(append([]*types.Parameter{}, fn.Header...), fn.Inputs...)
	values, err := decodeParamList(d.Codec, s, all)
	if err != nil {
		d.markDecode(false)
		return nil, err
	}

	header := make(map[string]*types.Value, len(fn.Header))
	for i, p := range fn.Header {
		header[p.Name] = values[i]
	}
	inputs := values[len(fn.Header):]

	d.markDecode(true)
	d.logAndPublish(fn, uint32(selector))
	return &DecodedCall{Header: header, Inputs: inputs, Signature: sig}, nil
}

// DecodeResult validates the selector against fn.OutputID and decodes
// the output parameters, for reading a response body (as distinct from
// the get-method runner's VM-stack path in internal/core/vmrun).
func (d *Decoder) DecodeResult(fn *types.Function, s iface.Slice) ([]*types.Value, error) {
	selector, err := s.LoadUint(32)
	if err != nil {
		d.markDecode(false)
		return nil, fmt.Errorf("%w: selector: %v", types.ErrDeserialization, err)
	}
	if uint32(selector) != fn.OutputID {
		d.markDecode(false)
		return nil, fmt.Errorf("%w: got %#x, want %#x", types.ErrSelectorMismatch, selector, fn.OutputID)
	}

	outputs, err := decodeParamList(d.Codec, s, fn.Outputs)
	if err != nil {
		d.markDecode(false)
		return nil, err
	}
	d.markDecode(true)
	d.logAndPublish(fn, uint32(selector))
	return outputs, nil
}

func (d *Decoder) markDecode(ok bool) {
	if d.Metrics != nil {
		d.Metrics.IncDecode(ok)
	}
}

func (d *Decoder) logAndPublish(fn *types.Function, selector uint32) {
	correlationID := uuid.NewString()
	logger := d.Logger
	if logger == nil {
		logger = log.Nop()
	}
	logger.Debug("decoded function message", zap.String("correlation_id", correlationID), zap.String("function", fn.Name))
	if d.Events != nil {
		d.Events.PublishDecoded(events.Decoded{CorrelationID: correlationID, FunctionName: fn.Name, Selector: selector})
	}
}

// decodeParamList decodes params in order from s, following the
// packer's continuation ref whenever the current cell's content is
// exhausted before every parameter has been read: a fully folded cell
// leaves exactly 0 bits once its inlined leaves are consumed, with any
// spillover reachable only through its last reference.
func decodeParamList(codec *abi.Codec, s iface.Slice, params []*types.Parameter) ([]*types.Value, error) {
	values := make([]*types.Value, len(params))
	for i, p := range params {
		if s.BitsLeft() == 0 && s.RefsLeft() > 0 {
			next, err := s.LoadRef()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: continuation ref: %v", types.ErrDeserialization, p.Name, err)
			}
			s = next
		}
		isLast := i == len(params)-1
		v, err := codec.Deserialize(p, s, isLast)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
