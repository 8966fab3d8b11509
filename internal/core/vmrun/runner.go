// Package vmrun adapts the typed Value/Function model to a VM Runtime
// collaborator (pkg/interfaces/vm), for invoking get-methods: it
// converts call arguments to VM stack items, runs the method, and
// converts the result stack back into typed output Values.
package vmrun

import (
	"context"
	"fmt"
	"math/big"

	"github.com/tonlayer/abicodec/internal/core/abi"
	iface "github.com/tonlayer/abicodec/pkg/interfaces/cell"
	"github.com/tonlayer/abicodec/pkg/interfaces/vm"
	"github.com/tonlayer/abicodec/pkg/log"
	"github.com/tonlayer/abicodec/pkg/types"
)

// State detail keys a VM Runtime binding is expected to populate on
// AccountStateInfo.StateDetails for an active account.
const (
	StateDetailCode = "code"
	StateDetailData = "data"
)

// Runner executes get-methods against a VM Runtime collaborator.
type Runner struct {
	Codec   *abi.Codec
	Runtime vm.Runtime
	Logger  log.Logger
}

func New(codec *abi.Codec, runtime vm.Runtime) *Runner {
	return &Runner{Codec: codec, Runtime: runtime, Logger: log.Nop()}
}

// RunGetMethod instantiates account's contract and invokes fn's
// input selector as a get-method, converting args to the VM stack and
// converting the resulting stack back into fn.Outputs-typed Values.
func (r *Runner) RunGetMethod(ctx context.Context, account *types.AccountStateInfo, fn *types.Function, args []*types.Value, c7 []vm.StackItem) ([]*types.Value, error) {
	if account.State != types.AccountStateActive {
		return nil, fmt.Errorf("%w: account is %s", types.ErrAccountInactive, account.State)
	}
	code, ok := account.StateDetails[StateDetailCode].(iface.Cell)
	if !ok {
		return nil, fmt.Errorf("%w: account state missing code cell", types.ErrAccountInactive)
	}
	data, ok := account.StateDetails[StateDetailData].(iface.Cell)
	if !ok {
		return nil, fmt.Errorf("%w: account state missing data cell", types.ErrAccountInactive)
	}

	instance, err := r.Runtime.Instantiate(code, data)
	if err != nil {
		return nil, fmt.Errorf("vmrun: instantiate: %w", err)
	}

	stackArgs := make([]vm.StackItem, len(args))
	for i, a := range args {
		item, err := r.toStackItem(a)
		if err != nil {
			return nil, err
		}
		stackArgs[i] = item
	}

	result, err := instance.Run(ctx, fn.InputID, stackArgs, c7)
	if err != nil {
		return nil, fmt.Errorf("vmrun: run: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, &types.VMError{ExitCode: result.ExitCode}
	}
	if len(result.Stack) < len(fn.Outputs) {
		return nil, fmt.Errorf("%w: expected %d outputs, VM returned %d stack items", types.ErrOutputTypeMismatch, len(fn.Outputs), len(result.Stack))
	}

	outputs := make([]*types.Value, len(fn.Outputs))
	for i, p := range fn.Outputs {
		v, err := r.fromStackItem(p, result.Stack[i])
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	return outputs, nil
}

func (r *Runner) toStackItem(v *types.Value) (vm.StackItem, error) {
	switch v.Param.Kind {
	case types.KindUint, types.KindInt:
		return vm.NewIntItem(v.Int), nil
	case types.KindBool:
		if v.BoolVal {
			return vm.NewIntItem(big.NewInt(-1)), nil // TVM convention: true = -1
		}
		return vm.NewIntItem(big.NewInt(0)), nil
	case types.KindTime:
		return vm.NewIntItem(new(big.Int).SetUint64(v.TimeMs)), nil
	case types.KindExpire:
		return vm.NewIntItem(new(big.Int).SetUint64(uint64(v.ExpireAt))), nil
	case types.KindGram:
		return vm.NewIntItem(v.Grams), nil
	case types.KindCell:
		return vm.NewCellItem(v.CellVal), nil
	case types.KindBytes, types.KindFixedBytes, types.KindAddress, types.KindPublicKey:
		leaves, err := r.Codec.Serialize(v)
		if err != nil {
			return vm.StackItem{}, err
		}
		c, err := abi.Pack(r.Codec.Factory, leaves)
		if err != nil {
			return vm.StackItem{}, err
		}
		return vm.NewSliceItem(c.BeginParse()), nil
	case types.KindTuple, types.KindArray, types.KindFixedArray:
		items := make([]vm.StackItem, len(v.Elements))
		for i, e := range v.Elements {
			item, err := r.toStackItem(e)
			if err != nil {
				return vm.StackItem{}, err
			}
			items[i] = item
		}
		return vm.NewTupleItem(items), nil
	default:
		return vm.StackItem{}, fmt.Errorf("%w: %s has no VM stack representation", types.ErrTypeMismatch, v.Param.Kind)
	}
}

func (r *Runner) fromStackItem(p *types.Parameter, item vm.StackItem) (*types.Value, error) {
	switch p.Kind {
	case types.KindUint, types.KindInt:
		if item.Kind != vm.StackInt {
			return nil, fmt.Errorf("%w: %s: expected int stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return &types.Value{Param: p, Int: item.Int}, nil
	case types.KindBool:
		if item.Kind != vm.StackInt {
			return nil, fmt.Errorf("%w: %s: expected int stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return &types.Value{Param: p, BoolVal: item.Int.Sign() != 0}, nil
	case types.KindTime:
		if item.Kind != vm.StackInt {
			return nil, fmt.Errorf("%w: %s: expected int stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return &types.Value{Param: p, TimeMs: item.Int.Uint64()}, nil
	case types.KindExpire:
		if item.Kind != vm.StackInt {
			return nil, fmt.Errorf("%w: %s: expected int stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return &types.Value{Param: p, ExpireAt: uint32(item.Int.Uint64())}, nil
	case types.KindGram:
		if item.Kind != vm.StackInt {
			return nil, fmt.Errorf("%w: %s: expected int stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return &types.Value{Param: p, Grams: item.Int}, nil
	case types.KindCell:
		if item.Kind != vm.StackCell {
			return nil, fmt.Errorf("%w: %s: expected cell stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return &types.Value{Param: p, CellVal: item.Cell}, nil
	case types.KindBytes, types.KindFixedBytes, types.KindAddress, types.KindPublicKey:
		if item.Kind != vm.StackSlice {
			return nil, fmt.Errorf("%w: %s: expected slice stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		return r.Codec.Deserialize(p, item.Slice, true)
	case types.KindTuple, types.KindArray, types.KindFixedArray:
		if item.Kind != vm.StackTuple {
			return nil, fmt.Errorf("%w: %s: expected tuple stack item", types.ErrOutputTypeMismatch, p.Name)
		}
		var elemParams []*types.Parameter
		switch p.Kind {
		case types.KindTuple:
			elemParams = p.Tuple
		default:
			elemParams = make([]*types.Parameter, len(item.Tuple))
			for i := range elemParams {
				elemParams[i] = p.Elem
			}
		}
		if len(elemParams) != len(item.Tuple) {
			return nil, fmt.Errorf("%w: %s: expected %d tuple elements, got %d", types.ErrOutputTypeMismatch, p.Name, len(elemParams), len(item.Tuple))
		}
		elems := make([]*types.Value, len(item.Tuple))
		for i, sub := range item.Tuple {
			v, err := r.fromStackItem(elemParams[i], sub)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &types.Value{Param: p, Elements: elems}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no VM stack representation", types.ErrOutputTypeMismatch, p.Kind)
	}
}
