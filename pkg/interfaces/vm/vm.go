// Package vm declares the VM Runtime collaborator: an
// executor that can be instantiated with a contract's code/data and run
// against a stack of arguments. No implementation ships in this module
// — the VM executor is explicitly out of scope.
package vm

import (
	"context"
	"math/big"

	"github.com/tonlayer/abicodec/pkg/interfaces/cell"
)

// StackItemKind tags the variant of a StackItem.
type StackItemKind int

const (
	StackInt StackItemKind = iota
	StackCell
	StackSlice
	StackTuple
)

// StackItem is one entry of a VM data stack.
type StackItem struct {
	Kind  StackItemKind
	Int   *big.Int
	Cell  cell.Cell
	Slice cell.Slice
	Tuple []StackItem
}

func NewIntItem(v *big.Int) StackItem           { return StackItem{Kind: StackInt, Int: v} }
func NewCellItem(c cell.Cell) StackItem         { return StackItem{Kind: StackCell, Cell: c} }
func NewSliceItem(s cell.Slice) StackItem       { return StackItem{Kind: StackSlice, Slice: s} }
func NewTupleItem(items []StackItem) StackItem  { return StackItem{Kind: StackTuple, Tuple: items} }

// Instance is a materialized, runnable contract: code + data loaded
// into a VM, ready to execute a get-method.
type Instance interface {
	// Run executes the method identified by selector against the given
	// stack and c7 register tuple, returning the exit code and the
	// resulting stack.
	Run(ctx context.Context, selector uint32, args []StackItem, c7 []StackItem) (Result, error)
}

// Result is the outcome of one VM run.
type Result struct {
	ExitCode int32
	Stack    []StackItem
}

// Runtime instantiates VM instances from a contract's code/data cells.
type Runtime interface {
	Instantiate(code, data cell.Cell) (Instance, error)
}
