// Command abitool is a developer utility for inspecting ABI function
// schemas: deriving function ids from a canonical signature and
// pretty-printing a Function's parameter table.
package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tonlayer/abicodec/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "abitool",
		Short: "Inspect ABI function schemas",
	}
	root.AddCommand(newIDCmd(), newDescribeCmd())
	return root
}

func newIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <canonical-signature>",
		Short: "Derive the input/output function ids for a canonical signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonical := args[0]
			id := types.DeriveFunctionID(canonical)
			inputID := id &^ 0x80000000
			outputID := id | 0x80000000
			pterm.DefaultBulletList.WithItems([]pterm.BulletListItem{
				{Level: 0, Text: fmt.Sprintf("signature: %s", canonical)},
				{Level: 0, Text: fmt.Sprintf("input_id:  %#08x", inputID)},
				{Level: 0, Text: fmt.Sprintf("output_id: %#08x", outputID)},
			}).Render()
			return nil
		},
	}
}

// sampleFunctions is the fixed set of schemas the describe command can
// print, standing in for a real schema registry (out of scope here —
// schema parsing from JSON/text is explicitly excluded).
var sampleFunctions = map[string]*types.Function{
	"ping": func() *types.Function {
		fn := &types.Function{
			Name:        "ping",
			Header:      []*types.Parameter{types.PublicKey("pubkey"), types.Time("time"), types.Expire("expire")},
			Inputs:      nil,
			Outputs:     nil,
			Description: "liveness check, no inputs or outputs",
		}
		fn.EnsureIDs()
		return fn
	}(),
	"transfer": func() *types.Function {
		fn := &types.Function{
			Name:   "transfer",
			Header: []*types.Parameter{types.PublicKey("pubkey"), types.Time("time"), types.Expire("expire")},
			Inputs: []*types.Parameter{
				types.Address("dest"),
				types.Gram("amount"),
				types.Bool("bounce"),
			},
			Outputs:     []*types.Parameter{types.Bool("success")},
			Description: "send value to another account",
		}
		fn.EnsureIDs()
		return fn
	}(),
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <function-name>",
		Short: "Pretty-print a sample Function's parameter table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := sampleFunctions[args[0]]
			if !ok {
				return fmt.Errorf("no sample function named %q", args[0])
			}
			printFunction(fn)
			return nil
		},
	}
}

func printFunction(fn *types.Function) {
	pterm.DefaultSection.Println(fn.Name)
	if fn.Description != "" {
		pterm.Println(fn.Description)
	}
	pterm.Printfln("input_id:  %#08x", fn.InputID)
	pterm.Printfln("output_id: %#08x", fn.OutputID)

	rows := [][]string{{"Slot", "Name", "Type"}}
	for _, p := range fn.Header {
		rows = append(rows, []string{"header", p.Name, p.TypeSignature()})
	}
	for _, p := range fn.Inputs {
		rows = append(rows, []string{"input", p.Name, p.TypeSignature()})
	}
	for _, p := range fn.Outputs {
		rows = append(rows, []string{"output", p.Name, p.TypeSignature()})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
