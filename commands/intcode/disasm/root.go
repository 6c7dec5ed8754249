// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disasm

import (
	"fmt"

	"github.com/BOXFoundation/intcode/commands/intcode/common"
	root "github.com/BOXFoundation/intcode/commands/intcode/root"
	"github.com/BOXFoundation/intcode/intcode"
	"github.com/spf13/cobra"
)

// disasmCmd prints a program in human readable format
var disasmCmd = &cobra.Command{
	Use:   "disasm [program]",
	Short: "Disassemble an intcode program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := common.Setup()
		if err != nil {
			return err
		}
		prog, err := env.Loader.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), intcode.Disasm(prog))
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(disasmCmd)
}
