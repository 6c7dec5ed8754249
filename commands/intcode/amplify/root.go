// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amplify

import (
	"fmt"

	"github.com/BOXFoundation/intcode/commands/intcode/common"
	root "github.com/BOXFoundation/intcode/commands/intcode/root"
	"github.com/BOXFoundation/intcode/host"
	"github.com/spf13/cobra"
)

var (
	phases string
	exact  bool
)

// amplifyCmd runs an amplifier chain
var amplifyCmd = &cobra.Command{
	Use:   "amplify [program]",
	Short: "Run a chain of amplifiers and report the highest output signal",
	Long: `Builds one amplifier per phase from the program. Every amplifier reads its
phase, then the signal of the previous one. When the amplifiers keep reading
the chain runs as a feedback loop until all of them halt. Without --exact
every ordering of the phases is tried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer common.PrintStats()
		env, err := common.Setup()
		if err != nil {
			return err
		}
		prog, err := env.Loader.LoadFile(args[0])
		if err != nil {
			return err
		}
		seq, err := common.ParseInts(phases)
		if err != nil {
			return err
		}

		if exact {
			chain, err := host.NewChain(prog, seq)
			if err != nil {
				return err
			}
			chain.SetMaxSteps(env.Cfg.VM.MaxSteps)
			signal, err := chain.Run(0)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signal)
			return nil
		}

		signal, best, err := host.MaxSignal(prog, seq, env.Cfg.VM.MaxSteps)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d (phases %v)\n", signal, best)
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(amplifyCmd)

	amplifyCmd.Flags().StringVarP(&phases, "phases", "p", "0,1,2,3,4", "comma-separated phase settings")
	amplifyCmd.Flags().BoolVar(&exact, "exact", false, "use the phases in the given order only")
}
