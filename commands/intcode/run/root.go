// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package run

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/BOXFoundation/intcode/commands/intcode/common"
	root "github.com/BOXFoundation/intcode/commands/intcode/root"
	"github.com/BOXFoundation/intcode/intcode"
	"github.com/BOXFoundation/intcode/log"
	"github.com/spf13/cobra"
)

var logger = log.NewLogger("run")

var (
	inputs     string
	saveFile   string
	resumeFile string
)

// runCmd runs a program, or resumes a saved one
var runCmd = &cobra.Command{
	Use:   "run [program]",
	Short: "Run an intcode program, printing every output value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer common.PrintStats()
		env, err := common.Setup()
		if err != nil {
			return err
		}
		vm, err := open(env, args)
		if err != nil {
			return err
		}
		vals, err := common.ParseInts(inputs)
		if err != nil {
			return err
		}
		vm.Push(vals...)
		return execute(vm, env.Cfg.VM.MaxSteps, cmd.OutOrStdout())
	},
}

func init() {
	root.RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&inputs, "input", "i", "", "comma-separated values queued as input")
	runCmd.Flags().StringVar(&saveFile, "save", "", "save the vm state here when it suspends (.yaml or .cbor)")
	runCmd.Flags().StringVar(&resumeFile, "resume", "", "resume from a saved vm state instead of a program")
}

func open(env *common.Env, args []string) (*intcode.VM, error) {
	if resumeFile != "" {
		if len(args) > 0 {
			return nil, errors.New("a program cannot be given with --resume")
		}
		vm, err := load(resumeFile)
		if err != nil {
			return nil, err
		}
		env.Instrument(vm)
		return vm, nil
	}
	if len(args) == 0 {
		return nil, errors.New("missing program file")
	}
	return env.NewVM(args[0])
}

// execute runs vm to its next stop, printing outputs to w
func execute(vm *intcode.VM, maxSteps uint64, w io.Writer) error {
	status, err := vm.RunLimit(intcode.NoInput, func(v int64) {
		fmt.Fprintln(w, v)
	}, maxSteps)

	switch {
	case err == intcode.ErrStepLimit:
		logger.Warnf("stopped after %d steps at pc %d", maxSteps, vm.PC())
		return save(vm)
	case err != nil:
		return err
	case status == intcode.InputNeeded:
		logger.Infof("input needed at pc %d after %d steps", vm.PC(), vm.Steps())
		return save(vm)
	default:
		logger.Infof("halted after %d steps", vm.Steps())
		return nil
	}
}

func save(vm *intcode.VM) error {
	if saveFile == "" {
		return nil
	}
	snap, err := vm.Snapshot()
	if err != nil {
		return err
	}
	data, err := snap.Encode(intcode.FormatOf(saveFile))
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(saveFile, data, 0644); err != nil {
		return err
	}
	logger.Infof("vm state saved to %s", saveFile)
	return nil
}

func load(path string) (*intcode.VM, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := intcode.DecodeSnapshot(intcode.FormatOf(path), data)
	if err != nil {
		return nil, err
	}
	return intcode.Restore(snap)
}
