// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BOXFoundation/intcode/commands/intcode/common"
	root "github.com/BOXFoundation/intcode/commands/intcode/root"
	"github.com/BOXFoundation/intcode/intcode"
	"github.com/spf13/cobra"
	"gopkg.in/abiosoft/ishell.v2"
)

// consoleCmd starts the interactive debugger
var consoleCmd = &cobra.Command{
	Use:   "console [program]",
	Short: "Debug an intcode program interactively",
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
		startConsole(newBackend(prog, env))
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(consoleCmd)
}

type consoleBackend struct {
	prog     *intcode.Program
	env      *common.Env
	vm       *intcode.VM
	maxSteps uint64
	outputs  []int64
}

func newBackend(prog *intcode.Program, env *common.Env) *consoleBackend {
	c := &consoleBackend{prog: prog, env: env}
	if env != nil {
		c.maxSteps = env.Cfg.VM.MaxSteps
	}
	c.reset(nil)
	return c
}

type handler func(args []string) (string, error)

func startConsole(c *consoleBackend) {
	shell := ishell.New()
	shell.Println("Intcode Interactive Shell")

	cmds := []struct {
		name, help string
		fn         handler
	}{
		{"step", "step [n]: execute n instructions (default 1)", c.step},
		{"run", "run: run until halt, fault or input needed", c.run},
		{"push", "push v...: queue input values", c.push},
		{"peek", "peek addr [n]: read n memory cells", c.peek},
		{"poke", "poke addr v: write a memory cell", c.poke},
		{"regs", "regs: show pc, relative base and status", c.regs},
		{"disasm", "disasm [addr] [n]: disassemble n instructions from addr (default pc)", c.disasm},
		{"outputs", "outputs: show all values output so far", c.listOutputs},
		{"reset", "reset: reload the program", c.reset},
	}
	for _, cmd := range cmds {
		fn := cmd.fn
		shell.AddCmd(&ishell.Cmd{
			Name: cmd.name,
			Help: cmd.help,
			Func: func(ctx *ishell.Context) {
				res, err := fn(ctx.Args)
				if err != nil {
					ctx.Println("Error:", err)
					return
				}
				if res != "" {
					ctx.Println(res)
				}
			},
		})
	}
	shell.Run()
}

func (c *consoleBackend) output(v int64) {
	c.outputs = append(c.outputs, v)
}

func (c *consoleBackend) report(status intcode.Status, err error, from int) (string, error) {
	var lines []string
	for _, v := range c.outputs[from:] {
		lines = append(lines, fmt.Sprintf("out: %d", v))
	}
	if err != nil && err != intcode.ErrStepLimit {
		return strings.Join(lines, "\n"), err
	}
	lines = append(lines, fmt.Sprintf("%s at pc %d", status, c.vm.PC()))
	return strings.Join(lines, "\n"), nil
}

func (c *consoleBackend) step(args []string) (string, error) {
	n := int64(1)
	if len(args) > 0 {
		var err error
		if n, err = strconv.ParseInt(args[0], 10, 64); err != nil || n <= 0 {
			return "", fmt.Errorf("invalid step count %s", args[0])
		}
	}
	from := len(c.outputs)
	status, err := c.vm.RunLimit(intcode.NoInput, c.output, uint64(n))
	return c.report(status, err, from)
}

func (c *consoleBackend) run(args []string) (string, error) {
	from := len(c.outputs)
	status, err := c.vm.RunLimit(intcode.NoInput, c.output, c.maxSteps)
	return c.report(status, err, from)
}

func (c *consoleBackend) push(args []string) (string, error) {
	vals, err := common.ParseInts(strings.Join(args, ","))
	if err != nil {
		return "", err
	}
	c.vm.Push(vals...)
	return fmt.Sprintf("%d values pending", c.vm.Pending()), nil
}

func (c *consoleBackend) peek(args []string) (string, error) {
	nums, err := parseArgs(args, 1, 2)
	if err != nil {
		return "", err
	}
	n := int64(1)
	if len(nums) == 2 {
		n = nums[1]
	}
	var cells []string
	for addr := nums[0]; addr < nums[0]+n; addr++ {
		v, err := c.vm.Peek(addr)
		if err != nil {
			return "", err
		}
		cells = append(cells, fmt.Sprintf("[%d] %d", addr, v))
	}
	return strings.Join(cells, "\n"), nil
}

func (c *consoleBackend) poke(args []string) (string, error) {
	nums, err := parseArgs(args, 2, 2)
	if err != nil {
		return "", err
	}
	return "", c.vm.Poke(nums[0], nums[1])
}

func (c *consoleBackend) regs(args []string) (string, error) {
	return fmt.Sprintf("pc: %d rb: %d status: %s steps: %d pending: %d",
		c.vm.PC(), c.vm.RelativeBase(), c.vm.Status(), c.vm.Steps(), c.vm.Pending()), nil
}

func (c *consoleBackend) disasm(args []string) (string, error) {
	nums, err := parseArgs(args, 0, 2)
	if err != nil {
		return "", err
	}
	from, n := c.vm.PC(), int64(5)
	if len(nums) > 0 {
		from = nums[0]
	}
	if len(nums) > 1 {
		n = nums[1]
	}
	lines := strings.Split(c.vm.Disasm(), "\n")
	var res []string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		addr, _ := strconv.ParseInt(fields[0], 10, 64)
		if addr >= from && int64(len(res)) < n {
			res = append(res, line)
		}
	}
	return strings.Join(res, "\n"), nil
}

func (c *consoleBackend) listOutputs(args []string) (string, error) {
	strs := make([]string, len(c.outputs))
	for i, v := range c.outputs {
		strs[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(strs, ","), nil
}

func (c *consoleBackend) reset(args []string) (string, error) {
	c.vm = intcode.New(c.prog)
	c.outputs = nil
	if c.env != nil {
		c.env.Instrument(c.vm)
	}
	return fmt.Sprintf("loaded %d words", c.prog.Len()), nil
}

func parseArgs(args []string, min, max int) ([]int64, error) {
	if len(args) < min || len(args) > max {
		return nil, fmt.Errorf("expected %d to %d arguments, got %d", min, max, len(args))
	}
	nums := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %s", a)
		}
		nums[i] = v
	}
	return nums, nil
}
