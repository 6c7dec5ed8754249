// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"github.com/BOXFoundation/intcode/log"
	"github.com/BOXFoundation/intcode/metrics"
)

var logger = log.NewLogger("intcode") // logger

var (
	metricsSteps    = metrics.NewCounter("intcode.vm.steps")
	metricsHalts    = metrics.NewCounter("intcode.vm.halts")
	metricsSuspends = metrics.NewCounter("intcode.vm.suspends")
	metricsFaults   = metrics.NewCounter("intcode.vm.faults")

	// instructions executed per resumption
	metricsRunSteps = metrics.NewHistogramWithUniformSample("intcode.vm.run.steps", 1024)
)

// Status is the outcome of a step or a run
type Status int

// step outcomes
const (
	Continue Status = iota
	Halted
	InputNeeded
	Faulted
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Halted:
		return "halted"
	case InputNeeded:
		return "input needed"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// InputFunc provides a value when the input queue is empty. Returning false
// suspends the VM with InputNeeded.
type InputFunc func() (int64, bool)

// OutputFunc receives every value written by an output instruction
type OutputFunc func(int64)

// TraceFunc is called with every decoded instruction before it executes
type TraceFunc func(pc, relBase int64, in Instruction)

// NoInput is an InputFunc that never yields a value
func NoInput() (int64, bool) {
	return 0, false
}

// Values returns an InputFunc yielding vals in order, then nothing
func Values(vals ...int64) InputFunc {
	return func() (int64, bool) {
		if len(vals) == 0 {
			return 0, false
		}
		v := vals[0]
		vals = vals[1:]
		return v, true
	}
}

// Collect returns an OutputFunc appending to *dst
func Collect(dst *[]int64) OutputFunc {
	return func(v int64) {
		*dst = append(*dst, v)
	}
}

// VM is one Intcode machine. It is owned by the host that built it and is not
// safe for concurrent use; separate instances share no state.
type VM struct {
	mem     *Memory
	pc      int64
	relBase int64
	queue   []int64

	status Status
	fault  *Fault
	steps  uint64
	trace  TraceFunc
}

// New creates a VM whose memory is a copy of prog
func New(prog *Program) *VM {
	return &VM{mem: newMemory(prog.words)}
}

// Memory returns the memory of the VM for direct host access
func (vm *VM) Memory() *Memory {
	return vm.mem
}

// Peek reads the memory cell at addr
func (vm *VM) Peek(addr int64) (int64, error) {
	return vm.mem.Read(addr)
}

// Poke writes the memory cell at addr
func (vm *VM) Poke(addr, v int64) error {
	return vm.mem.Write(addr, v)
}

// Push appends values to the input queue
func (vm *VM) Push(vals ...int64) {
	vm.queue = append(vm.queue, vals...)
}

// Pending returns the number of queued input values
func (vm *VM) Pending() int {
	return len(vm.queue)
}

// PC returns the program counter
func (vm *VM) PC() int64 {
	return vm.pc
}

// RelativeBase returns the relative base
func (vm *VM) RelativeBase() int64 {
	return vm.relBase
}

// Status returns the outcome of the last step
func (vm *VM) Status() Status {
	return vm.status
}

// Err returns the fault that terminated the VM, if any
func (vm *VM) Err() error {
	if vm.fault == nil {
		return nil
	}
	return vm.fault
}

// Steps returns the number of instructions executed so far
func (vm *VM) Steps() uint64 {
	return vm.steps
}

// SetTracer installs fn as instruction tracer, nil removes it
func (vm *VM) SetTracer(fn TraceFunc) {
	vm.trace = fn
}

// Clone returns an independent copy of the VM
func (vm *VM) Clone() *VM {
	c := *vm
	c.mem = vm.mem.clone()
	c.queue = append([]int64(nil), vm.queue...)
	if vm.fault != nil {
		f := *vm.fault
		c.fault = &f
	}
	return &c
}

// Run executes instructions until the VM halts, faults or needs input.
// A VM suspended with InputNeeded resumes where it stopped on the next call.
func (vm *VM) Run(in InputFunc, out OutputFunc) (Status, error) {
	return vm.RunLimit(in, out, 0)
}

// RunLimit is Run bounded to maxSteps executed instructions, 0 meaning no
// bound. Hitting the bound returns ErrStepLimit and leaves the VM resumable.
func (vm *VM) RunLimit(in InputFunc, out OutputFunc, maxSteps uint64) (Status, error) {
	start := vm.steps
	defer func() { metricsRunSteps.Update(int64(vm.steps - start)) }()

	for n := uint64(0); ; n++ {
		if maxSteps > 0 && n >= maxSteps {
			return Continue, ErrStepLimit
		}
		status, err := vm.Step(in, out)
		if status != Continue {
			return status, err
		}
	}
}

// Step decodes and executes the instruction at pc
func (vm *VM) Step(in InputFunc, out OutputFunc) (Status, error) {
	switch vm.status {
	case Halted:
		return Halted, nil
	case Faulted:
		return Faulted, vm.fault
	}

	word, err := vm.mem.Read(vm.pc)
	if err != nil {
		return vm.fail(&Fault{Err: err, Param: -1, Address: vm.pc})
	}
	inst, err := Decode(word)
	if err != nil {
		return vm.fail(err.(*Fault))
	}
	if vm.trace != nil {
		vm.trace(vm.pc, vm.relBase, inst)
	}

	// resolve every operand before touching memory, so a faulting
	// instruction leaves no partial write
	var args [maxParams]int64
	for i := 0; i < inst.Op.Params(); i++ {
		raw, err := vm.mem.Read(vm.pc + 1 + int64(i))
		if err != nil {
			return vm.fail(&Fault{Err: err, Word: word, Opcode: inst.Op, Param: i, Address: vm.pc + 1 + int64(i)})
		}
		if args[i], err = vm.operand(inst, i, raw); err != nil {
			return vm.fail(err.(*Fault))
		}
	}

	next := vm.pc + int64(inst.Len())
	switch inst.Op {
	case OPADD:
		vm.store(args[2], args[0]+args[1])

	case OPMUL:
		vm.store(args[2], args[0]*args[1])

	case OPINPUT:
		v, ok := vm.input(in)
		if !ok {
			vm.status = InputNeeded
			metricsSuspends.Inc(1)
			return InputNeeded, nil
		}
		vm.store(args[0], v)

	case OPOUTPUT:
		if out != nil {
			out(args[0])
		}

	case OPJNZ, OPJZ:
		if (args[0] != 0) == (inst.Op == OPJNZ) {
			if args[1] < 0 || args[1] >= int64(vm.mem.Len()) {
				return vm.fail(&Fault{Err: ErrInvalidJumpTarget, Word: word, Opcode: inst.Op,
					Param: 1, Mode: inst.Modes[1], Address: args[1]})
			}
			next = args[1]
		}

	case OPLESSTHAN:
		vm.store(args[2], boolWord(args[0] < args[1]))

	case OPEQUAL:
		vm.store(args[2], boolWord(args[0] == args[1]))

	case OPRELBASE:
		vm.relBase += args[0]

	case OPHALT:
		vm.status = Halted
		vm.steps++
		metricsSteps.Inc(1)
		metricsHalts.Inc(1)
		return Halted, nil
	}

	vm.pc = next
	vm.status = Continue
	vm.steps++
	metricsSteps.Inc(1)
	return Continue, nil
}

// operand resolves parameter i. Destination parameters resolve to their
// effective address, source parameters to their value.
func (vm *VM) operand(inst Instruction, i int, raw int64) (int64, error) {
	mode := inst.Modes[i]
	if mode == ModeImmediate {
		if inst.Op.writes(i) {
			return 0, &Fault{Err: ErrInvalidDestination, Word: inst.Word, Opcode: inst.Op, Param: i, Mode: mode}
		}
		return raw, nil
	}

	addr := raw
	if mode == ModeRelative {
		addr += vm.relBase
	}
	if err := checkAddress(addr); err != nil {
		return 0, &Fault{Err: err, Word: inst.Word, Opcode: inst.Op, Param: i, Mode: mode, Address: addr}
	}
	if inst.Op.writes(i) {
		return addr, nil
	}
	v, _ := vm.mem.Read(addr)
	return v, nil
}

// input pops the queue, falling back to in once
func (vm *VM) input(in InputFunc) (int64, bool) {
	if len(vm.queue) > 0 {
		v := vm.queue[0]
		vm.queue = vm.queue[1:]
		return v, true
	}
	if in == nil {
		return 0, false
	}
	return in()
}

// store writes to an address already validated by operand
func (vm *VM) store(addr, v int64) {
	vm.mem.Write(addr, v)
}

func (vm *VM) fail(f *Fault) (Status, error) {
	f.PC = vm.pc
	vm.status = Faulted
	vm.fault = f
	metricsFaults.Inc(1)
	logger.Debugf("vm faulted: %v", f)
	return Faulted, f
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
