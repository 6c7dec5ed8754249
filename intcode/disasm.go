// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"fmt"
	"strings"
)

// Disasm disassembles prog in human readable format, one instruction per line.
// Words that fail to decode are rendered as '[Error: error info]' and
// disassembly goes on at the next word.
func Disasm(prog *Program) string {
	return disasm(prog.words)
}

// Disasm disassembles the current memory of the VM
func (vm *VM) Disasm() string {
	return disasm(vm.mem.cells)
}

func disasm(words []int64) string {
	var lines []string
	for pc := 0; pc < len(words); {
		line, n := disasmAt(words, pc)
		lines = append(lines, fmt.Sprintf("%04d  %s", pc, line))
		pc += n
	}
	return strings.Join(lines, "\n")
}

// disasmAt renders the instruction at pc and returns its length
func disasmAt(words []int64, pc int) (string, int) {
	inst, err := Decode(words[pc])
	if err != nil {
		return fmt.Sprintf("%d [Error: %v]", words[pc], err.(*Fault).Err), 1
	}

	str := []string{inst.Op.String()}
	for i := 0; i < inst.Op.Params(); i++ {
		if pc+1+i >= len(words) {
			str = append(str, "?")
			continue
		}
		str = append(str, formatOperand(inst.Modes[i], words[pc+1+i]))
	}
	return strings.Join(str, " "), inst.Len()
}

func formatOperand(mode Mode, raw int64) string {
	switch mode {
	case ModeImmediate:
		return fmt.Sprintf("%d", raw)
	case ModeRelative:
		if raw < 0 {
			return fmt.Sprintf("[rb%d]", raw)
		}
		return fmt.Sprintf("[rb+%d]", raw)
	default:
		return fmt.Sprintf("[%d]", raw)
	}
}
