// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import "fmt"

// OpCode enum
type OpCode int64

// Intcode opcodes, the low two decimal digits of an instruction word
const (
	OPADD      OpCode = 1  // a b dst
	OPMUL      OpCode = 2  // a b dst
	OPINPUT    OpCode = 3  // dst
	OPOUTPUT   OpCode = 4  // a
	OPJNZ      OpCode = 5  // cond target
	OPJZ       OpCode = 6  // cond target
	OPLESSTHAN OpCode = 7  // a b dst
	OPEQUAL    OpCode = 8  // a b dst
	OPRELBASE  OpCode = 9  // a
	OPHALT     OpCode = 99 //
)

// Mode is the addressing discipline of one parameter
type Mode int8

// parameter modes
const (
	ModePosition  Mode = 0
	ModeImmediate Mode = 1
	ModeRelative  Mode = 2
)

// maxParams is the parameter count of the widest instruction
const maxParams = 3

// opInfo describes the shape of an opcode
type opInfo struct {
	name string
	len  int // in words, including the opcode word
	dst  int // index of the destination parameter, -1 if none
}

var opTable = map[OpCode]opInfo{
	OPADD:      {"ADD", 4, 2},
	OPMUL:      {"MUL", 4, 2},
	OPINPUT:    {"IN", 2, 0},
	OPOUTPUT:   {"OUT", 2, -1},
	OPJNZ:      {"JNZ", 3, -1},
	OPJZ:       {"JZ", 3, -1},
	OPLESSTHAN: {"LT", 4, 2},
	OPEQUAL:    {"EQ", 4, 2},
	OPRELBASE:  {"ARB", 2, -1},
	OPHALT:     {"HALT", 1, -1},
}

// Valid reports whether op belongs to the instruction set
func (op OpCode) Valid() bool {
	_, ok := opTable[op]
	return ok
}

// Len returns the instruction length in words, 0 for unknown opcodes
func (op OpCode) Len() int {
	return opTable[op].len
}

// Params returns the number of parameters taken by op
func (op OpCode) Params() int {
	if l := op.Len(); l > 0 {
		return l - 1
	}
	return 0
}

// writes reports whether parameter i of op is a destination
func (op OpCode) writes(i int) bool {
	info, ok := opTable[op]
	return ok && info.dst == i
}

func (op OpCode) String() string {
	if info, ok := opTable[op]; ok {
		return "OP_" + info.name
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", int64(op))
}

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int8(m))
}

// Instruction is decoded fresh from the word at pc on every step
type Instruction struct {
	Word  int64
	Op    OpCode
	Modes [maxParams]Mode
}

// Len returns the length of the instruction in words
func (in Instruction) Len() int {
	return in.Op.Len()
}

// Decode extracts the opcode and the parameter modes of one instruction word.
// Mode digits beyond the parameter count of the opcode are ignored.
func Decode(word int64) (Instruction, error) {
	in := Instruction{Word: word, Op: OpCode(word % 100)}
	if !in.Op.Valid() {
		return in, &Fault{Err: ErrInvalidOpcode, Word: word, Opcode: in.Op, Param: -1}
	}

	div := int64(100)
	for i := 0; i < in.Op.Params(); i++ {
		m := Mode(word / div % 10)
		if m != ModePosition && m != ModeImmediate && m != ModeRelative {
			return in, &Fault{Err: ErrInvalidMode, Word: word, Opcode: in.Op, Param: i, Mode: m}
		}
		in.Modes[i] = m
		div *= 10
	}
	return in, nil
}
