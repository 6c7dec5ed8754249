// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"errors"
	"fmt"
)

// error
var (

	// program.go
	ErrLoad = errors.New("Malformed program text")

	// vm.go
	ErrInvalidOpcode      = errors.New("Invalid opcode")
	ErrInvalidMode        = errors.New("Invalid parameter mode")
	ErrInvalidDestination = errors.New("Immediate mode used for destination parameter")
	ErrNegativeAddress    = errors.New("Negative memory address")
	ErrAddressOutOfRange  = errors.New("Memory address beyond memory limit")
	ErrInvalidJumpTarget  = errors.New("Jump target out of memory bound")
	ErrStepLimit          = errors.New("Step limit reached")
)

// LoadError reports a token of program text that is not a base-10 integer.
type LoadError struct {
	Index int    // zero-based token index
	Token string // offending token, trimmed
	Cause error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: token %d %q: %v", ErrLoad, e.Index, e.Token, e.Cause)
	}
	return fmt.Sprintf("%v: token %d %q", ErrLoad, e.Index, e.Token)
}

// Unwrap makes errors.Is(err, ErrLoad) hold for every LoadError.
func (e *LoadError) Unwrap() error {
	return ErrLoad
}

// Fault is an unrecoverable execution error. It terminates the VM instance
// and carries the context needed by a host to decide how to react.
type Fault struct {
	Err     error  // one of the execution sentinels above
	PC      int64  // address of the faulting instruction
	Word    int64  // raw instruction word at PC
	Opcode  OpCode // decoded opcode, or Word mod 100 when undecodable
	Param   int    // zero-based parameter index, -1 if not parameter specific
	Mode    Mode   // mode digit of Param
	Address int64  // offending address or jump target
}

func (f *Fault) Error() string {
	switch f.Err {
	case ErrInvalidOpcode:
		return fmt.Sprintf("%v %d at pc %d (word %d)", f.Err, f.Opcode, f.PC, f.Word)
	case ErrInvalidMode, ErrInvalidDestination:
		return fmt.Sprintf("%v %d for parameter %d of %s at pc %d (word %d)",
			f.Err, f.Mode, f.Param, f.Opcode, f.PC, f.Word)
	case ErrNegativeAddress, ErrAddressOutOfRange, ErrInvalidJumpTarget:
		return fmt.Sprintf("%v %d in %s at pc %d (word %d)", f.Err, f.Address, f.Opcode, f.PC, f.Word)
	default:
		return fmt.Sprintf("%v at pc %d (word %d)", f.Err, f.PC, f.Word)
	}
}

// Unwrap returns the fault sentinel.
func (f *Fault) Unwrap() error {
	return f.Err
}
