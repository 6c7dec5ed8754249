// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	yaml "gopkg.in/yaml.v2"
)

// snapshot encodings
const (
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// snapshot errors
var (
	ErrFaultedSnapshot = errors.New("Cannot snapshot a faulted vm")
	ErrInvalidSnapshot = errors.New("Invalid snapshot")
)

// Snapshot is the complete resumable state of a VM
type Snapshot struct {
	PC           int64   `yaml:"pc" cbor:"1,keyasint"`
	RelativeBase int64   `yaml:"relative_base" cbor:"2,keyasint"`
	Halted       bool    `yaml:"halted" cbor:"3,keyasint"`
	Suspended    bool    `yaml:"suspended" cbor:"7,keyasint"`
	Steps        uint64  `yaml:"steps" cbor:"4,keyasint"`
	Queue        []int64 `yaml:"queue,flow" cbor:"5,keyasint"`
	Memory       []int64 `yaml:"memory,flow" cbor:"6,keyasint"`
}

// Snapshot captures the state of the VM. Faulted VMs are terminal and
// cannot be captured.
func (vm *VM) Snapshot() (*Snapshot, error) {
	if vm.status == Faulted {
		return nil, ErrFaultedSnapshot
	}
	return &Snapshot{
		PC:           vm.pc,
		RelativeBase: vm.relBase,
		Halted:       vm.status == Halted,
		Suspended:    vm.status == InputNeeded,
		Steps:        vm.steps,
		Queue:        append([]int64{}, vm.queue...),
		Memory:       vm.mem.Cells(),
	}, nil
}

// Restore builds a VM from a snapshot
func Restore(s *Snapshot) (*VM, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidSnapshot)
	}
	if s.PC < 0 {
		return nil, fmt.Errorf("%w: %v %d", ErrInvalidSnapshot, ErrNegativeAddress, s.PC)
	}
	vm := &VM{
		mem:     newMemory(s.Memory),
		pc:      s.PC,
		relBase: s.RelativeBase,
		queue:   append([]int64(nil), s.Queue...),
		steps:   s.Steps,
	}
	switch {
	case s.Halted:
		vm.status = Halted
	case s.Suspended:
		vm.status = InputNeeded
	}
	return vm, nil
}

// FormatOf picks the snapshot encoding from a file name
func FormatOf(path string) string {
	if strings.ToLower(filepath.Ext(path)) == "."+FormatCBOR {
		return FormatCBOR
	}
	return FormatYAML
}

// Encode serializes the snapshot with the given format
func (s *Snapshot) Encode(format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatCBOR:
		return cbor.Marshal(s)
	}
	return nil, fmt.Errorf("unknown snapshot format %s", format)
}

// DecodeSnapshot deserializes a snapshot encoded with the given format
func DecodeSnapshot(format string, data []byte) (*Snapshot, error) {
	s := new(Snapshot)
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, s)
	case FormatCBOR:
		err = cbor.Unmarshal(data, s)
	default:
		err = fmt.Errorf("unknown snapshot format %s", format)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
