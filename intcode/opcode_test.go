// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcode

import (
	"testing"

	"github.com/facebookgo/ensure"
)

func TestDecode(t *testing.T) {
	in, err := Decode(1002)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, in.Op, OPMUL)
	ensure.DeepEqual(t, in.Modes, [maxParams]Mode{ModePosition, ModeImmediate, ModePosition})
	ensure.DeepEqual(t, in.Len(), 4)

	in, err = Decode(21101)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, in.Op, OPADD)
	ensure.DeepEqual(t, in.Modes, [maxParams]Mode{ModeImmediate, ModeImmediate, ModeRelative})

	in, err = Decode(99)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, in.Op, OPHALT)
	ensure.DeepEqual(t, in.Len(), 1)
}

func TestDecodeIgnoresExtraModeDigits(t *testing.T) {
	// only the parameters of the opcode carry modes
	in, err := Decode(90004)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, in.Op, OPOUTPUT)
	ensure.DeepEqual(t, in.Modes[0], ModePosition)

	_, err = Decode(55599)
	ensure.Nil(t, err)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(42)
	f, ok := err.(*Fault)
	ensure.True(t, ok)
	ensure.DeepEqual(t, f.Err, ErrInvalidOpcode)
	ensure.DeepEqual(t, f.Opcode, OpCode(42))
	ensure.DeepEqual(t, f.Param, -1)

	_, err = Decode(0)
	ensure.DeepEqual(t, err.(*Fault).Err, ErrInvalidOpcode)

	_, err = Decode(3201)
	f = err.(*Fault)
	ensure.DeepEqual(t, f.Err, ErrInvalidMode)
	ensure.DeepEqual(t, f.Param, 1)
	ensure.DeepEqual(t, f.Mode, Mode(3))
}

func TestOpCodeString(t *testing.T) {
	ensure.DeepEqual(t, OPADD.String(), "OP_ADD")
	ensure.DeepEqual(t, OPRELBASE.String(), "OP_ARB")
	ensure.DeepEqual(t, OPHALT.String(), "OP_HALT")
	ensure.DeepEqual(t, OpCode(12).String(), "OP_UNKNOWN(12)")
	ensure.DeepEqual(t, OPJZ.Params(), 2)
	ensure.DeepEqual(t, OpCode(12).Params(), 0)
	ensure.True(t, OPINPUT.writes(0))
	ensure.False(t, OPOUTPUT.writes(0))
}
