// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"testing"

	"github.com/BOXFoundation/intcode/intcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *intcode.Program {
	prog, err := intcode.ParseProgram(text)
	require.NoError(t, err)
	return prog
}

func TestChainSinglePass(t *testing.T) {
	tests := []struct {
		prog   string
		phases []int64
		want   int64
	}{
		{"3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", []int64{4, 3, 2, 1, 0}, 43210},
		{"3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0", []int64{0, 1, 2, 3, 4}, 54321},
		{"3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0", []int64{1, 0, 4, 3, 2}, 65210},
	}
	for _, tt := range tests {
		c, err := NewChain(mustParse(t, tt.prog), tt.phases)
		require.NoError(t, err)
		got, err := c.Run(0)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestChainFeedback(t *testing.T) {
	prog := mustParse(t, "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	c, err := NewChain(prog, []int64{9, 8, 7, 6, 5})
	require.NoError(t, err)
	got, err := c.Run(0)
	require.NoError(t, err)
	assert.Equal(t, int64(139629729), got)
}

func TestMaxSignal(t *testing.T) {
	prog := mustParse(t, "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	best, seq, err := MaxSignal(prog, []int64{0, 1, 2, 3, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(43210), best)
	assert.Equal(t, []int64{4, 3, 2, 1, 0}, seq)

	prog = mustParse(t, "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	best, seq, err = MaxSignal(prog, []int64{5, 6, 7, 8, 9}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(139629729), best)
	assert.Equal(t, []int64{9, 8, 7, 6, 5}, seq)
}

func TestChainErrors(t *testing.T) {
	_, err := NewChain(mustParse(t, "99"), nil)
	assert.Equal(t, ErrNoPhases, err)

	// reads twice, never writes
	c, err := NewChain(mustParse(t, "3,9,3,9,3,9,99"), []int64{1, 2})
	require.NoError(t, err)
	_, err = c.Run(0)
	assert.Equal(t, ErrChainStalled, err)

	c, err = NewChain(mustParse(t, "3,9,3,9,42"), []int64{1})
	require.NoError(t, err)
	_, err = c.Run(0)
	assert.True(t, errors.Is(err, intcode.ErrInvalidOpcode))

	// infinite loop bounded by the step limit
	c, err = NewChain(mustParse(t, "3,9,3,9,1105,1,4"), []int64{1})
	require.NoError(t, err)
	c.SetMaxSteps(100)
	_, err = c.Run(0)
	assert.True(t, errors.Is(err, intcode.ErrStepLimit))
}

func TestMaxSignalStepLimit(t *testing.T) {
	// reads phase and signal, then spins
	prog := mustParse(t, "3,9,3,9,1105,1,4")
	_, _, err := MaxSignal(prog, []int64{0, 1}, 100)
	assert.True(t, errors.Is(err, intcode.ErrStepLimit))
}

// gated reads its phase and halts at once when it is 0, otherwise it
// outputs its input plus one
const gated = "3,20,1005,20,7,99,99,3,21,101,1,21,21,4,21,99"

func TestChainSilentHalt(t *testing.T) {
	c, err := NewChain(mustParse(t, gated), []int64{1, 1})
	require.NoError(t, err)
	got, err := c.Run(5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	// the second amplifier never sees the first one's input
	c, err = NewChain(mustParse(t, gated), []int64{0, 1})
	require.NoError(t, err)
	_, err = c.Run(5)
	assert.Equal(t, ErrChainStalled, err)

	// the first amplifier's output is not reported as the chain's result
	c, err = NewChain(mustParse(t, gated), []int64{1, 0})
	require.NoError(t, err)
	_, err = c.Run(5)
	assert.Equal(t, ErrNoSignal, err)
}

func TestPermute(t *testing.T) {
	seen := map[[3]int64]bool{}
	permute([]int64{1, 2, 3}, func(seq []int64) bool {
		seen[[3]int64{seq[0], seq[1], seq[2]}] = true
		return true
	})
	assert.Len(t, seen, 6)

	calls := 0
	permute([]int64{1, 2, 3, 4}, func([]int64) bool {
		calls++
		return calls < 5
	})
	assert.Equal(t, 5, calls)
}
