// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"time"

	"github.com/BOXFoundation/intcode/intcode"
	"github.com/BOXFoundation/intcode/log"
	"github.com/BOXFoundation/intcode/metrics"
)

var logger = log.NewLogger("host") // logger

var (
	metricsChainTimer    = metrics.NewTimer("intcode.host.chain")
	metricsPacketMeter   = metrics.NewMeter("intcode.host.packets")
	metricsNetworkRounds = metrics.NewGauge("intcode.host.network.rounds")
)

// Chain is a series of amplifiers running the same program. Every output of
// amplifier i is queued as input of amplifier i+1, and the last one feeds the
// first, so a program that keeps reading runs as a feedback loop.
type Chain struct {
	vms      []*intcode.VM
	maxSteps uint64
}

// NewChain builds one amplifier per phase, each seeded with its phase
func NewChain(prog *intcode.Program, phases []int64) (*Chain, error) {
	if len(phases) == 0 {
		return nil, ErrNoPhases
	}
	c := &Chain{vms: make([]*intcode.VM, len(phases))}
	for i, p := range phases {
		c.vms[i] = intcode.New(prog)
		c.vms[i].Push(p)
	}
	return c, nil
}

// SetMaxSteps bounds every resumption of an amplifier, 0 means no bound
func (c *Chain) SetMaxSteps(n uint64) {
	c.maxSteps = n
}

// Run feeds signal to the first amplifier and drives the chain round-robin
// until no amplifier waits for input. It returns the last value output by
// the last amplifier. An amplifier halting without output forwards nothing.
func (c *Chain) Run(signal int64) (int64, error) {
	defer metricsChainTimer.UpdateSince(time.Now())

	var (
		last    int64
		emitted bool
	)
	c.vms[0].Push(signal)
	for {
		suspended, outputs := 0, 0
		for i, vm := range c.vms {
			next := c.vms[(i+1)%len(c.vms)]
			final := i == len(c.vms)-1
			status, err := vm.RunLimit(intcode.NoInput, func(v int64) {
				next.Push(v)
				outputs++
				if final {
					last, emitted = v, true
				}
			}, c.maxSteps)
			if err != nil {
				return 0, fmt.Errorf("amplifier %d: %w", i, err)
			}
			if status == intcode.InputNeeded {
				suspended++
			}
		}
		if suspended == 0 {
			if !emitted {
				return 0, ErrNoSignal
			}
			return last, nil
		}
		if outputs == 0 {
			return 0, ErrChainStalled
		}
	}
}

// MaxSignal tries every ordering of phases and returns the highest signal
// and the ordering producing it. maxSteps bounds every resumption of an
// amplifier, 0 means no bound.
func MaxSignal(prog *intcode.Program, phases []int64, maxSteps uint64) (int64, []int64, error) {
	var (
		best     int64
		bestSeq  []int64
		firstErr error
	)
	permute(append([]int64(nil), phases...), func(seq []int64) bool {
		c, err := NewChain(prog, seq)
		if err != nil {
			firstErr = err
			return false
		}
		c.SetMaxSteps(maxSteps)
		signal, err := c.Run(0)
		if err != nil {
			firstErr = err
			return false
		}
		if bestSeq == nil || signal > best {
			best = signal
			bestSeq = append([]int64(nil), seq...)
		}
		return true
	})
	if firstErr != nil {
		return 0, nil, firstErr
	}
	logger.Debugf("max signal %d for phases %v", best, bestSeq)
	return best, bestSeq, nil
}

// permute calls fn with every permutation of seq (Heap's algorithm) until fn
// returns false.
func permute(seq []int64, fn func([]int64) bool) {
	var gen func(k int) bool
	gen = func(k int) bool {
		if k <= 1 {
			return fn(seq)
		}
		for i := 0; i < k-1; i++ {
			if !gen(k - 1) {
				return false
			}
			if k%2 == 0 {
				seq[i], seq[k-1] = seq[k-1], seq[i]
			} else {
				seq[0], seq[k-1] = seq[k-1], seq[0]
			}
		}
		return gen(k - 1)
	}
	gen(len(seq))
}
