// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"

	"github.com/BOXFoundation/intcode/intcode"
	"github.com/jbenet/goprocess"
)

// NATAddress is the destination of packets handled by the NAT
const NATAddress = 255

// idleInput is delivered to a node with no pending packet
const idleInput = -1

// NATMode selects when a network run ends
type NATMode int

// nat modes
const (
	// FirstNAT ends on the first packet sent to the NAT
	FirstNAT NATMode = iota
	// IdleNAT makes the NAT wake node 0 with its last packet whenever the
	// network is idle, and ends when the same Y is delivered twice in a row
	IdleNAT
)

// Packet is a (x, y) pair sent to a node address
type Packet struct {
	Dst  int64
	X, Y int64
}

// Network is a packet network of nodes running the same program. Node i is
// booted with its address i. Nodes send packets as three consecutive outputs
// (dst, x, y) and read packets as two consecutive inputs, or -1 when nothing
// is pending.
type Network struct {
	nodes     []*intcode.VM
	inbox     [][]int64
	outbox    [][]int64
	mode      NATMode
	maxSteps  uint64
	maxRounds int

	nat     *Packet
	lastY   *int64
	rounds  int
	packets int
}

// NewNetwork boots n nodes from prog
func NewNetwork(prog *intcode.Program, n int, mode NATMode) (*Network, error) {
	if n <= 0 {
		return nil, ErrNoNodes
	}
	net := &Network{
		nodes:  make([]*intcode.VM, n),
		inbox:  make([][]int64, n),
		outbox: make([][]int64, n),
		mode:   mode,
	}
	for i := range net.nodes {
		net.nodes[i] = intcode.New(prog)
		net.nodes[i].Push(int64(i))
	}
	return net, nil
}

// SetMaxSteps bounds every resumption of a node, 0 means no bound
func (net *Network) SetMaxSteps(n uint64) {
	net.maxSteps = n
}

// SetMaxRounds bounds the number of scheduling rounds, 0 means no bound
func (net *Network) SetMaxRounds(n int) {
	net.maxRounds = n
}

// Rounds returns the number of scheduling rounds run so far
func (net *Network) Rounds() int {
	return net.rounds
}

// Packets returns the number of packets routed so far, NAT packets included
func (net *Network) Packets() int {
	return net.packets
}

// Run drives the nodes round-robin until the NAT condition of the mode is
// met, a node fails, or proc is closing.
func (net *Network) Run(proc goprocess.Process) (int64, error) {
	for {
		select {
		case <-proc.Closing():
			return 0, ErrNetworkClosed
		default:
		}
		if net.maxRounds > 0 && net.rounds >= net.maxRounds {
			return 0, ErrRoundLimit
		}
		net.rounds++
		metricsNetworkRounds.Update(int64(net.rounds))

		for idx := range net.nodes {
			y, done, err := net.runNode(idx)
			if err != nil || done {
				return y, err
			}
		}

		if net.mode == IdleNAT && net.idle() && net.nat != nil {
			y := net.nat.Y
			if net.lastY != nil && *net.lastY == y {
				logger.Debugf("nat delivered y %d twice after %d rounds", y, net.rounds)
				return y, nil
			}
			net.inbox[0] = append(net.inbox[0], net.nat.X, net.nat.Y)
			net.lastY = &y
		}
	}
}

// runNode resumes one node and routes the packets it sent
func (net *Network) runNode(idx int) (int64, bool, error) {
	node := net.nodes[idx]
	if len(net.inbox[idx]) == 0 {
		node.Push(idleInput)
	} else {
		node.Push(net.inbox[idx]...)
		net.inbox[idx] = net.inbox[idx][:0]
	}

	status, err := node.RunLimit(intcode.NoInput, func(v int64) {
		net.outbox[idx] = append(net.outbox[idx], v)
	}, net.maxSteps)
	if err != nil {
		return 0, false, fmt.Errorf("node %d: %w", idx, err)
	}
	if status == intcode.Halted {
		return 0, false, fmt.Errorf("node %d: %w", idx, ErrNodeHalted)
	}

	out := net.outbox[idx]
	for len(out) >= 3 {
		p := Packet{Dst: out[0], X: out[1], Y: out[2]}
		out = out[3:]
		net.packets++
		metricsPacketMeter.Mark(1)

		switch {
		case p.Dst == NATAddress:
			if net.mode == FirstNAT {
				return p.Y, true, nil
			}
			net.nat = &p
		case p.Dst >= 0 && p.Dst < int64(len(net.nodes)):
			net.inbox[p.Dst] = append(net.inbox[p.Dst], p.X, p.Y)
		default:
			return 0, false, fmt.Errorf("node %d: %w %d", idx, ErrUnknownAddress, p.Dst)
		}
	}
	net.outbox[idx] = append(net.outbox[idx][:0], out...)
	return 0, false, nil
}

func (net *Network) idle() bool {
	for _, q := range net.inbox {
		if len(q) > 0 {
			return false
		}
	}
	return true
}
