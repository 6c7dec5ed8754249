// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import "errors"

// error
var (

	// chain.go
	ErrNoPhases     = errors.New("Amplifier chain needs at least one phase")
	ErrChainStalled = errors.New("Amplifier chain stalled without output")
	ErrNoSignal     = errors.New("Last amplifier halted without output")

	// network.go
	ErrNoNodes        = errors.New("Network needs at least one node")
	ErrNodeHalted     = errors.New("Network node halted")
	ErrUnknownAddress = errors.New("Packet sent to unknown address")
	ErrNetworkClosed  = errors.New("Network closed")
	ErrRoundLimit     = errors.New("Network round limit reached")
)
