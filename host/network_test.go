// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"testing"

	"github.com/BOXFoundation/intcode/intcode"
	"github.com/jbenet/goprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// natSender reads its address a, sends (255, a, a+1000) and then keeps
// reading its input forever.
const natSender = "3,100,104,255,4,100,1001,100,1000,101,4,101,3,102,1105,1,12"

// relay reads its address a and forwards its first packet (x, y) to the NAT
// as (x, y+a), then idles.
const relay = "3,100,1008,100,0,103,1006,103,20,104,1,104,7,104,8,3,102,1105,1,15," +
	"3,101,1007,101,0,103,1005,103,20,3,102,1,102,100,102,104,255,4,101,4,102,3,103,1105,1,41"

func TestNetworkFirstNAT(t *testing.T) {
	net, err := NewNetwork(mustParse(t, natSender), 3, FirstNAT)
	require.NoError(t, err)
	y, err := net.Run(goprocess.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), y)
	assert.Equal(t, 1, net.Rounds())
}

func TestNetworkIdleNAT(t *testing.T) {
	net, err := NewNetwork(mustParse(t, natSender), 3, IdleNAT)
	require.NoError(t, err)
	y, err := net.Run(goprocess.Background())
	require.NoError(t, err)
	// the last node to talk to the NAT is node 2
	assert.Equal(t, int64(1002), y)
	assert.Equal(t, 2, net.Rounds())
	assert.Equal(t, 3, net.Packets())
}

func TestNetworkRouting(t *testing.T) {
	// node 0 sends (7, 8) to node 1, node 1 forwards it to the NAT as (7, 9)
	net, err := NewNetwork(mustParse(t, relay), 2, FirstNAT)
	require.NoError(t, err)
	net.SetMaxRounds(10)
	y, err := net.Run(goprocess.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), y)
	assert.Equal(t, 2, net.Packets())
}

func TestNetworkErrors(t *testing.T) {
	_, err := NewNetwork(mustParse(t, natSender), 0, FirstNAT)
	assert.Equal(t, ErrNoNodes, err)

	net, err := NewNetwork(mustParse(t, "104,7,104,1,104,2,3,100,1105,1,6"), 2, FirstNAT)
	require.NoError(t, err)
	_, err = net.Run(goprocess.Background())
	assert.True(t, errors.Is(err, ErrUnknownAddress))

	net, err = NewNetwork(mustParse(t, "3,100,99"), 2, FirstNAT)
	require.NoError(t, err)
	_, err = net.Run(goprocess.Background())
	assert.True(t, errors.Is(err, ErrNodeHalted))

	net, err = NewNetwork(mustParse(t, "3,100,3,101,1105,1,2"), 2, IdleNAT)
	require.NoError(t, err)
	net.SetMaxRounds(5)
	_, err = net.Run(goprocess.Background())
	assert.Equal(t, ErrRoundLimit, err)

	net, err = NewNetwork(mustParse(t, "3,100,1105,1,2"), 1, FirstNAT)
	require.NoError(t, err)
	net.SetMaxSteps(50)
	_, err = net.Run(goprocess.Background())
	assert.True(t, errors.Is(err, intcode.ErrStepLimit))
}

func TestNetworkClosed(t *testing.T) {
	net, err := NewNetwork(mustParse(t, natSender), 2, IdleNAT)
	require.NoError(t, err)

	proc := goprocess.WithParent(goprocess.Background())
	require.NoError(t, proc.Close())
	_, err = net.Run(proc)
	assert.Equal(t, ErrNetworkClosed, err)
	assert.Equal(t, 0, net.Rounds())
}
