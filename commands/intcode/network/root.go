// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"

	"github.com/BOXFoundation/intcode/commands/intcode/common"
	root "github.com/BOXFoundation/intcode/commands/intcode/root"
	"github.com/BOXFoundation/intcode/host"
	"github.com/BOXFoundation/intcode/log"
	"github.com/spf13/cobra"
)

var logger = log.NewLogger("network")

var (
	nodes     int
	idle      bool
	maxRounds int
)

// networkCmd runs a packet network
var networkCmd = &cobra.Command{
	Use:   "network [program]",
	Short: "Run a packet network of intcode nodes and report the NAT result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer common.PrintStats()
		env, err := common.Setup()
		if err != nil {
			return err
		}
		prog, err := env.Loader.LoadFile(args[0])
		if err != nil {
			return err
		}

		mode := host.FirstNAT
		if idle {
			mode = host.IdleNAT
		}
		net, err := host.NewNetwork(prog, nodes, mode)
		if err != nil {
			return err
		}
		net.SetMaxSteps(env.Cfg.VM.MaxSteps)
		net.SetMaxRounds(maxRounds)

		proc := common.InterruptProcess()
		defer proc.Close()

		y, err := net.Run(proc)
		logger.Infof("%d rounds, %d packets", net.Rounds(), net.Packets())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), y)
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(networkCmd)

	networkCmd.Flags().IntVar(&nodes, "nodes", 50, "number of nodes")
	networkCmd.Flags().BoolVar(&idle, "idle", false, "let the NAT wake the network until it repeats itself")
	networkCmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "maximum scheduling rounds, 0 for no limit")
}
