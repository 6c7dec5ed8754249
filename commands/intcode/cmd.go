// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intcodecmd

import (
	"fmt"
	"os"

	_ "github.com/BOXFoundation/intcode/commands/intcode/amplify" // init amplify cmd
	_ "github.com/BOXFoundation/intcode/commands/intcode/console" // init console cmd
	_ "github.com/BOXFoundation/intcode/commands/intcode/disasm"  // init disasm cmd
	_ "github.com/BOXFoundation/intcode/commands/intcode/network" // init network cmd
	root "github.com/BOXFoundation/intcode/commands/intcode/root"
	_ "github.com/BOXFoundation/intcode/commands/intcode/run" // init run cmd
)

// Execute is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := root.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
