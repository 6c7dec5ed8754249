// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	intcodecmd "github.com/BOXFoundation/intcode/commands/intcode"
)

func main() {
	intcodecmd.Execute()
}
