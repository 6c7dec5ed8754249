// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package run

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/BOXFoundation/intcode/intcode"
	"github.com/facebookgo/ensure"
)

func TestExecuteSaveResume(t *testing.T) {
	dir, err := ioutil.TempDir("", "intcode-run")
	ensure.Nil(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"state.yaml", "state.cbor"} {
		saveFile = filepath.Join(dir, name)

		// adds two inputs
		prog, err := intcode.ParseProgram("3,11,3,12,1,11,12,13,4,13,99")
		ensure.Nil(t, err)
		vm := intcode.New(prog)
		vm.Push(40)

		var out bytes.Buffer
		ensure.Nil(t, execute(vm, 0, &out))
		ensure.DeepEqual(t, out.String(), "")

		resumed, err := load(saveFile)
		ensure.Nil(t, err)
		ensure.DeepEqual(t, resumed.PC(), int64(2))
		ensure.DeepEqual(t, resumed.Status(), intcode.InputNeeded)
		resumed.Push(2)
		ensure.Nil(t, execute(resumed, 0, &out))
		ensure.DeepEqual(t, out.String(), "42\n")
		ensure.DeepEqual(t, resumed.Status(), intcode.Halted)
	}
	saveFile = ""
}

func TestExecuteFault(t *testing.T) {
	prog, err := intcode.ParseProgram("104,7,42")
	ensure.Nil(t, err)
	var out bytes.Buffer
	err = execute(intcode.New(prog), 0, &out)
	ensure.NotNil(t, err)
	ensure.DeepEqual(t, out.String(), "7\n")
}

func TestExecuteStepLimit(t *testing.T) {
	prog, err := intcode.ParseProgram("1105,1,0")
	ensure.Nil(t, err)
	vm := intcode.New(prog)
	ensure.Nil(t, execute(vm, 10, ioutil.Discard))
	ensure.DeepEqual(t, vm.Steps(), uint64(10))
}
