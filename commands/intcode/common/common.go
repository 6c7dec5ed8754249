// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package common

import (
	"os"
	"os/signal"
	"strings"

	"github.com/BOXFoundation/intcode/config"
	"github.com/BOXFoundation/intcode/intcode"
	"github.com/BOXFoundation/intcode/log"
	logtypes "github.com/BOXFoundation/intcode/log/types"
	"github.com/BOXFoundation/intcode/metrics"
	"github.com/jbenet/goprocess"
	"github.com/spf13/viper"
)

var logger = log.NewLogger("cmd")

// Env is what every subcommand needs to run programs
type Env struct {
	Cfg    *config.Config
	Loader *intcode.Loader
}

// Setup reads the config from viper and sets up logging, metrics and the
// program loader.
func Setup() (*Env, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := log.Setup(&cfg.Log); err != nil {
		return nil, err
	}
	metrics.Run(&cfg.Metrics)

	loader, err := intcode.NewLoader(cfg.Loader.CacheSize)
	if err != nil {
		return nil, err
	}
	logger.Debugf("config: %v", cfg)
	return &Env{Cfg: cfg, Loader: loader}, nil
}

// NewVM loads the program at path and builds a VM with the configured tracer
func (e *Env) NewVM(path string) (*intcode.VM, error) {
	prog, err := e.Loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	vm := intcode.New(prog)
	e.Instrument(vm)
	return vm, nil
}

// Instrument installs the tracer on vm if tracing is enabled
func (e *Env) Instrument(vm *intcode.VM) {
	if e.Cfg.VM.Trace {
		vm.SetTracer(Tracer(logger))
	}
}

// Tracer returns a trace function logging every instruction to l
func Tracer(l logtypes.Logger) intcode.TraceFunc {
	return func(pc, relBase int64, in intcode.Instruction) {
		l.WithFields(logtypes.Fields{
			"pc":   pc,
			"rb":   relBase,
			"word": in.Word,
		}).Infof("%s", in.Op)
	}
}

// ParseInts parses a comma-separated list of integers, empty for ""
func ParseInts(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	prog, err := intcode.ParseProgram(s)
	if err != nil {
		return nil, err
	}
	return prog.Words(), nil
}

// PrintStats dumps the vm metrics if requested with --stats
func PrintStats() {
	if viper.GetBool("stats") {
		metrics.WriteOnce(os.Stderr)
	}
}

// InterruptProcess returns a process closed when the program receives
// an interrupt signal (Ctrl+C).
func InterruptProcess() goprocess.Process {
	proc := goprocess.WithParent(goprocess.Background())

	// interruptSignals defines the default signals to catch in order to do a proper
	// shutdown.  This may be modified during init depending on the platform.
	var interruptSignals = []os.Signal{os.Interrupt}

	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)
		defer signal.Stop(interruptChannel)

		select {
		case sig := <-interruptChannel:
			logger.Infof("Received signal (%s). Shutting down...", sig)
			proc.Close()
		case <-proc.Closing():
		}
	}()
	return proc
}
