// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"io"
	"time"

	"github.com/BOXFoundation/intcode/log"
	logtypes "github.com/BOXFoundation/intcode/log/types"
	metrics "github.com/rcrowley/go-metrics"
)

var logger = log.NewLogger("metrics")

const (
	defaultInterval = 10 * time.Second
)

// printfLogger adapts a tagged logger to the go-metrics reporter
type printfLogger struct {
	logger logtypes.Logger
}

func (l printfLogger) Printf(format string, v ...interface{}) {
	l.logger.Infof(format, v...)
}

// Run metrics monitor. The registry is reported to the log every interval
// until the process exits.
func Run(config *Config) {
	if !config.Enable {
		return
	}
	interval := config.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	go metrics.Log(metrics.DefaultRegistry, interval, printfLogger{logger})
}

// WriteOnce writes a sorted dump of all registered metrics to w
func WriteOnce(w io.Writer) {
	metrics.WriteOnce(metrics.DefaultRegistry, w)
}

// Count returns the count of the counter name, 0 if it is not registered
func Count(name string) int64 {
	if c, ok := metrics.DefaultRegistry.Get(name).(metrics.Counter); ok {
		return c.Count()
	}
	return 0
}

// NewCounter create a new metrics Counter
func NewCounter(name string) metrics.Counter {
	return metrics.GetOrRegisterCounter(name, metrics.DefaultRegistry)
}

// NewMeter create a new metrics Meter
func NewMeter(name string) metrics.Meter {
	return metrics.GetOrRegisterMeter(name, metrics.DefaultRegistry)
}

// NewTimer create a new metrics Timer
func NewTimer(name string) metrics.Timer {
	return metrics.GetOrRegisterTimer(name, metrics.DefaultRegistry)
}

// NewGauge create a new metrics Gauge
func NewGauge(name string) metrics.Gauge {
	return metrics.GetOrRegisterGauge(name, metrics.DefaultRegistry)
}

// NewHistogramWithUniformSample create a new metrics History with Uniform Sample algorithm.
func NewHistogramWithUniformSample(name string, reservoirSize int) metrics.Histogram {
	return metrics.GetOrRegisterHistogram(name, nil, metrics.NewUniformSample(reservoirSize))
}
