// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"bytes"
	"testing"

	"github.com/facebookgo/ensure"
)

func TestCounter(t *testing.T) {
	c := NewCounter("test.counter")
	ensure.True(t, c == NewCounter("test.counter"))

	before := Count("test.counter")
	c.Inc(3)
	ensure.DeepEqual(t, Count("test.counter"), before+3)
	ensure.DeepEqual(t, Count("test.missing"), int64(0))
}

func TestWriteOnce(t *testing.T) {
	NewCounter("test.dump").Inc(1)
	NewGauge("test.gauge").Update(7)

	var buf bytes.Buffer
	WriteOnce(&buf)
	ensure.StringContains(t, buf.String(), "counter test.dump")
	ensure.StringContains(t, buf.String(), "gauge test.gauge")
}

func TestRunDisabled(t *testing.T) {
	Run(&Config{})
}
