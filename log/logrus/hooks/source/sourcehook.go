// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxDepth bounds the frames walked to get out of logging code
const maxDepth = 16

type logrusSourceHook struct {
	Field     string
	Skip      int
	levels    []logrus.Level
	Formatter func(file, function string, line int) string
}

func (hook *logrusSourceHook) Levels() []logrus.Level {
	return hook.levels
}

func (hook *logrusSourceHook) Fire(entry *logrus.Entry) error {
	entry.Data[hook.Field] = hook.Formatter(findCaller(hook.Skip))
	return nil
}

// NewHook creates logrus source hook which will print source filename and line number
func NewHook(levels ...logrus.Level) logrus.Hook {
	hook := logrusSourceHook{
		Field:  "source",
		Skip:   4,
		levels: levels,
		Formatter: func(file, function string, line int) string {
			return fmt.Sprintf("%s:%d", file, line)
		},
	}
	if len(hook.levels) == 0 {
		hook.levels = logrus.AllLevels
	}

	return &hook
}

// isLogFrame reports whether a frame belongs to logrus or to our log wrappers
func isLogFrame(file, function string) bool {
	return strings.Contains(file, "logrus") ||
		strings.Contains(function, "intcode/log.") ||
		strings.Contains(function, "intcode/log/")
}

func findCaller(skip int) (string, string, int) {
	var (
		file     string
		function string
		line     int
	)
	for i := 0; i < maxDepth; i++ {
		var pc uintptr
		pc, file, line = getCaller(skip + i)
		if pc == 0 {
			break
		}
		function = funcName(pc)
		if !isLogFrame(file, function) {
			break
		}
	}
	return file, function, line
}

func funcName(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	return frame.Function
}

func getCaller(skip int) (uintptr, string, int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return 0, "", 0
	}

	// keep the last two path elements
	n := 0
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			n++
			if n >= 2 {
				file = file[i+1:]
				break
			}
		}
	}

	return pc, file, line
}
