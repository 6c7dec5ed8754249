// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package log

import (
	"sync"

	ll "github.com/BOXFoundation/intcode/log/logrus"
	log "github.com/BOXFoundation/intcode/log/types"
)

var (
	mutex     sync.Mutex
	loggerMap = map[string]log.Logger{}
)

// Setup loggers globally
func Setup(cfg *log.Config) error {
	return log.Setup(ll.LoggerName, cfg)
}

// NewLogger creates a new logger. Loggers are shared per tag.
func NewLogger(tag string) log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	if logger, ok := loggerMap[tag]; ok {
		return logger
	}
	newLogger, err := log.NewLogger(ll.LoggerName, tag)
	if err != nil {
		panic(err)
	}
	loggerMap[tag] = newLogger
	return newLogger
}

// SetLogLevel sets all loggers log level
func SetLogLevel(newLevel string) (ok bool) {
	mutex.Lock()
	defer mutex.Unlock()
	ok = true
	for _, logger := range loggerMap {
		originLevel := logger.LogLevel()
		logger.SetLogLevel(newLevel)
		currentLevel := logger.LogLevel()
		if currentLevel != newLevel {
			logger.Infof("Error setting log level from %s to %s", originLevel, newLevel)
			ok = false
		}
	}
	return
}
