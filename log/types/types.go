// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"sync"

	mate "github.com/heralight/logrus_mate"
)

// Fields is a set of structured key/value pairs attached to a log entry
type Fields map[string]interface{}

// Logger defines the intcode log functions
type Logger interface {
	SetLogLevel(level string)
	LogLevel() string
	WithFields(fields Fields) Logger
	Debugf(f string, v ...interface{})
	Debug(v ...interface{})
	Infof(f string, v ...interface{})
	Info(v ...interface{})
	Warnf(f string, v ...interface{})
	Warn(v ...interface{})
	Errorf(f string, v ...interface{})
	Error(v ...interface{})
	Fatalf(f string, v ...interface{})
	Fatal(v ...interface{})
	Panicf(f string, v ...interface{})
	Panic(v ...interface{})
}

// Config is the configuration of the logger, in logrus_mate layout:
//
//	level: debug
//	formatter:
//	    name: text
//	hooks:
//	    - name: file
//	      options:
//	          filename: intcode.log
type Config mate.LoggerConfig

type setupFunc func(*Config) error
type newLoggerFunc func(string) Logger

// LoggerEntry is a logger impl entry
type LoggerEntry struct {
	Setup     setupFunc
	NewLogger newLoggerFunc
}

var (
	mutex   sync.RWMutex
	loggers = map[string]*LoggerEntry{}
)

// Register registers a logger impl under name
func Register(name string, entry *LoggerEntry) {
	mutex.Lock()
	loggers[name] = entry
	mutex.Unlock()
}

func lookup(name string) (*LoggerEntry, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	if entry, ok := loggers[name]; ok {
		return entry, nil
	}
	return nil, fmt.Errorf("invalid logger: %s", name)
}

// Setup configures the logger impl registered as name
func Setup(name string, cfg *Config) error {
	entry, err := lookup(name)
	if err != nil {
		return err
	}
	return entry.Setup(cfg)
}

// NewLogger creates a tagged logger from the impl registered as name
func NewLogger(name, tag string) (Logger, error) {
	entry, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.NewLogger(tag), nil
}
