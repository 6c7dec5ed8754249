// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logruslog

import (
	"fmt"

	source "github.com/BOXFoundation/intcode/log/logrus/hooks/source"
	log "github.com/BOXFoundation/intcode/log/types"
	"github.com/heirko/go-contrib/logrusHelper"
	mate "github.com/heralight/logrus_mate"
	_ "github.com/heralight/logrus_mate/hooks/file" // file log hook
	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

var _ log.Logger = (*logrusLogger)(nil)

var defaultLogrusLogger = logrus.New()

// LoggerName is the name of the logger impl
const LoggerName = "logrus"

func init() {
	defaultLogrusLogger.AddHook(source.NewHook())

	log.Register(LoggerName, &log.LoggerEntry{
		Setup:     Setup,
		NewLogger: NewLogger,
	})
}

// Setup setups logrus logger. An unknown level keeps the current one;
// unregistered writers, formatters or hooks are errors.
func Setup(cfg *log.Config) (err error) {
	mcfg := mate.LoggerConfig(*cfg)
	if _, err := logrus.ParseLevel(mcfg.Level); err != nil {
		mcfg.Level = defaultLogrusLogger.Level.String()
	}
	if err := mcfg.Validate(); err != nil {
		return err
	}

	// logrusHelper panics when a registered hook fails to start
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("logrus setup: %v", r)
		}
	}()
	return logrusHelper.SetConfig(defaultLogrusLogger, mcfg)
}

// NewLogger creates a new logrus logger.
func NewLogger(tag string) log.Logger {
	return &logrusLogger{
		logger: defaultLogrusLogger,
		fields: logrus.Fields{"tag": tag},
	}
}

func (log *logrusLogger) entry() *logrus.Entry {
	return log.logger.WithFields(log.fields)
}

// WithFields returns a logger adding fields to every entry
func (log *logrusLogger) WithFields(fields log.Fields) log.Logger {
	merged := make(logrus.Fields, len(log.fields)+len(fields))
	for k, v := range log.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &logrusLogger{logger: log.logger, fields: merged}
}

// SetLogLevel is to set the log level
func (log *logrusLogger) SetLogLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.logger.SetLevel(lvl)
	}
}

// LogLevel returns the log level
func (log *logrusLogger) LogLevel() string {
	return log.logger.GetLevel().String()
}

// Debugf prints Debug level log
func (log *logrusLogger) Debugf(f string, v ...interface{}) {
	if log.logger.IsLevelEnabled(logrus.DebugLevel) {
		log.entry().Debugf(f, v...)
	}
}

// Debug prints Debug level log
func (log *logrusLogger) Debug(v ...interface{}) {
	log.entry().Debug(v...)
}

// Infof prints Info level log
func (log *logrusLogger) Infof(f string, v ...interface{}) {
	log.entry().Infof(f, v...)
}

// Info prints Info level log
func (log *logrusLogger) Info(v ...interface{}) {
	log.entry().Info(v...)
}

// Warnf prints Warn level log
func (log *logrusLogger) Warnf(f string, v ...interface{}) {
	log.entry().Warnf(f, v...)
}

// Warn prints Warn level log
func (log *logrusLogger) Warn(v ...interface{}) {
	log.entry().Warn(v...)
}

// Errorf prints Error level log
func (log *logrusLogger) Errorf(f string, v ...interface{}) {
	log.entry().Errorf(f, v...)
}

// Error prints Error level log
func (log *logrusLogger) Error(v ...interface{}) {
	log.entry().Error(v...)
}

// Fatalf prints Fatal level log
func (log *logrusLogger) Fatalf(f string, v ...interface{}) {
	log.entry().Fatalf(f, v...)
}

// Fatal prints Fatal level log
func (log *logrusLogger) Fatal(v ...interface{}) {
	log.entry().Fatal(v...)
}

// Panicf prints Panic level log
func (log *logrusLogger) Panicf(f string, v ...interface{}) {
	log.entry().Panicf(f, v...)
}

// Panic prints Panic level log
func (log *logrusLogger) Panic(v ...interface{}) {
	log.entry().Panic(v...)
}
