package coretest

import (
	"github.com/yandex/logcast/core"
)

// RecordLogger records every logged message.
type RecordLogger struct {
	Messages []string
	Err      error
}

var _ core.Logger = &RecordLogger{}

func (l *RecordLogger) Log(message string) error {
	l.Messages = append(l.Messages, message)
	return l.Err
}

// NewFailingLogger returns logger, that records messages, but fails every Log call with err.
func NewFailingLogger(err error) *RecordLogger {
	return &RecordLogger{Err: err}
}

// PanicLogger panics with Value on every Log call.
type PanicLogger struct {
	Value interface{}
}

var _ core.Logger = PanicLogger{}

func (l PanicLogger) Log(string) error {
	panic(l.Value)
}

// LoggerFunc is adapter to allow use ordinary funcs as core.Logger.
type LoggerFunc func(message string) error

var _ core.Logger = LoggerFunc(nil)

func (f LoggerFunc) Log(message string) error { return f(message) }
