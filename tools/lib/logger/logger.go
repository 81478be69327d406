// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger provides leveled logging carried through a context.Context.
package logger

import (
	"context"
	"fmt"
	"io"
	goLog "log"
	"os"

	"go.fuchsia.dev/tracetool/tools/lib/color"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx that carries logger.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the context logger if configured, otherwise nil.
func LoggerFromContext(ctx context.Context) *Logger {
	if v, ok := ctx.Value(loggerKey{}).(*Logger); ok && v != nil {
		return v
	}
	return nil
}

// LogLevel represents different levels for logging depending on the amount of detail wanted.
// It implements flag.Value.
type LogLevel int

const (
	NoLogLevel LogLevel = iota
	FatalLevel
	ErrorLevel
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

var levelToName = map[LogLevel]string{
	NoLogLevel:   "no",
	FatalLevel:   "fatal",
	ErrorLevel:   "error",
	WarningLevel: "warning",
	InfoLevel:    "info",
	DebugLevel:   "debug",
	TraceLevel:   "trace",
}

func (l *LogLevel) String() string {
	return levelToName[*l]
}

func (l *LogLevel) Set(s string) error {
	for level, name := range levelToName {
		if name == s {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid level", s)
}

// Logger writes messages at or below its LoggerLevel. Errors and fatal
// messages go to the error writer, everything else to the output writer.
type Logger struct {
	LoggerLevel LogLevel
	out         *goLog.Logger
	err         *goLog.Logger
	color       color.Color
	prefix      string
}

// callDepth skips the exported entry point and the internal dispatch.
const callDepth = 3

// NewLogger creates a Logger. Nil writers default to os.Stdout and os.Stderr.
// prefix is prepended to every line.
func NewLogger(level LogLevel, c color.Color, outWriter, errWriter io.Writer, prefix string) *Logger {
	if outWriter == nil {
		outWriter = os.Stdout
	}
	if errWriter == nil {
		errWriter = os.Stderr
	}
	return &Logger{
		LoggerLevel: level,
		out:         goLog.New(outWriter, "", goLog.LstdFlags),
		err:         goLog.New(errWriter, "", goLog.LstdFlags),
		color:       c,
		prefix:      prefix,
	}
}

// SetFlags sets the standard log package flags on both writers.
func (l *Logger) SetFlags(flags int) {
	l.out.SetFlags(flags)
	l.err.SetFlags(flags)
}

func (l *Logger) tag(level LogLevel) string {
	switch level {
	case FatalLevel:
		return l.color.Red("FATAL: ")
	case ErrorLevel:
		return l.color.Red("ERROR: ")
	case WarningLevel:
		return l.color.Yellow("WARN: ")
	case DebugLevel:
		return l.color.Cyan("DEBUG: ")
	case TraceLevel:
		return l.color.Blue("TRACE: ")
	}
	return ""
}

func (l *Logger) logf(level LogLevel, format string, a ...interface{}) {
	if level == NoLogLevel || l.LoggerLevel < level {
		return
	}
	w := l.out
	if level <= ErrorLevel {
		w = l.err
	}
	w.Output(callDepth, l.prefix+l.tag(level)+fmt.Sprintf(format, a...))
	if level == FatalLevel {
		os.Exit(1)
	}
}

func (l *Logger) Infof(format string, a ...interface{})    { l.logf(InfoLevel, format, a...) }
func (l *Logger) Debugf(format string, a ...interface{})   { l.logf(DebugLevel, format, a...) }
func (l *Logger) Tracef(format string, a ...interface{})   { l.logf(TraceLevel, format, a...) }
func (l *Logger) Warningf(format string, a ...interface{}) { l.logf(WarningLevel, format, a...) }
func (l *Logger) Errorf(format string, a ...interface{})   { l.logf(ErrorLevel, format, a...) }
func (l *Logger) Fatalf(format string, a ...interface{})   { l.logf(FatalLevel, format, a...) }

// Logf logs through the context logger, or the standard log package when
// ctx carries none.
func Logf(ctx context.Context, level LogLevel, format string, a ...interface{}) {
	if l := LoggerFromContext(ctx); l != nil {
		l.logf(level, format, a...)
		return
	}
	goLog.Output(callDepth-1, fmt.Sprintf(format, a...))
}

func Infof(ctx context.Context, format string, a ...interface{}) {
	Logf(ctx, InfoLevel, format, a...)
}

func Debugf(ctx context.Context, format string, a ...interface{}) {
	Logf(ctx, DebugLevel, format, a...)
}

func Tracef(ctx context.Context, format string, a ...interface{}) {
	Logf(ctx, TraceLevel, format, a...)
}

func Warningf(ctx context.Context, format string, a ...interface{}) {
	Logf(ctx, WarningLevel, format, a...)
}

func Errorf(ctx context.Context, format string, a ...interface{}) {
	Logf(ctx, ErrorLevel, format, a...)
}

func Fatalf(ctx context.Context, format string, a ...interface{}) {
	Logf(ctx, FatalLevel, format, a...)
}
