// Package logging is the module's ambient diagnostics facility. The core
// type algebra in term, equiv, and abi is pure and never logs (see their
// package docs); this package exists for consumers that embed the core in a
// larger pipeline and want one leveled logger shared across it.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Level represents a logging level, identical in meaning to [slog.Level].
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelNever Level = math.MaxInt
)

// Logger represents a simple leveled logging interface.
type Logger interface {
	// Level returns the current logging level for this Logger.
	Level() Level

	// Logf logs a message at the given level.
	Logf(level Level, format string, v ...any)

	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// New returns a new leveled [Logger] backed by a [slog.Logger] writing
// structured text to out.
func New(out io.Writer, level Level) Logger {
	return &logger{
		level: level,
		slog:  slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Discard returns a [Logger] that discards all output.
func Discard() Logger {
	return &logger{level: LevelNever, slog: slog.New(discardHandler{})}
}

type logger struct {
	level Level
	slog  *slog.Logger
}

func (l *logger) Level() Level { return l.level }

func (l *logger) Logf(level Level, format string, v ...any) {
	if level < l.level {
		return
	}
	l.slog.Log(context.Background(), slog.Level(level), fmt.Sprintf(format, v...))
}

func (l *logger) Debugf(format string, v ...any) { l.Logf(LevelDebug, format, v...) }
func (l *logger) Infof(format string, v ...any)  { l.Logf(LevelInfo, format, v...) }
func (l *logger) Warnf(format string, v ...any)  { l.Logf(LevelWarn, format, v...) }
func (l *logger) Errorf(format string, v ...any) { l.Logf(LevelError, format, v...) }

// discardHandler is an [slog.Handler] that drops every record. It implements
// https://github.com/golang/go/issues/62005 for Go versions lacking
// slog.DiscardHandler.
type discardHandler struct{ slog.Handler }

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
