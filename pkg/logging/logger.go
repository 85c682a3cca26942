// Package logging provides standardized structured logging for tusup.
//
// The package is organized into a handful of small files:
//   - logger.go: Logger/Event wrapper and level management (this file)
//   - level.go: Level type, parsing, and text (un)marshalling
//   - context.go: context-aware logging with a fluent LogContext builder
//   - constants.go: standard field names shared by call sites
//
// Callers never import zerolog directly; everything goes through the
// Logger/Event wrapper so the underlying library stays an implementation
// detail of this package.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Logger is a wrapper around zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// Event is a wrapper around zerolog.Event.
type Event struct {
	ze *zerolog.Event
}

// DefaultLogger is the logger used by the package-level functions.
var DefaultLogger = Logger{zl: zlog.Logger}

// New creates a new Logger writing to w.
func New(w io.Writer) Logger {
	return Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l Logger) {
	DefaultLogger = l
}

// Output returns a copy of l writing to w.
func (l Logger) Output(w io.Writer) Logger {
	return Logger{zl: l.zl.Output(w)}
}

// Level returns a copy of l with its minimum accepted level set.
func (l Logger) Level(level Level) Logger {
	return Logger{zl: l.zl.Level(zerolog.Level(level))}
}

// Context is a wrapper around zerolog.Context used to build a child Logger.
type Context struct {
	zc zerolog.Context
}

// With starts a field-builder for a child logger.
func (l Logger) With() Context {
	return Context{zc: l.zl.With()}
}

// Logger finalizes the Context into a Logger.
func (c Context) Logger() Logger {
	return Logger{zl: c.zc.Logger()}
}

func (c Context) Str(key, val string) Context     { return Context{zc: c.zc.Str(key, val)} }
func (c Context) Int(key string, val int) Context { return Context{zc: c.zc.Int(key, val)} }
func (c Context) Err(err error) Context           { return Context{zc: c.zc.Err(err)} }

// Debug/Info/Warn/Error/Fatal start a new Event at that level.
func (l Logger) Debug() Event { return Event{ze: l.zl.Debug()} }
func (l Logger) Info() Event  { return Event{ze: l.zl.Info()} }
func (l Logger) Warn() Event  { return Event{ze: l.zl.Warn()} }
func (l Logger) Error() Event { return Event{ze: l.zl.Error()} }
func (l Logger) Fatal() Event { return Event{ze: l.zl.Fatal()} }

func (e Event) Str(key, val string) Event             { return Event{ze: e.ze.Str(key, val)} }
func (e Event) Int(key string, val int) Event         { return Event{ze: e.ze.Int(key, val)} }
func (e Event) Int64(key string, val int64) Event     { return Event{ze: e.ze.Int64(key, val)} }
func (e Event) Uint64(key string, val uint64) Event   { return Event{ze: e.ze.Uint64(key, val)} }
func (e Event) Float64(key string, val float64) Event { return Event{ze: e.ze.Float64(key, val)} }
func (e Event) Bool(key string, val bool) Event       { return Event{ze: e.ze.Bool(key, val)} }
func (e Event) Err(err error) Event                   { return Event{ze: e.ze.Err(err)} }
func (e Event) Dur(key string, val time.Duration) Event {
	return Event{ze: e.ze.Dur(key, val)}
}
func (e Event) Time(key string, val time.Time) Event { return Event{ze: e.ze.Time(key, val)} }

// Msg sends the event with the given message.
func (e Event) Msg(msg string) { e.ze.Msg(msg) }

// Msgf sends the event with a formatted message.
func (e Event) Msgf(format string, v ...interface{}) { e.ze.Msgf(format, v...) }

// Enabled reports whether the event will actually be written.
func (e Event) Enabled() bool { return e.ze.Enabled() }

// Debug/Info/Warn/Error/Fatal start an Event on the default logger.
func Debug() Event { return DefaultLogger.Debug() }
func Info() Event  { return DefaultLogger.Info() }
func Warn() Event  { return DefaultLogger.Warn() }
func Error() Event { return DefaultLogger.Error() }
func Fatal() Event { return DefaultLogger.Fatal() }
