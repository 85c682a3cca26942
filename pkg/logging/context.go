// Package logging provides standardized logging utilities for tusup.
// This file defines the LogContext struct and related methods for context-based logging.
//
// LogContext gives callers a fluent way to accumulate the fields that matter
// for an upload-related log line (which upload, which operation, which
// component) without each call site constructing a Logger by hand.
package logging

// LogContext represents a logging context that can be passed between functions.
type LogContext struct {
	Operation string
	Component string
	UploadID  string
	Path      string
}

// NewLogContext creates a new LogContext for the given operation.
func NewLogContext(operation string) LogContext {
	return LogContext{Operation: operation}
}

// WithComponent adds a component name to the log context.
func (lc LogContext) WithComponent(component string) LogContext {
	lc.Component = component
	return lc
}

// WithUploadID adds an upload identifier to the log context.
func (lc LogContext) WithUploadID(id string) LogContext {
	lc.UploadID = id
	return lc
}

// WithPath adds a file path to the log context.
func (lc LogContext) WithPath(path string) LogContext {
	lc.Path = path
	return lc
}

// Logger returns a Logger with the context fields attached.
func (lc LogContext) Logger() Logger {
	return WithLogContext(lc)
}

// WithLogContext creates a new Logger with the given context's fields attached.
func WithLogContext(ctx LogContext) Logger {
	logger := DefaultLogger.With()

	if ctx.Operation != "" {
		logger = logger.Str(FieldOperation, ctx.Operation)
	}
	if ctx.Component != "" {
		logger = logger.Str(FieldComponent, ctx.Component)
	}
	if ctx.UploadID != "" {
		logger = logger.Str(FieldUploadID, ctx.UploadID)
	}
	if ctx.Path != "" {
		logger = logger.Str(FieldPath, ctx.Path)
	}

	return logger.Logger()
}
