package logging

import (
	"github.com/go-logr/logr"
)

// Verbosity levels used throughout the codec. INFO is the logr default;
// DEBUG reports per-record parsing detail; TRACE reports every record
// header as it is consumed.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger wraps a logr.Logger, falling back to a discard logger when the
// sink is unset.
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a logger that discards everything. Parsing code can
// always log without nil checks.
func DefaultLogger() *Logger {
	return &Logger{log: logr.Discard()}
}

// Logger wraps logr.Logger to keep level bookkeeping out of the codec.
type Logger struct {
	log logr.Logger
}

// Info logs at the default level.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

// Debug logs per-record parsing detail.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(DEBUG).Info(msg, keysAndValues...)
}

// Trace logs every consumed record header.
func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(TRACE).Info(msg, keysAndValues...)
}

// Error logs an error with context.
func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}
