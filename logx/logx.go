// Package logx gives every package in this module a named, level-filtered
// logger with a single package-wide debug toggle: tracing calls are no-ops
// until SetDebug(true) is called, and warnings always go through.
package logx

import "github.com/juju/loggo"

var debug = false

// SetDebug turns verbose tracing on or off for every logger obtained from
// this package. Off by default.
func SetDebug(on bool) {
	debug = on
	level := loggo.WARNING
	if on {
		level = loggo.TRACE
	}
	loggo.GetLogger("loreline").SetLogLevel(level)
}

// Enabled reports whether debug tracing is currently turned on.
func Enabled() bool {
	return debug
}

// Logger is the narrow slice of loggo.Logger this module relies on.
type Logger struct {
	inner loggo.Logger
}

// Get returns a logger named "loreline.<name>", e.g. Get("lexer").
func Get(name string) Logger {
	return Logger{inner: loggo.GetLogger("loreline." + name)}
}

// Tracef logs at trace level; a no-op unless SetDebug(true) was called.
func (l Logger) Tracef(format string, args ...any) {
	if debug {
		l.inner.Tracef(format, args...)
	}
}

// Warningf logs at warning level regardless of the debug toggle.
func (l Logger) Warningf(format string, args ...any) {
	l.inner.Warningf(format, args...)
}
