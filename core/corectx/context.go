// Package corectx carries the explicit, non-global dependencies engines need:
// a logger and a clock. Nothing here is a process-wide singleton — callers
// build one Context per AtomSpace/engine graph and pass it down.
package corectx

import (
	"io"
	"log/slog"
	"time"
)

// Context is the explicit substitute for the package-level logging and
// registry globals the source repository initializes at module load.
type Context struct {
	Logger *slog.Logger

	// Now is the clock engines use for timestamps and deadlines. Defaults to
	// time.Now; tests substitute a fixed or stepped clock.
	Now func() time.Time
}

// New returns a Context with a text logger writing to w and the real clock.
func New(w io.Writer) *Context {
	return &Context{
		Logger: slog.New(slog.NewTextHandler(w, nil)),
		Now:    time.Now,
	}
}

// Discard returns a Context whose logger drops everything, for tests and
// callers that don't care about log output.
func Discard() *Context {
	return &Context{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    time.Now,
	}
}

func (c *Context) log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Log returns a usable logger even when c or c.Logger is nil, so engines can
// be constructed with a zero-value Context in tests without crashing.
func (c *Context) Log() *slog.Logger { return c.log() }

// Clock returns a usable clock even when c or c.Now is nil.
func (c *Context) Clock() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
