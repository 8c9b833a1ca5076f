// Package logging builds the hclog logger shared by copyproblem components.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel overrides the log level when no level is passed explicitly.
const EnvLevel = "COPYPROBLEM_LOG_LEVEL"

// Options configures New.
type Options struct {
	Name   string
	Level  string // trace, debug, info, warn, error, off
	Output io.Writer
	Debug  bool // forces debug level
	JSON   bool
}

// New returns a logger writing to Output (stderr by default). Level
// resolution: Debug flag, then Level, then COPYPROBLEM_LOG_LEVEL, then warn.
func New(o Options) hclog.Logger {
	out := o.Output
	if out == nil {
		out = os.Stderr
	}
	name := o.Name
	if name == "" {
		name = "copyproblem"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level(o),
		Output:     out,
		JSONFormat: o.JSON,
	})
}

func level(o Options) hclog.Level {
	if o.Debug {
		return hclog.Debug
	}
	raw := o.Level
	if raw == "" {
		raw = os.Getenv(EnvLevel)
	}
	if raw == "" {
		return hclog.Warn
	}
	lvl := hclog.LevelFromString(strings.TrimSpace(raw))
	if lvl == hclog.NoLevel {
		return hclog.Warn
	}
	return lvl
}

// OrNull returns l, or a discarding logger when l is nil.
func OrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
