/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package logging defines the logger capability injected into discovery
// and resolution code.
package logging

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is an interface for logging messages during discovery and
// resolution. Resolution misses are expected and frequent, so they go
// to Debug; Warning is reserved for conditions a user may want to act on.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// CharmLogger implements Logger on top of charmbracelet/log.
type CharmLogger struct {
	l *charmlog.Logger
}

// NewCharmLogger creates a stderr logger. Debug output is only emitted
// when verbose is set.
func NewCharmLogger(verbose bool) *CharmLogger {
	l := charmlog.New(os.Stderr)
	if verbose {
		l.SetLevel(charmlog.DebugLevel)
	} else {
		l.SetLevel(charmlog.WarnLevel)
	}
	return &CharmLogger{l: l}
}

func (c *CharmLogger) Warning(format string, args ...any) {
	c.l.Warnf(format, args...)
}

func (c *CharmLogger) Debug(format string, args ...any) {
	c.l.Debugf(format, args...)
}

// NopLogger discards all messages. Constructors use it when callers
// pass a nil logger.
type NopLogger struct{}

func (NopLogger) Warning(format string, args ...any) {}
func (NopLogger) Debug(format string, args ...any)   {}

// OrNop returns logger, or a NopLogger when logger is nil.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger{}
	}
	return logger
}
