// Package logger builds the diagnostic logger for the bioid CLI.
// Diagnostics go to stderr and are separate from the session log shown to
// the user. The --verbose flag lowers the level to debug.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures New.
type Options struct {
	Level   string // logrus level name; empty means warn
	Verbose bool   // forces debug level
	Output  io.Writer
}

// New returns a text-formatted logrus logger.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	level := logrus.WarnLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
