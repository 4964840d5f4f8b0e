// Package logging sets up the daemon logger: logrus with a compact
// single-line format, optionally rotating into a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure the logger.
type Options struct {
	Level     string // debug, info, warn, error; empty means info
	File      string // empty logs to stderr only
	MaxSizeMB int
	MaxFiles  int
}

// Formatter renders entries as "[LEVEL timestamp] [module] message". The
// module field follows the per-package WithField("module", ...) convention.
type Formatter struct{}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02 15:04:05")

	module := "main"
	if v, ok := entry.Data["module"]; ok {
		if s, ok := v.(string); ok {
			module = s
		}
	}

	return []byte(fmt.Sprintf("[%5s %s] [%s] %s\n",
		strings.ToUpper(entry.Level.String()), timestamp, module, entry.Message)), nil
}

// New builds a configured logger. When a file is set, output goes to both
// stderr and a size-rotated log file.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&Formatter{})

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	logger.SetLevel(parsed)

	var output io.Writer = os.Stderr
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxFiles,
		}
		output = io.MultiWriter(os.Stderr, rotated)
	}
	logger.SetOutput(output)

	return logger, nil
}
