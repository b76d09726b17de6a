package logging

import (
	"fmt"
	"io"
	"os"

	"bsdsetup/internal/domain/constants"

	"github.com/sirupsen/logrus"
)

// Options configures the provisioner logger.
type Options struct {
	// Level is a logrus level name. Unrecognized values fall back to info.
	Level string

	// LogFile is the append-only persistent log. Empty disables the file.
	LogFile string

	// ConsoleOut receives the color-coded copy. Defaults to os.Stderr.
	ConsoleOut io.Writer
}

// New builds the logger: color-coded console output plus a plain-text copy
// appended to the persistent logfile. The logger itself never fails the
// program; an unopenable logfile degrades to console-only with a warning.
func New(opts Options) *logrus.Logger {
	logger := logrus.New()

	console := opts.ConsoleOut
	if console == nil {
		console = os.Stderr
	}
	logger.SetOutput(console)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opts.LogFile != "" {
		file, openErr := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.LogFilePermission)
		if openErr != nil {
			logger.WithError(openErr).Warn("Cannot open logfile, continuing console-only")
		} else {
			logger.AddHook(&fileHook{
				writer: file,
				formatter: &logrus.TextFormatter{
					FullTimestamp: true,
					DisableColors: true,
				},
			})
		}
	}

	if err != nil && opts.Level != "" {
		logger.Warnf("Unknown log level %q, using info", opts.Level)
	}

	return logger
}

// fileHook duplicates every entry into the persistent logfile with its own
// color-free formatter.
type fileHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("format log entry: %w", err)
	}
	_, err = h.writer.Write(line)
	return err
}
