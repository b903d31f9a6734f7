// Package logging configures the logrus logger shared by the CLI and the
// GraphQL transport.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls where log lines go.
type Options struct {
	Verbose bool      // Log at info level and mirror lines into LogFile
	LogFile string    // Append-only request log, only opened when Verbose
	Stderr  io.Writer // Console sink; os.Stderr when nil
}

// New returns a logger and a close function for the request log. The close
// function is always safe to call.
//
// Without Verbose only warnings and errors reach the console and no file is
// touched. With Verbose, info lines (the outgoing queries) are written both to
// the console and to LogFile, which is created if needed and never truncated.
func New(opts Options) (*logrus.Logger, func() error, error) {
	console := opts.Stderr
	if console == nil {
		console = os.Stderr
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetOutput(console)
	logger.SetLevel(logrus.WarnLevel)

	noop := func() error { return nil }
	if !opts.Verbose {
		return logger, noop, nil
	}

	logger.SetLevel(logrus.InfoLevel)
	if opts.LogFile == "" {
		return logger, noop, nil
	}

	f, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open request log: %w", err)
	}
	logger.SetOutput(io.MultiWriter(console, f))

	return logger, f.Close, nil
}
