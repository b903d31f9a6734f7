package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dmagro/luxor-cli/internal/config"
	"github.com/dmagro/luxor-cli/internal/graphql"
	"github.com/dmagro/luxor-cli/internal/logging"
	"github.com/dmagro/luxor-cli/internal/output"
)

// session bundles what one command invocation needs: the client built from
// the loaded settings and a presenter bound to stdout.
type session struct {
	client    *graphql.Client
	presenter *output.Presenter
	log       *logrus.Logger
	close     func() error
}

func newSession(opts *globalOptions, stdout, stderr io.Writer) (*session, error) {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	if format == output.FormatJSON {
		output.DisableColors()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(logging.Options{
		Verbose: opts.verbose,
		LogFile: cfg.LogFile,
		Stderr:  stderr,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Insecure() {
		log.Warnf("host %s is not using TLS; the API key is sent in clear text", cfg.Host)
	}

	client, err := graphql.NewClient(graphql.Config{
		Endpoint: cfg.Host,
		APIKey:   cfg.APIKey,
		Method:   cfg.Method,
		Verbose:  opts.verbose,
	}, graphql.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &session{
		client:    client,
		presenter: output.NewPresenter(stdout, format),
		log:       log,
		close:     closeLog,
	}, nil
}
