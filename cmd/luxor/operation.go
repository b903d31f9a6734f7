package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmagro/luxor-cli/internal/graphql"
	"github.com/dmagro/luxor-cli/internal/query"
	"github.com/dmagro/luxor-cli/internal/resolve"
)

// resolveOptions selects the optional resolver stage.
type resolveOptions struct {
	enabled bool
	tabular bool
}

// operationCmd turns a catalog entry into a subcommand. Required arguments
// are positional; optional ones become flags.
func operationCmd(op *query.Operation, opts *globalOptions) *cobra.Command {
	var (
		ro    resolveOptions
		flags = map[string]*string{}
	)

	positional := op.Positional()
	use := []string{op.Name}
	for _, a := range positional {
		use = append(use, "<"+a.Name+">")
	}

	long := op.Long
	if long == "" {
		long = op.Short + "."
	}
	long += "\n\nArguments:\n"
	for _, a := range positional {
		long += fmt.Sprintf("  %-16s %s (%s)\n", a.Name, a.Usage, a.Kind)
	}

	cmd := &cobra.Command{
		Use:   strings.Join(use, " "),
		Short: op.Short,
		Long:  long,
		Args:  cobra.ExactArgs(len(positional)),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := map[string]string{}
			for name, v := range flags {
				if cmd.Flags().Changed(name) {
					options[name] = *v
				}
			}
			return runOperation(cmd, opts, op, args, options, ro)
		},
	}

	for _, a := range op.Options() {
		flags[a.Name] = cmd.Flags().String(a.Name, fmt.Sprint(a.Default), fmt.Sprintf("%s (%s)", a.Usage, a.Kind))
	}
	if op.Resolver {
		cmd.Flags().BoolVar(&ro.enabled, "resolve", false, "Flatten the response into rows before printing")
		cmd.Flags().BoolVar(&ro.tabular, "tabular", false, "With --resolve, print a labeled table instead of a list")
	}
	return cmd
}

func runOperation(cmd *cobra.Command, opts *globalOptions, op *query.Operation, args []string, options map[string]string, ro resolveOptions) error {
	values, err := op.Parse(args, options)
	if err != nil {
		return err
	}
	call, err := op.Build(values)
	if err != nil {
		return err
	}

	s, err := newSession(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := s.client.Execute(ctx, call.Request)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	s.log.WithField("operation", op.Name).Infof("received %d bytes", len(payload))

	if ro.enabled {
		errs, err := graphql.Errors(payload)
		if err != nil {
			return fmt.Errorf("%s: %w", op.Name, err)
		}
		if len(errs) > 0 {
			s.presenter.RenderErrors(errs)
			return &graphql.QueryError{Errors: errs}
		}
		return renderResolved(s, op, payload, ro.tabular)
	}

	if err := s.presenter.Render(call.Field, payload); err != nil {
		return err
	}
	errs, err := graphql.Errors(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	if len(errs) > 0 {
		s.presenter.RenderErrors(errs)
		return &graphql.QueryError{Errors: errs}
	}
	return nil
}

func renderResolved(s *session, op *query.Operation, payload json.RawMessage, tabular bool) error {
	fn, ok := resolve.New(tabular).For(op.Name)
	if !ok {
		return fmt.Errorf("%s has no resolver", op.Name)
	}
	res, err := fn(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	if res.Table != nil {
		s.presenter.RenderTable(res.Table)
		return nil
	}
	return s.presenter.RenderValue(res.Value)
}
