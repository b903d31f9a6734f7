// Command luxor queries the Luxor mining-pool GraphQL API and prints the
// results as tables or JSON.
//
// Usage examples:
//
//	luxor get-subaccounts 10
//	luxor get-worker-details-1h gp BTC 25 --resolve --tabular
//	luxor get-revenue gp BTC '{"days": 1}' '{"days": 0}' --format json
//	luxor create-custom-request '{ getRevenuePh(mpn: BTC) }' '{}'
//
// Settings come from .env, an optional luxor.yaml and the HOST, API_KEY and
// METHOD environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmagro/luxor-cli/internal/config"
	"github.com/dmagro/luxor-cli/internal/query"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	format     string
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "luxor",
		Short: "Query the Luxor mining pool GraphQL API",
		Long: `Run analytics queries against the Luxor mining pool GraphQL API.

Each subcommand sends one GraphQL operation. Edge lists are printed as
tables, everything else as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Config file path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log queries to stderr and the request log")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "table", "Output format: table|json")

	for _, op := range query.Operations() {
		cmd.AddCommand(operationCmd(op, opts))
	}
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err == nil {
		return
	}

	if errors.Is(err, config.ErrMissingSettings) {
		printSetupAlert(os.Stderr, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func printSetupAlert(w io.Writer, err error) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s It seems you have not setup your .env file.\n", color.New(color.FgRed, color.Bold).Sprint("Alert!"))
	fmt.Fprintf(w, "Please copy the %s with the name of %s and write your own values\n",
		bold(".env.example"), color.New(color.FgGreen, color.Bold).Sprint(".env"))
	fmt.Fprintf(w, "(%v)\n", err)
}
