// Package commands implements the notaryctl operator CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nursejordan/i-notarize-online.com/internal/app"
	"github.com/nursejordan/i-notarize-online.com/internal/config"
)

var (
	env    config.Env
	appCtx *app.App

	storeBackend string
	table        string
	endpoint     string
	region       string
	seedSource   string
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "notaryctl",
		Short:        "Operate the i-Notarize-Online API and its data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e, err := config.Load()
			if err != nil {
				return err
			}
			overrideEnv(cmd.Flags(), &e)
			switch e.StoreBackend {
			case config.BackendDynamoDB, config.BackendMemory:
			default:
				return fmt.Errorf("unknown store backend %q (want dynamodb or memory)", e.StoreBackend)
			}
			env = e

			a, err := app.Open(cmd.Context(), env)
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	bindEnvFlags(root.PersistentFlags())
	root.AddCommand(serveCmd(), seedCmd(), configCmd(), submissionsCmd())
	return root
}

// bindEnvFlags declares the flags that override environment configuration.
func bindEnvFlags(pf *pflag.FlagSet) {
	pf.StringVar(&storeBackend, "store", "", "store backend: dynamodb or memory (env STORE_BACKEND)")
	pf.StringVar(&table, "table", "", "DynamoDB table name (env DDB_TABLE)")
	pf.StringVar(&endpoint, "endpoint", "", "AWS endpoint override, e.g. http://localhost:8000 (env AWS_ENDPOINT_URL)")
	pf.StringVar(&region, "region", "", "AWS region (env AWS_REGION)")
	pf.StringVar(&seedSource, "seed-source", "", "seed bundle s3://bucket/key; empty uses the embedded bundle (env SEED_SOURCE)")
}

// overrideEnv applies the flags set on the command line. Flags win over the environment.
func overrideEnv(flags *pflag.FlagSet, e *config.Env) {
	if flags.Changed("store") {
		e.StoreBackend = storeBackend
	}
	if flags.Changed("table") {
		e.Table = table
	}
	if flags.Changed("endpoint") {
		e.Endpoint = endpoint
	}
	if flags.Changed("region") {
		e.Region = region
	}
	if flags.Changed("seed-source") {
		e.SeedSource = seedSource
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
