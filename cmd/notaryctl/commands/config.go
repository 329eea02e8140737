package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/validate"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or replace business configuration documents",
	}
	cmd.AddCommand(configGetCmd(), configSetCmd())
	return cmd
}

func keysHelp() string {
	keys := make([]string, 0, len(models.ConfigKeys))
	for _, k := range models.ConfigKeys {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}

// config get: print the data of one document.
func configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration document (" + keysHelp() + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := appCtx.Business.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

// config set: replace a document from a JSON file ("-" reads stdin).
func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <file>",
		Short: "Replace a configuration document with the JSON object in file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			var data map[string]any
			if err := validate.DecodeJSON(raw, &data); err != nil {
				return err
			}
			if err := appCtx.Business.Put(cmd.Context(), args[0], data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", args[0])
			return nil
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
