package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// seed: write the seed bundle if the catalog is empty.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the seed data when the service catalog is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded, err := appCtx.Seeder.IfEmpty(cmd.Context())
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "seeded")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "already initialized")
			}
			return nil
		},
	}
}
