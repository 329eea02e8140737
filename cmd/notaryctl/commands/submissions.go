package commands

import (
	"github.com/spf13/cobra"
)

// submissions: list the most recent contact submissions.
func submissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submissions",
		Short: "List the 100 most recent contact submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := appCtx.Contact.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), subs)
		},
	}
}
