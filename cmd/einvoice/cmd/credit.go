package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newCreditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "credit",
		Short: "Show the credit summary of the account",
		Long: `Show the remaining e-document credits of the configured account.

NES reports a summary of defined, used and expired credits. Nilvera
returns one entry per credit package.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			report, err := c.CreditReport(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
