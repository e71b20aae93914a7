package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afea/einvoice/amount"
)

func newAmountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "amount <value>",
		Short: "Write an amount in Turkish words",
		Long: `Write an amount in Turkish words as printed on invoices.

Both "," and "." are accepted as decimal separator.

Example:
  einvoice amount 1250,50
  YALNIZ : BİNİKİYÜZELLİ TL ELLİ Kr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := amount.FormatString(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, text)
			return nil
		},
	}
}
