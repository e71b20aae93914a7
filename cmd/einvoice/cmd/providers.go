package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afea/einvoice/provider"
)

func newProvidersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and their default base URLs",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range a.registry.List() {
				fmt.Fprintf(a.out, "%-8s %s\n", name, provider.DefaultBaseURL(name))
			}
			return nil
		},
	}
}
