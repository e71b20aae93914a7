package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/logger"
)

func newRequestCommand(a *app) *cobra.Command {
	var query []string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send a raw request and print the normalized response",
		Long: `Send a raw request through the provider gateway.

The response is printed as its variant (empty, json or text) followed by
the payload. Provider errors are printed with their details.`,
	}

	get := &cobra.Command{
		Use:   "get <path>",
		Short: "Send a GET request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(query)
			if err != nil {
				return err
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			resp, err := c.Gateway().Get(cmd.Context(), args[0], q, nil)
			if err != nil {
				return err
			}
			return a.printResponse(resp)
		},
	}
	get.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable, order kept)")

	del := &cobra.Command{
		Use:   "delete <path>",
		Short: "Send a DELETE request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			resp, err := c.Gateway().Delete(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return a.printResponse(resp)
		},
	}

	cmd.AddCommand(get, del)
	return cmd
}

func parseQuery(pairs []string) (gateway.Query, error) {
	var q gateway.Query
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", p)
		}
		q = q.Add(k, v)
	}
	return q, nil
}

func (a *app) printResponse(resp *gateway.Response) error {
	a.log.Debug("response received", logger.Fields(
		logger.FieldStatus, resp.StatusCode,
		logger.FieldVariant, resp.Variant.String(),
	))

	fmt.Fprintf(a.out, "variant: %s\n", resp.Variant)
	switch resp.Variant {
	case gateway.VariantJSON:
		data, err := json.MarshalIndent(resp.JSON, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(data))
	case gateway.VariantText:
		fmt.Fprintln(a.out, resp.Text)
	}
	return nil
}
