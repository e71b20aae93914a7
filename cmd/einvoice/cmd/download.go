package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDownloadCommand(a *app) *cobra.Command {
	var (
		output string
		html   bool
	)

	cmd := &cobra.Command{
		Use:   "download <path>",
		Short: "Download a document (PDF, XML or HTML view)",
		Long: `Download a document from the provider.

Binary downloads accept raw bytes as well as base64 payloads, either as a
JSON string or wrapped in an object. Use --html for the HTML view of a
document. An output of "-" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}

			var data []byte
			if html {
				doc, err := c.Gateway().DownloadHTML(cmd.Context(), args[0], nil, nil)
				if err != nil {
					return err
				}
				data = []byte(doc.Content)
			} else {
				if data, err = c.Gateway().DownloadBinary(cmd.Context(), args[0], nil, nil); err != nil {
					return err
				}
			}

			if output == "-" {
				_, err := a.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(a.errOut, "wrote %d bytes to %s\n", len(data), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout")
	cmd.Flags().BoolVar(&html, "html", false, "Download the HTML view instead of the binary document")
	return cmd
}
