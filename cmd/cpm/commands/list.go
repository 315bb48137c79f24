package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "no packages installed")
				return nil
			}

			for _, record := range records {
				_, _ = fmt.Fprintf(out, "%s %s (%s)\n",
					record.Package.Name,
					record.Package.Version,
					record.Package.Build.Kind,
				)
			}
			return nil
		},
	}
}
