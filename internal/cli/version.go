package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/buildinfo"
)

func versionCmd() *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), buildinfo.Get())
			}
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
	addFormatFlag(c, &format)
	return c
}
