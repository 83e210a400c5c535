package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func prescriptionsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "prescriptions",
		Short: "Manage prescription files in a workspace",
	}

	c.AddCommand(prescriptionsListCmd(flags))
	return c
}

func prescriptionsListCmd(flags *rootFlags) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prescription files",
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			refs, err := ws.prescriptions.ListPrescriptions(ws.root)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no prescriptions found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				t := r.Type
				if t == "" {
					t = "?"
				}
				fmt.Fprintf(out, "- %s  [%s]  (%s)\n", r.Name, t, rel)
			}
			return nil
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	return cmd
}
