package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
)

func restrictionsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "restrictions",
		Short: "Manage the forbidden restrictions of a diet",
	}

	c.AddCommand(
		restrictionsAddCmd(flags),
		restrictionsRemoveCmd(flags),
		restrictionsListCmd(flags),
	)
	return c
}

func restrictionsAddCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	c := &cobra.Command{
		Use:   "add <diet-id> <tag>",
		Short: "Forbid a restriction tag on a diet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			snap, err := usecase.NewManageRestrictions(ws.repo, ws.options()...).Add(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	return c
}

func restrictionsRemoveCmd(flags *rootFlags) *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "remove <diet-id> <tag>",
		Short: "Lift a forbidden restriction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			removed, err := usecase.NewManageRestrictions(ws.repo, ws.options()...).Remove(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", args[1])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q was not forbidden\n", args[1])
			}
			return nil
		},
	}

	addWorkspaceFlag(c, &workspace)
	return c
}

func restrictionsListCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	c := &cobra.Command{
		Use:   "list <diet-id>",
		Short: "List the forbidden restrictions of a diet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			tags, err := usecase.NewManageRestrictions(ws.repo, ws.options()...).List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				if tags == nil {
					tags = []string{}
				}
				return writeJSON(out, tags)
			}
			if len(tags) == 0 {
				fmt.Fprintln(out, "(no forbidden restrictions)")
				return nil
			}
			for _, t := range tags {
				fmt.Fprintf(out, "- %s\n", t)
			}
			return nil
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	return c
}
