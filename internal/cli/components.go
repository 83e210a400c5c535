package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
)

func componentsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "components",
		Short: "Manage the components of a mixed diet",
	}

	c.AddCommand(
		componentsListCmd(flags),
		componentsAddCmd(flags),
		componentsSetCmd(flags),
		componentsRemoveCmd(flags),
		componentsClearCmd(flags),
	)
	return c
}

func componentsListCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	c := &cobra.Command{
		Use:   "list <diet-id>",
		Short: "List the components of a mixed diet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			comps, err := usecase.NewManageComponents(ws.repo, ws.options()...).List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				if comps == nil {
					comps = []domain.ComponentSummary{}
				}
				return writeJSON(out, comps)
			}
			if len(comps) == 0 {
				fmt.Fprintln(out, "(no components)")
				return nil
			}
			var total float64
			for _, comp := range comps {
				total += comp.Percentage
				fmt.Fprintf(out, "- %s  %g%%  [%s]  %s\n", comp.ID, comp.Percentage, comp.Type, comp.Description)
			}
			fmt.Fprintf(out, "total: %g%%\n", total)
			return nil
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	return c
}

func componentsAddCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var file string
	var pct float64
	var format string

	c := &cobra.Command{
		Use:   "add <diet-id>",
		Short: "Add a component to a mixed diet from a prescription file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			path, err := resolvePrescriptionPath(ws, file)
			if err != nil {
				return err
			}
			req, err := ws.prescriptions.LoadPrescription(path)
			if err != nil {
				return err
			}

			snap, err := usecase.NewManageComponents(ws.repo, ws.options()...).Add(cmd.Context(), args[0], req, pct)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	c.Flags().StringVarP(&file, "file", "f", "", "Prescription name or path of the component (required)")
	c.Flags().Float64Var(&pct, "pct", 0, "Share of the mixed diet, in percent (required)")
	addFormatFlag(c, &format)

	_ = c.MarkFlagRequired("file")
	_ = c.MarkFlagRequired("pct")
	return c
}

func componentsSetCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var pct float64
	var format string

	c := &cobra.Command{
		Use:   "set <diet-id> <component-id>",
		Short: "Change the share of a component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			snap, err := usecase.NewManageComponents(ws.repo, ws.options()...).SetPercentage(cmd.Context(), args[0], args[1], pct)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	c.Flags().Float64Var(&pct, "pct", 0, "New share, in percent (required)")
	addFormatFlag(c, &format)

	_ = c.MarkFlagRequired("pct")
	return c
}

func componentsRemoveCmd(flags *rootFlags) *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "remove <diet-id> <component-id>",
		Short: "Remove a component from a mixed diet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			removed, err := usecase.NewManageComponents(ws.repo, ws.options()...).Remove(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed component %s\n", args[1])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "no component %s\n", args[1])
			}
			return nil
		},
	}

	addWorkspaceFlag(c, &workspace)
	return c
}

func componentsClearCmd(flags *rootFlags) *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "clear <diet-id>",
		Short: "Remove every component from a mixed diet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			n, err := usecase.NewManageComponents(ws.repo, ws.options()...).Clear(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d components\n", n)
			return nil
		},
	}

	addWorkspaceFlag(c, &workspace)
	return c
}
