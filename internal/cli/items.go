package cli

import (
	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
)

func itemsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "items",
		Short: "Manage the menu items of a diet",
	}

	c.AddCommand(itemsAddCmd(flags))
	return c
}

func itemsAddCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string
	var req domain.ItemRequest

	c := &cobra.Command{
		Use:   "add <diet-id>",
		Short: "Add a menu item to a diet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			snap, err := usecase.NewAddItem(ws.repo, ws.options()...).Execute(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	c.Flags().StringVar(&req.Name, "name", "", "Item name (required)")
	c.Flags().Float64Var(&req.Quantity, "qty", 0, "Quantity in grams or ml (required)")
	c.Flags().StringArrayVar(&req.Restrictions, "restriction", nil, "Restriction tag carried by the item; repeatable")

	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("qty")
	return c
}
