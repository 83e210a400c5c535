package cli

import (
	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
)

func enteralCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "enteral",
		Short: "Adjust the infusion parameters of an enteral diet",
	}

	c.AddCommand(enteralSetCmd(flags))
	return c
}

func enteralSetCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string
	var route, equipment string
	var rate float64
	var portions int

	c := &cobra.Command{
		Use:   "set <diet-id>",
		Short: "Change route, rate, equipment or daily portions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ch usecase.EnteralChanges
			fl := cmd.Flags()
			if fl.Changed("route") {
				ch.Route = &route
			}
			if fl.Changed("rate") {
				ch.Rate = &rate
			}
			if fl.Changed("equipment") {
				ch.Equipment = &equipment
			}
			if fl.Changed("portions") {
				ch.DailyPortions = &portions
			}

			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			snap, err := usecase.NewAdjustEnteral(ws.repo, ws.options()...).Execute(cmd.Context(), args[0], ch)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	c.Flags().StringVar(&route, "route", "", "Infusion route")
	c.Flags().Float64Var(&rate, "rate", 0, "Infusion rate in ml/h")
	c.Flags().StringVar(&equipment, "equipment", "", "Equipment: bomba|gravitacional")
	c.Flags().IntVar(&portions, "portions", 0, "Daily portions")
	return c
}
