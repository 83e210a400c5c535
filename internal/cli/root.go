package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/fsworkspace"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/logger"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/workspacefinder"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "snh",
		Short:        "SNH, hospital diet prescriptions",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			finder := workspacefinder.NewFinder()

			logRoot := wd
			if root, ferr := finder.FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: flags.debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			deps := tui.Deps{
				WorkspaceLocator:     finder,
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Diets:                browseSource(flags.debug),
				Logger:               logger.L(),
				Debug:                flags.debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to .snh/logs/snh.log")

	cmd.AddCommand(
		initCmd(),
		prescribeCmd(flags),
		showCmd(flags),
		listCmd(flags),
		endCmd(flags),
		restrictionsCmd(flags),
		itemsCmd(flags),
		componentsCmd(flags),
		enteralCmd(flags),
		prescriptionsCmd(flags),
		metricsCmd(flags),
		versionCmd(),
	)
	return cmd
}

// browseSource opens the configured store of whichever workspace the
// browser settles on.
func browseSource(debug bool) tui.DietSource {
	return func(root string) (ports.DietRepository, func() error, error) {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, nil, err
		}
		return openStore(root, cfg, logger.Component("store"), debug || cfg.Logging.Debug)
	}
}

func addWorkspaceFlag(c *cobra.Command, workspace *string) {
	c.Flags().StringVarP(workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
}

// addFormatFlag also rejects a bad --format before RunE, so mutating
// commands never save a change they cannot print.
func addFormatFlag(c *cobra.Command, format *string) {
	c.Flags().StringVar(format, "format", formatPretty, "Output format: pretty|json")

	next := c.PreRunE
	c.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(*format); err != nil {
			return err
		}
		if next != nil {
			return next(cmd, args)
		}
		return nil
	}
}
