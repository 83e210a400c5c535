package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/fsworkspace"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
)

func initCmd() *cobra.Command {
	var (
		path       string
		store      string
		force      bool
		noExamples bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a SNH workspace (snh.yaml, data/, prescriptions/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			spec := domain.WorkspaceSpec{
				Root:       root,
				Driver:     store,
				NoExamples: noExamples,
				Force:      force,
			}
			if err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(spec); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace ready at %s\n", root)
			if strings.EqualFold(strings.TrimSpace(store), domain.StorePostgres) {
				fmt.Fprintln(out, "Edit .env to point SNH_STORE_DSN at your database.")
			}
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().StringVar(&store, "store", domain.StoreSQLite,
		"Store driver: "+strings.Join(domain.StoreDrivers(), "|"))
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	c.Flags().BoolVar(&noExamples, "no-examples", false, "Skip the sample prescriptions")
	return c
}
