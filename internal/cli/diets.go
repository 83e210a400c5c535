package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase/query"
)

func prescribeCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var file string
	var user string
	var format string

	c := &cobra.Command{
		Use:   "prescribe",
		Short: "Prescribe a diet from a YAML prescription file",
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			if u := strings.TrimSpace(user); u != "" {
				req.ResponsibleUser = u
			}

			snap, err := usecase.NewPrescribeDiet(ws.repo, ws.options()...).Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	c.Flags().StringVarP(&file, "file", "f", "", "Prescription name or path (required)")
	c.Flags().StringVar(&user, "user", "", "Responsible user (overrides the file)")
	addFormatFlag(c, &format)

	_ = c.MarkFlagRequired("file")
	return c
}

func showCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string
	var queries []string

	c := &cobra.Command{
		Use:   "show <diet-id>",
		Short: "Show a diet and its nutrient summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := parseQueries(queries)
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			ctx := cmd.Context()
			snap, err := usecase.NewListDiets(ws.repo).Get(ctx, args[0])
			if err != nil {
				return err
			}
			summary, compatible, err := usecase.NewDescribeDiet(ws.repo, ws.options()...).Execute(ctx, args[0])
			if err != nil {
				return err
			}
			view := dietView{Diet: snap, Summary: summary, Compatible: compatible}

			if len(rules) == 0 {
				return printDietView(cmd.OutOrStdout(), view, format)
			}

			doc, err := query.Document(view)
			if err != nil {
				return err
			}
			values, results := query.Apply(doc, rules)
			if err := printQueryResults(cmd.OutOrStdout(), values, format); err != nil {
				return err
			}
			for _, r := range results {
				if !r.Success {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %s\n", r.Name, r.Message)
				}
			}
			if len(values) < len(results) {
				return fmt.Errorf("%d of %d queries failed", len(results)-len(values), len(results))
			}
			return nil
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	c.Flags().StringArrayVarP(&queries, "query", "q", nil, "JSONPath over {diet, summary, compatible}; repeatable, optionally name=expr")
	return c
}

// parseQueries accepts "name=$.expr" or a bare expression, named after itself.
func parseQueries(in []string) (map[string]string, error) {
	rules := map[string]string{}
	for _, q := range in {
		q = strings.TrimSpace(q)
		if q == "" {
			return nil, fmt.Errorf("empty --query")
		}
		name, expr := q, q
		if i := strings.Index(q, "="); i > 0 && !strings.HasPrefix(q, "$") {
			name, expr = strings.TrimSpace(q[:i]), strings.TrimSpace(q[i+1:])
		}
		if expr == "" {
			return nil, fmt.Errorf("query %q has no expression", name)
		}
		if _, dup := rules[name]; dup {
			return nil, fmt.Errorf("duplicate query name %q", name)
		}
		rules[name] = expr
	}
	return rules, nil
}

func listCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string
	var active bool
	var dietType string

	c := &cobra.Command{
		Use:   "list",
		Short: "List stored diets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := ports.ListFilter{ActiveOnly: active}
			if strings.TrimSpace(dietType) != "" {
				t, err := domain.ParseDietType(dietType)
				if err != nil {
					return err
				}
				filter.Type = t
			}

			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			snaps, err := usecase.NewListDiets(ws.repo).Execute(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printDietList(cmd.OutOrStdout(), snaps, format)
		},
	}

	addWorkspaceFlag(c, &workspace)
	addFormatFlag(c, &format)
	c.Flags().BoolVar(&active, "active", false, "Only active diets")
	c.Flags().StringVar(&dietType, "type", "", "Only diets of this type: oral|enteral|parenteral")
	return c
}

func endCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var format string

	c := &cobra.Command{
		Use:   "end <diet-id>",
		Short: "End an active diet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			snap, err := usecase.NewEndDiet(ws.repo, ws.options()...).Execute(cmd.Context(), args[0])
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
