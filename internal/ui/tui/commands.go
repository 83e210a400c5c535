package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := usecase.NewInitWorkspace(deps.WorkspaceInitializer).Execute(domain.WorkspaceSpec{Root: root})
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadDiets(deps Deps, root string, filter ports.ListFilter) tea.Cmd {
	log := deps.logger()

	return func() tea.Msg {
		if deps.Diets == nil {
			return dietsLoadedMsg{root: root, err: errors.New("diet source is nil")}
		}

		repo, closeFn, err := deps.Diets(root)
		if err != nil {
			log.Error("tui.open_store.failed", "root", root, "err", err)
			return dietsLoadedMsg{root: root, err: err}
		}
		defer func() {
			if closeFn != nil {
				_ = closeFn()
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		snaps, err := usecase.NewListDiets(repo).Execute(ctx, filter)
		if err != nil {
			log.Error("tui.list_diets.failed", "root", root, "err", err)
			return dietsLoadedMsg{root: root, err: err}
		}
		if deps.Debug {
			log.Debug("tui.list_diets.ok",
				"root", root,
				"count", len(snaps),
				"active_only", filter.ActiveOnly,
			)
		}
		return dietsLoadedMsg{root: root, snaps: snaps}
	}
}

// summarize rebuilds the diet from its snapshot to compute the summary the
// same way the describe use case does.
func summarize(s domain.Snapshot) (domain.NutrientSummary, bool, error) {
	d, err := domain.Restore(s)
	if err != nil {
		return domain.NutrientSummary{}, false, err
	}
	return d.CalculateNutrients(), d.ValidateCompatibility(), nil
}
