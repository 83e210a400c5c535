package tui

import "github.com/sistema-nutricional-hospitalar/snh/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type dietsLoadedMsg struct {
	root  string
	snaps []domain.Snapshot
	err   error
}
