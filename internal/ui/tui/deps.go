package tui

import (
	"log/slog"

	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// DietSource opens the diet repository of a workspace. close releases it.
type DietSource func(root string) (repo ports.DietRepository, close func() error, err error)

// Deps is everything the browser needs from the outside. The CLI fills it
// with the filesystem finder and the configured store.
type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer
	Diets                DietSource

	Logger *slog.Logger
	Debug  bool
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger.With("component", "tui")
}
