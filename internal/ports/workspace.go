package ports

import "github.com/sistema-nutricional-hospitalar/snh/internal/domain"

// WorkspaceLocator finds the workspace root that owns startDir.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer writes a fresh workspace described by spec.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec) error
}
