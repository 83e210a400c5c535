package usecase

import (
	"slices"
	"strings"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// InitWorkspace checks the requested layout before handing it to the
// initializer.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(spec domain.WorkspaceSpec) error {
	if strings.TrimSpace(spec.Root) == "" {
		return &domain.DomainError{Kind: domain.KindValidation, Msg: "workspace root is required"}
	}
	spec.Driver = strings.ToLower(strings.TrimSpace(spec.Driver))
	if spec.Driver == "" {
		spec.Driver = domain.StoreSQLite
	}
	if !slices.Contains(domain.StoreDrivers(), spec.Driver) {
		return &domain.DomainError{
			Kind: domain.KindValidation,
			Msg:  "unsupported store driver: " + spec.Driver,
		}
	}
	return uc.initializer.Init(spec)
}
