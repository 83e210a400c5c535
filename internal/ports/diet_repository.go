package ports

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// ListFilter narrows DietRepository.List. Zero value lists everything.
type ListFilter struct {
	ActiveOnly bool
	Type       domain.DietType
}

// Match reports whether a snapshot passes the filter.
func (f ListFilter) Match(s domain.Snapshot) bool {
	if f.ActiveOnly && !s.Active {
		return false
	}
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	return true
}

// DietRepository persists diet snapshots.
// Get returns an error of kind domain.KindNotFound for unknown ids.
type DietRepository interface {
	Save(ctx context.Context, s domain.Snapshot) error
	Get(ctx context.Context, id string) (domain.Snapshot, error)
	List(ctx context.Context, f ListFilter) ([]domain.Snapshot, error)
}
