package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type ListDiets struct {
	repo ports.DietRepository
}

func NewListDiets(repo ports.DietRepository) *ListDiets {
	return &ListDiets{repo: repo}
}

func (uc *ListDiets) Execute(ctx context.Context, f ports.ListFilter) ([]domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, f)
}

// Get returns a single stored snapshot.
func (uc *ListDiets) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	return uc.repo.Get(ctx, id)
}
