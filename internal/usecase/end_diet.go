package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type EndDiet struct {
	deps
}

func NewEndDiet(repo ports.DietRepository, opts ...Option) *EndDiet {
	return &EndDiet{deps: newDeps(repo, opts)}
}

func (uc *EndDiet) Execute(ctx context.Context, id string) (domain.Snapshot, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := d.End(); err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := uc.save(ctx, d)
	if err != nil {
		return domain.Snapshot{}, err
	}
	uc.log.Info("diet.ended", "diet_id", snap.ID, "type", string(snap.Type))
	uc.metrics.DietEnded(snap.Type)
	uc.publish(ctx, domain.EventEnded, d)
	return snap, nil
}
