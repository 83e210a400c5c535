package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type AddItem struct {
	deps
}

func NewAddItem(repo ports.DietRepository, opts ...Option) *AddItem {
	return &AddItem{deps: newDeps(repo, opts)}
}

func (uc *AddItem) Execute(ctx context.Context, id string, req domain.ItemRequest) (domain.Snapshot, error) {
	item, err := domain.NewMenuItem(req.Name, req.Quantity, req.Restrictions...)
	if err != nil {
		return domain.Snapshot{}, err
	}

	d, err := uc.load(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := d.AddItem(item); err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := uc.save(ctx, d)
	if err != nil {
		return domain.Snapshot{}, err
	}
	uc.log.Info("item.added", "diet_id", id, "item", item.Name(), "quantity", item.Quantity())
	uc.metrics.ItemAdded(snap.Type)
	uc.publish(ctx, domain.EventUpdated, d)
	return snap, nil
}
