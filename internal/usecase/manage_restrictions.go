package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// ManageRestrictions edits the forbidden restriction set of a stored diet.
// Adding a tag does not touch items already on the diet; use DescribeDiet
// to see whether the diet is still compatible.
type ManageRestrictions struct {
	deps
}

func NewManageRestrictions(repo ports.DietRepository, opts ...Option) *ManageRestrictions {
	return &ManageRestrictions{deps: newDeps(repo, opts)}
}

func (uc *ManageRestrictions) Add(ctx context.Context, id, tag string) (domain.Snapshot, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if d.HasForbiddenRestriction(tag) {
		return d.Snapshot(), nil
	}
	if err := d.AddForbiddenRestriction(tag); err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := uc.save(ctx, d)
	if err != nil {
		return domain.Snapshot{}, err
	}
	uc.log.Info("restriction.added", "diet_id", id, "tag", domain.Fold(tag))
	uc.metrics.RestrictionChanged("add")
	uc.publish(ctx, domain.EventUpdated, d)
	return snap, nil
}

// Remove reports whether the tag was present. Removing an absent tag saves nothing.
func (uc *ManageRestrictions) Remove(ctx context.Context, id, tag string) (bool, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return false, err
	}
	if !d.RemoveForbiddenRestriction(tag) {
		return false, nil
	}
	if _, err := uc.save(ctx, d); err != nil {
		return false, err
	}
	uc.log.Info("restriction.removed", "diet_id", id, "tag", domain.Fold(tag))
	uc.metrics.RestrictionChanged("remove")
	uc.publish(ctx, domain.EventUpdated, d)
	return true, nil
}

func (uc *ManageRestrictions) List(ctx context.Context, id string) ([]string, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.ForbiddenRestrictions(), nil
}
