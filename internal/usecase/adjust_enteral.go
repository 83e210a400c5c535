package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// EnteralChanges lists the parameters to change; nil fields are kept.
type EnteralChanges struct {
	Route         *string
	Rate          *float64
	Equipment     *string
	DailyPortions *int
}

func (c EnteralChanges) empty() bool {
	return c.Route == nil && c.Rate == nil && c.Equipment == nil && c.DailyPortions == nil
}

// AdjustEnteral changes the infusion parameters of a stored enteral diet.
// Changes apply all or nothing: the diet is saved only if every one is valid.
type AdjustEnteral struct {
	deps
}

func NewAdjustEnteral(repo ports.DietRepository, opts ...Option) *AdjustEnteral {
	return &AdjustEnteral{deps: newDeps(repo, opts)}
}

func (uc *AdjustEnteral) Execute(ctx context.Context, id string, ch EnteralChanges) (domain.Snapshot, error) {
	if ch.empty() {
		return domain.Snapshot{}, &domain.DomainError{Kind: domain.KindValidation, Msg: "no enteral parameter to change"}
	}
	d, err := uc.load(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	e, ok := d.(*domain.EnteralDiet)
	if !ok {
		return domain.Snapshot{}, &domain.DomainError{Kind: domain.KindValidation, Msg: "diet " + id + " is not enteral"}
	}

	if ch.Route != nil {
		if err := e.SetRoute(*ch.Route); err != nil {
			return domain.Snapshot{}, err
		}
	}
	if ch.Rate != nil {
		if err := e.SetRate(*ch.Rate); err != nil {
			return domain.Snapshot{}, err
		}
	}
	if ch.Equipment != nil {
		if err := e.SetEquipment(*ch.Equipment); err != nil {
			return domain.Snapshot{}, err
		}
	}
	if ch.DailyPortions != nil {
		if err := e.SetDailyPortions(*ch.DailyPortions); err != nil {
			return domain.Snapshot{}, err
		}
	}

	snap, err := uc.save(ctx, e)
	if err != nil {
		return domain.Snapshot{}, err
	}
	uc.log.Info("enteral.adjusted",
		"diet_id", id,
		"route", e.Route(),
		"rate_ml_h", e.RateMLPerHour(),
		"equipment", e.Equipment(),
		"daily_portions", e.DailyPortions(),
	)
	uc.publish(ctx, domain.EventUpdated, e)
	return snap, nil
}
