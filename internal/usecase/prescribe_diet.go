package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type PrescribeDiet struct {
	deps
}

func NewPrescribeDiet(repo ports.DietRepository, opts ...Option) *PrescribeDiet {
	return &PrescribeDiet{deps: newDeps(repo, opts)}
}

// Execute builds a diet from req, persists it and announces diet.prescribed.
func (uc *PrescribeDiet) Execute(ctx context.Context, req domain.PrescriptionRequest) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	d, err := domain.NewDiet(req, domain.WithNow(uc.now))
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := uc.save(ctx, d)
	if err != nil {
		return domain.Snapshot{}, err
	}
	uc.log.Info("diet.prescribed",
		"diet_id", snap.ID,
		"type", string(snap.Type),
		"items", len(snap.Items),
		"responsible", snap.ResponsibleUser,
	)
	uc.metrics.DietPrescribed(snap.Type)
	uc.publish(ctx, domain.EventPrescribed, d)
	return snap, nil
}
