package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type DescribeDiet struct {
	deps
}

func NewDescribeDiet(repo ports.DietRepository, opts ...Option) *DescribeDiet {
	return &DescribeDiet{deps: newDeps(repo, opts)}
}

// Execute returns the nutrient summary and whether the stored diet is
// still internally consistent.
func (uc *DescribeDiet) Execute(ctx context.Context, id string) (domain.NutrientSummary, bool, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return domain.NutrientSummary{}, false, err
	}
	ok := d.ValidateCompatibility()
	if !ok {
		uc.log.Warn("diet.incompatible", "diet_id", id, "forbidden", d.ForbiddenRestrictions())
	}
	return d.CalculateNutrients(), ok, nil
}
