package usecase

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// ManageComponents edits the weighted components of a stored mixed diet.
// Changes that leave the shares off 100% are saved; DescribeDiet reports the
// diet as incompatible until the shares are fixed.
type ManageComponents struct {
	deps
}

func NewManageComponents(repo ports.DietRepository, opts ...Option) *ManageComponents {
	return &ManageComponents{deps: newDeps(repo, opts)}
}

func (uc *ManageComponents) loadMixed(ctx context.Context, id string) (*domain.MixedDiet, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	m, ok := d.(*domain.MixedDiet)
	if !ok {
		return nil, &domain.DomainError{Kind: domain.KindValidation, Msg: "diet " + id + " is not a mixed diet"}
	}
	return m, nil
}

func (uc *ManageComponents) List(ctx context.Context, id string) ([]domain.ComponentSummary, error) {
	m, err := uc.loadMixed(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.CalculateNutrients().Components, nil
}

// Add builds a new component from req and gives it pct of the diet.
func (uc *ManageComponents) Add(ctx context.Context, id string, req domain.PrescriptionRequest, pct float64) (domain.Snapshot, error) {
	m, err := uc.loadMixed(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if req.ResponsibleUser == "" {
		req.ResponsibleUser = m.Audit().ResponsibleUser
	}
	comp, err := domain.NewDiet(req, domain.WithNow(uc.now))
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := m.AddComponent(comp, pct); err != nil {
		return domain.Snapshot{}, err
	}
	return uc.commit(ctx, m, "component.added", "component_id", comp.ID(), "type", string(comp.Type()), "pct", pct)
}

// SetPercentage fails with KindNotFound when the component is absent.
func (uc *ManageComponents) SetPercentage(ctx context.Context, id, componentID string, pct float64) (domain.Snapshot, error) {
	m, err := uc.loadMixed(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	ok, err := m.UpdatePercentage(componentID, pct)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if !ok {
		return domain.Snapshot{}, &domain.DomainError{Kind: domain.KindNotFound, Msg: "component " + componentID + " not found"}
	}
	return uc.commit(ctx, m, "component.updated", "component_id", componentID, "pct", pct)
}

// Remove reports whether the component was present. Removing an absent
// component saves nothing.
func (uc *ManageComponents) Remove(ctx context.Context, id, componentID string) (bool, error) {
	m, err := uc.loadMixed(ctx, id)
	if err != nil {
		return false, err
	}
	if !m.RemoveComponent(componentID) {
		return false, nil
	}
	if _, err := uc.commit(ctx, m, "component.removed", "component_id", componentID); err != nil {
		return false, err
	}
	return true, nil
}

// Clear returns how many components were dropped.
func (uc *ManageComponents) Clear(ctx context.Context, id string) (int, error) {
	m, err := uc.loadMixed(ctx, id)
	if err != nil {
		return 0, err
	}
	n := m.ClearComponents()
	if n == 0 {
		return 0, nil
	}
	if _, err := uc.commit(ctx, m, "component.cleared", "count", n); err != nil {
		return 0, err
	}
	return n, nil
}

func (uc *ManageComponents) commit(ctx context.Context, m *domain.MixedDiet, msg string, attrs ...any) (domain.Snapshot, error) {
	snap, err := uc.save(ctx, m)
	if err != nil {
		return domain.Snapshot{}, err
	}
	uc.log.Info(msg, append([]any{"diet_id", m.ID(), "total_pct", m.TotalPercentage()}, attrs...)...)
	uc.publish(ctx, domain.EventUpdated, m)
	return snap, nil
}
