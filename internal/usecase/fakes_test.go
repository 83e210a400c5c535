package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type memRepo struct {
	mu      sync.Mutex
	diets   map[string]domain.Snapshot
	saves   int
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{diets: map[string]domain.Snapshot{}}
}

func (r *memRepo) Save(_ context.Context, s domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.diets[s.ID] = s
	return nil
}

func (r *memRepo) Get(_ context.Context, id string) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.diets[id]
	if !ok {
		return domain.Snapshot{}, &domain.OpError{Op: "memrepo.get", Kind: domain.KindNotFound, Path: id, Err: domain.ErrNotFound}
	}
	return s, nil
}

func (r *memRepo) List(_ context.Context, f ports.ListFilter) ([]domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Snapshot{}
	for _, s := range r.diets {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeNotifier struct {
	events []domain.Event
	report domain.DispatchReport
	err    error
}

func (n *fakeNotifier) Notify(_ context.Context, ev domain.Event) (domain.DispatchReport, error) {
	n.events = append(n.events, ev)
	return n.report, n.err
}

func (n *fakeNotifier) kinds() []domain.EventKind {
	out := make([]domain.EventKind, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}

type fakeMetrics struct {
	prescribed   map[domain.DietType]int
	ended        int
	restrictions []string
	items        int
	dispatched   []domain.DispatchReport
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{prescribed: map[domain.DietType]int{}}
}

func (m *fakeMetrics) DietPrescribed(t domain.DietType) { m.prescribed[t]++ }
func (m *fakeMetrics) DietEnded(domain.DietType)        { m.ended++ }
func (m *fakeMetrics) RestrictionChanged(op string)     { m.restrictions = append(m.restrictions, op) }
func (m *fakeMetrics) ItemAdded(domain.DietType)        { m.items++ }
func (m *fakeMetrics) NotificationsDispatched(r domain.DispatchReport) {
	m.dispatched = append(m.dispatched, r)
}

var errBoom = errors.New("boom")

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
}

func oralRequest() domain.PrescriptionRequest {
	return domain.PrescriptionRequest{
		Type:            "oral",
		ResponsibleUser: "nutri.ana",
		Oral:            &domain.OralParams{Texture: "pastosa", MealCount: 5, MealType: "janta"},
	}
}
