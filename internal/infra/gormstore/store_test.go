package gormstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	s, err := Open(root, domain.StoreConfig{Driver: domain.StoreSQLite, DSN: filepath.Join("data", "snh.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func build(t *testing.T, req domain.PrescriptionRequest, id string, at time.Time) domain.Diet {
	t.Helper()
	d, err := domain.NewDiet(req, domain.WithID(id), domain.WithNow(func() time.Time { return at }))
	require.NoError(t, err)
	return d
}

var base = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func TestStore_RoundTripsEachVariant(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reqs := map[string]domain.PrescriptionRequest{
		"oral": {
			Type:                  "oral",
			Description:           "Dieta branda",
			Oral:                  &domain.OralParams{Texture: "mole", MealCount: 6, MealType: "ceia"},
			ForbiddenRestrictions: []string{"lactose", "gluten"},
			Items: []domain.ItemRequest{
				{Name: "Sopa", Quantity: 300, Restrictions: []string{"sal"}},
				{Name: "Arroz", Quantity: 150},
			},
		},
		"enteral": {
			Type:    "enteral",
			Enteral: &domain.EnteralParams{Route: "gastrostomia", RateMLPerHour: 62.5, GramsPerPortion: 250, DailyPortions: 4, Equipment: "gravitacional"},
		},
		"parenteral": {
			Type:       "parenteral",
			Parenteral: &domain.ParenteralParams{Access: "picc", VolumeMLPerDay: 1800, Composition: "NPT 2:1", RateMLPerHour: 75},
		},
		"mixed": {
			Type:                  "mixed",
			ForbiddenRestrictions: []string{"gluten"},
			Mixed: &domain.MixedParams{Components: []domain.ComponentRequest{
				{Percentage: 70, Diet: domain.PrescriptionRequest{
					Type:                  "enteral",
					Enteral:               &domain.EnteralParams{Route: "sng", RateMLPerHour: 60, GramsPerPortion: 100, DailyPortions: 1},
					ForbiddenRestrictions: []string{"lactose"},
				}},
				{Percentage: 30, Diet: domain.PrescriptionRequest{
					Type: "oral",
					Oral: &domain.OralParams{Texture: "pastosa", MealCount: 3, MealType: "almoço"},
				}},
			}},
		},
	}

	for id, req := range reqs {
		t.Run(id, func(t *testing.T) {
			want := build(t, req, id, base).Snapshot()
			require.NoError(t, s.Save(ctx, want))

			got, err := s.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			_, err = domain.Restore(got)
			require.NoError(t, err)
		})
	}
}

func TestStore_SaveReplacesChildren(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	d := build(t, domain.PrescriptionRequest{
		Type:  "oral",
		Oral:  &domain.OralParams{Texture: "normal", MealCount: 3, MealType: "almoço"},
		Items: []domain.ItemRequest{{Name: "Arroz", Quantity: 100}},
	}, "d-1", base)
	require.NoError(t, s.Save(ctx, d.Snapshot()))

	require.NoError(t, d.AddForbiddenRestriction("soja"))
	item, err := domain.NewMenuItem("Feijão", 80)
	require.NoError(t, err)
	require.NoError(t, d.AddItem(item))
	require.NoError(t, d.End())
	require.NoError(t, s.Save(ctx, d.Snapshot()))

	got, err := s.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.False(t, got.Active)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, []string{"soja"}, got.ForbiddenRestrictions)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Arroz", got.Items[0].Name)
	assert.Equal(t, "Feijão", got.Items[1].Name)
}

func TestStore_GetNotFound(t *testing.T) {
	_, err := openTestStore(t).Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestStore_ListFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	oral := domain.PrescriptionRequest{Type: "oral", Oral: &domain.OralParams{Texture: "normal", MealCount: 3, MealType: "lanche"}}
	enteral := domain.PrescriptionRequest{Type: "enteral", Enteral: &domain.EnteralParams{Route: "sng", RateMLPerHour: 50, GramsPerPortion: 200, DailyPortions: 1}}

	a := build(t, oral, "a", base)
	b := build(t, enteral, "b", base.Add(time.Hour))
	c := build(t, oral, "c", base.Add(2*time.Hour))
	require.NoError(t, c.End())
	for _, d := range []domain.Diet{c, a, b} {
		require.NoError(t, s.Save(ctx, d.Snapshot()))
	}

	ids := func(snaps []domain.Snapshot) []string {
		out := []string{}
		for _, s := range snaps {
			out = append(out, s.ID)
		}
		return out
	}

	all, err := s.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(all))

	active, err := s.List(ctx, ports.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(active))

	activeOral, err := s.List(ctx, ports.ListFilter{ActiveOnly: true, Type: domain.DietOral})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(activeOral))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(t.TempDir(), domain.StoreConfig{Driver: "mongo"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}
