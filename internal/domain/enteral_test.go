package domain

import (
	"strings"
	"testing"
)

func basicEnteral(t *testing.T, opts ...Option) *EnteralDiet {
	t.Helper()
	d, err := NewEnteralDiet(EnteralParams{
		Route:           "nasogástrica",
		RateMLPerHour:   50,
		GramsPerPortion: 200,
		DailyPortions:   1,
	}, opts...)
	if err != nil {
		t.Fatalf("NewEnteralDiet: %v", err)
	}
	return d
}

func TestNewEnteralDiet_Defaults(t *testing.T) {
	d := basicEnteral(t)

	if d.Route() != "nasogástrica" {
		t.Fatalf("unexpected route %q", d.Route())
	}
	if d.Equipment() != EquipmentPump {
		t.Fatalf("expected default equipment bomba, got %q", d.Equipment())
	}
	if d.DailyPortions() != 1 {
		t.Fatalf("expected 1 portion, got %d", d.DailyPortions())
	}
	if d.Description() != "Dieta Enteral via nasogástrica" {
		t.Fatalf("unexpected description %q", d.Description())
	}
	if !d.IsActive() || d.Lifecycle().EndDate != nil {
		t.Fatalf("expected active diet")
	}
}

func TestNewEnteralDiet_NormalizesRouteCase(t *testing.T) {
	d, err := NewEnteralDiet(EnteralParams{
		Route:           "NASOGÁSTRICA",
		RateMLPerHour:   50,
		GramsPerPortion: 200,
		DailyPortions:   4,
		Equipment:       "Gravitacional",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Route() != "nasogástrica" {
		t.Fatalf("expected folded route, got %q", d.Route())
	}
	if d.Equipment() != EquipmentGravity {
		t.Fatalf("expected gravitacional, got %q", d.Equipment())
	}
}

func TestNewEnteralDiet_Invalid(t *testing.T) {
	valid := EnteralParams{Route: "sng", RateMLPerHour: 50, GramsPerPortion: 200, DailyPortions: 1}

	cases := []struct {
		name     string
		mutate   func(p *EnteralParams)
		contains string
	}{
		{"route", func(p *EnteralParams) { p.Route = "via espacial" }, "invalid infusion route"},
		{"zero rate", func(p *EnteralParams) { p.RateMLPerHour = 0 }, "infusion rate must be greater than 0"},
		{"negative rate", func(p *EnteralParams) { p.RateMLPerHour = -10 }, "infusion rate must be greater than 0"},
		{"zero grams", func(p *EnteralParams) { p.GramsPerPortion = 0 }, "grams per portion must be greater than 0"},
		{"zero portions", func(p *EnteralParams) { p.DailyPortions = 0 }, "daily portions must be at least 1"},
		{"negative portions", func(p *EnteralParams) { p.DailyPortions = -2 }, "daily portions must be at least 1"},
		{"equipment", func(p *EnteralParams) { p.Equipment = "seringa" }, "invalid equipment type"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := valid
			c.mutate(&p)
			_, err := NewEnteralDiet(p)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !IsKind(err, KindValidation) || !strings.Contains(err.Error(), c.contains) {
				t.Fatalf("expected validation %q, got %v", c.contains, err)
			}
		})
	}
}

func TestEnteralDiet_Setters(t *testing.T) {
	clock := newFakeClock()
	d := basicEnteral(t, WithNow(clock.Now))
	last := d.Audit().UpdatedAt

	steps := []struct {
		name string
		fn   func() error
	}{
		{"route", func() error { return d.SetRoute("Gastrostomia") }},
		{"rate", func() error { return d.SetRate(80) }},
		{"equipment", func() error { return d.SetEquipment("gravitacional") }},
		{"portions", func() error { return d.SetDailyPortions(6) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if !d.Audit().UpdatedAt.After(last) {
			t.Fatalf("%s: expected UpdatedAt refresh", s.name)
		}
		last = d.Audit().UpdatedAt
	}

	if d.Route() != "gastrostomia" || d.RateMLPerHour() != 80 || d.Equipment() != EquipmentGravity || d.DailyPortions() != 6 {
		t.Fatalf("unexpected state %s", d)
	}

	if err := d.SetRoute("oral"); err == nil {
		t.Fatalf("expected invalid route")
	}
	if err := d.SetRate(0); err == nil {
		t.Fatalf("expected invalid rate")
	}
	if err := d.SetEquipment(""); err == nil {
		t.Fatalf("expected invalid equipment")
	}
	if err := d.SetDailyPortions(0); err == nil {
		t.Fatalf("expected invalid portions")
	}
	if !d.Audit().UpdatedAt.Equal(last) {
		t.Fatalf("failed setters must not touch UpdatedAt")
	}
}

func TestEnteralDiet_Volume24h(t *testing.T) {
	d := basicEnteral(t)
	if d.Volume24h() != 1200 {
		t.Fatalf("expected 1200, got %g", d.Volume24h())
	}
	_ = d.SetRate(62.5)
	if d.Volume24h() != 1500 {
		t.Fatalf("expected 1500, got %g", d.Volume24h())
	}
}

func TestEnteralDiet_CalculateNutrients(t *testing.T) {
	d, err := NewEnteralDiet(EnteralParams{
		Route:           "gastrostomia",
		RateMLPerHour:   75,
		GramsPerPortion: 250,
		DailyPortions:   4,
		Equipment:       "gravitacional",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = d.AddForbiddenRestriction("lactose")

	s := d.CalculateNutrients()
	if s.DietType != "Enteral" {
		t.Fatalf("expected Enteral, got %q", s.DietType)
	}
	if s.Route != "gastrostomia" || s.Equipment != EquipmentGravity {
		t.Fatalf("unexpected route/equipment %q/%q", s.Route, s.Equipment)
	}
	if s.Prescribed["total_grams_daily"] != 1000.0 {
		t.Fatalf("expected 1000 g/day, got %v", s.Prescribed["total_grams_daily"])
	}
	if s.EquipmentPerPortion == nil || !*s.EquipmentPerPortion {
		t.Fatalf("expected equipment per portion with gravity set")
	}
	if s.SingleEquipmentPerDay == nil || *s.SingleEquipmentPerDay {
		t.Fatalf("expected no single equipment with gravity set")
	}
	if len(s.Restrictions.Forbidden) != 1 || s.ItemCount != 0 {
		t.Fatalf("unexpected restrictions/items %v/%d", s.Restrictions.Forbidden, s.ItemCount)
	}
}

func TestEnteralDiet_SharesContract(t *testing.T) {
	var d Diet = basicEnteral(t)

	_ = d.AddForbiddenRestriction("soja")
	item, _ := NewMenuItem("Fórmula padrão", 200, "soja")
	if err := d.AddItem(item); err == nil {
		t.Fatalf("expected conflict")
	}
	item, _ = NewMenuItem("Fórmula sem soja", 200)
	if err := d.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.ValidateCompatibility() {
		t.Fatalf("expected compatible")
	}
	if err := d.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := d.End(); err == nil || !strings.Contains(err.Error(), "already ended") {
		t.Fatalf("expected already ended, got %v", err)
	}
}
