package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

// fakeClock advances one second per call so UpdatedAt refreshes are observable.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func mustOral(t *testing.T, opts ...Option) *OralDiet {
	t.Helper()
	d, err := NewOralDiet(OralParams{Texture: "pastosa", MealCount: 5, MealType: "janta"}, opts...)
	if err != nil {
		t.Fatalf("NewOralDiet: %v", err)
	}
	return d
}

func mustItem(t *testing.T, name string, tags ...string) MenuItem {
	t.Helper()
	it, err := NewMenuItem(name, 100, tags...)
	if err != nil {
		t.Fatalf("NewMenuItem: %v", err)
	}
	return it
}

func TestNewOralDiet_AllValidCombinations(t *testing.T) {
	for _, texture := range OralTextures {
		for _, mealType := range MealTypes {
			d, err := NewOralDiet(OralParams{Texture: texture, MealCount: 3, MealType: mealType})
			if err != nil {
				t.Fatalf("texture=%q mealType=%q: unexpected error %v", texture, mealType, err)
			}
			if !d.IsActive() {
				t.Fatalf("expected active diet")
			}
			if d.Lifecycle().EndDate != nil {
				t.Fatalf("expected nil end date")
			}
		}
	}
}

func TestNewOralDiet_CaseInsensitive(t *testing.T) {
	d, err := NewOralDiet(OralParams{Texture: "PASTOSA", MealCount: 4, MealType: "ALMOÇO"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Texture() != "pastosa" {
		t.Fatalf("expected texture pastosa, got %q", d.Texture())
	}
	if d.MealType() != "almoço" {
		t.Fatalf("expected accents preserved, got %q", d.MealType())
	}
	if d.Type() != DietOral {
		t.Fatalf("expected oral type, got %s", d.Type())
	}
}

func TestNewOralDiet_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		params   OralParams
		contains string
	}{
		{"unknown texture", OralParams{Texture: "crocante", MealCount: 3, MealType: "janta"}, "invalid texture"},
		{"zero meals", OralParams{Texture: "normal", MealCount: 0, MealType: "janta"}, "greater than 0"},
		{"negative meals", OralParams{Texture: "normal", MealCount: -5, MealType: "janta"}, "greater than 0"},
		{"unknown meal type", OralParams{Texture: "normal", MealCount: 3, MealType: "brunch"}, "invalid meal type"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewOralDiet(c.params)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !IsKind(err, KindValidation) {
				t.Fatalf("expected validation kind, got %v", err)
			}
			if !strings.Contains(err.Error(), c.contains) {
				t.Fatalf("expected %q in %q", c.contains, err.Error())
			}
		})
	}
}

func TestOralDiet_DefaultsAndOptions(t *testing.T) {
	clock := newFakeClock()
	d := mustOral(t, WithID("diet-1"), WithNow(clock.Now), WithDescription(" pós-operatório "))

	if d.ID() != "diet-1" {
		t.Fatalf("expected id diet-1, got %q", d.ID())
	}
	if d.Description() != "pós-operatório" {
		t.Fatalf("expected trimmed description, got %q", d.Description())
	}
	a := d.Audit()
	if a.ResponsibleUser != DefaultResponsibleUser {
		t.Fatalf("expected default responsible user, got %q", a.ResponsibleUser)
	}
	if !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Fatalf("expected created == updated at construction")
	}
	if !d.Lifecycle().StartDate.Equal(a.CreatedAt) {
		t.Fatalf("expected start date stamped at construction")
	}

	other := mustOral(t)
	if other.ID() == "" || other.ID() == d.ID() {
		t.Fatalf("expected generated id, got %q", other.ID())
	}
}

func TestOralDiet_RestrictionManagement(t *testing.T) {
	clock := newFakeClock()
	d := mustOral(t, WithNow(clock.Now))
	created := d.Audit().UpdatedAt

	if err := d.AddForbiddenRestriction("LACTOSE"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !d.HasForbiddenRestriction("lactose") {
		t.Fatalf("expected lactose to be forbidden")
	}
	if !d.Audit().UpdatedAt.After(created) {
		t.Fatalf("expected UpdatedAt to be refreshed")
	}

	// idempotent
	if err := d.AddForbiddenRestriction(" lactose "); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if got := d.ForbiddenRestrictions(); len(got) != 1 {
		t.Fatalf("expected single tag, got %v", got)
	}

	for _, bad := range []string{"", "   "} {
		err := d.AddForbiddenRestriction(bad)
		if err == nil || !strings.Contains(err.Error(), "invalid restriction") {
			t.Fatalf("expected invalid restriction for %q, got %v", bad, err)
		}
	}

	if d.RemoveForbiddenRestriction("soja") {
		t.Fatalf("expected false removing absent tag")
	}
	if !d.RemoveForbiddenRestriction("Lactose") {
		t.Fatalf("expected true removing present tag")
	}
	if d.HasForbiddenRestriction("lactose") {
		t.Fatalf("expected lactose to be gone")
	}
}

func TestOralDiet_ForbiddenRestrictionsSorted(t *testing.T) {
	d := mustOral(t)
	for _, tag := range []string{"soja", "gluten", "lactose"} {
		if err := d.AddForbiddenRestriction(tag); err != nil {
			t.Fatalf("add %s: %v", tag, err)
		}
	}

	want := []string{"gluten", "lactose", "soja"}
	if got := d.ForbiddenRestrictions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOralDiet_AddItem(t *testing.T) {
	d := mustOral(t)
	_ = d.AddForbiddenRestriction("gluten")

	err := d.AddItem(mustItem(t, "Pão", "GLUTEN", "sal"))
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if !strings.Contains(err.Error(), "item conflicts with diet restrictions") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !strings.Contains(err.Error(), "gluten") {
		t.Fatalf("expected conflicting tag in message, got %q", err.Error())
	}
	if d.ItemCount() != 0 {
		t.Fatalf("expected no items after conflict")
	}

	if err := d.AddItem(mustItem(t, "Arroz", "sal")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ItemCount() != 1 {
		t.Fatalf("expected 1 item, got %d", d.ItemCount())
	}

	err = d.AddItem(mustItem(t, "Arroz"))
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if d.ItemCount() != 1 {
		t.Fatalf("expected duplicate to be rejected")
	}
}

func TestOralDiet_GetItem(t *testing.T) {
	d := mustOral(t)
	_ = d.AddItem(mustItem(t, "Sopa"))

	got, err := d.Item("Sopa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name() != "Sopa" {
		t.Fatalf("expected Sopa, got %q", got.Name())
	}

	_, err = d.Item("Bife")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if IsKind(err, KindValidation) {
		t.Fatalf("not found must not be a validation error")
	}
}

func TestOralDiet_CalculateNutrients(t *testing.T) {
	d := mustOral(t)
	s := d.CalculateNutrients()

	if s.DietType != "Oral" {
		t.Fatalf("expected diet_type Oral, got %q", s.DietType)
	}
	if s.Texture != "pastosa" {
		t.Fatalf("expected texture, got %q", s.Texture)
	}
	if s.ItemCount != 0 {
		t.Fatalf("expected item_count 0, got %d", s.ItemCount)
	}
	if s.Prescribed["meal_count"] != 5 || s.Prescribed["meal_type"] != "janta" {
		t.Fatalf("unexpected prescribed %v", s.Prescribed)
	}

	for _, name := range []string{"Arroz", "Feijão", "Salada"} {
		if err := d.AddItem(mustItem(t, name)); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if got := d.CalculateNutrients().ItemCount; got != 3 {
		t.Fatalf("expected item_count 3, got %d", got)
	}
}

func TestOralDiet_ValidateCompatibility(t *testing.T) {
	d := mustOral(t)
	if !d.ValidateCompatibility() {
		t.Fatalf("expected empty diet to be compatible")
	}

	_ = d.AddItem(mustItem(t, "Leite", "lactose"))
	if !d.ValidateCompatibility() {
		t.Fatalf("expected compatible before restriction")
	}

	// non-retroactive: the add succeeds, the re-check detects it
	if err := d.AddForbiddenRestriction("lactose"); err != nil {
		t.Fatalf("expected restriction add to succeed, got %v", err)
	}
	if d.ItemCount() != 1 {
		t.Fatalf("expected item to remain")
	}
	if d.ValidateCompatibility() {
		t.Fatalf("expected incompatibility to be detected")
	}
}

func TestOralDiet_End(t *testing.T) {
	clock := newFakeClock()
	d := mustOral(t, WithNow(clock.Now))
	before := d.Audit().UpdatedAt

	if err := d.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	lc := d.Lifecycle()
	if lc.Active || d.IsActive() {
		t.Fatalf("expected inactive diet")
	}
	if lc.EndDate == nil {
		t.Fatalf("expected end date")
	}
	if lc.Status() != StatusEnded {
		t.Fatalf("expected ended status")
	}
	if !d.Audit().UpdatedAt.After(before) {
		t.Fatalf("expected UpdatedAt refreshed on end")
	}

	err := d.End()
	if err == nil || !strings.Contains(err.Error(), "already ended") {
		t.Fatalf("expected already ended error, got %v", err)
	}

	// edits stay allowed after ending
	if err := d.AddForbiddenRestriction("soja"); err != nil {
		t.Fatalf("expected restriction edit after end, got %v", err)
	}
}

func TestOralDiet_LifecycleIsCopied(t *testing.T) {
	d := mustOral(t)
	_ = d.End()

	lc := d.Lifecycle()
	*lc.EndDate = time.Time{}
	if d.Lifecycle().EndDate.IsZero() {
		t.Fatalf("expected internal end date to be untouched")
	}
}

func TestOralDiet_EndToEnd(t *testing.T) {
	d, err := NewOralDiet(OralParams{Texture: "pastosa", MealCount: 5, MealType: "janta"})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	_ = d.AddForbiddenRestriction("gluten")
	_ = d.AddForbiddenRestriction("lactose")

	if err := d.AddItem(mustItem(t, "Pão", "gluten")); err == nil {
		t.Fatalf("expected gluten item to be rejected")
	}
	if err := d.AddItem(mustItem(t, "Arroz")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ItemCount() != 1 {
		t.Fatalf("expected 1 item")
	}
	if got := len(d.CalculateNutrients().Restrictions.Forbidden); got != 2 {
		t.Fatalf("expected 2 forbidden tags, got %d", got)
	}
}

func TestOralDiet_DynamicRestriction(t *testing.T) {
	d := mustOral(t)
	_ = d.AddForbiddenRestriction("lactose")

	leite := mustItem(t, "Leite", "lactose")
	if err := d.AddItem(leite); err == nil {
		t.Fatalf("expected lactose item to be rejected")
	}
	if !d.RemoveForbiddenRestriction("lactose") {
		t.Fatalf("expected removal")
	}
	if err := d.AddItem(leite); err != nil {
		t.Fatalf("expected item to be accepted now, got %v", err)
	}
	if d.ItemCount() != 1 {
		t.Fatalf("expected 1 item")
	}
}
