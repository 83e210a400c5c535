package domain

import "fmt"

// Textures accepted for oral diets. The Portuguese labels are the canonical
// hospital vocabulary; the English ones are accepted aliases.
var OralTextures = []string{
	"normal", "mole", "pastosa", "liquida", "líquida",
	"soft", "pureed", "liquid",
}

// Meal types accepted for oral diets.
var MealTypes = []string{
	"desjejum", "almoço", "almoco", "lanche", "lanche da tarde", "janta", "ceia",
	"breakfast", "lunch", "snack", "dinner", "supper",
}

// OralParams are the prescribed parameters of an oral diet.
type OralParams struct {
	Texture   string `json:"texture"`
	MealCount int    `json:"meal_count"`
	MealType  string `json:"meal_type"`
}

func (p OralParams) normalized() (OralParams, error) {
	texture := Fold(p.Texture)
	if !oneOf(OralTextures, texture) {
		return OralParams{}, validationErr("invalid texture %q", p.Texture)
	}
	if p.MealCount <= 0 {
		return OralParams{}, validationErr("meal count must be greater than 0")
	}
	mealType := Fold(p.MealType)
	if !oneOf(MealTypes, mealType) {
		return OralParams{}, validationErr("invalid meal type %q", p.MealType)
	}
	return OralParams{Texture: texture, MealCount: p.MealCount, MealType: mealType}, nil
}

// OralDiet is a diet fed by mouth.
type OralDiet struct {
	dietCore
	params OralParams
}

var _ Diet = (*OralDiet)(nil)

// NewOralDiet validates params (case-insensitive) and returns an active diet.
func NewOralDiet(p OralParams, opts ...Option) (*OralDiet, error) {
	np, err := p.normalized()
	if err != nil {
		return nil, err
	}
	return &OralDiet{
		dietCore: newDietCore(DietOral, opts),
		params:   np,
	}, nil
}

func (d *OralDiet) Texture() string  { return d.params.Texture }
func (d *OralDiet) MealCount() int   { return d.params.MealCount }
func (d *OralDiet) MealType() string { return d.params.MealType }

func (d *OralDiet) CalculateNutrients() NutrientSummary {
	s := d.summary(map[string]any{
		"meal_count": d.params.MealCount,
		"meal_type":  d.params.MealType,
	})
	s.Texture = d.params.Texture
	return s
}

func (d *OralDiet) ValidateCompatibility() bool {
	if !oneOf(OralTextures, d.params.Texture) || d.params.MealCount <= 0 {
		return false
	}
	return d.itemsCompatible()
}

func (d *OralDiet) Snapshot() Snapshot {
	s := d.snapshot()
	p := d.params
	s.Oral = &p
	return s
}

func (d *OralDiet) String() string {
	return fmt.Sprintf("OralDiet(texture=%s, meals=%d, type=%s, items=%d, active=%t)",
		d.params.Texture, d.params.MealCount, d.params.MealType, len(d.items), d.lifecycle.Active)
}
