package domain

import "fmt"

// InfusionRoutes accepted for enteral diets.
var InfusionRoutes = []string{
	"nasogástrica", "nasoentérica", "gastrostomia", "jejunostomia", "cateter central", "sng",
}

// Equipment types. With a gravity set one equipment is used per portion;
// with a pump a single equipment serves the whole day.
const (
	EquipmentPump    = "bomba"
	EquipmentGravity = "gravitacional"
)

var equipmentTypes = []string{EquipmentPump, EquipmentGravity}

// EnteralParams are the prescribed parameters of a tube-fed diet.
type EnteralParams struct {
	Route           string  `json:"route"`
	RateMLPerHour   float64 `json:"rate_ml_h"`
	GramsPerPortion float64 `json:"grams_per_portion"`
	DailyPortions   int     `json:"daily_portions"`
	Equipment       string  `json:"equipment"`
}

func (p EnteralParams) normalized() (EnteralParams, error) {
	route, err := normalizeRoute(p.Route)
	if err != nil {
		return EnteralParams{}, err
	}
	if err := checkRate(p.RateMLPerHour); err != nil {
		return EnteralParams{}, err
	}
	if p.GramsPerPortion <= 0 {
		return EnteralParams{}, validationErr("grams per portion must be greater than 0")
	}
	if err := checkPortions(p.DailyPortions); err != nil {
		return EnteralParams{}, err
	}
	equipment := EquipmentPump
	if Fold(p.Equipment) != "" {
		if equipment, err = normalizeEquipment(p.Equipment); err != nil {
			return EnteralParams{}, err
		}
	}
	return EnteralParams{
		Route:           route,
		RateMLPerHour:   p.RateMLPerHour,
		GramsPerPortion: p.GramsPerPortion,
		DailyPortions:   p.DailyPortions,
		Equipment:       equipment,
	}, nil
}

func normalizeRoute(route string) (string, error) {
	r := Fold(route)
	if !oneOf(InfusionRoutes, r) {
		return "", validationErr("invalid infusion route %q", route)
	}
	return r, nil
}

func normalizeEquipment(equipment string) (string, error) {
	e := Fold(equipment)
	if !oneOf(equipmentTypes, e) {
		return "", validationErr("invalid equipment type %q", equipment)
	}
	return e, nil
}

func checkRate(rate float64) error {
	if rate <= 0 {
		return validationErr("infusion rate must be greater than 0")
	}
	return nil
}

func checkPortions(n int) error {
	if n < 1 {
		return validationErr("daily portions must be at least 1")
	}
	return nil
}

// EnteralDiet is a diet administered through a feeding tube.
type EnteralDiet struct {
	dietCore
	params EnteralParams
}

var _ Diet = (*EnteralDiet)(nil)

func NewEnteralDiet(p EnteralParams, opts ...Option) (*EnteralDiet, error) {
	np, err := p.normalized()
	if err != nil {
		return nil, err
	}
	d := &EnteralDiet{
		dietCore: newDietCore(DietEnteral, opts),
		params:   np,
	}
	if d.description == "" {
		d.description = "Dieta Enteral via " + np.Route
	}
	return d, nil
}

func (d *EnteralDiet) Route() string            { return d.params.Route }
func (d *EnteralDiet) RateMLPerHour() float64   { return d.params.RateMLPerHour }
func (d *EnteralDiet) GramsPerPortion() float64 { return d.params.GramsPerPortion }
func (d *EnteralDiet) DailyPortions() int       { return d.params.DailyPortions }
func (d *EnteralDiet) Equipment() string        { return d.params.Equipment }

// Volume24h is the volume infused in 24 hours at the current rate.
func (d *EnteralDiet) Volume24h() float64 {
	return d.params.RateMLPerHour * 24
}

func (d *EnteralDiet) SetRoute(route string) error {
	r, err := normalizeRoute(route)
	if err != nil {
		return err
	}
	d.params.Route = r
	d.touch()
	return nil
}

func (d *EnteralDiet) SetRate(rate float64) error {
	if err := checkRate(rate); err != nil {
		return err
	}
	d.params.RateMLPerHour = rate
	d.touch()
	return nil
}

func (d *EnteralDiet) SetEquipment(equipment string) error {
	e, err := normalizeEquipment(equipment)
	if err != nil {
		return err
	}
	d.params.Equipment = e
	d.touch()
	return nil
}

func (d *EnteralDiet) SetDailyPortions(n int) error {
	if err := checkPortions(n); err != nil {
		return err
	}
	d.params.DailyPortions = n
	d.touch()
	return nil
}

func (d *EnteralDiet) CalculateNutrients() NutrientSummary {
	perPortion := d.params.Equipment == EquipmentGravity
	singlePerDay := d.params.Equipment == EquipmentPump

	s := d.summary(map[string]any{
		"rate_ml_h":         d.params.RateMLPerHour,
		"grams_per_portion": d.params.GramsPerPortion,
		"daily_portions":    d.params.DailyPortions,
		"total_grams_daily": d.params.GramsPerPortion * float64(d.params.DailyPortions),
		"volume_24h_ml":     d.Volume24h(),
	})
	s.Route = d.params.Route
	s.Equipment = d.params.Equipment
	s.EquipmentPerPortion = &perPortion
	s.SingleEquipmentPerDay = &singlePerDay
	return s
}

func (d *EnteralDiet) ValidateCompatibility() bool {
	p := d.params
	if !oneOf(InfusionRoutes, p.Route) || !oneOf(equipmentTypes, p.Equipment) {
		return false
	}
	if p.RateMLPerHour <= 0 || p.GramsPerPortion <= 0 || p.DailyPortions < 1 {
		return false
	}
	return d.itemsCompatible()
}

func (d *EnteralDiet) Snapshot() Snapshot {
	s := d.snapshot()
	p := d.params
	s.Enteral = &p
	return s
}

func (d *EnteralDiet) String() string {
	return fmt.Sprintf("EnteralDiet(route=%s, rate=%gml/h, portion=%gg, portions=%d, equipment=%s, active=%t)",
		d.params.Route, d.params.RateMLPerHour, d.params.GramsPerPortion,
		d.params.DailyPortions, d.params.Equipment, d.lifecycle.Active)
}
