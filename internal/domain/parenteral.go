package domain

import (
	"fmt"
	"math"
	"strings"
)

// VenousAccessTypes accepted for parenteral diets.
var VenousAccessTypes = []string{"periférico", "central", "cateter central", "picc"}

// rateTolerance is how far rate*24h may drift from the prescribed daily volume.
const rateTolerance = 0.2

// ParenteralParams are the prescribed parameters of an intravenous diet.
type ParenteralParams struct {
	Access         string  `json:"access"`
	VolumeMLPerDay float64 `json:"volume_ml_day"`
	Composition    string  `json:"composition"`
	RateMLPerHour  float64 `json:"rate_ml_h"`
}

func (p ParenteralParams) normalized() (ParenteralParams, error) {
	access := Fold(p.Access)
	if !oneOf(VenousAccessTypes, access) {
		return ParenteralParams{}, validationErr("invalid venous access %q", p.Access)
	}
	if p.VolumeMLPerDay <= 0 {
		return ParenteralParams{}, validationErr("daily volume must be greater than 0")
	}
	if err := checkRate(p.RateMLPerHour); err != nil {
		return ParenteralParams{}, err
	}
	composition := strings.TrimSpace(p.Composition)
	if composition == "" {
		return ParenteralParams{}, validationErr("composition must not be empty")
	}
	np := ParenteralParams{
		Access:         access,
		VolumeMLPerDay: p.VolumeMLPerDay,
		Composition:    composition,
		RateMLPerHour:  p.RateMLPerHour,
	}
	if !np.rateConsistent() {
		return ParenteralParams{}, validationErr(
			"infusion rate inconsistent with daily volume: %g ml/h infuses %.1f ml in 24h, prescribed %g ml",
			np.RateMLPerHour, np.RateMLPerHour*24, np.VolumeMLPerDay)
	}
	return np, nil
}

func (p ParenteralParams) rateConsistent() bool {
	v := p.RateMLPerHour * 24
	return v >= p.VolumeMLPerDay*(1-rateTolerance) && v <= p.VolumeMLPerDay*(1+rateTolerance)
}

// ParenteralDiet is an intravenous diet. It has no menu items in practice,
// but it honours the same contract.
type ParenteralDiet struct {
	dietCore
	params ParenteralParams
}

var _ Diet = (*ParenteralDiet)(nil)

func NewParenteralDiet(p ParenteralParams, opts ...Option) (*ParenteralDiet, error) {
	np, err := p.normalized()
	if err != nil {
		return nil, err
	}
	d := &ParenteralDiet{
		dietCore: newDietCore(DietParenteral, opts),
		params:   np,
	}
	if d.description == "" {
		d.description = "Dieta Parenteral via " + np.Access
	}
	return d, nil
}

func (d *ParenteralDiet) Access() string          { return d.params.Access }
func (d *ParenteralDiet) VolumeMLPerDay() float64 { return d.params.VolumeMLPerDay }
func (d *ParenteralDiet) Composition() string     { return d.params.Composition }
func (d *ParenteralDiet) RateMLPerHour() float64  { return d.params.RateMLPerHour }

func (d *ParenteralDiet) Volume24h() float64 {
	return d.params.RateMLPerHour * 24
}

// VolumeCoverage is the share (in %) of the daily volume infused in 24h.
func (d *ParenteralDiet) VolumeCoverage() float64 {
	return d.Volume24h() / d.params.VolumeMLPerDay * 100
}

// HoursToInfuse is how long the daily volume takes at the current rate.
func (d *ParenteralDiet) HoursToInfuse() float64 {
	return d.params.VolumeMLPerDay / d.params.RateMLPerHour
}

func (d *ParenteralDiet) CalculateNutrients() NutrientSummary {
	s := d.summary(map[string]any{
		"volume_ml_day":       d.params.VolumeMLPerDay,
		"rate_ml_h":           d.params.RateMLPerHour,
		"volume_24h_ml":       d.Volume24h(),
		"volume_coverage_pct": math.Round(d.VolumeCoverage()*100) / 100,
		"hours_to_infuse":     math.Round(d.HoursToInfuse()*100) / 100,
	})
	s.Access = d.params.Access
	s.Composition = d.params.Composition
	return s
}

func (d *ParenteralDiet) ValidateCompatibility() bool {
	p := d.params
	if !oneOf(VenousAccessTypes, p.Access) || p.VolumeMLPerDay <= 0 || p.RateMLPerHour <= 0 {
		return false
	}
	if strings.TrimSpace(p.Composition) == "" || !p.rateConsistent() {
		return false
	}
	return d.itemsCompatible()
}

func (d *ParenteralDiet) Snapshot() Snapshot {
	s := d.snapshot()
	p := d.params
	s.Parenteral = &p
	return s
}

func (d *ParenteralDiet) String() string {
	return fmt.Sprintf("ParenteralDiet(access=%s, volume=%gml, rate=%gml/h, active=%t)",
		d.params.Access, d.params.VolumeMLPerDay, d.params.RateMLPerHour, d.lifecycle.Active)
}
