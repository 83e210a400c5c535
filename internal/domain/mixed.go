package domain

import (
	"fmt"
	"strings"
)

// Composition limits of a mixed diet.
const (
	MinComponents = 2
	MaxComponents = 4

	// percentageTolerance is how far the component shares may drift from 100%.
	percentageTolerance = 5.0
)

// MixedComponent is one weighted part of a mixed diet.
type MixedComponent struct {
	Diet       Diet
	Percentage float64
}

// ComponentSummary describes a component inside a mixed diet summary.
type ComponentSummary struct {
	ID          string   `json:"id"`
	Type        DietType `json:"type"`
	Percentage  float64  `json:"percentage"`
	Description string   `json:"description"`
	Active      bool     `json:"active"`
}

// MixedDiet combines two to four oral, enteral or parenteral diets, each
// with a share of the prescription, e.g. 70% enteral and 30% oral while a
// patient is weaned off tube feeding. Items belong to the components.
type MixedDiet struct {
	dietCore
	components []MixedComponent
}

var _ Diet = (*MixedDiet)(nil)

// NewMixedDiet returns an empty mixed diet. It only becomes compatible once
// components summing to 100% (±5) are added.
func NewMixedDiet(opts ...Option) *MixedDiet {
	d := &MixedDiet{dietCore: newDietCore(DietMixed, opts)}
	if d.description == "" {
		d.description = "Dieta Mista"
	}
	return d
}

func checkPercentage(pct float64) error {
	if pct <= 0 || pct > 100 {
		return validationErr("percentage must be between 0 and 100, got %g", pct)
	}
	return nil
}

// AddComponent appends diet with the given share.
func (d *MixedDiet) AddComponent(diet Diet, pct float64) error {
	if diet == nil {
		return validationErr("component diet is required")
	}
	if diet.Type() == DietMixed {
		return validationErr("mixed diet cannot contain another mixed diet")
	}
	if err := checkPercentage(pct); err != nil {
		return err
	}
	if len(d.components) >= MaxComponents {
		return validationErr("mixed diet already has %d components", MaxComponents)
	}
	if d.indexOf(diet.ID()) >= 0 {
		return validationErr("component already added: %s", diet.ID())
	}
	d.components = append(d.components, MixedComponent{Diet: diet, Percentage: pct})
	d.touch()
	return nil
}

// RemoveComponent reports whether a component with that id was removed.
func (d *MixedDiet) RemoveComponent(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.components = append(d.components[:i], d.components[i+1:]...)
	d.touch()
	return true
}

// UpdatePercentage reports false when no component has that id.
func (d *MixedDiet) UpdatePercentage(id string, pct float64) (bool, error) {
	if err := checkPercentage(pct); err != nil {
		return false, err
	}
	i := d.indexOf(id)
	if i < 0 {
		return false, nil
	}
	d.components[i].Percentage = pct
	d.touch()
	return true, nil
}

// ClearComponents removes every component and returns how many there were.
func (d *MixedDiet) ClearComponents() int {
	n := len(d.components)
	d.components = nil
	d.touch()
	return n
}

// Component looks a component up by diet id.
func (d *MixedDiet) Component(id string) (MixedComponent, error) {
	i := d.indexOf(id)
	if i < 0 {
		return MixedComponent{}, notFoundErr("component %q not found", strings.TrimSpace(id))
	}
	return d.components[i], nil
}

// Components returns the components in insertion order.
func (d *MixedDiet) Components() []MixedComponent {
	out := make([]MixedComponent, len(d.components))
	copy(out, d.components)
	return out
}

func (d *MixedDiet) ComponentsByType(t DietType) []MixedComponent {
	var out []MixedComponent
	for _, c := range d.components {
		if c.Diet.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

func (d *MixedDiet) ComponentCount() int { return len(d.components) }

func (d *MixedDiet) TotalPercentage() float64 {
	var total float64
	for _, c := range d.components {
		total += c.Percentage
	}
	return total
}

func (d *MixedDiet) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i, c := range d.components {
		if c.Diet.ID() == id {
			return i
		}
	}
	return -1
}

// AddItem always fails: items are prescribed on the components.
func (d *MixedDiet) AddItem(MenuItem) error {
	return validationErr("mixed diet has no items of its own; add them to a component")
}

// ValidateCompatibility checks the component count, the total share and
// every component's own compatibility.
func (d *MixedDiet) ValidateCompatibility() bool {
	n := len(d.components)
	if n < MinComponents || n > MaxComponents {
		return false
	}
	total := d.TotalPercentage()
	if total < 100-percentageTolerance || total > 100+percentageTolerance {
		return false
	}
	for _, c := range d.components {
		if c.Diet == nil || checkPercentage(c.Percentage) != nil {
			return false
		}
		if !c.Diet.ValidateCompatibility() {
			return false
		}
	}
	return d.itemsCompatible()
}

func (d *MixedDiet) CalculateNutrients() NutrientSummary {
	s := d.summary(map[string]any{
		"component_count": len(d.components),
		"total_pct":       d.TotalPercentage(),
		"valid":           d.ValidateCompatibility(),
	})
	s.Components = make([]ComponentSummary, 0, len(d.components))
	for _, c := range d.components {
		s.Components = append(s.Components, ComponentSummary{
			ID:          c.Diet.ID(),
			Type:        c.Diet.Type(),
			Percentage:  c.Percentage,
			Description: c.Diet.Description(),
			Active:      c.Diet.IsActive(),
		})
	}
	return s
}

func (d *MixedDiet) Snapshot() Snapshot {
	s := d.snapshot()
	m := &MixedSnapshot{Components: make([]ComponentSnapshot, 0, len(d.components))}
	for _, c := range d.components {
		m.Components = append(m.Components, ComponentSnapshot{
			Percentage: c.Percentage,
			Diet:       c.Diet.Snapshot(),
		})
	}
	s.Mixed = m
	return s
}

// String reads like "Dieta Mista: Enteral (70%) + Oral (30%)".
func (d *MixedDiet) String() string {
	if len(d.components) == 0 {
		return "Dieta Mista (vazia)"
	}
	parts := make([]string, 0, len(d.components))
	for _, c := range d.components {
		parts = append(parts, fmt.Sprintf("%s (%g%%)", c.Diet.Type().DisplayName(), c.Percentage))
	}
	return "Dieta Mista: " + strings.Join(parts, " + ")
}
