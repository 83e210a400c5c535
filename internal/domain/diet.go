package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DietType discriminates the closed set of diet variants.
type DietType string

const (
	DietOral       DietType = "oral"
	DietEnteral    DietType = "enteral"
	DietParenteral DietType = "parenteral"
	DietMixed      DietType = "mixed"
)

// DietTypes lists the supported variants in a stable order.
func DietTypes() []DietType {
	return []DietType{DietOral, DietEnteral, DietParenteral, DietMixed}
}

// DisplayName is the label reported as diet_type in nutrient summaries.
func (t DietType) DisplayName() string {
	switch t {
	case DietOral:
		return "Oral"
	case DietEnteral:
		return "Enteral"
	case DietParenteral:
		return "Parenteral"
	case DietMixed:
		return "Mista"
	default:
		return string(t)
	}
}

// Diet is the contract shared by every prescribed diet variant.
// Implementations are *OralDiet, *EnteralDiet, *ParenteralDiet and *MixedDiet.
type Diet interface {
	ID() string
	Type() DietType
	Description() string
	Audit() AuditTrail
	Lifecycle() Lifecycle
	IsActive() bool

	AddForbiddenRestriction(tag string) error
	RemoveForbiddenRestriction(tag string) bool
	HasForbiddenRestriction(tag string) bool
	ForbiddenRestrictions() []string

	AddItem(item MenuItem) error
	Item(name string) (MenuItem, error)
	Items() []MenuItem
	ItemCount() int

	CalculateNutrients() NutrientSummary
	ValidateCompatibility() bool
	End() error

	Snapshot() Snapshot

	core() *dietCore
}

// Option configures the shared state of a diet at construction.
type Option func(*dietCore)

// WithID sets the diet identity (defaults to a random UUID).
func WithID(id string) Option {
	return func(c *dietCore) {
		if strings.TrimSpace(id) != "" {
			c.id = strings.TrimSpace(id)
		}
	}
}

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) Option {
	return func(c *dietCore) {
		if now != nil {
			c.now = now
		}
	}
}

func WithDescription(desc string) Option {
	return func(c *dietCore) { c.description = strings.TrimSpace(desc) }
}

func WithResponsibleUser(user string) Option {
	return func(c *dietCore) { c.responsible = user }
}

// dietCore carries the state every variant shares. Audit and lifecycle are
// composed by field; variants embed dietCore and add their own parameters.
type dietCore struct {
	id          string
	dietType    DietType
	description string
	responsible string

	audit     AuditTrail
	lifecycle Lifecycle

	forbidden tagSet
	items     map[string]MenuItem

	now func() time.Time
}

func newDietCore(t DietType, opts []Option) dietCore {
	c := dietCore{
		id:        uuid.NewString(),
		dietType:  t,
		forbidden: tagSet{},
		items:     map[string]MenuItem{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}

	now := c.now()
	c.audit = newAuditTrail(now, c.responsible)
	c.lifecycle = newLifecycle(now)
	return c
}

func (c *dietCore) core() *dietCore { return c }

func (c *dietCore) ID() string { return c.id }

func (c *dietCore) Type() DietType { return c.dietType }

func (c *dietCore) Description() string { return c.description }

func (c *dietCore) Audit() AuditTrail { return c.audit }

// Lifecycle returns a copy; mutating it does not affect the diet.
func (c *dietCore) Lifecycle() Lifecycle {
	out := c.lifecycle
	if c.lifecycle.EndDate != nil {
		end := *c.lifecycle.EndDate
		out.EndDate = &end
	}
	return out
}

func (c *dietCore) IsActive() bool { return c.lifecycle.Active }

func (c *dietCore) touch() {
	c.audit.touch(c.now())
}

// AddForbiddenRestriction stores tag folded. Adding an existing tag is a no-op.
// Items already in the diet are not re-checked; see ValidateCompatibility.
func (c *dietCore) AddForbiddenRestriction(tag string) error {
	key := Fold(tag)
	if key == "" {
		return validationErr("invalid restriction")
	}
	if c.forbidden.has(key) {
		return nil
	}
	c.forbidden[key] = struct{}{}
	c.touch()
	return nil
}

func (c *dietCore) RemoveForbiddenRestriction(tag string) bool {
	key := Fold(tag)
	if !c.forbidden.has(key) {
		return false
	}
	delete(c.forbidden, key)
	c.touch()
	return true
}

func (c *dietCore) HasForbiddenRestriction(tag string) bool {
	return c.forbidden.has(Fold(tag))
}

// ForbiddenRestrictions returns the tags sorted lexicographically.
func (c *dietCore) ForbiddenRestrictions() []string {
	return c.forbidden.sorted()
}

// AddItem rejects items carrying a forbidden tag and duplicate names.
func (c *dietCore) AddItem(item MenuItem) error {
	if item.name == "" {
		return validationErr("item name must not be empty")
	}
	if conflicts := c.forbidden.intersect(item.restrictions); len(conflicts) > 0 {
		return validationErr("item conflicts with diet restrictions: %s", strings.Join(conflicts, ", "))
	}
	if _, exists := c.items[item.name]; exists {
		return validationErr("item already exists: %s", item.name)
	}
	c.items[item.name] = item
	c.touch()
	return nil
}

func (c *dietCore) Item(name string) (MenuItem, error) {
	item, ok := c.items[strings.TrimSpace(name)]
	if !ok {
		return MenuItem{}, notFoundErr("item %q not found", strings.TrimSpace(name))
	}
	return item, nil
}

// Items returns the stored items ordered by name.
func (c *dietCore) Items() []MenuItem {
	out := make([]MenuItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (c *dietCore) ItemCount() int { return len(c.items) }

// itemsCompatible re-checks every stored item against the forbidden set.
func (c *dietCore) itemsCompatible() bool {
	for _, it := range c.items {
		if len(c.forbidden.intersect(it.restrictions)) > 0 {
			return false
		}
	}
	return true
}

// End moves the diet to the terminal Ended state.
func (c *dietCore) End() error {
	now := c.now()
	if err := c.lifecycle.end(now); err != nil {
		return err
	}
	c.audit.touch(now)
	return nil
}

func (c *dietCore) summary(prescribed map[string]any) NutrientSummary {
	return NutrientSummary{
		DietType:   c.dietType.DisplayName(),
		Prescribed: prescribed,
		Restrictions: RestrictionSummary{
			Forbidden: c.ForbiddenRestrictions(),
		},
		ItemCount: len(c.items),
	}
}

// NutrientSummary is descriptive metadata about a prescription. It is not a
// nutrition-science computation.
type NutrientSummary struct {
	DietType string `json:"diet_type"`

	Texture     string `json:"texture,omitempty"`
	Route       string `json:"route,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Access      string `json:"access,omitempty"`
	Composition string `json:"composition,omitempty"`

	EquipmentPerPortion   *bool `json:"equipment_per_portion,omitempty"`
	SingleEquipmentPerDay *bool `json:"single_equipment_per_day,omitempty"`

	Components []ComponentSummary `json:"components,omitempty"`

	Prescribed   map[string]any     `json:"prescribed"`
	Restrictions RestrictionSummary `json:"restrictions"`
	ItemCount    int                `json:"item_count"`
}

type RestrictionSummary struct {
	Forbidden []string `json:"forbidden"`
}
