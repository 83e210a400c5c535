package domain

import (
	"strings"
	"time"
)

// Snapshot is the plain-data view of a diet consumed by persistence and
// notification adapters. Exactly one of Oral/Enteral/Parenteral/Mixed is set.
type Snapshot struct {
	ID              string   `json:"id"`
	Type            DietType `json:"type"`
	Description     string   `json:"description,omitempty"`
	ResponsibleUser string   `json:"responsible_user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Active    bool       `json:"active"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	ForbiddenRestrictions []string       `json:"forbidden_restrictions"`
	Items                 []ItemSnapshot `json:"items"`

	Oral       *OralParams       `json:"oral,omitempty"`
	Enteral    *EnteralParams    `json:"enteral,omitempty"`
	Parenteral *ParenteralParams `json:"parenteral,omitempty"`
	Mixed      *MixedSnapshot    `json:"mixed,omitempty"`
}

// MixedSnapshot holds the components of a mixed diet, each a full snapshot.
type MixedSnapshot struct {
	Components []ComponentSnapshot `json:"components"`
}

type ComponentSnapshot struct {
	Percentage float64  `json:"percentage"`
	Diet       Snapshot `json:"diet"`
}

// ItemSnapshot is the plain-data view of a MenuItem.
type ItemSnapshot struct {
	Name         string   `json:"name"`
	Quantity     float64  `json:"quantity"`
	Restrictions []string `json:"restrictions,omitempty"`
}

func (c *dietCore) snapshot() Snapshot {
	lc := c.Lifecycle()
	items := c.Items()

	s := Snapshot{
		ID:                    c.id,
		Type:                  c.dietType,
		Description:           c.description,
		ResponsibleUser:       c.audit.ResponsibleUser,
		CreatedAt:             c.audit.CreatedAt,
		UpdatedAt:             c.audit.UpdatedAt,
		Active:                lc.Active,
		StartDate:             lc.StartDate,
		EndDate:               lc.EndDate,
		ForbiddenRestrictions: c.ForbiddenRestrictions(),
		Items:                 make([]ItemSnapshot, 0, len(items)),
	}
	for _, it := range items {
		s.Items = append(s.Items, ItemSnapshot{
			Name:         it.name,
			Quantity:     it.quantity,
			Restrictions: it.Restrictions(),
		})
	}
	return s
}

// Restore rebuilds a diet from persisted data. Variant parameters and items
// are validated as values, but items are not re-checked against the forbidden
// set: a stored inconsistency surfaces through ValidateCompatibility.
func Restore(s Snapshot, opts ...Option) (Diet, error) {
	if strings.TrimSpace(s.ID) == "" {
		return nil, validationErr("snapshot id must not be empty")
	}
	if s.Active != (s.EndDate == nil) {
		return nil, validationErr("inconsistent lifecycle: active=%t with end date set=%t", s.Active, s.EndDate != nil)
	}

	base := opts
	opts = append(opts[:len(opts):len(opts)],
		WithID(s.ID),
		WithDescription(s.Description),
		WithResponsibleUser(s.ResponsibleUser),
	)

	var (
		d   Diet
		err error
	)
	switch s.Type {
	case DietOral:
		if s.Oral == nil {
			return nil, validationErr("oral diet requires oral parameters")
		}
		d, err = NewOralDiet(*s.Oral, opts...)
	case DietEnteral:
		if s.Enteral == nil {
			return nil, validationErr("enteral diet requires enteral parameters")
		}
		d, err = NewEnteralDiet(*s.Enteral, opts...)
	case DietParenteral:
		if s.Parenteral == nil {
			return nil, validationErr("parenteral diet requires parenteral parameters")
		}
		d, err = NewParenteralDiet(*s.Parenteral, opts...)
	case DietMixed:
		if s.Mixed == nil {
			return nil, validationErr("mixed diet requires mixed parameters")
		}
		d, err = restoreMixed(*s.Mixed, base, opts)
	default:
		return nil, validationErr("unknown diet type %q", s.Type)
	}
	if err != nil {
		return nil, err
	}

	c := d.core()
	for _, tag := range s.ForbiddenRestrictions {
		key := Fold(tag)
		if key == "" {
			return nil, validationErr("invalid restriction")
		}
		c.forbidden[key] = struct{}{}
	}
	for _, is := range s.Items {
		item, err := NewMenuItem(is.Name, is.Quantity, is.Restrictions...)
		if err != nil {
			return nil, err
		}
		if _, exists := c.items[item.name]; exists {
			return nil, validationErr("item already exists: %s", item.name)
		}
		c.items[item.name] = item
	}

	c.audit = AuditTrail{
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		ResponsibleUser: c.audit.ResponsibleUser,
	}
	c.lifecycle = Lifecycle{Active: s.Active, StartDate: s.StartDate}
	if s.EndDate != nil {
		end := *s.EndDate
		c.lifecycle.EndDate = &end
	}
	return d, nil
}

func restoreMixed(ms MixedSnapshot, base, opts []Option) (Diet, error) {
	d := NewMixedDiet(opts...)
	for _, cs := range ms.Components {
		if cs.Diet.Type == DietMixed {
			return nil, validationErr("mixed diet cannot contain another mixed diet")
		}
		comp, err := Restore(cs.Diet, base...)
		if err != nil {
			return nil, err
		}
		if err := d.AddComponent(comp, cs.Percentage); err != nil {
			return nil, err
		}
	}
	return d, nil
}
