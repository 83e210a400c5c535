package domain

// PrescriptionRequest carries the primitive parameters needed to build a diet.
// Only the parameter block matching Type is read.
type PrescriptionRequest struct {
	Type            string
	Description     string
	ResponsibleUser string

	Oral       *OralParams
	Enteral    *EnteralParams
	Parenteral *ParenteralParams
	Mixed      *MixedParams

	ForbiddenRestrictions []string
	Items                 []ItemRequest
}

// MixedParams lists the weighted components of a mixed diet.
type MixedParams struct {
	Components []ComponentRequest
}

// ComponentRequest is one component of a mixed diet. Diet must not be mixed.
type ComponentRequest struct {
	Percentage float64
	Diet       PrescriptionRequest
}

// ItemRequest describes a menu item to add right after construction.
type ItemRequest struct {
	Name         string
	Quantity     float64
	Restrictions []string
}

type constructor func(req PrescriptionRequest, opts []Option) (Diet, error)

var constructors = map[DietType]constructor{
	DietOral: func(req PrescriptionRequest, opts []Option) (Diet, error) {
		if req.Oral == nil {
			return nil, validationErr("oral diet requires oral parameters")
		}
		return NewOralDiet(*req.Oral, opts...)
	},
	DietEnteral: func(req PrescriptionRequest, opts []Option) (Diet, error) {
		if req.Enteral == nil {
			return nil, validationErr("enteral diet requires enteral parameters")
		}
		return NewEnteralDiet(*req.Enteral, opts...)
	},
	DietParenteral: func(req PrescriptionRequest, opts []Option) (Diet, error) {
		if req.Parenteral == nil {
			return nil, validationErr("parenteral diet requires parenteral parameters")
		}
		return NewParenteralDiet(*req.Parenteral, opts...)
	},
}

// The mixed constructor builds its components through NewDiet, so it joins
// the table after package initialization.
func init() {
	constructors[DietMixed] = newMixedFromRequest
}

// newMixedFromRequest builds every component with the mixed diet's clock and,
// when the component names none, its responsible user.
func newMixedFromRequest(req PrescriptionRequest, opts []Option) (Diet, error) {
	if req.Mixed == nil {
		return nil, validationErr("mixed diet requires mixed parameters")
	}
	d := NewMixedDiet(opts...)
	for i, cr := range req.Mixed.Components {
		if t, err := ParseDietType(cr.Diet.Type); err == nil && t == DietMixed {
			return nil, validationErr("mixed diet cannot contain another mixed diet")
		}
		sub := cr.Diet
		if sub.ResponsibleUser == "" {
			sub.ResponsibleUser = d.responsible
		}
		comp, err := NewDiet(sub, WithNow(d.now))
		if err != nil {
			return nil, validationErr("component %d: %v", i+1, err)
		}
		if err := d.AddComponent(comp, cr.Percentage); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ParseDietType maps a discriminator (case-insensitive) onto the closed set.
func ParseDietType(s string) (DietType, error) {
	t := DietType(Fold(s))
	if _, ok := constructors[t]; !ok {
		return "", validationErr("unknown diet type %q", s)
	}
	return t, nil
}

// NewDiet builds the variant named by req.Type, then applies the forbidden
// restrictions and the items, in that order, so conflicting items are rejected.
// Validation errors from constructors are returned unchanged.
func NewDiet(req PrescriptionRequest, opts ...Option) (Diet, error) {
	t, err := ParseDietType(req.Type)
	if err != nil {
		return nil, err
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithDescription(req.Description), WithResponsibleUser(req.ResponsibleUser))
	all = append(all, opts...)

	d, err := constructors[t](req, all)
	if err != nil {
		return nil, err
	}

	for _, tag := range req.ForbiddenRestrictions {
		if err := d.AddForbiddenRestriction(tag); err != nil {
			return nil, err
		}
	}
	for _, ir := range req.Items {
		item, err := NewMenuItem(ir.Name, ir.Quantity, ir.Restrictions...)
		if err != nil {
			return nil, err
		}
		if err := d.AddItem(item); err != nil {
			return nil, err
		}
	}
	return d, nil
}
