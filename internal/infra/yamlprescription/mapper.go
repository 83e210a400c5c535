package yamlprescription

import (
	"fmt"
	"strings"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// MapPrescription checks the file structure and converts it into a request.
// Value rules (enums, ranges) are left to the diet constructors.
func MapPrescription(path string, yp YAMLPrescription) (domain.PrescriptionRequest, error) {
	return mapRequest(path, "", yp)
}

// mapRequest maps one prescription; prefix locates a nested mixed component
// in error messages.
func mapRequest(path, prefix string, yp YAMLPrescription) (domain.PrescriptionRequest, error) {
	field := func(name string) string { return prefix + name }

	if strings.TrimSpace(yp.Type) == "" {
		return domain.PrescriptionRequest{}, invalidField(path, field("type"), "diet type is required")
	}
	t, err := domain.ParseDietType(yp.Type)
	if err != nil {
		return domain.PrescriptionRequest{}, invalidField(path, field("type"), err.Error())
	}

	req := domain.PrescriptionRequest{
		Type:                  string(t),
		Description:           yp.Description,
		ResponsibleUser:       yp.ResponsibleUser,
		ForbiddenRestrictions: yp.ForbiddenRestrictions,
		Items:                 make([]domain.ItemRequest, 0, len(yp.Items)),
	}

	switch t {
	case domain.DietOral:
		if yp.Oral == nil {
			return domain.PrescriptionRequest{}, invalidField(path, field("oral"), "block is required for oral diets")
		}
		req.Oral = &domain.OralParams{
			Texture:   yp.Oral.Texture,
			MealCount: yp.Oral.MealCount,
			MealType:  yp.Oral.MealType,
		}
	case domain.DietEnteral:
		if yp.Enteral == nil {
			return domain.PrescriptionRequest{}, invalidField(path, field("enteral"), "block is required for enteral diets")
		}
		portions := 1
		if yp.Enteral.DailyPortions != nil {
			portions = *yp.Enteral.DailyPortions
		}
		req.Enteral = &domain.EnteralParams{
			Route:           yp.Enteral.Route,
			RateMLPerHour:   yp.Enteral.RateMLPerHour,
			GramsPerPortion: yp.Enteral.GramsPerPortion,
			DailyPortions:   portions,
			Equipment:       yp.Enteral.Equipment,
		}
	case domain.DietParenteral:
		if yp.Parenteral == nil {
			return domain.PrescriptionRequest{}, invalidField(path, field("parenteral"), "block is required for parenteral diets")
		}
		req.Parenteral = &domain.ParenteralParams{
			Access:         yp.Parenteral.Access,
			VolumeMLPerDay: yp.Parenteral.VolumeMLPerDay,
			Composition:    yp.Parenteral.Composition,
			RateMLPerHour:  yp.Parenteral.RateMLPerHour,
		}
	case domain.DietMixed:
		if yp.Mixed == nil {
			return domain.PrescriptionRequest{}, invalidField(path, field("mixed"), "block is required for mixed diets")
		}
		req.Mixed = &domain.MixedParams{Components: make([]domain.ComponentRequest, 0, len(yp.Mixed.Components))}
		for i, c := range yp.Mixed.Components {
			sub, err := mapRequest(path, field(fmt.Sprintf("mixed.components[%d].prescription.", i)), c.Prescription)
			if err != nil {
				return domain.PrescriptionRequest{}, err
			}
			req.Mixed.Components = append(req.Mixed.Components, domain.ComponentRequest{
				Percentage: c.Percentage,
				Diet:       sub,
			})
		}
	}

	for i, it := range yp.Items {
		if strings.TrimSpace(it.Name) == "" {
			return domain.PrescriptionRequest{}, invalidField(path, field(fmt.Sprintf("items[%d].name", i)), "item name is required")
		}
		req.Items = append(req.Items, domain.ItemRequest{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Restrictions: it.Restrictions,
		})
	}

	return req, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlprescription.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
