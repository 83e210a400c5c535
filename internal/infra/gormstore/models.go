package gormstore

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// dietRow holds the shared diet state. Variant parameters live in a JSON
// column so every variant shares one table; a mixed diet stores its
// component snapshots there.
type dietRow struct {
	ID              string          `gorm:"primaryKey;size:64"`
	Type            domain.DietType `gorm:"size:16;not null;index"`
	Description     string          `gorm:"size:255"`
	ResponsibleUser string          `gorm:"size:128;not null"`
	Active          bool            `gorm:"not null;index"`
	StartDate       time.Time       `gorm:"not null"`
	EndDate         *time.Time
	Params          datatypes.JSON `gorm:"not null"`

	// audit times come from the domain, not from gorm
	CreatedAt time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`

	Items        []itemRow        `gorm:"foreignKey:DietID;constraint:OnDelete:CASCADE"`
	Restrictions []restrictionRow `gorm:"foreignKey:DietID;constraint:OnDelete:CASCADE"`
}

func (dietRow) TableName() string { return "diets" }

type itemRow struct {
	ID           uint           `gorm:"primaryKey"`
	DietID       string         `gorm:"size:64;not null;uniqueIndex:idx_diet_item"`
	Name         string         `gorm:"size:128;not null;uniqueIndex:idx_diet_item"`
	Quantity     float64        `gorm:"not null"`
	Restrictions datatypes.JSON `gorm:"not null"`
}

func (itemRow) TableName() string { return "diet_items" }

type restrictionRow struct {
	DietID string `gorm:"primaryKey;size:64"`
	Tag    string `gorm:"primaryKey;size:64"`
}

func (restrictionRow) TableName() string { return "diet_restrictions" }

func toRow(s domain.Snapshot) (dietRow, error) {
	var params any
	switch {
	case s.Oral != nil:
		params = s.Oral
	case s.Enteral != nil:
		params = s.Enteral
	case s.Parenteral != nil:
		params = s.Parenteral
	case s.Mixed != nil:
		params = s.Mixed
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return dietRow{}, err
	}

	row := dietRow{
		ID:              s.ID,
		Type:            s.Type,
		Description:     s.Description,
		ResponsibleUser: s.ResponsibleUser,
		Active:          s.Active,
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		Params:          datatypes.JSON(raw),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Items:           make([]itemRow, 0, len(s.Items)),
		Restrictions:    make([]restrictionRow, 0, len(s.ForbiddenRestrictions)),
	}
	for _, it := range s.Items {
		tags, err := json.Marshal(nonNil(it.Restrictions))
		if err != nil {
			return dietRow{}, err
		}
		row.Items = append(row.Items, itemRow{
			DietID:       s.ID,
			Name:         it.Name,
			Quantity:     it.Quantity,
			Restrictions: datatypes.JSON(tags),
		})
	}
	for _, tag := range s.ForbiddenRestrictions {
		row.Restrictions = append(row.Restrictions, restrictionRow{DietID: s.ID, Tag: tag})
	}
	return row, nil
}

func (r dietRow) snapshot() (domain.Snapshot, error) {
	s := domain.Snapshot{
		ID:                    r.ID,
		Type:                  r.Type,
		Description:           r.Description,
		ResponsibleUser:       r.ResponsibleUser,
		CreatedAt:             r.CreatedAt.UTC(),
		UpdatedAt:             r.UpdatedAt.UTC(),
		Active:                r.Active,
		StartDate:             r.StartDate.UTC(),
		ForbiddenRestrictions: make([]string, 0, len(r.Restrictions)),
		Items:                 make([]domain.ItemSnapshot, 0, len(r.Items)),
	}
	if r.EndDate != nil {
		end := r.EndDate.UTC()
		s.EndDate = &end
	}

	var target any
	switch r.Type {
	case domain.DietOral:
		s.Oral = &domain.OralParams{}
		target = s.Oral
	case domain.DietEnteral:
		s.Enteral = &domain.EnteralParams{}
		target = s.Enteral
	case domain.DietParenteral:
		s.Parenteral = &domain.ParenteralParams{}
		target = s.Parenteral
	case domain.DietMixed:
		s.Mixed = &domain.MixedSnapshot{}
		target = s.Mixed
	}
	if target != nil {
		if err := json.Unmarshal(r.Params, target); err != nil {
			return domain.Snapshot{}, err
		}
	}

	for _, rr := range r.Restrictions {
		s.ForbiddenRestrictions = append(s.ForbiddenRestrictions, rr.Tag)
	}
	for _, it := range r.Items {
		var tags []string
		if err := json.Unmarshal(it.Restrictions, &tags); err != nil {
			return domain.Snapshot{}, err
		}
		s.Items = append(s.Items, domain.ItemSnapshot{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Restrictions: nonNil(tags),
		})
	}
	return s, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
