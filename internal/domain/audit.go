package domain

import (
	"strings"
	"time"
)

// DefaultResponsibleUser is recorded when a prescription names nobody.
const DefaultResponsibleUser = "sistema"

// AuditTrail tracks creation and update of a diet.
type AuditTrail struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ResponsibleUser string
}

func newAuditTrail(now time.Time, user string) AuditTrail {
	user = strings.TrimSpace(user)
	if user == "" {
		user = DefaultResponsibleUser
	}
	return AuditTrail{
		CreatedAt:       now,
		UpdatedAt:       now,
		ResponsibleUser: user,
	}
}

func (a *AuditTrail) touch(now time.Time) {
	a.UpdatedAt = now
}
