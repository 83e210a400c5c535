package domain

import (
	"fmt"
	"strings"
)

// MenuItem is a single food or formula entry of a diet. It is immutable
// once built; use NewMenuItem so the invariants hold.
type MenuItem struct {
	name         string
	quantity     float64
	restrictions []string
}

// NewMenuItem validates and builds a MenuItem. Quantity is in grams (or mL
// for liquids). Restriction tags are folded and deduplicated.
func NewMenuItem(name string, quantity float64, restrictions ...string) (MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MenuItem{}, validationErr("item name must not be empty")
	}
	if quantity <= 0 {
		return MenuItem{}, validationErr("quantity must be greater than 0")
	}

	set := tagSet{}
	for _, r := range restrictions {
		tag := Fold(r)
		if tag == "" {
			return MenuItem{}, validationErr("invalid restriction")
		}
		set[tag] = struct{}{}
	}

	return MenuItem{
		name:         name,
		quantity:     quantity,
		restrictions: set.sorted(),
	}, nil
}

func (m MenuItem) Name() string {
	return m.name
}

func (m MenuItem) Quantity() float64 {
	return m.quantity
}

// Restrictions returns a sorted copy of the item's tags.
func (m MenuItem) Restrictions() []string {
	out := make([]string, len(m.restrictions))
	copy(out, m.restrictions)
	return out
}

// HasRestriction is case-insensitive.
func (m MenuItem) HasRestriction(tag string) bool {
	return oneOf(m.restrictions, Fold(tag))
}

// SameItem reports whether both items share the lookup key (the name).
func (m MenuItem) SameItem(other MenuItem) bool {
	return m.name == other.name
}

func (m MenuItem) String() string {
	return fmt.Sprintf("MenuItem(name=%q, qty=%gg, restrictions=%v)", m.name, m.quantity, m.restrictions)
}
