package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	// Diet status and conflict markers.
	Active lipgloss.Style
	Ended  lipgloss.Style
	Warn   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("36")),
		Active: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Ended:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// Status renders the lifecycle label of a diet.
func (t Theme) Status(s domain.Snapshot) string {
	if s.Active {
		return t.Active.Render(statusLabel(s))
	}
	return t.Ended.Render(statusLabel(s))
}
