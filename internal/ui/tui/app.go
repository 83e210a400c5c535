package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type screen int

const (
	screenHome screen = iota
	screenDetail
)

type dietItem struct {
	snap domain.Snapshot
}

func (d dietItem) Title() string {
	return fmt.Sprintf("%s · %s", d.snap.Type.DisplayName(), clampString(d.snap.Description, 48))
}

func (d dietItem) Description() string {
	s := d.snap
	line := fmt.Sprintf("%s · %s · %d item(s)", shortID(s.ID), statusLabel(s), len(s.Items))
	if len(s.ForbiddenRestrictions) > 0 {
		line += " · sem " + strings.Join(s.ForbiddenRestrictions, ", ")
	}
	return line
}

func (d dietItem) FilterValue() string {
	return d.snap.Description + " " + d.snap.ID + " " + string(d.snap.Type)
}

type model struct {
	theme Theme
	deps  Deps

	scr    screen
	diets  list.Model
	detail string

	activeOnly bool
	loading    bool
	toast      string

	workspaceFound bool
	workspaceRoot  string
	cwd            string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.logger()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Dietas"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:      DefaultTheme(),
		deps:       deps,
		scr:        screenHome,
		diets:      l,
		activeOnly: true,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) filter() ports.ListFilter {
	return ports.ListFilter{ActiveOnly: m.activeOnly}
}

func (m model) reload() (model, tea.Cmd) {
	if !m.workspaceFound {
		return m, nil
	}
	m.loading = true
	return m, cmdLoadDiets(m.deps, m.workspaceRoot, m.filter())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.diets.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m.reload()

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace criado em " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case dietsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.snaps))
		for _, s := range msg.snaps {
			items = append(items, dietItem{snap: s})
		}
		cmd := m.diets.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.scr == screenHome && m.diets.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			m.detail = ""
			return m, nil

		case "esc", "b":
			if m.scr != screenHome {
				m.scr = screenHome
				m.detail = ""
				return m, nil
			}

		case "enter":
			if m.scr == screenHome {
				it, ok := m.diets.SelectedItem().(dietItem)
				if !ok {
					return m, nil
				}
				m.scr = screenDetail
				m.detail = renderDietDetails(m.theme, it.snap)
				return m, nil
			}

		case "a":
			if m.scr == screenHome {
				m.activeOnly = !m.activeOnly
				return m.reload()
			}

		case "r":
			m.toast = ""
			return m, cmdRefreshWorkspace(m.deps)

		case "i":
			if !m.workspaceFound && m.cwd != "" {
				return m, cmdInitWorkspaceHere(m.deps, m.cwd)
			}
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.diets, cmd = m.diets.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("SNH") + "\n" +
		m.theme.Subtitle.Render("Sistema Nutricional Hospitalar · prescrição de dietas") + "\n"

	var banner string
	if m.workspaceFound {
		scope := "todas"
		if m.activeOnly {
			scope = "ativas"
		}
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s · dietas %s", m.workspaceRoot, scope))
	} else {
		banner = m.theme.Card.Render("⚠ Nenhum workspace encontrado.\n\nPressione i para criar um aqui.")
	}
	if m.toast != "" {
		banner += "\n" + m.theme.Warn.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		body := m.diets.View()
		if m.loading {
			body = "Carregando…"
		}
		help := m.theme.Help.Render("↑/↓ navegar • enter detalhes • a ativas/todas • / buscar • r recarregar • q sair")
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(body) + "\n" + help)

	case screenDetail:
		card := m.theme.Card.Render(m.detail + "\n" + m.theme.Help.Render("esc/b voltar • q início"))
		return wrap.Render(header + "\n" + banner + "\n\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
