package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	errs "github.com/matzehuels/starpath/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlanetListModel - Interactive planet selection
// =============================================================================

// PlanetListModel is the bubbletea model for picking a planet. Typing
// narrows the list to labels containing the filter text.
type PlanetListModel struct {
	Title    string
	Planets  []string
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewPlanetListModel creates a new planet list model.
func NewPlanetListModel(title string, planets []string) PlanetListModel {
	return PlanetListModel{Title: title, Planets: planets, Height: 15}
}

func (m PlanetListModel) Init() tea.Cmd {
	return nil
}

// visible returns the planets matching the filter.
func (m PlanetListModel) visible() []string {
	if m.Filter == "" {
		return m.Planets
	}
	needle := strings.ToLower(m.Filter)
	var out []string
	for _, p := range m.Planets {
		if strings.Contains(strings.ToLower(p), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (m PlanetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if v := m.visible(); len(v) > 0 {
				m.Selected = v[m.Cursor]
				return m, tea.Quit
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes, tea.KeySpace:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
	}
	return m, nil
}

func (m PlanetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("› " + m.Filter))
	b.WriteString("\n\n")

	planets := m.visible()
	if len(planets) == 0 {
		b.WriteString(listDimStyle.Render("  no matching planets"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(planets))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + planets[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + planets[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(planets))))
	return b.String()
}

// pickPlanet runs the picker and returns the chosen label.
func pickPlanet(title string, planets []string) (string, error) {
	if len(planets) == 0 {
		return "", errs.New(errs.ErrCodeInvalidGraph, "star map has no planets")
	}
	final, err := tea.NewProgram(NewPlanetListModel(title, planets)).Run()
	if err != nil {
		return "", fmt.Errorf("planet picker: %w", err)
	}
	m := final.(PlanetListModel)
	if m.Selected == "" {
		return "", errs.New(errs.ErrCodeInvalidInput, "no planet selected")
	}
	return m.Selected, nil
}
