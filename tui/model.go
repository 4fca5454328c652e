// Package tui is an interactive terminal palette: the candidate list is
// re-ranked on every keystroke.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/palette/search"
)

const visible = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(1).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("12"))
	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type Model struct {
	session    *search.Session
	input      textinput.Model
	candidates []*search.Candidate
	selected   int
	width      int
	height     int
	chosen     *search.Candidate
}

func New(session *search.Session) Model {
	input := textinput.New()
	input.Placeholder = "Type an expression..."
	input.Focus()

	return Model{
		session:    session,
		input:      input,
		candidates: session.Update(""),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.selected < len(m.candidates) {
				m.chosen = m.candidates[m.selected]
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.selected < len(m.candidates)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.candidates = m.session.Update(m.input.Value())
		m.selected = 0
	}
	return m, cmd
}

func (m Model) View() string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("palette") + "\n\n")
	content.WriteString(m.input.View() + "\n\n")

	switch {
	case len(m.candidates) == 0 && m.input.Value() == "":
		content.WriteString(mutedStyle.Render("  Type to search...") + "\n")
	case len(m.candidates) == 0:
		content.WriteString(mutedStyle.Render("  No candidates") + "\n")
	default:
		// Keep the selection in view.
		first := max(0, m.selected-visible+1)
		last := min(len(m.candidates), first+visible)
		for i := first; i < last; i++ {
			c := m.candidates[i]
			line := c.Code()
			if t := c.TypeName(); t != "" {
				line += "  " + typeStyle.Render(t)
			}
			if i == m.selected {
				content.WriteString(selectedStyle.Render(line) + "\n")
			} else {
				content.WriteString(itemStyle.Render(line) + "\n")
			}
		}
		if rest := len(m.candidates) - last; rest > 0 {
			content.WriteString(mutedStyle.Render(fmt.Sprintf("  ... and %d more", rest)) + "\n")
		}
	}

	content.WriteString("\n" + mutedStyle.Render("[↑/↓] Navigate  [Enter] Choose  [Esc] Quit"))

	panel := panelStyle.Render(content.String())
	if m.width == 0 || m.height == 0 {
		return panel
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// Chosen returns the candidate picked with enter, or nil.
func (m Model) Chosen() *search.Candidate {
	return m.chosen
}

// Run shows the palette until a candidate is chosen or the user quits.
func Run(session *search.Session, opts ...tea.ProgramOption) (*search.Candidate, error) {
	final, err := tea.NewProgram(New(session), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("run palette: %w", err)
	}
	return final.(Model).Chosen(), nil
}
