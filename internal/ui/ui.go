// Package ui paints the 3x3 card grid. It is a thin consumer of card
// state: every paint pulls each card's current view, and a CardUpdatedMsg
// from a refresh loop triggers a repaint. Cards never touch the terminal
// themselves.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/app"
	"smartmirror/internal/card"
)

// CardUpdatedMsg signals that the named card swapped in fresh state and
// the grid should repaint.
type CardUpdatedMsg struct {
	Name string
}

const (
	gridCols = 3
	gridRows = 3
)

var (
	placeholderStyle = lipgloss.NewStyle().Faint(true).Align(lipgloss.Center, lipgloss.Center)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// Model is the bubbletea model for the whole mirror display.
type Model struct {
	registry *app.Registry

	width  int
	height int
}

func New(registry *app.Registry) Model {
	return Model{registry: registry}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case CardUpdatedMsg:
		// State already lives in the card; returning is enough to repaint.
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	cellW := m.width / gridCols
	cellH := m.height / gridRows

	rows := make([]string, 0, gridRows)
	for row := 0; row < gridRows; row++ {
		cells := make([]string, 0, gridCols)
		for col := 0; col < gridCols; col++ {
			pos := card.Positions[row*gridCols+col]
			cells = append(cells, m.renderCell(pos, cellW, cellH))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell paints one grid slot: the assigned card's view inside its
// configured frame, or an empty placeholder.
func (m Model) renderCell(pos card.Position, w, h int) string {
	c, ok := m.registry.At(pos)
	if !ok || !c.Config().Enabled {
		return placeholderStyle.Width(w).Height(h).Render("")
	}

	cfg := c.Config()
	style := lipgloss.NewStyle().Width(w - 2).Height(h - 2).Padding(0, 1)
	if cfg.ShowBorder {
		style = style.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cfg.BorderColor))
	}
	if cfg.TextColor != "" {
		style = style.Foreground(lipgloss.Color(cfg.TextColor))
	}

	content := c.View(w - 4)
	if cfg.ShowTitle {
		content = titleStyle.Render(cfg.Name) + "\n" + content
	}
	content = clampLines(content, h-2)

	return style.Render(content)
}

// clampLines trims content to at most max lines so one verbose card
// cannot push its neighbors off the grid.
func clampLines(content string, max int) string {
	if max <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= max {
		return content
	}
	return strings.Join(lines[:max], "\n")
}
