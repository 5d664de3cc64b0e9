package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TypeListModel - Interactive node-type selection
// =============================================================================

// TypeListModel is the bubbletea model for browsing the node-type catalog.
type TypeListModel struct {
	Defs     []registry.Definition
	Cursor   int
	Selected *registry.Definition
	Height   int
	Offset   int
	filter   string
}

// NewTypeListModel creates a new type list model.
func NewTypeListModel(defs []registry.Definition) TypeListModel {
	return TypeListModel{
		Defs:   defs,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m TypeListModel) Init() tea.Cmd {
	return nil
}

// visible returns the definitions matching the current filter.
func (m TypeListModel) visible() []registry.Definition {
	if m.filter == "" {
		return m.Defs
	}
	q := strings.ToLower(m.filter)
	var out []registry.Definition
	for _, def := range m.Defs {
		if strings.Contains(strings.ToLower(def.Type), q) ||
			strings.Contains(strings.ToLower(def.Label), q) ||
			strings.Contains(strings.ToLower(def.Category), q) {
			out = append(out, def)
		}
	}
	return out
}

func (m TypeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			if m.filter == "" {
				return m, tea.Quit
			}
			m.filter += "q"
			m.Cursor, m.Offset = 0, 0
		case "up", "ctrl+k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "ctrl+j":
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "backspace":
			if m.filter != "" {
				m.filter = m.filter[:len(m.filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		case "enter":
			visible := m.visible()
			if len(visible) == 0 {
				return m, nil
			}
			def := visible[m.Cursor]
			m.Selected = &def
			return m, tea.Quit
		default:
			if len(msg.String()) == 1 {
				m.filter += msg.String()
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TypeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node Types"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.filter != "" {
		b.WriteString(listDimStyle.Render("filter: ") + StyleValue.Render(m.filter))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := m.visible()
	end := m.Offset + m.Height
	if end > len(visible) {
		end = len(visible)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		def := visible[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		ports := portSummary(def.Ports)
		tags := "—"
		if len(def.Tags) > 0 {
			tags = strings.Join(def.Tags, ", ")
		}
		rows = append(rows, []string{cursor, def.Type, def.Label, def.Category, ports, tags})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Type", "Label", "Category", "Ports", "Tags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(visible) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching types"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(visible))))
	}

	return b.String()
}

// portSummary renders the port shape of a definition in one cell.
func portSummary(p registry.Ports) string {
	switch {
	case p.MultipleOutputs:
		return fmt.Sprintf("in→%d out", len(p.OutputLabels))
	case p.Input && p.Output:
		return "in→out"
	case p.Input:
		return "in"
	case p.Output:
		return "out"
	default:
		return "—"
	}
}
