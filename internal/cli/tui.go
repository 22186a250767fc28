package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FocalModel - Interactive identified-patient selection
// =============================================================================

// FocalModel is the bubbletea model listing persons to choose the
// identified patient from. The cursor starts on the current identified
// patient, if any.
type FocalModel struct {
	Persons  []family.Person
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewFocalModel creates a picker over the non-placeholder persons of f.
func NewFocalModel(f family.Family) FocalModel {
	m := FocalModel{Height: 15}
	found := false
	for _, p := range f.Persons {
		if p.Placeholder {
			continue
		}
		if p.IsIdentifiedPatient() && !found {
			m.Cursor, found = len(m.Persons), true
		}
		m.Persons = append(m.Persons, p)
	}
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m FocalModel) Init() tea.Cmd {
	return nil
}

func (m FocalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Persons)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Persons) > 0 {
				m.Selected = m.Persons[m.Cursor].ID
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m FocalModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Identified Patient"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q keep current"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Persons))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		p := m.Persons[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		age := "-"
		if p.Age != nil {
			age = strconv.Itoa(*p.Age)
		}
		current := ""
		if p.IsIdentifiedPatient() {
			current = "★"
		}
		rows = append(rows, []string{cursor, p.Name, p.ID, string(p.Gender), age, current})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "ID", "Gender", "Age", "IP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Persons))))
	return b.String()
}

// pickFocal runs the picker on in/out and returns the chosen person id, or
// "" when the user quits without choosing.
func pickFocal(in io.Reader, out io.Writer, f family.Family) (string, error) {
	model := NewFocalModel(f)
	if len(model.Persons) == 0 {
		return "", nil
	}
	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "identified patient picker")
	}
	return final.(FocalModel).Selected, nil
}
