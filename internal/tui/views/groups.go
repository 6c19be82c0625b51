package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/geopaint/internal/model"
	"github.com/rendis/geopaint/internal/tui/styles"
)

// GroupsModel lists the session's groups and runs the smart selection
// helpers on the highlighted one.
type GroupsModel struct {
	env    *Env
	table  table.Model
	groups []model.Group
	mode   model.SelectionMode
	width  int
	height int
	status string
	err    string
}

func NewGroupsModel(env *Env) GroupsModel {
	m := GroupsModel{env: env}
	m.reload()
	return m
}

func (m GroupsModel) Init() tea.Cmd {
	return nil
}

func (m *GroupsModel) reload() {
	cfg := m.env.Session.Config()
	m.groups = cfg.Groups
	m.mode = cfg.Mode
	m.buildTable()
}

func (m *GroupsModel) buildTable() {
	membersW := 40
	if m.width > 80 {
		membersW += (m.width - 80) / 2
	}
	columns := []table.Column{
		{Title: "Name", Width: 18},
		{Title: "Colour", Width: 9},
		{Title: "Pattern", Width: 11},
		{Title: "#", Width: 4},
		{Title: "Members", Width: membersW},
	}

	rows := make([]table.Row, len(m.groups))
	for i, g := range m.groups {
		codes := make([]string, len(g.Members))
		for j, c := range g.Members {
			codes[j] = string(c)
		}
		rows[i] = table.Row{
			truncate(g.Name, 18),
			g.Color,
			string(g.Pattern),
			fmt.Sprintf("%d", len(g.Members)),
			truncate(strings.Join(codes, " "), membersW),
		}
	}

	cursor := m.table.Cursor()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height)),
	)
	t.SetStyles(focusedTableStyles())
	if cursor > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}
	m.table = t
}

func tableHeight(h int) int {
	if h <= 0 {
		return 8
	}
	th := h - 16
	if th < 4 {
		th = 4
	}
	return th
}

func (m GroupsModel) selected() (model.Group, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.groups) {
		return model.Group{}, false
	}
	return m.groups[i], true
}

func (m GroupsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.env.Session
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.buildTable()
		return m, nil
	case tea.KeyMsg:
		m.err, m.status = "", ""
		g, ok := m.selected()
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return NavigateToHome{} }
		case "enter", "e":
			if ok {
				id := g.ID
				return m, func() tea.Msg { return NavigateToEditor{GroupID: id} }
			}
		case "a":
			if _, err := s.AddGroup(); err != nil {
				m.err = err.Error()
			}
			m.reload()
		case "x":
			if ok {
				if err := s.RemoveGroup(g.ID); err != nil {
					m.err = err.Error()
				} else if len(m.groups) == 1 {
					m.status = "The last group stays"
				}
				m.reload()
			}
		case "m":
			next := model.ModeSingle
			if m.mode == model.ModeSingle {
				next = model.ModeMulti
			}
			if err := s.SetMode(next); err != nil {
				m.err = err.Error()
			}
			m.reload()
		case "n":
			if ok {
				added, err := s.AddNeighbors(g.ID)
				if err != nil {
					m.err = err.Error()
				} else {
					m.status = fmt.Sprintf("Added %d neighbours", len(added))
				}
				m.reload()
			}
		case "i":
			if ok {
				if err := s.InvertSelection(g.ID); err != nil {
					m.err = err.Error()
				}
				m.reload()
			}
		case "p":
			return m, func() tea.Msg { return NavigateToPreview{} }
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m GroupsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Groups"))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Mode:"))
	b.WriteString(styles.Value.Render(string(m.mode)))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf("%d selected", len(m.env.Session.AllSelectedCountries()))))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("  " + m.err))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessText.Render("  " + m.status))
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render(
		"enter edit • a add • x remove • m mode • n neighbours • i invert • p preview • esc back"))

	return styles.Border.Render(b.String())
}

func focusedTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Secondary)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Bold(true)
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
