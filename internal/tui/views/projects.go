package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/geopaint/internal/engine/storage"
	"github.com/rendis/geopaint/internal/tui/styles"
)

// ProjectsModel lists saved maps.
type ProjectsModel struct {
	env      *Env
	projects []storage.Project
	cursor   int
	loading  bool
	confirm  bool
	err      string
}

type projectsLoadedMsg struct {
	projects []storage.Project
	err      error
}

type projectDeletedMsg struct {
	id  string
	err error
}

func NewProjectsModel(env *Env) ProjectsModel {
	return ProjectsModel{env: env, loading: env.Store != nil}
}

func (m ProjectsModel) Init() tea.Cmd {
	store := m.env.Store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ps, err := store.ListProjects(context.Background())
		return projectsLoadedMsg{projects: ps, err: err}
	}
}

func (m ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.loading = false
		m.projects = msg.projects
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		if m.cursor >= len(m.projects) {
			m.cursor = max(len(m.projects)-1, 0)
		}
	case projectDeletedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		if m.env.ProjectID == msg.id {
			m.env.ProjectID = ""
		}
		return m, m.Init()
	case tea.KeyMsg:
		if m.confirm {
			m.confirm = false
			if msg.String() == "y" && m.cursor < len(m.projects) {
				return m, m.delete(m.projects[m.cursor].ID)
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.projects) {
				p := m.projects[m.cursor]
				m.env.Session.LoadConfig(p.Config)
				m.env.ProjectID = p.ID
				m.env.Logger.Printf("PROJECT_OPENED id=%s name=%q", p.ID, p.Name)
				return m, func() tea.Msg { return NavigateToPreview{} }
			}
		case "x", "delete":
			if m.cursor < len(m.projects) {
				m.confirm = true
			}
		case "esc":
			return m, func() tea.Msg { return NavigateToHome{} }
		}
	}
	return m, nil
}

func (m ProjectsModel) delete(id string) tea.Cmd {
	store := m.env.Store
	return func() tea.Msg {
		return projectDeletedMsg{id: id, err: store.DeleteProject(context.Background(), id)}
	}
}

func (m ProjectsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Projects"))
	b.WriteString("\n\n")

	switch {
	case m.env.Store == nil:
		b.WriteString(styles.ErrorText.Render("Project storage is unavailable"))
		b.WriteString("\n\n")
		b.WriteString(styles.StatusBar.Render("esc back"))
		return styles.Border.Render(b.String())
	case m.loading:
		b.WriteString(styles.Hint.Render("Loading..."))
		return styles.Border.Render(b.String())
	case len(m.projects) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).
			Render("No saved projects. Press w in the preview to save one."))
		b.WriteString("\n\n")
		b.WriteString(styles.StatusBar.Render("esc back"))
		return styles.Border.Render(b.String())
	}

	for i, p := range m.projects {
		cursor := "  "
		style := styles.InactiveItem
		if i == m.cursor {
			cursor = "> "
			style = styles.ActiveItem
		}
		name := style.Render(p.Name)
		if p.ID == m.env.ProjectID {
			name += lipgloss.NewStyle().Foreground(styles.Secondary).Render("  (open)")
		}

		selected := 0
		for _, g := range p.Config.Groups {
			selected += len(g.Members)
		}
		detail := styles.Hint.Render(
			fmt.Sprintf("  %d groups, %d countries  %s", len(p.Config.Groups), selected, timeAgo(p.UpdatedAt)))

		b.WriteString(fmt.Sprintf("%s%s\n%s\n", cursor, name, detail))
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.err))
	}

	b.WriteString("\n")
	if m.confirm {
		b.WriteString(styles.ErrorText.Render(fmt.Sprintf("Delete %q? y to confirm", m.projects[m.cursor].Name)))
	} else {
		b.WriteString(styles.StatusBar.Render("enter open • x delete • esc back"))
	}

	return styles.Border.Render(b.String())
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
