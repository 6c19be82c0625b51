package views

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/geopaint/internal/tui/styles"
)

type menuItem struct {
	key   string
	label string
	desc  string
}

type HomeModel struct {
	items   []menuItem
	cursor  int
	dataset DatasetLoadedMsg
	loading bool
	recent  []string
}

func NewHomeModel(loading bool, dataset DatasetLoadedMsg, recent []string) HomeModel {
	return HomeModel{
		items: []menuItem{
			{key: "g", label: "Groups", desc: "Pick countries, colours and patterns"},
			{key: "t", label: "Title & Style", desc: "Title, background and borders"},
			{key: "p", label: "Preview", desc: "Map preview, flights and export"},
			{key: "o", label: "Projects", desc: "Open a saved map"},
			{key: "d", label: "Reload Dataset", desc: "Fetch country boundaries again"},
			{key: "q", label: "Quit", desc: "Exit geopaint"},
		},
		loading: loading,
		dataset: dataset,
		recent:  recent,
	}
}

func (m HomeModel) Init() tea.Cmd {
	return nil
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DatasetLoadedMsg:
		m.loading = false
		m.dataset = msg
	case ReloadDataset:
		m.loading = true
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			return m, m.handleSelect()
		case "q":
			return m, tea.Quit
		default:
			for i, it := range m.items {
				if msg.String() == it.key {
					m.cursor = i
					return m, m.handleSelect()
				}
			}
		}
	}
	return m, nil
}

func (m HomeModel) handleSelect() tea.Cmd {
	switch m.items[m.cursor].key {
	case "g":
		return func() tea.Msg { return NavigateToGroups{} }
	case "t":
		return func() tea.Msg { return NavigateToTitle{} }
	case "p":
		return func() tea.Msg { return NavigateToPreview{} }
	case "o":
		return func() tea.Msg { return NavigateToProjects{} }
	case "d":
		if m.loading {
			return nil
		}
		return func() tea.Msg { return ReloadDataset{} }
	case "q":
		return tea.Quit
	}
	return nil
}

func (m HomeModel) View() string {
	var b strings.Builder

	logo := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Render("  geopaint")

	tagline := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Italic(true).
		Render("  Country maps, flights and exports")

	b.WriteString(logo + "\n")
	b.WriteString(tagline + "\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := styles.InactiveItem
		if i == m.cursor {
			cursor = "> "
			style = styles.ActiveItem
		}

		key := lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Bold(true).
			Render(fmt.Sprintf("[%s]", item.key))

		label := style.Render(item.label)
		desc := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Render(" - " + item.desc)

		b.WriteString(fmt.Sprintf("%s%s %s%s\n", cursor, key, label, desc))
	}

	b.WriteString("\n")
	b.WriteString(m.datasetStatus())

	if len(m.recent) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle.Render("Recent exports"))
		for _, p := range m.recent {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
				Render("  " + filepath.Base(p) + "  " + filepath.Dir(p)))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("↑↓ navigate • enter select • q quit"))

	return styles.Border.Render(b.String())
}

func (m HomeModel) datasetStatus() string {
	switch {
	case m.loading:
		return styles.WarningText.Render("Loading country boundaries...")
	case m.dataset.Err != nil:
		return styles.ErrorText.Render("Dataset: "+m.dataset.Err.Error()) + "\n" +
			styles.Hint.Render("press d to retry")
	default:
		s := fmt.Sprintf("Dataset: %d countries", m.dataset.Countries)
		if m.dataset.Unmatched > 0 {
			s += fmt.Sprintf(" (%d unmatched features)", m.dataset.Unmatched)
		}
		return styles.SuccessText.Render(s)
	}
}
