package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
	"github.com/rendis/geopaint/internal/session"
	"github.com/rendis/geopaint/internal/tui/styles"
)

// Field indices. Pattern, preset and continent are virtual fields cycled
// with left/right instead of typed.
const (
	fieldName = iota
	fieldCountries
	fieldColor
	fieldPattern
	fieldPreset
	fieldContinent
	fieldCount
)

// EditorModel edits one group: name, members, colour and fill pattern, plus
// the preset and continent shortcuts.
type EditorModel struct {
	env         *Env
	groupID     string
	inputs      []textinput.Model
	focused     int
	pattern     int
	preset      int
	continent   int
	presets     []geo.Preset
	suggestions []geo.CountryRecord
	suggIdx     int
	parsed      *geo.ParseResult
	status      string
	err         string
}

func NewEditorModel(env *Env, groupID string) EditorModel {
	m := EditorModel{
		env:     env,
		groupID: groupID,
		inputs:  make([]textinput.Model, fieldCount),
		presets: geo.Presets(),
		suggIdx: -1,
	}

	var g model.Group
	for _, cand := range env.Session.Config().Groups {
		if cand.ID == groupID {
			g = cand
			break
		}
	}
	codes := make([]string, len(g.Members))
	for i, c := range g.Members {
		codes[i] = string(c)
	}

	m.inputs[fieldName] = newInput("Group name", g.Name, 30)
	m.inputs[fieldCountries] = newInput("France, DE, Brasil...", strings.Join(codes, ", "), 60)
	m.inputs[fieldCountries].CharLimit = 4000
	m.inputs[fieldColor] = newInput("#2563eb", g.Color, 10)
	for i, p := range model.FillPatterns {
		if p == g.Pattern {
			m.pattern = i
		}
	}
	m.inputs[fieldName].Focus()
	return m
}

func newInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	if width > 0 {
		ti.Width = width
	}
	if value != "" {
		ti.SetValue(value)
	}
	return ti
}

func virtualField(idx int) bool {
	return idx == fieldPattern || idx == fieldPreset || idx == fieldContinent
}

func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateToGroups{} }

		case "up":
			if m.focused == fieldCountries && len(m.suggestions) > 0 && m.suggIdx > 0 {
				m.suggIdx--
				return m, nil
			}
			return m, m.focusPrev()

		case "down":
			if m.focused == fieldCountries && len(m.suggestions) > 0 && m.suggIdx < len(m.suggestions)-1 {
				m.suggIdx++
				return m, nil
			}
			return m, m.focusNext()

		case "tab":
			if m.focused == fieldCountries && len(m.suggestions) > 0 {
				m.selectSuggestion()
				return m, nil
			}
			return m, m.focusNext()

		case "shift+tab":
			return m, m.focusPrev()

		case "left":
			if m.cycle(-1) {
				return m, nil
			}

		case "right":
			if m.cycle(1) {
				return m, nil
			}

		case "enter":
			if m.focused == fieldCountries && len(m.suggestions) > 0 {
				m.selectSuggestion()
				return m, nil
			}
			switch m.focused {
			case fieldPreset:
				m.applyPreset()
			case fieldContinent:
				m.selectContinent()
			default:
				if m.save() {
					return m, func() tea.Msg { return NavigateToGroups{} }
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if !virtualField(m.focused) {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}
	if m.focused == fieldCountries {
		m.updateSuggestions()
	}
	return m, cmd
}

// cycle moves the focused virtual field and reports whether one was focused.
func (m *EditorModel) cycle(dir int) bool {
	wrap := func(i, n int) int { return ((i % n) + n) % n }
	switch m.focused {
	case fieldPattern:
		m.pattern = wrap(m.pattern+dir, len(model.FillPatterns))
	case fieldPreset:
		m.preset = wrap(m.preset+dir, len(m.presets))
	case fieldContinent:
		m.continent = wrap(m.continent+dir, len(geo.Continents))
	default:
		return false
	}
	return true
}

// lastToken splits the countries input at its last separator.
func lastToken(s string) (head, tail string) {
	i := strings.LastIndexAny(s, ",;\n\t")
	if i < 0 {
		return "", s
	}
	return s[:i+1], s[i+1:]
}

func (m *EditorModel) updateSuggestions() {
	_, tail := lastToken(m.inputs[fieldCountries].Value())
	tail = strings.TrimSpace(tail)
	if tail == "" {
		m.suggestions = nil
		m.suggIdx = -1
		return
	}
	if code, ok := m.env.Session.Registry().Resolve(tail); ok && strings.EqualFold(string(code), tail) {
		m.suggestions = nil
		m.suggIdx = -1
		return
	}
	m.suggestions = m.env.Session.Registry().Suggest(tail, 5)
	if len(m.suggestions) > 0 {
		if m.suggIdx < 0 || m.suggIdx >= len(m.suggestions) {
			m.suggIdx = 0
		}
	} else {
		m.suggIdx = -1
	}
}

func (m *EditorModel) selectSuggestion() {
	if m.suggIdx < 0 || m.suggIdx >= len(m.suggestions) {
		return
	}
	head, _ := lastToken(m.inputs[fieldCountries].Value())
	if head != "" {
		head += " "
	}
	m.inputs[fieldCountries].SetValue(head + m.suggestions[m.suggIdx].ISO2 + ", ")
	m.inputs[fieldCountries].CursorEnd()
	m.suggestions = nil
	m.suggIdx = -1
}

func (m *EditorModel) focusNext() tea.Cmd {
	return m.focus((m.focused + 1) % fieldCount)
}

func (m *EditorModel) focusPrev() tea.Cmd {
	return m.focus((m.focused - 1 + fieldCount) % fieldCount)
}

func (m *EditorModel) focus(idx int) tea.Cmd {
	if !virtualField(m.focused) {
		m.inputs[m.focused].Blur()
	}
	m.suggestions = nil
	m.suggIdx = -1
	m.focused = idx
	if virtualField(idx) {
		return nil
	}
	m.inputs[idx].Focus()
	return textinput.Blink
}

func (m *EditorModel) save() bool {
	m.err, m.status = "", ""
	s := m.env.Session

	name := m.inputs[fieldName].Value()
	color := strings.TrimSpace(m.inputs[fieldColor].Value())
	pattern := model.FillPatterns[m.pattern]
	if err := s.UpdateGroup(m.groupID, session.GroupPatch{Name: &name, Color: &color, Pattern: &pattern}); err != nil {
		m.err = err.Error()
		return false
	}

	res, err := s.SetGroupCountriesFromText(m.groupID, m.inputs[fieldCountries].Value())
	if err != nil {
		m.err = err.Error()
		return false
	}
	m.parsed = &res
	// invalid or repeated tokens keep the editor open
	return len(res.Invalid) == 0 && len(res.Duplicates) == 0
}

func (m *EditorModel) applyPreset() {
	m.err, m.status = "", ""
	p := m.presets[m.preset]
	if err := m.env.Session.ApplyPreset(p.ID, m.groupID); err != nil {
		m.err = err.Error()
		return
	}
	m.refreshCountries()
	m.status = fmt.Sprintf("Loaded %s", p.Name)
}

func (m *EditorModel) selectContinent() {
	m.err, m.status = "", ""
	c := geo.Continents[m.continent]
	added, err := m.env.Session.SelectContinent(c, m.groupID)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.refreshCountries()
	m.status = fmt.Sprintf("Added %d countries from %s", len(added), c)
}

func (m *EditorModel) refreshCountries() {
	for _, g := range m.env.Session.Config().Groups {
		if g.ID != m.groupID {
			continue
		}
		codes := make([]string, len(g.Members))
		for i, c := range g.Members {
			codes[i] = string(c)
		}
		m.inputs[fieldCountries].SetValue(strings.Join(codes, ", "))
		m.parsed = nil
		return
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Edit Group") + "\n\n")

	b.WriteString(m.renderField("Name:", fieldName))
	b.WriteString(m.renderField("Countries:", fieldCountries))
	if m.focused == fieldCountries && len(m.suggestions) > 0 {
		b.WriteString(m.renderSuggestions())
	}
	b.WriteString(m.renderParsed())
	b.WriteString(m.renderField("Colour:", fieldColor))
	b.WriteString(m.renderColorSwatch())

	names := make([]string, len(model.FillPatterns))
	for i, p := range model.FillPatterns {
		names[i] = string(p)
	}
	b.WriteString(m.renderChoice("Pattern:", fieldPattern, names, m.pattern))

	b.WriteString("\n")
	presetNames := make([]string, len(m.presets))
	for i, p := range m.presets {
		presetNames[i] = p.Name
	}
	b.WriteString(m.renderCarousel("Preset:", fieldPreset, presetNames, m.preset))
	continentNames := make([]string, len(geo.Continents))
	for i, c := range geo.Continents {
		continentNames[i] = string(c)
	}
	b.WriteString(m.renderCarousel("Continent:", fieldContinent, continentNames, m.continent))

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("  " + m.err))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessText.Render("  " + m.status))
	}

	hint := "enter save • tab next • esc back"
	switch m.focused {
	case fieldPreset:
		hint = "←→ choose • enter load preset • esc back"
	case fieldContinent:
		hint = "←→ choose • enter add continent • esc back"
	case fieldPattern:
		hint = "←→ choose • enter save • esc back"
	}
	b.WriteString("\n\n")
	b.WriteString(styles.StatusBar.Render(hint))

	return styles.Border.Render(b.String())
}

func (m EditorModel) renderField(label string, idx int) string {
	return fmt.Sprintf("%s %s\n", styles.Label.Render(label), m.inputs[idx].View())
}

func (m EditorModel) renderSuggestions() string {
	var sb strings.Builder
	active := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted)

	for i, c := range m.suggestions {
		label := c.Name + " (" + c.ISO2 + ")"
		if i == m.suggIdx {
			sb.WriteString(active.Render("  > " + label))
		} else {
			sb.WriteString(inactive.Render("    " + label))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m EditorModel) renderParsed() string {
	if m.parsed == nil {
		return ""
	}
	var sb strings.Builder
	ok := lipgloss.NewStyle().Foreground(styles.Success)
	sb.WriteString(ok.Render(fmt.Sprintf("  %d countries", len(m.parsed.Valid))))
	if len(m.parsed.Invalid) > 0 {
		sb.WriteString("  ")
		sb.WriteString(styles.ErrorText.Render("unknown: " + strings.Join(m.parsed.Invalid, ", ")))
	}
	if len(m.parsed.Duplicates) > 0 {
		sb.WriteString("  ")
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Warning).
			Render("repeated: " + strings.Join(m.parsed.Duplicates, ", ")))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m EditorModel) renderColorSwatch() string {
	c := strings.TrimSpace(m.inputs[fieldColor].Value())
	if c == "" {
		return ""
	}
	return lipgloss.NewStyle().MarginLeft(15).Foreground(lipgloss.Color(c)).Render("██████") + "\n"
}

// renderChoice shows every option with the current one highlighted.
func (m EditorModel) renderChoice(label string, idx int, options []string, cur int) string {
	active := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted)

	parts := make([]string, len(options))
	for i, o := range options {
		if i == cur {
			parts[i] = active.Render("< " + o + " >")
		} else {
			parts[i] = inactive.Render(o)
		}
	}
	line := styles.Label.Render(label) + "  " + strings.Join(parts, "  ")
	if m.focused == idx {
		line += styles.Arrows.String()
	}
	return line + "\n"
}

// renderCarousel shows only the current option, for long lists.
func (m EditorModel) renderCarousel(label string, idx int, options []string, cur int) string {
	style := styles.InactiveItem
	if m.focused == idx {
		style = styles.ActiveItem
	}
	line := styles.Label.Render(label) + "  " +
		style.Render(fmt.Sprintf("< %s >", options[cur])) +
		styles.Hint.Render(fmt.Sprintf("  %d/%d", cur+1, len(options)))
	return line + "\n"
}
