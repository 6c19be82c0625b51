package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/model"
	"github.com/rendis/geopaint/internal/tui/styles"
)

const (
	styleText = iota
	styleSubtitle
	stylePosition
	styleFont
	styleSize
	styleHidden
	styleBackground
	styleTransparent
	styleBorder
	styleResolution
	styleCount
)

var (
	titlePositions = []model.TitlePosition{model.TitleLeft, model.TitleCenter, model.TitleRight}
	titleFonts     = []model.FontFamily{model.FontSans, model.FontSansBold, model.FontMono, model.FontSmallCaps}
	titleSizes     = []model.FontSize{model.FontSmall, model.FontMedium, model.FontLarge}
	resolutions    = []model.ResolutionPreset{model.Resolution1080p, model.Resolution4K, model.ResolutionSquare}
)

// TitleModel edits the title block and the export styling.
type TitleModel struct {
	env         *Env
	inputs      []textinput.Model
	focused     int
	position    int
	font        int
	size        int
	resolution  int
	hidden      bool
	transparent bool
	err         string
	saved       bool
}

func NewTitleModel(env *Env) TitleModel {
	cfg := env.Session.Config()
	m := TitleModel{
		env:         env,
		inputs:      make([]textinput.Model, styleCount),
		hidden:      cfg.Title.Hidden,
		transparent: cfg.Background.Transparent,
	}
	m.inputs[styleText] = newInput("Map title", cfg.Title.Text, 50)
	m.inputs[styleSubtitle] = newInput("optional subtitle", cfg.Title.Subtitle, 50)
	m.inputs[styleBackground] = newInput("#ffffff", cfg.Background.Color, 10)
	m.inputs[styleBorder] = newInput(render.DefaultBorderColor, cfg.BorderColor, 10)
	m.position = indexOf(titlePositions, cfg.Title.Position)
	m.font = indexOf(titleFonts, cfg.Title.Font)
	m.size = indexOf(titleSizes, cfg.Title.Size)
	m.resolution = indexOf(resolutions, cfg.Resolution)
	m.inputs[styleText].Focus()
	return m
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

func styleVirtual(idx int) bool {
	switch idx {
	case styleText, styleSubtitle, styleBackground, styleBorder:
		return false
	}
	return true
}

func (m TitleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TitleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.saved = false
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateToHome{} }
		case "up", "shift+tab":
			return m, m.focus((m.focused - 1 + styleCount) % styleCount)
		case "down", "tab":
			return m, m.focus((m.focused + 1) % styleCount)
		case "left":
			if m.cycle(-1) {
				return m, nil
			}
		case "right", " ":
			if m.cycle(1) {
				return m, nil
			}
		case "enter":
			if m.save() {
				return m, func() tea.Msg { return NavigateToHome{} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if !styleVirtual(m.focused) {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}
	return m, cmd
}

func (m *TitleModel) cycle(dir int) bool {
	wrap := func(i, n int) int { return ((i % n) + n) % n }
	switch m.focused {
	case stylePosition:
		m.position = wrap(m.position+dir, len(titlePositions))
	case styleFont:
		m.font = wrap(m.font+dir, len(titleFonts))
	case styleSize:
		m.size = wrap(m.size+dir, len(titleSizes))
	case styleResolution:
		m.resolution = wrap(m.resolution+dir, len(resolutions))
	case styleHidden:
		m.hidden = !m.hidden
	case styleTransparent:
		m.transparent = !m.transparent
	default:
		return false
	}
	return true
}

func (m *TitleModel) focus(idx int) tea.Cmd {
	if !styleVirtual(m.focused) {
		m.inputs[m.focused].Blur()
	}
	m.focused = idx
	if styleVirtual(idx) {
		return nil
	}
	m.inputs[idx].Focus()
	return textinput.Blink
}

func (m *TitleModel) save() bool {
	m.err = ""
	bg := strings.TrimSpace(m.inputs[styleBackground].Value())
	border := strings.TrimSpace(m.inputs[styleBorder].Value())
	if _, err := render.ParseHexColor(bg); err != nil && !m.transparent {
		m.err = "Background: " + err.Error()
		return false
	}
	if _, err := render.ParseHexColor(border); err != nil {
		m.err = "Border: " + err.Error()
		return false
	}

	s := m.env.Session
	s.SetTitle(model.TitleBlock{
		Text:     m.inputs[styleText].Value(),
		Subtitle: m.inputs[styleSubtitle].Value(),
		Position: titlePositions[m.position],
		Font:     titleFonts[m.font],
		Size:     titleSizes[m.size],
		Hidden:   m.hidden,
	})
	s.SetBackground(model.Background{Transparent: m.transparent, Color: bg})
	s.SetBorderColor(border)
	s.SetResolution(resolutions[m.resolution])
	m.saved = true
	return true
}

func (m TitleModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Title & Style") + "\n\n")

	b.WriteString(m.renderField("Title:", styleText))
	b.WriteString(m.renderField("Subtitle:", styleSubtitle))
	b.WriteString(m.renderOption("Position:", stylePosition, string(titlePositions[m.position])))
	b.WriteString(m.renderOption("Font:", styleFont, string(titleFonts[m.font])))
	w, h := resolutions[m.resolution].Dimensions()
	base := titleSizes[m.size].BasePixels() * render.FontScale(w)
	b.WriteString(m.renderOption("Size:", styleSize, fmt.Sprintf("%s (%.0fpx)", titleSizes[m.size], base)))
	b.WriteString(m.renderOption("Hidden:", styleHidden, yesNo(m.hidden)))

	b.WriteString("\n")
	b.WriteString(m.renderField("Background:", styleBackground))
	b.WriteString(m.renderOption("Transparent:", styleTransparent, yesNo(m.transparent)))
	b.WriteString(m.renderField("Borders:", styleBorder))
	b.WriteString(m.renderOption("Resolution:", styleResolution,
		fmt.Sprintf("%s (%dx%d)", resolutions[m.resolution], w, h)))

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("  " + m.err))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.StatusBar.Render("enter apply • tab next • ←→ change • esc back"))

	return styles.Border.Render(b.String())
}

func (m TitleModel) renderField(label string, idx int) string {
	return fmt.Sprintf("%s %s\n", styles.Label.Render(label), m.inputs[idx].View())
}

func (m TitleModel) renderOption(label string, idx int, value string) string {
	style := styles.InactiveItem
	if m.focused == idx {
		style = styles.ActiveItem
	}
	line := styles.Label.Render(label) + "  " + style.Render("< "+value+" >")
	if m.focused == idx {
		line += styles.Arrows.String()
	}
	return line + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
