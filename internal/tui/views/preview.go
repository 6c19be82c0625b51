package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/engine/storage"
	"github.com/rendis/geopaint/internal/model"
	"github.com/rendis/geopaint/internal/session"
	"github.com/rendis/geopaint/internal/tui/components"
	"github.com/rendis/geopaint/internal/tui/styles"
)

// flightShared holds what the flight callbacks report between ticks.
// Lives behind a pointer so it survives bubbletea's value copies.
type flightShared struct {
	mu       sync.Mutex
	playing  bool
	progress float64
	phase    flight.Phase
	done     bool
	err      error
}

func (s *flightShared) callbacks() session.FlightCallbacks {
	return session.FlightCallbacks{
		OnFrame: func(f flight.Frame) {
			s.mu.Lock()
			s.progress = f.Progress
			s.phase = f.Phase
			s.mu.Unlock()
		},
		OnComplete: func() {
			s.mu.Lock()
			s.playing = false
			s.done = true
			s.mu.Unlock()
		},
		OnStop: func(err error) {
			s.mu.Lock()
			s.playing = false
			s.err = err
			s.mu.Unlock()
		},
	}
}

type flightStatus struct {
	playing  bool
	progress float64
	phase    flight.Phase
	done     bool
	err      error
}

func (s *flightShared) snapshot() flightStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return flightStatus{playing: s.playing, progress: s.progress, phase: s.phase, done: s.done, err: s.err}
}

func (s *flightShared) reset(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = playing
	s.progress = 0
	s.phase = flight.Takeoff
	s.done = false
	s.err = nil
}

const (
	routeOrigin = iota
	routeDest
	routeNone
)

// PreviewModel shows the map, plays flights and exports.
type PreviewModel struct {
	env      *Env
	mapView  components.MapView
	progress progress.Model
	route    []textinput.Model
	focused  int
	theme    int
	themes   []flight.Theme
	format   model.ImageFormat
	shared   *flightShared
	status   string
	err      string
}

var errNoStore = errors.New("project storage is unavailable")

type flightTickMsg time.Time

type projectSavedMsg struct {
	project storage.Project
	err     error
}

func NewPreviewModel(env *Env, width, height int) PreviewModel {
	m := PreviewModel{
		env:      env,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		route: []textinput.Model{
			newInput("origin, e.g. Madrid or ES", "", 24),
			newInput("destination, e.g. Japan", "", 24),
		},
		focused: routeNone,
		themes:  flight.Themes(),
		format:  model.FormatPNG,
		shared:  &flightShared{},
	}
	if env.Settings != nil {
		m.theme = indexOf(themeIDs(m.themes), env.Settings.FlightTheme)
		if f, err := model.ParseImageFormat(string(env.Settings.Format)); err == nil {
			m.format = f
		}
	}
	m.resize(width, height)
	return m
}

func themeIDs(ts []flight.Theme) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func (m *PreviewModel) resize(width, height int) {
	w, h := width-8, height-18
	if w < 20 {
		w = 20
	}
	if h < 6 {
		h = 6
	}
	m.mapView.SetSize(w, h)
}

func (m PreviewModel) Init() tea.Cmd {
	if m.env.Session.FlightState() == flight.Playing {
		return flightTick()
	}
	return nil
}

func flightTick() tea.Cmd {
	return tea.Tick(flight.DefaultFrameInterval*4, func(t time.Time) tea.Msg {
		return flightTickMsg(t)
	})
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case flightTickMsg:
		if m.shared.snapshot().playing || m.env.Session.FlightState() == flight.Playing {
			return m, flightTick()
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.err = "Export failed: " + msg.Err.Error()
		} else {
			m.status = "Saved " + msg.Path
		}
		return m, nil

	case projectSavedMsg:
		if msg.err != nil {
			m.err = "Save failed: " + msg.err.Error()
		} else {
			m.env.ProjectID = msg.project.ID
			m.status = fmt.Sprintf("Project %q saved", msg.project.Name)
		}
		return m, nil

	case tea.KeyMsg:
		if m.focused != routeNone {
			return m.updateRoute(msg)
		}
		m.err, m.status = "", ""
		s := m.env.Session
		switch msg.String() {
		case "esc", "q":
			s.StopFlight()
			return m, func() tea.Msg { return NavigateToHome{} }
		case "g":
			return m, func() tea.Msg { return NavigateToGroups{} }
		case "tab", "f":
			return m, m.focusRoute(routeOrigin)
		case "enter", " ":
			return m, m.play()
		case "s":
			if !s.StopFlight() {
				m.status = "No flight playing"
			}
		case "z":
			s.ZoomToSelection()
		case "r":
			s.ResetZoom()
		case "t":
			m.theme = (m.theme + 1) % len(m.themes)
		case "x":
			if m.format == model.FormatPNG {
				m.format = model.FormatJPG
			} else {
				m.format = model.FormatPNG
			}
		case "e":
			m.status = "Exporting..."
			return m, m.export()
		case "w":
			return m, m.saveProject()
		}
	}

	pModel, cmd := m.progress.Update(msg)
	m.progress = pModel.(progress.Model)
	return m, cmd
}

func (m PreviewModel) updateRoute(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.focusRoute(routeNone)
	case "tab", "down":
		return m, m.focusRoute((m.focused + 1) % (routeNone + 1))
	case "shift+tab", "up":
		return m, m.focusRoute((m.focused + routeNone) % (routeNone + 1))
	case "enter":
		cmd := m.focusRoute(routeNone)
		return m, tea.Batch(cmd, m.play())
	}
	var cmd tea.Cmd
	m.route[m.focused], cmd = m.route[m.focused].Update(msg)
	return m, cmd
}

func (m *PreviewModel) focusRoute(idx int) tea.Cmd {
	if m.focused != routeNone {
		m.route[m.focused].Blur()
	}
	m.focused = idx
	if idx == routeNone {
		return nil
	}
	m.route[idx].Focus()
	return textinput.Blink
}

func (m *PreviewModel) play() tea.Cmd {
	origin := strings.TrimSpace(m.route[routeOrigin].Value())
	dest := strings.TrimSpace(m.route[routeDest].Value())
	if origin == "" || dest == "" {
		m.err = "Origin and destination are required"
		return nil
	}

	d := 4 * time.Second
	if m.env.Settings != nil {
		d = m.env.Settings.FlightDuration()
	}

	m.shared.reset(true)

	err := m.env.Session.PlayFlight(origin, dest, d, m.themes[m.theme].ID, m.shared.callbacks())
	if err != nil {
		m.shared.reset(false)
		if errors.Is(err, flight.ErrMissingReference) {
			m.err = fmt.Sprintf("Cannot fly %s → %s: unknown place", origin, dest)
		} else {
			m.err = err.Error()
		}
		return nil
	}
	if km, ok := m.env.Session.FlightDistanceKm(origin, dest); ok {
		m.status = fmt.Sprintf("%s → %s, %.0f km", origin, dest, km)
	}
	return flightTick()
}

func (m PreviewModel) export() tea.Cmd {
	s := m.env.Session
	opts := s.ExportOptions(m.format)
	dir := "."
	if m.env.Settings != nil {
		dir = m.env.Settings.OutputDir
	}
	return func() tea.Msg {
		path, err := s.ExportToFile(opts, dir)
		return ExportedMsg{Path: path, Err: err}
	}
}

func (m PreviewModel) saveProject() tea.Cmd {
	store := m.env.Store
	if store == nil {
		return func() tea.Msg { return projectSavedMsg{err: errNoStore} }
	}
	cfg := m.env.Session.Config()
	id := m.env.ProjectID
	if id == "" {
		id = uuid.NewString()
	}
	name := strings.TrimSpace(cfg.Title.Text)
	if name == "" {
		name = "Untitled map"
	}
	return func() tea.Msg {
		p, err := store.SaveProject(context.Background(), storage.Project{ID: id, Name: name, Config: cfg})
		return projectSavedMsg{project: p, err: err}
	}
}

func (m PreviewModel) View() string {
	var b strings.Builder
	snap := m.env.Session.Snapshot()

	b.WriteString(styles.Title.Render("Preview"))
	b.WriteString("\n")

	scene := render.SceneFromConfig(snap.Config, snap.Boundaries)
	scene.Flight = snap.Flight
	b.WriteString(styles.MapFrame.Render(m.mapView.View(scene, snap.Context.Projection, snap.View)))
	b.WriteString("\n")
	b.WriteString(m.renderLegend(snap.Config))
	b.WriteString("\n")

	if snap.Boundaries == nil {
		b.WriteString(styles.WarningText.Render("Boundaries not loaded yet"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderRoute())
	b.WriteString(m.renderFlight())

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.err))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessText.Render(m.status))
	}

	b.WriteString("\n")
	if m.focused != routeNone {
		b.WriteString(styles.StatusBar.Render("enter fly • tab next • esc done"))
	} else {
		b.WriteString(styles.StatusBar.Render(
			"f route • enter fly • s stop • z zoom • r reset • t theme • x format • e export • w save • esc back"))
	}

	return b.String()
}

func (m PreviewModel) renderLegend(cfg model.MapViewConfiguration) string {
	var parts []string
	for _, g := range cfg.Groups {
		swatch := styles.Swatch(g.Color)
		parts = append(parts, fmt.Sprintf("%s %s (%d)", swatch, g.Name, len(g.Members)))
	}
	return strings.Join(parts, "   ")
}

func (m PreviewModel) renderRoute() string {
	theme := m.themes[m.theme]
	line := fmt.Sprintf("%s %s  →  %s",
		styles.Label.Render("Flight:"), m.route[routeOrigin].View(), m.route[routeDest].View())
	info := lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf("theme %s • export %s", theme.Name, strings.ToUpper(string(m.format))))
	return line + "\n" + styles.Label.Render("") + " " + info + "\n"
}

func (m PreviewModel) renderFlight() string {
	fs := m.shared.snapshot()
	state := m.env.Session.FlightState()
	if state == flight.Idle {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.progress.ViewAs(fs.progress))
	b.WriteString("  ")
	switch {
	case state == flight.Playing:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).Render(fs.phase.String()))
	case fs.done:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Success).Bold(true).Render("landed"))
	case fs.err != nil:
		b.WriteString(styles.ErrorText.Render("aborted: " + fs.err.Error()))
	default:
		b.WriteString(styles.Hint.Render(state.String()))
	}
	b.WriteString("\n")
	return b.String()
}
