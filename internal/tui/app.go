package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/geopaint/internal/tui/views"
)

type viewID int

const (
	viewHome viewID = iota
	viewGroups
	viewEditor
	viewTitle
	viewPreview
	viewProjects
)

// datasetTimeout bounds one boundary dataset load.
const datasetTimeout = 2 * time.Minute

// App is the root bubbletea model.
type App struct {
	env         *views.Env
	recentPath  string
	currentView viewID
	width       int
	height      int
	loading     bool
	dataset     views.DatasetLoadedMsg
	home        views.HomeModel
	groups      views.GroupsModel
	editor      views.EditorModel
	title       views.TitleModel
	preview     views.PreviewModel
	projects    views.ProjectsModel
}

func NewApp(env *views.Env) App {
	a := App{
		env:         env,
		recentPath:  recentFilePath(),
		currentView: viewHome,
		loading:     true,
	}
	a.home = views.NewHomeModel(true, a.dataset, recentPaths(LoadRecent(a.recentPath)))
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.home.Init(), a.loadDataset())
}

// loadDataset fetches the boundaries and installs them into the session.
func (a App) loadDataset() tea.Cmd {
	env := a.env
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), datasetTimeout)
		defer cancel()
		bs, err := env.Loader.Load(ctx)
		if err != nil {
			return views.DatasetLoadedMsg{Err: err}
		}
		env.Session.SetBoundaries(bs)
		return views.DatasetLoadedMsg{Countries: bs.Len(), Unmatched: len(bs.Unmatched())}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.env.Session.StopFlight()
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case views.DatasetLoadedMsg:
		a.loading = false
		a.dataset = msg
	case views.ReloadDataset:
		if a.loading {
			return a, nil
		}
		a.loading = true
		a.env.Loader.Reset()
		var m tea.Model
		m, _ = a.home.Update(msg)
		a.home = m.(views.HomeModel)
		return a, a.loadDataset()
	case views.ExportedMsg:
		if msg.Err == nil {
			if err := SaveRecent(a.recentPath, msg.Path, time.Now()); err != nil {
				a.env.Logger.Printf("RECENT_SAVE_ERR path=%s err=%v", a.recentPath, err)
			}
		}
	case views.NavigateToHome:
		a.currentView = viewHome
		a.home = views.NewHomeModel(a.loading, a.dataset, recentPaths(LoadRecent(a.recentPath)))
		return a, a.home.Init()
	case views.NavigateToGroups:
		a.currentView = viewGroups
		a.groups = views.NewGroupsModel(a.env)
		return a, tea.Batch(a.groups.Init(), a.sizeCmd())
	case views.NavigateToEditor:
		a.currentView = viewEditor
		a.editor = views.NewEditorModel(a.env, msg.GroupID)
		return a, a.editor.Init()
	case views.NavigateToTitle:
		a.currentView = viewTitle
		a.title = views.NewTitleModel(a.env)
		return a, a.title.Init()
	case views.NavigateToPreview:
		a.currentView = viewPreview
		a.preview = views.NewPreviewModel(a.env, a.width, a.height)
		return a, a.preview.Init()
	case views.NavigateToProjects:
		a.currentView = viewProjects
		a.projects = views.NewProjectsModel(a.env)
		return a, a.projects.Init()
	}

	var cmd tea.Cmd
	var m tea.Model
	switch a.currentView {
	case viewHome:
		m, cmd = a.home.Update(msg)
		a.home = m.(views.HomeModel)
	case viewGroups:
		m, cmd = a.groups.Update(msg)
		a.groups = m.(views.GroupsModel)
	case viewEditor:
		m, cmd = a.editor.Update(msg)
		a.editor = m.(views.EditorModel)
	case viewTitle:
		m, cmd = a.title.Update(msg)
		a.title = m.(views.TitleModel)
	case viewPreview:
		m, cmd = a.preview.Update(msg)
		a.preview = m.(views.PreviewModel)
	case viewProjects:
		m, cmd = a.projects.Update(msg)
		a.projects = m.(views.ProjectsModel)
	}

	return a, cmd
}

func (a App) View() string {
	var content string
	switch a.currentView {
	case viewHome:
		content = a.home.View()
	case viewGroups:
		content = a.groups.View()
	case viewEditor:
		content = a.editor.View()
	case viewTitle:
		content = a.title.View()
	case viewPreview:
		content = a.preview.View()
	case viewProjects:
		content = a.projects.View()
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// Run starts the TUI.
func Run(env *views.Env) error {
	p := tea.NewProgram(NewApp(env), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
