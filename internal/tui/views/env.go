package views

import (
	"log"

	"github.com/rendis/geopaint/internal/config"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/engine/storage"
	"github.com/rendis/geopaint/internal/session"
)

// Env is shared by every view. Store may be nil when the cache database
// could not be opened. ProjectID is the saved project the session was
// loaded from, empty for a new map.
type Env struct {
	Session   *session.Session
	Store     *storage.Store
	Loader    *geo.DatasetLoader
	Settings  *config.Settings
	Logger    *log.Logger
	ProjectID string
}

// Navigation messages
type NavigateToHome struct{}
type NavigateToGroups struct{}
type NavigateToEditor struct{ GroupID string }
type NavigateToTitle struct{}
type NavigateToPreview struct{}
type NavigateToProjects struct{}

// ReloadDataset asks the app to fetch the boundary dataset again.
type ReloadDataset struct{}

// DatasetLoadedMsg reports the outcome of a dataset load.
type DatasetLoadedMsg struct {
	Countries int
	Unmatched int
	Err       error
}

// ExportedMsg reports a finished export.
type ExportedMsg struct {
	Path string
	Err  error
}
