package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rendis/geopaint/internal/config"
	"github.com/rendis/geopaint/internal/engine/fetch"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/engine/storage"
	"github.com/rendis/geopaint/internal/session"
	"github.com/rendis/geopaint/internal/tui"
	"github.com/rendis/geopaint/internal/tui/views"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		var run func([]string) error
		switch os.Args[1] {
		case "render":
			run = runRender
		case "flight":
			run = runFlight
		case "parse":
			run = runParse
		case "where":
			run = runWhere
		case "projects":
			run = runProjects
		case "check-data":
			run = runCheckData
		case "version":
			fmt.Println("geopaint " + version)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
		if run != nil {
			if err := run(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// No subcommand → launch TUI
	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `geopaint - country maps, flight animations and image export

Usage:
  geopaint                    Launch interactive TUI
  geopaint render [flags]     Render a map to PNG/JPG (and SVG)
  geopaint flight [flags]     Render a flight animation to GIF
  geopaint parse <text>       Resolve a free-text country list
  geopaint where [flags]      Name the country at a coordinate
  geopaint projects [flags]   List or delete saved projects
  geopaint check-data         Check the built-in country tables
  geopaint version            Show version

Run 'geopaint <command> --help' for flags.
`)
}

// env is what every command needs: settings, a log file, the project
// store and the dataset loader.
type env struct {
	settings *config.Settings
	logger   *log.Logger
	logFile  *os.File
	store    *storage.Store
	loader   *geo.DatasetLoader
}

// setup loads settings and opens the log and the cache database. A store
// that cannot be opened is logged and left nil; the dataset is then
// downloaded without caching.
func setup(datasetOverride string) (*env, error) {
	settings, err := config.Load(config.Path())
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if datasetOverride != "" {
		settings.DatasetURL = datasetOverride
	}

	e := &env{settings: settings, logger: log.New(io.Discard, "", 0)}

	logDir := filepath.Join(filepath.Dir(config.Path()), "logs")
	if err := os.MkdirAll(logDir, 0o755); err == nil {
		logPath := filepath.Join(logDir, fmt.Sprintf("geopaint_%s.log", time.Now().Format("20060102_150405")))
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			e.logFile = f
			e.logger = log.New(f, "", log.LstdFlags)
		}
	}
	e.logger.Printf("=== Session start: version=%s dataset=%s ===", version, settings.DatasetURL)

	var cache geo.AssetCache
	if err := os.MkdirAll(filepath.Dir(settings.CacheDB), 0o755); err == nil {
		if store, err := storage.NewStore(settings.CacheDB); err != nil {
			e.logger.Printf("STORE_OPEN_ERR path=%s err=%v", settings.CacheDB, err)
		} else {
			e.store = store
			cache = store
		}
	}

	client := fetch.NewClient(fetch.Options{ProxyURL: os.Getenv("GEOPAINT_PROXY")})
	e.loader = geo.NewDatasetLoader(settings.DatasetURL, client, cache, nil, e.logger)
	return e, nil
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logger.Printf("=== Session end ===")
		e.logFile.Close()
	}
}

func (e *env) newSession(opts session.Options) *session.Session {
	opts.Logger = e.logger
	return session.New(opts)
}

func runTUI() error {
	e, err := setup("")
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.newSession(session.Options{AutoZoomDelay: e.settings.AutoZoomDelay()})
	s.SetResolution(e.settings.Resolution)

	return tui.Run(&views.Env{
		Session:  s,
		Store:    e.store,
		Loader:   e.loader,
		Settings: e.settings,
		Logger:   e.logger,
	})
}
