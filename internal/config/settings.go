package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

// Settings are the persistent user preferences. Durations are stored in
// milliseconds.
type Settings struct {
	DatasetURL string `json:"datasetURL"`
	CacheDB    string `json:"cacheDB"`
	OutputDir  string `json:"outputDir"`

	// Export defaults
	Format     model.ImageFormat      `json:"format"`
	Resolution model.ResolutionPreset `json:"resolution"`

	AutoZoomDelayMS  int    `json:"autoZoomDelayMs"`
	FlightDurationMS int    `json:"flightDurationMs"`
	FlightTheme      string `json:"flightTheme"`
}

const (
	defaultAutoZoomDelay  = 300 * time.Millisecond
	defaultFlightDuration = 4 * time.Second
)

// Default returns the settings used when no file exists.
func Default() *Settings {
	base := baseDir()
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DatasetURL:       geo.DefaultDatasetURL,
		CacheDB:          filepath.Join(base, "geopaint.db"),
		OutputDir:        filepath.Join(homeDir, "Pictures", "geopaint"),
		Format:           model.FormatPNG,
		Resolution:       model.Resolution1080p,
		AutoZoomDelayMS:  int(defaultAutoZoomDelay / time.Millisecond),
		FlightDurationMS: int(defaultFlightDuration / time.Millisecond),
		FlightTheme:      flight.DefaultTheme,
	}
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "geopaint")
}

// Path is the settings file in the user config directory.
func Path() string {
	return filepath.Join(baseDir(), "settings.json")
}

// Load reads settings from path. A missing file yields the defaults; missing
// or invalid fields are filled from them.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s.fill(Default())
	return &s, nil
}

func (s *Settings) fill(d *Settings) {
	if s.DatasetURL == "" {
		s.DatasetURL = d.DatasetURL
	}
	if s.CacheDB == "" {
		s.CacheDB = d.CacheDB
	}
	if s.OutputDir == "" {
		s.OutputDir = d.OutputDir
	}
	if f, err := model.ParseImageFormat(string(s.Format)); err == nil {
		s.Format = f
	} else {
		s.Format = d.Format
	}
	if r, err := model.ParseResolution(string(s.Resolution)); err == nil {
		s.Resolution = r
	} else {
		s.Resolution = d.Resolution
	}
	// A zero delay is a valid choice (zoom immediately); only negatives reset.
	if s.AutoZoomDelayMS < 0 {
		s.AutoZoomDelayMS = d.AutoZoomDelayMS
	}
	if s.FlightDurationMS <= 0 {
		s.FlightDurationMS = d.FlightDurationMS
	}
	s.FlightTheme = flight.ThemeByID(s.FlightTheme).ID
}

// Save writes settings to path, creating its directory.
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}

func (s *Settings) AutoZoomDelay() time.Duration {
	return time.Duration(s.AutoZoomDelayMS) * time.Millisecond
}

func (s *Settings) FlightDuration() time.Duration {
	return time.Duration(s.FlightDurationMS) * time.Millisecond
}
