package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rendis/geopaint/internal/config"
)

const maxRecent = 10

// RecentExport is one exported image remembered for the home screen.
type RecentExport struct {
	Path       string    `json:"path"`
	ExportedAt time.Time `json:"exported_at"`
}

func recentFilePath() string {
	return filepath.Join(filepath.Dir(config.Path()), "recent.json")
}

// LoadRecent reads the recent exports list. A missing or damaged file is
// an empty list.
func LoadRecent(path string) []RecentExport {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var entries []RecentExport
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// SaveRecent puts exported at the front of the list at path, dropping an
// older entry for the same file.
func SaveRecent(path, exported string, now time.Time) error {
	abs, err := filepath.Abs(exported)
	if err != nil {
		abs = exported
	}

	entries := LoadRecent(path)

	filtered := make([]RecentExport, 0, len(entries)+1)
	filtered = append(filtered, RecentExport{Path: abs, ExportedAt: now})
	for _, e := range entries {
		if e.Path != abs {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) > maxRecent {
		filtered = filtered[:maxRecent]
	}

	data, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func recentPaths(entries []RecentExport) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
