package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/model"
)

// ExportOptions builds export options from the current configuration.
func (s *Session) ExportOptions(format model.ImageFormat) render.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Options{
		Format:     format,
		Resolution: s.cfg.Resolution,
		Background: s.cfg.Background,
		Title:      s.cfg.Title,
	}
}

// ExportImage rasterizes what the live surface shows at opts.Resolution.
// The session state is only read.
func (s *Session) ExportImage(opts render.Options) (render.Blob, error) {
	snap := s.Snapshot()
	scene := render.SceneFromConfig(snap.Config, snap.Boundaries)
	scene.Background = opts.Background
	scene.Flight = snap.Flight
	return s.exporter.RenderToImage(snap.Surface, scene, snap.Context.Projection, opts)
}

// ExportToFile exports into dir as geopaint_<timestamp>.<ext> and returns
// the written path.
func (s *Session) ExportToFile(opts render.Options, dir string) (string, error) {
	blob, err := s.ExportImage(opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	name := fmt.Sprintf("geopaint_%s.%s", s.now().Format("20060102_150405"), opts.Format.Extension())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	s.logger.Printf("EXPORT_SAVED path=%s bytes=%d", path, len(blob.Data))
	return path, nil
}
