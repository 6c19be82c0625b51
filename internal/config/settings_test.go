package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rendis/geopaint/internal/model"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope", "settings.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.AutoZoomDelay() != 300*time.Millisecond {
		t.Errorf("AutoZoomDelay = %v", s.AutoZoomDelay())
	}
	if s.Format != model.FormatPNG || s.Resolution != model.Resolution1080p {
		t.Errorf("export defaults = %s %s", s.Format, s.Resolution)
	}
	if s.FlightTheme != "classic" || s.FlightDuration() != 4*time.Second {
		t.Errorf("flight defaults = %s %v", s.FlightTheme, s.FlightDuration())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")
	in := Default()
	in.OutputDir = "/tmp/maps"
	in.Format = model.FormatJPG
	in.Resolution = model.Resolution4K
	in.AutoZoomDelayMS = 0
	in.FlightTheme = "neon"
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip:\n got %+v\nwant %+v", *out, *in)
	}
}

func TestLoadFillsInvalidFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	raw := `{"format":"gif","resolution":"8k","autoZoomDelayMs":-5,"flightDurationMs":0,"flightTheme":"disco","outputDir":"/x"}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if s.Format != d.Format || s.Resolution != d.Resolution {
		t.Errorf("format/resolution not reset: %s %s", s.Format, s.Resolution)
	}
	if s.AutoZoomDelayMS != d.AutoZoomDelayMS || s.FlightDurationMS != d.FlightDurationMS {
		t.Errorf("durations not reset: %d %d", s.AutoZoomDelayMS, s.FlightDurationMS)
	}
	if s.FlightTheme != "classic" || s.OutputDir != "/x" || s.DatasetURL != d.DatasetURL {
		t.Errorf("got %+v", s)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	os.WriteFile(path, []byte("{"), 0o644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
