package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecentExports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "recent.json")
	if got := LoadRecent(path); got != nil {
		t.Fatalf("missing file = %v, want nil", got)
	}

	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, p := range []string{"/out/a.png", "/out/b.png", "/out/a.png"} {
		if err := SaveRecent(path, p, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("SaveRecent(%s): %v", p, err)
		}
	}

	got := recentPaths(LoadRecent(path))
	want := []string{"/out/a.png", "/out/b.png"}
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRecentExportsCapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	now := time.Now()
	for i := 0; i < maxRecent+5; i++ {
		p := filepath.Join("/out", string(rune('a'+i))+".png")
		if err := SaveRecent(path, p, now); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(LoadRecent(path)); n != maxRecent {
		t.Errorf("len = %d, want %d", n, maxRecent)
	}
}

func TestRecentExportsDamagedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadRecent(path); got != nil {
		t.Errorf("damaged file = %v, want nil", got)
	}
	if err := SaveRecent(path, "/out/x.png", time.Now()); err != nil {
		t.Fatal(err)
	}
	if n := len(LoadRecent(path)); n != 1 {
		t.Errorf("len after rewrite = %d, want 1", n)
	}
}
