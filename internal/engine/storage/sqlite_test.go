package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rendis/geopaint/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "geopaint.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	cfg := model.MapViewConfiguration{
		Mode: model.ModeMulti,
		Groups: []model.Group{
			{ID: "g1", Name: "Gulf", Color: "#0ea5e9", Pattern: model.PatternDots, Members: []model.CountryCode{"SA", "AE"}},
		},
		Title:      model.TitleBlock{Text: "GCC", Position: model.TitleCenter},
		Resolution: model.Resolution4K,
	}
	if _, err := s.SaveProject(ctx, Project{ID: "p1", Name: "first", Config: cfg}); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	clock = clock.Add(time.Hour)
	if _, err := s.SaveProject(ctx, Project{ID: "p2", Name: "second"}); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	got, err := s.LoadProject(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if got.Name != "first" || len(got.Config.Groups) != 1 || got.Config.Groups[0].Members[1] != "AE" {
		t.Errorf("LoadProject = %+v", got)
	}
	if got.Config.Resolution != model.Resolution4K || got.Config.Title.Text != "GCC" {
		t.Errorf("config did not round trip: %+v", got.Config)
	}
	if !got.UpdatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("UpdatedAt = %v", got.UpdatedAt)
	}

	list, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p2" || list[1].ID != "p1" {
		t.Errorf("ListProjects order = %+v", list)
	}

	clock = clock.Add(time.Hour)
	if _, err := s.SaveProject(ctx, Project{ID: "p1", Name: "renamed", Config: cfg}); err != nil {
		t.Fatalf("SaveProject overwrite: %v", err)
	}
	if n, _ := s.Count(); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
	list, _ = s.ListProjects(ctx)
	if list[0].ID != "p1" || list[0].Name != "renamed" {
		t.Errorf("after overwrite list[0] = %+v", list[0])
	}

	if err := s.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.LoadProject(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadProject after delete: err = %v", err)
	}
	if err := s.DeleteProject(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestSaveProjectRequiresID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SaveProject(context.Background(), Project{Name: "x"}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestAssets(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, ok, err := s.GetAsset(ctx, "countries"); ok || err != nil {
		t.Fatalf("GetAsset on empty store = ok %v, err %v", ok, err)
	}
	if err := s.PutAsset(ctx, "countries", []byte(`{"type":"Topology"}`)); err != nil {
		t.Fatalf("PutAsset: %v", err)
	}
	if err := s.PutAsset(ctx, "countries", []byte(`{"type":"FeatureCollection"}`)); err != nil {
		t.Fatalf("PutAsset overwrite: %v", err)
	}
	data, ok, err := s.GetAsset(ctx, "countries")
	if err != nil || !ok || string(data) != `{"type":"FeatureCollection"}` {
		t.Errorf("GetAsset = %q, %v, %v", data, ok, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "geopaint.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := s.SaveProject(ctx, Project{ID: "keep", Name: "kept"}); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	s.Close()

	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if p, err := s.LoadProject(ctx, "keep"); err != nil || p.Name != "kept" {
		t.Errorf("LoadProject after reopen = %+v, %v", p, err)
	}
}
