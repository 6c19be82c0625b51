package geo

import (
	"math"
	"testing"
)

func TestReferencePointsSubsetOfRegistry(t *testing.T) {
	reg := DefaultRegistry()
	for code, pt := range DefaultReferencePoints() {
		if !reg.Contains(code) {
			t.Errorf("reference point for unknown country %s", code)
		}
		if pt.Lon() < -180 || pt.Lon() > 180 || pt.Lat() < -90 || pt.Lat() > 90 {
			t.Errorf("%s: point out of range %v", code, pt)
		}
	}
	if _, ok := DefaultReferencePoints().Lookup("AQ"); ok {
		t.Error("AQ should have no reference point")
	}
}

func TestDistanceKm(t *testing.T) {
	pts := DefaultReferencePoints()
	d, ok := pts.DistanceKm("FR", "DE")
	if !ok {
		t.Fatal("FR-DE missing")
	}
	if d < 500 || d > 1000 {
		t.Errorf("FR-DE = %.0f km", d)
	}
	if same, _ := pts.DistanceKm("BR", "BR"); same != 0 {
		t.Errorf("BR-BR = %f", same)
	}
	if _, ok := pts.DistanceKm("FR", "AQ"); ok {
		t.Error("distance to AQ should be unavailable")
	}
	quarter := ReferencePoints{"AA": {0, 0}, "BB": {90, 0}}
	if d, _ := quarter.DistanceKm("AA", "BB"); math.Abs(d-10018.75) > 0.1 {
		t.Errorf("quarter of the equator = %.2f km", d)
	}
	ab, _ := pts.DistanceKm("US", "JP")
	ba, _ := pts.DistanceKm("JP", "US")
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %f %f", ab, ba)
	}
}

func TestCodeForFeatureID(t *testing.T) {
	tests := []struct {
		id   any
		want string
		ok   bool
	}{
		{"004", "AF", true},
		{"840", "US", true},
		{float64(76), "BR", true},
		{784, "AE", true},
		{"-99", "", false},
		{"abc", "", false},
		{nil, "", false},
		{float64(4.5), "", false},
	}
	for _, tc := range tests {
		got, ok := CodeForFeatureID(tc.id)
		if string(got) != tc.want || ok != tc.ok {
			t.Errorf("CodeForFeatureID(%v) = %q,%v", tc.id, got, ok)
		}
	}
	if id, ok := NumericID("AF"); !ok || id != "004" {
		t.Errorf("NumericID(AF) = %q,%v", id, ok)
	}
}

func TestPresets(t *testing.T) {
	p, ok := LookupPreset("GCC")
	if !ok {
		t.Fatal("gcc preset missing")
	}
	want := []string{"SA", "AE", "QA", "BH", "KW", "OM"}
	if len(p.Members) != len(want) {
		t.Fatalf("gcc = %v", p.Members)
	}
	for i, c := range want {
		if string(p.Members[i]) != c {
			t.Errorf("gcc[%d] = %s, want %s", i, p.Members[i], c)
		}
	}
	p.Members[0] = "XX"
	if again, _ := LookupPreset("gcc"); again.Members[0] != "SA" {
		t.Error("LookupPreset returned shared slice")
	}

	reg := DefaultRegistry()
	for _, p := range Presets() {
		seen := map[string]bool{}
		for _, c := range p.Members {
			if !reg.Contains(c) {
				t.Errorf("preset %s: unknown %s", p.ID, c)
			}
			if seen[string(c)] {
				t.Errorf("preset %s: duplicate %s", p.ID, c)
			}
			seen[string(c)] = true
		}
	}
	if _, ok := LookupPreset("nope"); ok {
		t.Error("unknown preset found")
	}
}
