package geo

import (
	"os"
	"reflect"
	"testing"

	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/model"
)

func loadTestStore(t *testing.T, name string) *BoundaryStore {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := DecodeDataset(data)
	if err != nil {
		t.Fatalf("DecodeDataset: %v", err)
	}
	store, err := NewBoundaryStore(fc, DefaultRegistry())
	if err != nil {
		t.Fatalf("NewBoundaryStore: %v", err)
	}
	return store
}

func TestDecodeTopoJSON(t *testing.T) {
	data, err := os.ReadFile("testdata/mini.topo.json")
	if err != nil {
		t.Fatal(err)
	}
	fc, err := DecodeTopoJSON(data, "countries")
	if err != nil {
		t.Fatalf("DecodeTopoJSON: %v", err)
	}
	if len(fc.Features) != 5 {
		t.Fatalf("features = %d, want 5 (null geometry skipped)", len(fc.Features))
	}

	ae := fc.Features[0].Geometry.(orb.Polygon)
	wantAE := orb.Ring{{10, 0}, {10, 10}, {0, 10}, {0, 0}, {10, 0}}
	if !reflect.DeepEqual(ae[0], wantAE) {
		t.Errorf("AE ring = %v, want %v", ae[0], wantAE)
	}
	sa := fc.Features[1].Geometry.(orb.Polygon)
	wantSA := orb.Ring{{10, 0}, {20, 0}, {20, 10}, {10, 10}, {10, 0}}
	if !reflect.DeepEqual(sa[0], wantSA) {
		t.Errorf("SA ring = %v, want %v", sa[0], wantSA)
	}
	if _, ok := fc.Features[2].Geometry.(orb.MultiPolygon); !ok {
		t.Errorf("BH geometry = %T", fc.Features[2].Geometry)
	}
	if fc.Features[0].ID != "784" {
		t.Errorf("id = %v", fc.Features[0].ID)
	}

	if _, err := DecodeTopoJSON(data, "land"); err == nil {
		t.Error("missing object should fail")
	}
	if _, err := DecodeTopoJSON([]byte(`{"type":"FeatureCollection"}`), ""); err == nil {
		t.Error("non-topology should fail")
	}
	bad := []byte(`{"type":"Topology","objects":{"c":{"type":"Polygon","arcs":[[7]]}},"arcs":[]}`)
	if _, err := DecodeTopoJSON(bad, ""); err == nil {
		t.Error("out of range arc should fail")
	}
}

func TestBoundaryStoreFromTopology(t *testing.T) {
	store := loadTestStore(t, "mini.topo.json")
	want := []model.CountryCode{"AE", "BH", "SA", "XK"}
	if got := store.Codes(); !reflect.DeepEqual(got, want) {
		t.Errorf("codes = %v, want %v", got, want)
	}
	if got := store.Unmatched(); !reflect.DeepEqual(got, []string{"Atlantis"}) {
		t.Errorf("unmatched = %v", got)
	}

	tests := []struct {
		pt   orb.Point
		want model.CountryCode
		ok   bool
	}{
		{orb.Point{5, 5}, "AE", true},
		{orb.Point{15, 5}, "SA", true},
		{orb.Point{30, 30}, "", false},
	}
	for _, tc := range tests {
		got, ok := store.CountryAt(tc.pt)
		if got != tc.want || ok != tc.ok {
			t.Errorf("CountryAt(%v) = %q,%v", tc.pt, got, ok)
		}
	}

	b, ok := store.BoundsOf([]model.CountryCode{"AE", "SA", "ZZ"})
	if !ok || b != (orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{20, 10}}) {
		t.Errorf("BoundsOf = %v,%v", b, ok)
	}
	if _, ok := store.BoundsOf([]model.CountryCode{"FR"}); ok {
		t.Error("FR has no boundary in the fixture")
	}
	if _, err := store.Polygon("FR"); err == nil {
		t.Error("Polygon(FR) should fail")
	}
}

func TestBoundaryStoreFromGeoJSON(t *testing.T) {
	store := loadTestStore(t, "mini.geojson")
	if got := store.Codes(); !reflect.DeepEqual(got, []model.CountryCode{"FR", "NO"}) {
		t.Errorf("codes = %v", got)
	}
	if got := store.Unmatched(); !reflect.DeepEqual(got, []string{"Somaliland"}) {
		t.Errorf("unmatched = %v", got)
	}
	if _, err := NewBoundaryStore(nil, DefaultRegistry()); err != ErrNoBoundaries {
		t.Errorf("nil collection err = %v", err)
	}
}

func TestCheckReferencePoints(t *testing.T) {
	store := loadTestStore(t, "mini.geojson")
	pts := ReferencePoints{
		"FR": orb.Point{2, 46},
		"NO": orb.Point{-40, 10},
	}
	problems := store.CheckReferencePoints(pts)
	if len(problems) != 1 {
		t.Fatalf("problems = %v", problems)
	}
}
