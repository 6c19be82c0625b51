package geo

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/rendis/geopaint/internal/model"
)

// ErrNoBoundaries is returned when a dataset maps no feature to a country.
var ErrNoBoundaries = errors.New("dataset has no country boundaries")

// BoundaryStore indexes dataset features by country code.
type BoundaryStore struct {
	features  map[model.CountryCode]*geojson.Feature
	codes     []model.CountryCode
	unmatched []string
	index     *rtreego.Rtree
}

// boxEntry is a country's bounding box in the point-lookup index.
type boxEntry struct {
	code model.CountryCode
	rect rtreego.Rect
}

func (e *boxEntry) Bounds() rtreego.Rect { return e.rect }

// minSide keeps degenerate boxes valid; rtreego rejects zero lengths.
const minSide = 1e-6

func boundRect(b orb.Bound) (rtreego.Rect, error) {
	w := math.Max(b.Max[0]-b.Min[0], minSide)
	h := math.Max(b.Max[1]-b.Min[1], minSide)
	return rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
}

// NewBoundaryStore maps every feature to a country. Features are matched by
// numeric id first, then by ISO_A2 / iso_a2, then by name through reg.
// Several features for one country are merged into a MultiPolygon.
func NewBoundaryStore(fc *geojson.FeatureCollection, reg *Registry) (*BoundaryStore, error) {
	store := &BoundaryStore{
		features: make(map[model.CountryCode]*geojson.Feature),
	}
	if fc == nil {
		return nil, ErrNoBoundaries
	}

	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		code, ok := featureCode(f, reg)
		if !ok {
			store.unmatched = append(store.unmatched, featureLabel(f))
			continue
		}
		mp, ok := asMultiPolygon(f.Geometry)
		if !ok {
			store.unmatched = append(store.unmatched, featureLabel(f))
			continue
		}
		if prev, exists := store.features[code]; exists {
			prevMP, _ := asMultiPolygon(prev.Geometry)
			prev.Geometry = append(prevMP, mp...)
			continue
		}
		nf := geojson.NewFeature(mp)
		nf.ID = string(code)
		nf.Properties["name"] = reg.DisplayName(code)
		store.features[code] = nf
		store.codes = append(store.codes, code)
	}

	if len(store.features) == 0 {
		return nil, ErrNoBoundaries
	}
	sort.Slice(store.codes, func(i, j int) bool { return store.codes[i] < store.codes[j] })

	store.index = rtreego.NewTree(2, 25, 50)
	for _, code := range store.codes {
		mp, _ := asMultiPolygon(store.features[code].Geometry)
		rect, err := boundRect(mp.Bound())
		if err != nil {
			continue
		}
		store.index.Insert(&boxEntry{code: code, rect: rect})
	}
	return store, nil
}

func featureCode(f *geojson.Feature, reg *Registry) (model.CountryCode, bool) {
	if code, ok := CodeForFeatureID(f.ID); ok && reg.Contains(code) {
		return code, true
	}
	for _, key := range []string{"ISO_A2", "iso_a2", "ISO_A2_EH"} {
		if v, ok := f.Properties[key].(string); ok && v != "-99" {
			if code, ok := reg.Resolve(v); ok {
				return code, true
			}
		}
	}
	for _, key := range []string{"name", "NAME", "ADMIN"} {
		if v, ok := f.Properties[key].(string); ok {
			if code, ok := reg.Resolve(v); ok {
				return code, true
			}
		}
	}
	return "", false
}

func featureLabel(f *geojson.Feature) string {
	if name, ok := f.Properties["name"].(string); ok && name != "" {
		return name
	}
	if name, ok := f.Properties["NAME"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("id=%v", f.ID)
}

func asMultiPolygon(g orb.Geometry) (orb.MultiPolygon, bool) {
	switch g := g.(type) {
	case orb.MultiPolygon:
		return g, true
	case orb.Polygon:
		return orb.MultiPolygon{g}, true
	}
	return nil, false
}

// Feature returns the boundary feature of a country.
func (bs *BoundaryStore) Feature(code model.CountryCode) (*geojson.Feature, bool) {
	f, ok := bs.features[code]
	return f, ok
}

// Polygon returns the MultiPolygon for a country.
func (bs *BoundaryStore) Polygon(code model.CountryCode) (orb.MultiPolygon, error) {
	f, ok := bs.features[code]
	if !ok {
		return nil, fmt.Errorf("country %q not found in boundaries", code)
	}
	mp, _ := asMultiPolygon(f.Geometry)
	return mp, nil
}

// Codes lists every country with a boundary, sorted.
func (bs *BoundaryStore) Codes() []model.CountryCode {
	return append([]model.CountryCode(nil), bs.codes...)
}

// Len is the number of countries with a boundary.
func (bs *BoundaryStore) Len() int {
	return len(bs.codes)
}

// Unmatched lists features that could not be mapped to a country.
func (bs *BoundaryStore) Unmatched() []string {
	return append([]string(nil), bs.unmatched...)
}

// FeaturesOf returns the features of the given codes, skipping codes
// without a boundary.
func (bs *BoundaryStore) FeaturesOf(codes []model.CountryCode) []*geojson.Feature {
	out := make([]*geojson.Feature, 0, len(codes))
	for _, c := range codes {
		if f, ok := bs.features[c]; ok {
			out = append(out, f)
		}
	}
	return out
}

// BoundsOf is the combined bounding box of the given countries.
func (bs *BoundaryStore) BoundsOf(codes []model.CountryCode) (orb.Bound, bool) {
	return BoundingBoxOf(bs.FeaturesOf(codes))
}

// CountryAt returns the country whose boundary contains the lon/lat point.
// Candidates come from the bounding-box index, checked in code order.
func (bs *BoundaryStore) CountryAt(pt orb.Point) (model.CountryCode, bool) {
	query, err := boundRect(orb.Bound{Min: pt, Max: pt})
	if err != nil {
		return "", false
	}
	var candidates []model.CountryCode
	for _, sp := range bs.index.SearchIntersect(query) {
		candidates = append(candidates, sp.(*boxEntry).code)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	for _, code := range candidates {
		mp, _ := asMultiPolygon(bs.features[code].Geometry)
		if planar.MultiPolygonContains(mp, pt) {
			return code, true
		}
	}
	return "", false
}

// CheckReferencePoints reports reference points that fall outside their
// country's boundary. Countries without a boundary are not checked.
func (bs *BoundaryStore) CheckReferencePoints(pts ReferencePoints) []string {
	var problems []string
	for _, code := range bs.codes {
		pt, ok := pts.Lookup(code)
		if !ok {
			continue
		}
		mp, _ := asMultiPolygon(bs.features[code].Geometry)
		if !planar.MultiPolygonContains(mp, pt) {
			c, _ := planar.CentroidArea(mp)
			problems = append(problems, fmt.Sprintf("%s: reference point %.2f,%.2f outside boundary (centroid %.2f,%.2f)",
				code, pt.Lon(), pt.Lat(), c.Lon(), c.Lat()))
		}
	}
	return problems
}

// String summarises the store for logs.
func (bs *BoundaryStore) String() string {
	return fmt.Sprintf("countries=%d unmatched=%d", len(bs.codes), len(bs.unmatched))
}
