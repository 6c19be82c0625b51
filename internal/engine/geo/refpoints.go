package geo

import (
	"sync"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/rendis/geopaint/internal/model"
)

// ReferencePoints maps a country to the single lon/lat used to anchor
// flights and distances. Not every country has one.
type ReferencePoints map[model.CountryCode]orb.Point

var defaultReferencePoints = sync.OnceValue(func() ReferencePoints {
	pts := make(ReferencePoints, len(referencePointTable))
	for code, ll := range referencePointTable {
		pts[model.CountryCode(code)] = orb.Point{ll[0], ll[1]}
	}
	return pts
})

// DefaultReferencePoints returns the embedded table. Callers must not modify it.
func DefaultReferencePoints() ReferencePoints {
	return defaultReferencePoints()
}

// Lookup returns the reference point of code.
func (rp ReferencePoints) Lookup(code model.CountryCode) (orb.Point, bool) {
	p, ok := rp[code]
	return p, ok
}

// DistanceKm is the great-circle distance between two countries' reference
// points. ok is false when either point is missing.
func (rp ReferencePoints) DistanceKm(a, b model.CountryCode) (float64, bool) {
	pa, ok := rp[a]
	if !ok {
		return 0, false
	}
	pb, ok := rp[b]
	if !ok {
		return 0, false
	}
	return orbgeo.DistanceHaversine(pa, pb) / 1000, true
}
