package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rendis/geopaint/internal/model"
)

// MaxZoom caps zoom-to-selection so a tiny territory does not fill the screen.
const MaxZoom = 4.0

// BoundingBoxOf folds the geographic bounds of every feature. ok is false
// when there is nothing to bound.
func BoundingBoxOf(features []*geojson.Feature) (orb.Bound, bool) {
	var (
		out orb.Bound
		ok  bool
	)
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if !finiteBound(b) {
			continue
		}
		if !ok {
			out, ok = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, ok
}

// BoundingBoxOfPoints bounds a point set.
func BoundingBoxOfPoints(pts []orb.Point) (orb.Bound, bool) {
	if len(pts) == 0 {
		return orb.Bound{}, false
	}
	b := orb.Bound{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.Extend(p)
	}
	return b, true
}

func finiteBound(b orb.Bound) bool {
	return finite(b.Min[0]) && finite(b.Min[1]) && finite(b.Max[0]) && finite(b.Max[1])
}

// ZoomTransformFor fits bbox into a width x height viewport with padding on
// every side. The scale never exceeds MaxZoom and is 1 for a degenerate box.
func ZoomTransformFor(bbox orb.Bound, width, height float64, proj *Projection, padding float64) model.ViewportTransform {
	if proj == nil {
		return model.Identity()
	}
	tl, ok1 := proj.Project(orb.Point{bbox.Min.Lon(), bbox.Max.Lat()})
	br, ok2 := proj.Project(orb.Point{bbox.Max.Lon(), bbox.Min.Lat()})
	if !ok1 || !ok2 {
		return model.Identity()
	}

	bw := math.Abs(br[0] - tl[0])
	bh := math.Abs(br[1] - tl[1])
	cx := (tl[0] + br[0]) / 2
	cy := (tl[1] + br[1]) / 2

	scale := 1.0
	if bw > 0 && bh > 0 {
		availW := width - 2*padding
		availH := height - 2*padding
		if availW <= 0 {
			availW = width
		}
		if availH <= 0 {
			availH = height
		}
		scale = math.Min(math.Min(availW/bw, availH/bh), MaxZoom)
		if !(scale > 0) || !finite(scale) {
			scale = 1
		}
	}

	t := model.ViewportTransform{
		Scale:      scale,
		TranslateX: width/2 - scale*cx,
		TranslateY: height/2 - scale*cy,
	}
	if !t.Finite() {
		return model.Identity()
	}
	return t
}

// ResetTransform is the unzoomed view.
func ResetTransform() model.ViewportTransform {
	return model.Identity()
}
