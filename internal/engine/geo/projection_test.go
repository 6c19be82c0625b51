package geo

import (
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestProjectCentersOrigin(t *testing.T) {
	p := NewProjection(960, 500)
	xy, ok := p.Project(orb.Point{0, 0})
	if !ok || !approx(xy[0], 480, 1e-9) || !approx(xy[1], 250, 1e-9) {
		t.Fatalf("Project(0,0) = %v,%v", xy, ok)
	}
	east, _ := p.Project(orb.Point{90, 0})
	west, _ := p.Project(orb.Point{-90, 0})
	if east[0] <= 480 || !approx(east[0]-480, 480-west[0], 1e-9) {
		t.Errorf("east %v west %v not symmetric", east, west)
	}
	north, _ := p.Project(orb.Point{0, 45})
	if north[1] >= 250 {
		t.Errorf("north is not up: %v", north)
	}
	edge, _ := p.Project(orb.Point{180, 0})
	if edge[0] > 960 || edge[0] < 900 {
		t.Errorf("antimeridian at x=%f", edge[0])
	}
}

func TestProjectRejectsNonFinite(t *testing.T) {
	p := NewProjection(800, 400)
	for _, pt := range []orb.Point{{math.NaN(), 0}, {0, math.Inf(1)}, {math.Inf(-1), math.NaN()}} {
		if _, ok := p.Project(pt); ok {
			t.Errorf("Project(%v) should fail", pt)
		}
	}
	a, _ := p.Project(orb.Point{190, 10})
	b, _ := p.Project(orb.Point{-170, 10})
	if !approx(a[0], b[0], 1e-9) {
		t.Errorf("longitude not wrapped: %v %v", a, b)
	}
}

func TestPathFor(t *testing.T) {
	p := NewProjection(960, 500)
	poly := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	d := p.PathFor(poly)
	if !strings.HasPrefix(d, "M480.00,250.00L") || !strings.HasSuffix(d, "Z") {
		t.Errorf("PathFor = %q", d)
	}
	if strings.Count(d, "M") != 1 {
		t.Errorf("unexpected subpaths: %q", d)
	}

	wrap := orb.LineString{{170, 0}, {-170, 0}}
	if d := p.PathFor(wrap); strings.Count(d, "M") != 2 || strings.Contains(d, "L") {
		t.Errorf("antimeridian segment drawn: %q", d)
	}

	withBad := orb.Ring{{0, 0}, {math.NaN(), 5}, {10, 10}, {0, 0}}
	if d := p.PathFor(orb.Polygon{withBad}); strings.Contains(d, "NaN") || strings.HasSuffix(d, "Z") {
		t.Errorf("broken ring rendered as %q", d)
	}
	if d := p.PathFor(nil); d != "" {
		t.Errorf("PathFor(nil) = %q", d)
	}
}

type recordingPen struct{ moves, lines, closes int }

func (r *recordingPen) MoveTo(x, y float64) { r.moves++ }
func (r *recordingPen) LineTo(x, y float64) { r.lines++ }
func (r *recordingPen) ClosePath()          { r.closes++ }

func TestTraceMultiPolygon(t *testing.T) {
	p := NewProjection(960, 500)
	mp := orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{{{5, 5}, {6, 5}, {6, 6}, {5, 5}}},
	}
	var pen recordingPen
	p.Trace(mp, &pen)
	if pen.moves != 2 || pen.lines != 6 || pen.closes != 2 {
		t.Errorf("pen = %+v", pen)
	}
}

func TestProjectionCache(t *testing.T) {
	var c ProjectionCache
	a := c.Get(800, 600)
	if b := c.Get(800, 600); a != b {
		t.Error("same size produced a new projection")
	}
	if b := c.Get(801, 600); a == b || b.Width() != 801 {
		t.Error("size change did not rebuild the projection")
	}
}

func TestProjectionContextProjectCode(t *testing.T) {
	p := NewProjection(960, 500)
	ctx := NewProjectionContext(p, DefaultReferencePoints())
	fr, ok := ctx.ProjectCode("FR")
	if !ok {
		t.Fatal("FR did not project")
	}
	want, _ := p.Project(DefaultReferencePoints()["FR"])
	if fr != want {
		t.Errorf("ProjectCode(FR) = %v, want %v", fr, want)
	}
	if _, ok := ctx.ProjectCode("AQ"); ok {
		t.Error("AQ has no reference point")
	}
	if _, ok := (ProjectionContext{}).ProjectCode("FR"); ok {
		t.Error("empty context projected a point")
	}
}

func TestZoomTransformFor(t *testing.T) {
	const w, h, pad = 960.0, 500.0, 20.0
	p := NewProjection(w, h)
	boxes := []orb.Bound{
		{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}},
		{Min: orb.Point{-10, 35}, Max: orb.Point{30, 60}},
		{Min: orb.Point{50.4, 25.8}, Max: orb.Point{50.8, 26.3}},
		{Min: orb.Point{100, -10}, Max: orb.Point{160, 10}},
	}
	for _, b := range boxes {
		tr := ZoomTransformFor(b, w, h, p, pad)
		if tr.Scale <= 0 || tr.Scale > MaxZoom {
			t.Errorf("%v: scale %f out of range", b, tr.Scale)
		}
		tl, _ := p.Project(orb.Point{b.Min.Lon(), b.Max.Lat()})
		br, _ := p.Project(orb.Point{b.Max.Lon(), b.Min.Lat()})
		cx, cy := tr.Apply((tl[0]+br[0])/2, (tl[1]+br[1])/2)
		if !approx(cx, w/2, 1e-6) || !approx(cy, h/2, 1e-6) {
			t.Errorf("%v: centre maps to %f,%f", b, cx, cy)
		}
	}

	tiny := ZoomTransformFor(boxes[2], w, h, p, pad)
	if tiny.Scale != MaxZoom {
		t.Errorf("tiny box scale = %f, want %f", tiny.Scale, MaxZoom)
	}
	world := ZoomTransformFor(boxes[0], w, h, p, pad)
	if world.Scale >= 1 {
		t.Errorf("world box scale = %f, want < 1", world.Scale)
	}
}

func TestZoomTransformDegenerate(t *testing.T) {
	p := NewProjection(960, 500)
	point := orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{10, 10}}
	if tr := ZoomTransformFor(point, 960, 500, p, 20); tr.Scale != 1 || !tr.Finite() {
		t.Errorf("point box = %+v, want scale 1", tr)
	}
	line := orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{20, 10}}
	if tr := ZoomTransformFor(line, 960, 500, p, 20); tr.Scale != 1 {
		t.Errorf("flat box scale = %f, want 1", tr.Scale)
	}
	if tr := ZoomTransformFor(point, 960, 500, nil, 20); tr != ResetTransform() {
		t.Errorf("nil projection = %+v", tr)
	}
}

func TestBoundingBoxOf(t *testing.T) {
	if _, ok := BoundingBoxOf(nil); ok {
		t.Error("empty set has a box")
	}
	fs := []*geojson.Feature{
		geojson.NewFeature(orb.Polygon{{{0, 0}, {10, 0}, {10, 5}, {0, 0}}}),
		nil,
		geojson.NewFeature(orb.Polygon{{{-20, -3}, {-15, -3}, {-15, 2}, {-20, -3}}}),
	}
	b, ok := BoundingBoxOf(fs)
	want := orb.Bound{Min: orb.Point{-20, -3}, Max: orb.Point{10, 5}}
	if !ok || b != want {
		t.Errorf("BoundingBoxOf = %v,%v want %v", b, ok, want)
	}
	pb, ok := BoundingBoxOfPoints([]orb.Point{{3, 4}, {-1, 9}, {2, -2}})
	if !ok || pb != (orb.Bound{Min: orb.Point{-1, -2}, Max: orb.Point{3, 9}}) {
		t.Errorf("BoundingBoxOfPoints = %v", pb)
	}
}
