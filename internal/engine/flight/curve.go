package flight

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

const (
	// ArcHeight is the control point offset as a fraction of the straight
	// origin-destination distance.
	ArcHeight = 0.35

	// LookaheadPx is how far ahead of the plane the heading is measured.
	LookaheadPx = 4.0

	arcSegments = 256

	// minLength is the shortest flyable path in pixels. Coinciding
	// endpoints still leave rounding residue in the arc length.
	minLength = 1e-9
)

// Curve is a quadratic Bézier from Start to End in pixel space, with an
// arc-length table for constant-speed sampling.
type Curve struct {
	Start, Control, End orb.Point

	cum   []float64 // cumulative length at t = i/arcSegments
	total float64
}

// NewCurve bends the segment o-d upward: the control point sits at the
// midpoint, pushed along the upward normal by ArcHeight times the distance.
func NewCurve(o, d orb.Point) Curve {
	dx, dy := d[0]-o[0], d[1]-o[1]
	dist := math.Hypot(dx, dy)
	mid := orb.Point{(o[0] + d[0]) / 2, (o[1] + d[1]) / 2}

	ctrl := mid
	if dist > 0 {
		nx, ny := -dy/dist, dx/dist
		if ny > 0 || (ny == 0 && nx > 0) {
			nx, ny = -nx, -ny
		}
		ctrl = orb.Point{mid[0] + nx*ArcHeight*dist, mid[1] + ny*ArcHeight*dist}
	}

	c := Curve{Start: o, Control: ctrl, End: d}
	c.cum = make([]float64, arcSegments+1)
	prev := o
	for i := 1; i <= arcSegments; i++ {
		p := c.at(float64(i) / arcSegments)
		c.cum[i] = c.cum[i-1] + math.Hypot(p[0]-prev[0], p[1]-prev[1])
		prev = p
	}
	c.total = c.cum[arcSegments]
	return c
}

// Length is the arc length in pixels.
func (c Curve) Length() float64 { return c.total }

// Valid reports whether the curve has a usable, finite length.
func (c Curve) Valid() bool {
	return c.total > minLength && !math.IsInf(c.total, 0) && !math.IsNaN(c.total)
}

func (c Curve) at(t float64) orb.Point {
	u := 1 - t
	return orb.Point{
		u*u*c.Start[0] + 2*u*t*c.Control[0] + t*t*c.End[0],
		u*u*c.Start[1] + 2*u*t*c.Control[1] + t*t*c.End[1],
	}
}

// paramAt converts an arc-length fraction into the Bézier parameter.
func (c Curve) paramAt(fraction float64) float64 {
	if fraction <= 0 || c.total <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 1
	}
	target := fraction * c.total
	i := sort.SearchFloat64s(c.cum, target)
	if i == 0 {
		return 0
	}
	seg := c.cum[i] - c.cum[i-1]
	local := 0.0
	if seg > 0 {
		local = (target - c.cum[i-1]) / seg
	}
	return (float64(i-1) + local) / arcSegments
}

// PointAt samples the curve at an arc-length fraction in [0, 1].
func (c Curve) PointAt(fraction float64) orb.Point {
	return c.at(c.paramAt(fraction))
}

// HeadingAt is the direction of travel in degrees (0 = east, 90 = south on
// screen) measured towards a point LookaheadPx further along, or the end
// when that is closer. ok is false for non-finite geometry.
func (c Curve) HeadingAt(fraction float64) (float64, bool) {
	here := c.PointAt(fraction)
	ahead := c.End
	if c.total > 0 {
		if next := fraction*c.total + LookaheadPx; next < c.total {
			ahead = c.PointAt(next / c.total)
		}
	}
	dx, dy := ahead[0]-here[0], ahead[1]-here[1]
	if dx == 0 && dy == 0 {
		// at the end: use the end tangent
		dx, dy = c.End[0]-c.Control[0], c.End[1]-c.Control[1]
	}
	if !finitePoint(here) || !finitePoint(ahead) {
		return 0, false
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	return deg, !math.IsNaN(deg)
}

// Polyline approximates the curve up to fraction with n+1 points evenly
// spaced by arc length.
func (c Curve) Polyline(fraction float64, n int) []orb.Point {
	if n < 1 {
		n = 1
	}
	fraction = math.Max(0, math.Min(1, fraction))
	pts := make([]orb.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.PointAt(fraction*float64(i)/float64(n)))
	}
	return pts
}

func finitePoint(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) && !math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}
