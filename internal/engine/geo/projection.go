package geo

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/model"
)

// scaleDivisor fixes the projection scale relative to canvas width.
const scaleDivisor = 5.8

// Projection is a Natural Earth I projection fitted to a canvas. Its
// parameters depend only on the canvas size.
type Projection struct {
	width, height float64
	scale         float64
	tx, ty        float64
}

// NewProjection fits the projection to a width x height canvas, centred.
func NewProjection(width, height float64) *Projection {
	return &Projection{
		width:  width,
		height: height,
		scale:  width / scaleDivisor,
		tx:     width / 2,
		ty:     height / 2,
	}
}

func (p *Projection) Width() float64  { return p.width }
func (p *Projection) Height() float64 { return p.height }
func (p *Projection) Scale() float64  { return p.scale }

// Project converts lon/lat degrees to canvas pixels. ok is false when the
// input or the result is not finite.
func (p *Projection) Project(pt orb.Point) (orb.Point, bool) {
	lon, lat := pt.Lon(), pt.Lat()
	if !finite(lon) || !finite(lat) {
		return orb.Point{}, false
	}
	lon = wrapLongitude(lon)
	lat = math.Max(-90, math.Min(90, lat))

	x, y := naturalEarth1(lon*math.Pi/180, lat*math.Pi/180)
	out := orb.Point{p.tx + p.scale*x, p.ty - p.scale*y}
	if !finite(out[0]) || !finite(out[1]) {
		return orb.Point{}, false
	}
	return out, true
}

func naturalEarth1(lambda, phi float64) (float64, float64) {
	phi2 := phi * phi
	phi4 := phi2 * phi2
	x := lambda * (0.8707 - 0.131979*phi2 + phi4*(-0.013791+phi4*(0.003971*phi2-0.001529*phi4)))
	y := phi * (1.007226 + phi2*(0.015085+phi4*(-0.044475+0.028874*phi2-0.005916*phi4)))
	return x, y
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Pen receives a traced outline. *gg.Context satisfies it.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

// Trace walks geometry through the projection and draws it onto pen.
// Unprojectable points are skipped and segments that jump more than half the
// canvas width (antimeridian wraps) start a new subpath.
func (p *Projection) Trace(g orb.Geometry, pen Pen) {
	switch g := g.(type) {
	case orb.LineString:
		p.traceLine(g, pen, false)
	case orb.MultiLineString:
		for _, ls := range g {
			p.traceLine(ls, pen, false)
		}
	case orb.Ring:
		p.traceLine(orb.LineString(g), pen, true)
	case orb.Polygon:
		for _, r := range g {
			p.traceLine(orb.LineString(r), pen, true)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				p.traceLine(orb.LineString(r), pen, true)
			}
		}
	case orb.Collection:
		for _, sub := range g {
			p.Trace(sub, pen)
		}
	}
}

func (p *Projection) traceLine(ls orb.LineString, pen Pen, closed bool) {
	var (
		started bool
		broken  bool
		prev    orb.Point
	)
	for _, pt := range ls {
		xy, ok := p.Project(pt)
		if !ok {
			if started {
				broken = true
			}
			started = false
			continue
		}
		if started && math.Abs(xy[0]-prev[0]) > p.width/2 {
			broken = true
			started = false
		}
		if !started {
			pen.MoveTo(xy[0], xy[1])
			started = true
		} else {
			pen.LineTo(xy[0], xy[1])
		}
		prev = xy
	}
	if closed && started && !broken {
		pen.ClosePath()
	}
}

// PathFor renders geometry as SVG path data. Empty geometry yields "".
func (p *Projection) PathFor(g orb.Geometry) string {
	var b pathBuilder
	p.Trace(g, &b)
	return b.String()
}

type pathBuilder struct {
	strings.Builder
}

func (b *pathBuilder) MoveTo(x, y float64) { b.cmd('M', x, y) }
func (b *pathBuilder) LineTo(x, y float64) { b.cmd('L', x, y) }
func (b *pathBuilder) ClosePath()          { b.WriteByte('Z') }

func (b *pathBuilder) cmd(c byte, x, y float64) {
	b.WriteByte(c)
	b.WriteString(strconv.FormatFloat(x, 'f', 2, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'f', 2, 64))
}

// ProjectionCache hands out one projection per canvas size and rebuilds it
// only when the size changes.
type ProjectionCache struct {
	mu   sync.Mutex
	last *Projection
}

// Get returns the projection for width x height.
func (c *ProjectionCache) Get(width, height float64) *Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil || c.last.width != width || c.last.height != height {
		c.last = NewProjection(width, height)
	}
	return c.last
}

// ProjectionContext is the one projection and reference table used for a
// frame. Boundaries, centroids and flight endpoints all go through it.
type ProjectionContext struct {
	Projection *Projection
	Points     ReferencePoints
}

// NewProjectionContext pairs a projection with a reference table.
func NewProjectionContext(p *Projection, pts ReferencePoints) ProjectionContext {
	return ProjectionContext{Projection: p, Points: pts}
}

// ProjectCode projects the reference point of code. ok is false when the
// country has no reference point or it does not project.
func (c ProjectionContext) ProjectCode(code model.CountryCode) (orb.Point, bool) {
	if c.Projection == nil {
		return orb.Point{}, false
	}
	ll, ok := c.Points.Lookup(code)
	if !ok {
		return orb.Point{}, false
	}
	return c.Projection.Project(ll)
}

// Valid reports whether the context can project anything.
func (c ProjectionContext) Valid() bool {
	return c.Projection != nil && c.Projection.width > 0 && c.Projection.height > 0
}
