package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

// viewPen maps projected coordinates through a viewport before drawing.
type viewPen struct {
	dc   *gg.Context
	view model.ViewportTransform
}

func (p viewPen) MoveTo(x, y float64) { p.dc.MoveTo(p.view.Apply(x, y)) }
func (p viewPen) LineTo(x, y float64) { p.dc.LineTo(p.view.Apply(x, y)) }
func (p viewPen) ClosePath()          { p.dc.ClosePath() }

// Draw paints countries and the flight overlay onto dc. view maps projected
// coordinates to dc pixels; unit scales line widths and pattern tiles so an
// export looks like the screen at any resolution.
func Draw(dc *gg.Context, scene Scene, proj *geo.Projection, view model.ViewportTransform, unit float64) {
	if unit <= 0 {
		unit = 1
	}
	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	pen := viewPen{dc: dc, view: view}
	land, _ := ParseHexColor(LandColor)
	border := colorOr(scene.BorderColor, DefaultBorderColor)
	tiles := make(map[Fill]gg.Pattern)

	if scene.Boundaries != nil {
		for _, code := range scene.Boundaries.Codes() {
			f, _ := scene.Boundaries.Feature(code)
			dc.ClearPath()
			proj.Trace(f.Geometry, pen)

			fill, selected := scene.Fills[code]
			switch {
			case !selected:
				dc.SetColor(land)
				dc.FillPreserve()
			case fill.Pattern == model.PatternSolid || !fill.Pattern.Valid():
				dc.SetColor(colorOr(fill.Color, LandColor))
				dc.FillPreserve()
			default:
				c := colorOr(fill.Color, LandColor)
				dc.SetColor(withAlpha(c, 0.35))
				dc.FillPreserve()
				pat, ok := tiles[fill]
				if !ok {
					pat = gg.NewSurfacePattern(patternTile(fill.Pattern, c, unit), gg.RepeatBoth)
					tiles[fill] = pat
				}
				dc.SetFillStyle(pat)
				dc.FillPreserve()
			}
			dc.SetColor(border)
			dc.SetLineWidth(0.5 * unit)
			dc.Stroke()
		}
	}

	if fr := scene.Flight; fr != nil {
		pts := fr.Path.Polyline(1, 96)
		dc.ClearPath()
		for i, p := range pts {
			x, y := view.Apply(p[0], p[1])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if len(fr.Theme.Dash) > 0 {
			dash := make([]float64, len(fr.Theme.Dash))
			for i, d := range fr.Theme.Dash {
				dash[i] = d * unit
			}
			dc.SetDash(dash...)
		}
		dc.SetColor(colorOr(fr.Theme.PathColor, "#000000"))
		dc.SetLineWidth(math.Max(1, fr.Theme.PathWidth) * unit)
		dc.Stroke()
		dc.SetDash()

		x, y := view.Apply(fr.Point[0], fr.Point[1])
		s := 7 * unit
		dc.Push()
		dc.Translate(x, y)
		dc.Rotate(gg.Radians(fr.Heading))
		dc.MoveTo(1.2*s, 0)
		dc.LineTo(-s, -0.8*s)
		dc.LineTo(-0.5*s, 0)
		dc.LineTo(-s, 0.8*s)
		dc.ClosePath()
		dc.SetColor(colorOr(fr.Theme.PlaneColor, "#000000"))
		dc.Fill()
		dc.Pop()
	}
}

func patternTile(p model.FillPattern, c color.NRGBA, unit float64) image.Image {
	size := int(math.Max(4, math.Round(8*unit)))
	s := float64(size)
	t := gg.NewContext(size, size)
	t.SetColor(c)
	switch p {
	case model.PatternStripes:
		t.DrawRectangle(0, 0, s, s*0.375)
		t.Fill()
	case model.PatternDots:
		t.DrawCircle(s/2, s/2, s*0.2)
		t.Fill()
	case model.PatternCrosshatch:
		t.SetLineWidth(s / 8)
		t.DrawLine(0, 0, s, s)
		t.DrawLine(s, 0, 0, s)
		t.Stroke()
	case model.PatternDiagonal:
		t.SetLineWidth(s * 0.19)
		t.DrawLine(0, s, s, 0)
		t.DrawLine(-s/2, s/2, s/2, -s/2)
		t.DrawLine(s/2, 1.5*s, 1.5*s, s/2)
		t.Stroke()
	}
	return t.Image()
}

func sortedFillCodes(m map[model.CountryCode]Fill) []model.CountryCode {
	out := make([]model.CountryCode, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
