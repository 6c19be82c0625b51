package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

// WriteSVG writes the live render tree: every country path inside one root
// group carrying the viewport transform, followed by the flight overlay.
// Patterns are emitted as <pattern> defs per colour and texture.
func WriteSVG(w io.Writer, scene Scene, proj *geo.Projection, view model.ViewportTransform) error {
	var b strings.Builder
	width, height := proj.Width(), proj.Height()
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)

	defs := patternDefs(scene)
	if len(defs) > 0 {
		b.WriteString("<defs>\n")
		for _, d := range defs {
			b.WriteString(d)
		}
		b.WriteString("</defs>\n")
	}
	if !scene.Background.Transparent {
		fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", attr(scene.Background.Color, "#ffffff"))
	}

	border := attr(scene.BorderColor, DefaultBorderColor)
	fmt.Fprintf(&b, `<g id="map-root" transform="%s">`+"\n", view.String())
	if scene.Boundaries != nil {
		for _, code := range scene.Boundaries.Codes() {
			f, _ := scene.Boundaries.Feature(code)
			d := proj.PathFor(f.Geometry)
			if d == "" {
				continue
			}
			fill, ok := scene.Fills[code]
			fillAttr := LandColor
			if ok {
				fillAttr = attr(fill.Color, LandColor)
			}
			fmt.Fprintf(&b, `<path data-code="%s" d="%s" fill="%s" stroke="%s" stroke-width="0.5" vector-effect="non-scaling-stroke"/>`+"\n",
				code, d, fillAttr, border)
			if ok && fill.Pattern != model.PatternSolid && fill.Pattern.Valid() {
				fmt.Fprintf(&b, `<path d="%s" fill="url(#%s)" stroke="none"/>`+"\n", d, patternID(fill))
			}
		}
	}

	if fr := scene.Flight; fr != nil {
		var pb strings.Builder
		for i, p := range fr.Path.Polyline(1, 64) {
			if i == 0 {
				fmt.Fprintf(&pb, "M%.2f,%.2f", p[0], p[1])
			} else {
				fmt.Fprintf(&pb, "L%.2f,%.2f", p[0], p[1])
			}
		}
		dash := ""
		if len(fr.Theme.Dash) > 0 {
			parts := make([]string, len(fr.Theme.Dash))
			for i, v := range fr.Theme.Dash {
				parts[i] = fmt.Sprintf("%g", v)
			}
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
		}
		fmt.Fprintf(&b, `<path class="flight-path" d="%s" fill="none" stroke="%s" stroke-width="%g"%s vector-effect="non-scaling-stroke"/>`+"\n",
			pb.String(), attr(fr.Theme.PathColor, "#000000"), fr.Theme.PathWidth, dash)
		fmt.Fprintf(&b, `<path class="plane" d="M8,0L-6,-5L-3,0L-6,5Z" fill="%s" transform="translate(%.2f,%.2f) rotate(%.1f)"/>`+"\n",
			attr(fr.Theme.PlaneColor, "#000000"), fr.Point[0], fr.Point[1], fr.Heading)
	}
	b.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func attr(s, fallback string) string {
	if _, err := ParseHexColor(s); err != nil {
		return fallback
	}
	return html.EscapeString(s)
}

func patternID(f Fill) string {
	return fmt.Sprintf("p-%s-%s", f.Pattern, strings.TrimPrefix(strings.ToLower(f.Color), "#"))
}

func patternDefs(scene Scene) []string {
	seen := make(map[string]bool)
	var defs []string
	for _, code := range sortedFillCodes(scene.Fills) {
		f := scene.Fills[code]
		if f.Pattern == model.PatternSolid || !f.Pattern.Valid() {
			continue
		}
		id := patternID(f)
		if seen[id] {
			continue
		}
		seen[id] = true
		c := attr(f.Color, "#000000")
		var body string
		switch f.Pattern {
		case model.PatternStripes:
			body = fmt.Sprintf(`<rect width="8" height="3" fill="%s"/>`, c)
		case model.PatternDots:
			body = fmt.Sprintf(`<circle cx="4" cy="4" r="1.6" fill="%s"/>`, c)
		case model.PatternCrosshatch:
			body = fmt.Sprintf(`<path d="M0,0L8,8M8,0L0,8" stroke="%s" stroke-width="1"/>`, c)
		case model.PatternDiagonal:
			body = fmt.Sprintf(`<path d="M-2,2L2,-2M0,8L8,0M6,10L10,6" stroke="%s" stroke-width="1.5"/>`, c)
		}
		defs = append(defs, fmt.Sprintf(`<pattern id="%s" width="8" height="8" patternUnits="userSpaceOnUse">%s</pattern>`+"\n", id, body))
	}
	return defs
}
