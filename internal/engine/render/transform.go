package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rendis/geopaint/internal/model"
)

// ParseTransform reads an SVG transform attribute made of translate, scale
// and matrix functions, applied right to left as SVG does. Only uniform
// scales without rotation or skew are accepted. An empty attribute is the
// identity.
func ParseTransform(attr string) (model.ViewportTransform, error) {
	out := model.Identity()
	s := strings.TrimSpace(attr)
	var fns []model.ViewportTransform
	for s != "" {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return model.Identity(), fmt.Errorf("parsing transform %q: missing '('", attr)
		}
		end := strings.IndexByte(s, ')')
		if end < open {
			return model.Identity(), fmt.Errorf("parsing transform %q: missing ')'", attr)
		}
		name := strings.TrimSpace(s[:open])
		args, err := parseArgs(s[open+1 : end])
		if err != nil {
			return model.Identity(), fmt.Errorf("parsing transform %q: %w", attr, err)
		}
		fn, err := transformFunc(name, args)
		if err != nil {
			return model.Identity(), fmt.Errorf("parsing transform %q: %w", attr, err)
		}
		fns = append(fns, fn)
		s = strings.TrimLeft(s[end+1:], " \t\n,")
	}

	// "A B" means A(B(p)): compose from the innermost (last) outwards.
	for i := len(fns) - 1; i >= 0; i-- {
		out = out.Then(fns[i])
	}
	if !out.Finite() {
		return model.Identity(), fmt.Errorf("parsing transform %q: not a finite positive scale", attr)
	}
	return out, nil
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func transformFunc(name string, a []float64) (model.ViewportTransform, error) {
	switch name {
	case "translate":
		switch len(a) {
		case 1:
			return model.ViewportTransform{Scale: 1, TranslateX: a[0]}, nil
		case 2:
			return model.ViewportTransform{Scale: 1, TranslateX: a[0], TranslateY: a[1]}, nil
		}
	case "scale":
		switch len(a) {
		case 1:
			return model.ViewportTransform{Scale: a[0]}, nil
		case 2:
			if math.Abs(a[0]-a[1]) > 1e-9 {
				return model.ViewportTransform{}, fmt.Errorf("non-uniform scale(%g,%g)", a[0], a[1])
			}
			return model.ViewportTransform{Scale: a[0]}, nil
		}
	case "matrix":
		if len(a) == 6 {
			if math.Abs(a[1]) > 1e-9 || math.Abs(a[2]) > 1e-9 || math.Abs(a[0]-a[3]) > 1e-9 {
				return model.ViewportTransform{}, fmt.Errorf("matrix with rotation, skew or non-uniform scale")
			}
			return model.ViewportTransform{Scale: a[0], TranslateX: a[4], TranslateY: a[5]}, nil
		}
	default:
		return model.ViewportTransform{}, fmt.Errorf("unsupported function %q", name)
	}
	return model.ViewportTransform{}, fmt.Errorf("%s: wrong argument count %d", name, len(a))
}

// ViewKind classifies a live view for export.
type ViewKind int

const (
	ViewReset ViewKind = iota
	ViewZoomed
)

func (k ViewKind) String() string {
	if k == ViewReset {
		return "reset"
	}
	return "zoomed"
}

const (
	resetScaleEps     = 1e-3
	resetTranslateEps = 0.5

	// resetShrink keeps a full-map export off the canvas edges.
	resetShrink = 0.98
)

// Classify reports whether t is the unzoomed, unpanned view.
func Classify(t model.ViewportTransform) ViewKind {
	if math.Abs(t.Scale-1) < resetScaleEps &&
		math.Abs(t.TranslateX) < resetTranslateEps &&
		math.Abs(t.TranslateY) < resetTranslateEps {
		return ViewReset
	}
	return ViewZoomed
}

// ExportTransform maps projected coordinates of a srcW x srcH live canvas
// onto a dstW x dstH export whose top reserveTop pixels hold the title. A
// reset view is scaled to fill (largest axis ratio, shrunk by 2%); a zoomed
// view keeps its framing (smallest axis ratio). Either way the live
// canvas centre lands on the centre of the map area.
func ExportTransform(live model.ViewportTransform, srcW, srcH float64, dstW, dstH int, reserveTop float64) model.ViewportTransform {
	availW := float64(dstW)
	availH := float64(dstH) - reserveTop
	if srcW <= 0 || srcH <= 0 || availW <= 0 || availH <= 0 {
		return live
	}

	rx, ry := availW/srcW, availH/srcH
	var k float64
	if Classify(live) == ViewReset {
		k = math.Max(rx, ry) * resetShrink
	} else {
		k = math.Min(rx, ry)
	}

	outer := model.ViewportTransform{
		Scale:      k,
		TranslateX: availW/2 - k*srcW/2,
		TranslateY: reserveTop + availH/2 - k*srcH/2,
	}
	return live.Then(outer)
}
