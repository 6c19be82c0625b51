package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

const (
	// LandColor fills countries that belong to no group.
	LandColor = "#e5e7eb"
	// DefaultBorderColor outlines every country when none is configured.
	DefaultBorderColor = "#9ca3af"
)

// Fill is how one selected country is painted.
type Fill struct {
	Color   string
	Pattern model.FillPattern
}

// Scene is everything drawn for one frame, independent of output size.
type Scene struct {
	Boundaries  *geo.BoundaryStore
	Fills       map[model.CountryCode]Fill
	BorderColor string
	Background  model.Background
	Flight      *flight.Frame
}

// SceneFromConfig builds a scene from a configuration. Later groups win
// when a country is in several.
func SceneFromConfig(cfg model.MapViewConfiguration, store *geo.BoundaryStore) Scene {
	fills := make(map[model.CountryCode]Fill)
	for _, g := range cfg.Groups {
		for _, c := range g.Members {
			fills[c] = Fill{Color: g.Color, Pattern: g.Pattern}
		}
	}
	return Scene{
		Boundaries:  store,
		Fills:       fills,
		BorderColor: cfg.BorderColor,
		Background:  cfg.Background,
	}
}

// Surface is the handle of the live render tree: its size and the transform
// attribute currently on the map root group.
type Surface struct {
	Width     float64
	Height    float64
	Transform string
}

// ParseHexColor reads #rgb, #rrggbb and #rrggbbaa.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func colorOr(s, fallback string) color.NRGBA {
	if c, err := ParseHexColor(s); err == nil {
		return c
	}
	c, _ := ParseHexColor(fallback)
	return c
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A) * a)
	return c
}

// isDark reports whether text over c should be light.
func isDark(c color.NRGBA) bool {
	lum := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	return lum < 128
}
