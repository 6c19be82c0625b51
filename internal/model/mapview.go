package model

import (
	"fmt"
	"math"
	"strings"
)

// CountryCode is an uppercase ISO 3166-1 alpha-2 code known to the registry.
type CountryCode string

// FillPattern is the texture drawn over a group's fill colour.
type FillPattern string

const (
	PatternSolid      FillPattern = "solid"
	PatternStripes    FillPattern = "stripes"
	PatternDots       FillPattern = "dots"
	PatternCrosshatch FillPattern = "crosshatch"
	PatternDiagonal   FillPattern = "diagonal"
)

// FillPatterns lists every pattern in display order.
var FillPatterns = []FillPattern{PatternSolid, PatternStripes, PatternDots, PatternCrosshatch, PatternDiagonal}

func (p FillPattern) Valid() bool {
	for _, fp := range FillPatterns {
		if p == fp {
			return true
		}
	}
	return false
}

// SelectionMode controls whether the session keeps one group or many.
type SelectionMode string

const (
	ModeSingle SelectionMode = "single"
	ModeMulti  SelectionMode = "multi"
)

// Group is a named, styled set of countries.
type Group struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Color   string        `json:"color"`
	Pattern FillPattern   `json:"pattern"`
	Members []CountryCode `json:"members"`
}

// Has reports whether code is a member of the group.
func (g Group) Has(code CountryCode) bool {
	for _, m := range g.Members {
		if m == code {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with g.
func (g Group) Clone() Group {
	c := g
	c.Members = append([]CountryCode(nil), g.Members...)
	return c
}

type TitlePosition string

const (
	TitleLeft   TitlePosition = "left"
	TitleCenter TitlePosition = "center"
	TitleRight  TitlePosition = "right"
)

type FontFamily string

const (
	FontSans      FontFamily = "sans"
	FontSansBold  FontFamily = "sans-bold"
	FontMono      FontFamily = "mono"
	FontSmallCaps FontFamily = "smallcaps"
)

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// BasePixels is the title size in pixels at a 1920px wide export.
func (s FontSize) BasePixels() float64 {
	switch s {
	case FontSmall:
		return 40
	case FontLarge:
		return 80
	default:
		return 56
	}
}

// TitleBlock is the text drawn above the map on export.
type TitleBlock struct {
	Text     string        `json:"text"`
	Subtitle string        `json:"subtitle"`
	Position TitlePosition `json:"position"`
	Font     FontFamily    `json:"font"`
	Size     FontSize      `json:"size"`
	Hidden   bool          `json:"hidden"`
}

// Visible reports whether the title takes space on the exported image.
func (t TitleBlock) Visible() bool {
	return !t.Hidden && (strings.TrimSpace(t.Text) != "" || strings.TrimSpace(t.Subtitle) != "")
}

// Background is either transparent or a solid colour.
type Background struct {
	Transparent bool   `json:"transparent"`
	Color       string `json:"color"`
}

type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatJPG ImageFormat = "jpg"
)

func (f ImageFormat) Extension() string {
	if f == FormatJPG {
		return "jpg"
	}
	return "png"
}

func (f ImageFormat) ContentType() string {
	if f == FormatJPG {
		return "image/jpeg"
	}
	return "image/png"
}

// ParseImageFormat accepts png, jpg and jpeg in any case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("unsupported image format %q (png or jpg)", s)
}

// ResolutionPreset names a fixed export size.
type ResolutionPreset string

const (
	Resolution1080p  ResolutionPreset = "1080p"
	Resolution4K     ResolutionPreset = "4k"
	ResolutionSquare ResolutionPreset = "square"
)

// Dimensions returns the pixel size of the preset. Unknown presets map to 1080p.
func (r ResolutionPreset) Dimensions() (int, int) {
	switch r {
	case Resolution4K:
		return 3840, 2160
	case ResolutionSquare:
		return 2048, 2048
	default:
		return 1920, 1080
	}
}

func ParseResolution(s string) (ResolutionPreset, error) {
	switch ResolutionPreset(strings.ToLower(strings.TrimSpace(s))) {
	case Resolution1080p, "":
		return Resolution1080p, nil
	case Resolution4K:
		return Resolution4K, nil
	case ResolutionSquare:
		return ResolutionSquare, nil
	}
	return "", fmt.Errorf("unsupported resolution %q (1080p, 4k or square)", s)
}

// MapViewConfiguration is the whole user-editable state of a session.
type MapViewConfiguration struct {
	Mode        SelectionMode    `json:"mode"`
	Groups      []Group          `json:"groups"`
	Title       TitleBlock       `json:"title"`
	Background  Background       `json:"background"`
	BorderColor string           `json:"border_color"`
	Resolution  ResolutionPreset `json:"resolution"`
}

// Clone deep-copies the configuration so snapshots never alias live state.
func (c MapViewConfiguration) Clone() MapViewConfiguration {
	out := c
	out.Groups = make([]Group, len(c.Groups))
	for i, g := range c.Groups {
		out.Groups[i] = g.Clone()
	}
	return out
}

// ViewportTransform is the pan/zoom applied to the projected map.
type ViewportTransform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity is the unzoomed, unpanned transform.
func Identity() ViewportTransform {
	return ViewportTransform{Scale: 1}
}

// Apply maps a projected point into viewport space.
func (v ViewportTransform) Apply(x, y float64) (float64, float64) {
	return v.Scale*x + v.TranslateX, v.Scale*y + v.TranslateY
}

// Then composes v followed by outer: outer(v(p)).
func (v ViewportTransform) Then(outer ViewportTransform) ViewportTransform {
	return ViewportTransform{
		Scale:      outer.Scale * v.Scale,
		TranslateX: outer.Scale*v.TranslateX + outer.TranslateX,
		TranslateY: outer.Scale*v.TranslateY + outer.TranslateY,
	}
}

// Finite reports whether all components are finite and the scale positive.
func (v ViewportTransform) Finite() bool {
	return v.Scale > 0 && !math.IsInf(v.Scale, 0) && !math.IsNaN(v.Scale) &&
		!math.IsNaN(v.TranslateX) && !math.IsInf(v.TranslateX, 0) &&
		!math.IsNaN(v.TranslateY) && !math.IsInf(v.TranslateY, 0)
}

// String renders the transform the way it is attached to the map root group.
func (v ViewportTransform) String() string {
	return fmt.Sprintf("translate(%s,%s) scale(%s)",
		formatFloat(v.TranslateX), formatFloat(v.TranslateY), formatFloat(v.Scale))
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
