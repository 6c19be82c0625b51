package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

const (
	// JPEGQuality is the fixed quality of lossy exports.
	JPEGQuality = 92

	// TitleBandRatio is the share of export height reserved for the title.
	TitleBandRatio = 0.12

	// referenceWidth is the export width at which font sizes are nominal.
	referenceWidth = 1920.0

	subtitleRatio = 0.55
	shadowOffset  = 2.0
)

// ErrEmptyScene is returned when there is nothing to rasterize.
var ErrEmptyScene = errors.New("nothing to export: no boundaries loaded")

// Options select the output of one export.
type Options struct {
	Format     model.ImageFormat
	Resolution model.ResolutionPreset
	Background model.Background
	Title      model.TitleBlock
}

// Blob is an encoded image.
type Blob struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Exporter rasterizes scenes at fixed resolutions.
type Exporter struct {
	fonts  *fontSet
	logger *log.Logger
}

func NewExporter(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Exporter{fonts: newFontSet(), logger: logger}
}

// Close releases cached font faces.
func (e *Exporter) Close() error {
	return e.fonts.Close()
}

// TitleBand is the height reserved above the map for a title.
func TitleBand(title model.TitleBlock, height int) float64 {
	if !title.Visible() {
		return 0
	}
	return math.Round(TitleBandRatio * float64(height))
}

// FontScale is the factor applied to nominal font sizes at a given width.
func FontScale(width int) float64 {
	return float64(width) / referenceWidth
}

// RenderToImage reproduces the live surface at the requested resolution.
// The live transform is read back from the surface's transform attribute so
// the export frames exactly what is on screen.
func (e *Exporter) RenderToImage(surface Surface, scene Scene, proj *geo.Projection, opts Options) (Blob, error) {
	if scene.Boundaries == nil {
		return Blob{}, ErrEmptyScene
	}
	if proj == nil || surface.Width <= 0 || surface.Height <= 0 {
		return Blob{}, fmt.Errorf("export: render surface has no size")
	}
	live, err := ParseTransform(surface.Transform)
	if err != nil {
		return Blob{}, fmt.Errorf("export: reading live transform: %w", err)
	}

	w, h := opts.Resolution.Dimensions()
	band := TitleBand(opts.Title, h)
	view := ExportTransform(live, surface.Width, surface.Height, w, h, band)
	unit := view.Scale / live.Scale

	dc := gg.NewContext(w, h)
	bg := opts.Background
	switch {
	case !bg.Transparent:
		dc.SetColor(colorOr(bg.Color, "#ffffff"))
		dc.Clear()
	case opts.Format == model.FormatJPG:
		dc.SetColor(color.White)
		dc.Clear()
	}

	Draw(dc, scene, proj, view, unit)

	if band > 0 {
		if err := e.drawTitle(dc, opts.Title, bg, w, band); err != nil {
			return Blob{}, fmt.Errorf("export: drawing title: %w", err)
		}
	}

	var buf bytes.Buffer
	switch opts.Format {
	case model.FormatJPG:
		err = jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: JPEGQuality})
	default:
		err = png.Encode(&buf, dc.Image())
	}
	if err != nil {
		return Blob{}, fmt.Errorf("export: encoding %s: %w", opts.Format.Extension(), err)
	}

	e.logger.Printf("EXPORT format=%s w=%d h=%d view=%s kind=%s bytes=%d",
		opts.Format.Extension(), w, h, view, Classify(live), buf.Len())
	return Blob{Data: buf.Bytes(), ContentType: opts.Format.ContentType(), Width: w, Height: h}, nil
}

var (
	inkDark  = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	inkLight = color.NRGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
)

type titleLine struct {
	text string
	size float64
	y    float64 // baseline centre within the band
}

func (e *Exporter) drawTitle(dc *gg.Context, title model.TitleBlock, bg model.Background, width int, band float64) error {
	scale := FontScale(width)
	size := title.Size.BasePixels() * scale
	shadow := math.Max(1, shadowOffset*scale)

	text := inkDark
	if !bg.Transparent && isDark(colorOr(bg.Color, "#ffffff")) {
		text = inkLight
	}
	shade := color.NRGBA{A: 110}
	if isDark(text) {
		shade = color.NRGBA{R: 255, G: 255, B: 255, A: 140}
	}

	margin := 0.03 * float64(width)
	x, ax := float64(width)/2, 0.5
	switch title.Position {
	case model.TitleLeft:
		x, ax = margin, 0
	case model.TitleRight:
		x, ax = float64(width)-margin, 1
	}

	head := strings.TrimSpace(title.Text)
	sub := strings.TrimSpace(title.Subtitle)
	var lines []titleLine
	switch {
	case head != "" && sub != "":
		lines = []titleLine{{head, size, band * 0.42}, {sub, size * subtitleRatio, band * 0.8}}
	case head != "":
		lines = []titleLine{{head, size, band * 0.55}}
	default:
		lines = []titleLine{{sub, size * subtitleRatio, band * 0.55}}
	}

	for _, l := range lines {
		face, err := e.fonts.face(title.Font, l.size)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetColor(shade)
		dc.DrawStringAnchored(l.text, x+shadow, l.y+shadow, ax, 0.5)
		dc.SetColor(text)
		dc.DrawStringAnchored(l.text, x, l.y, ax, 0.5)
	}
	return nil
}
