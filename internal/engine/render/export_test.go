package render

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

func square(lon, lat, size float64) orb.Polygon {
	return orb.Polygon{{
		{lon, lat}, {lon + size, lat}, {lon + size, lat + size}, {lon, lat + size}, {lon, lat},
	}}
}

func testStore(t *testing.T) *geo.BoundaryStore {
	t.Helper()
	fc := geojson.NewFeatureCollection()
	for _, c := range []struct {
		iso      string
		lon, lat float64
	}{
		{"FR", 0, 40},
		{"DE", 10, 45},
		{"BR", -60, -20},
	} {
		f := geojson.NewFeature(square(c.lon, c.lat, 10))
		f.Properties["ISO_A2"] = c.iso
		fc.Append(f)
	}
	store, err := geo.NewBoundaryStore(fc, geo.DefaultRegistry())
	if err != nil {
		t.Fatalf("NewBoundaryStore: %v", err)
	}
	return store
}

func testScene(t *testing.T) Scene {
	t.Helper()
	cfg := model.MapViewConfiguration{
		Groups: []model.Group{
			{ID: "g1", Color: "#ff0000", Pattern: model.PatternSolid, Members: []model.CountryCode{"FR"}},
			{ID: "g2", Color: "#0000ff", Pattern: model.PatternStripes, Members: []model.CountryCode{"DE"}},
		},
	}
	return SceneFromConfig(cfg, testStore(t))
}

var liveSurface = Surface{Width: 960, Height: 500, Transform: model.Identity().String()}

func TestRenderToImageResolutions(t *testing.T) {
	proj := geo.NewProjection(960, 500)
	e := NewExporter(nil)
	defer e.Close()

	tests := []struct {
		res    model.ResolutionPreset
		format model.ImageFormat
		w, h   int
	}{
		{model.Resolution1080p, model.FormatPNG, 1920, 1080},
		{model.Resolution4K, model.FormatJPG, 3840, 2160},
		{model.ResolutionSquare, model.FormatPNG, 2048, 2048},
	}
	for _, tc := range tests {
		t.Run(string(tc.res), func(t *testing.T) {
			blob, err := e.RenderToImage(liveSurface, testScene(t), proj, Options{
				Format:     tc.format,
				Resolution: tc.res,
				Title:      model.TitleBlock{Text: "Partners", Subtitle: "2024"},
			})
			if err != nil {
				t.Fatalf("RenderToImage: %v", err)
			}
			if blob.Width != tc.w || blob.Height != tc.h {
				t.Errorf("blob size = %dx%d, want %dx%d", blob.Width, blob.Height, tc.w, tc.h)
			}
			if blob.ContentType != tc.format.ContentType() {
				t.Errorf("content type = %q", blob.ContentType)
			}
			cfg, format, err := image.DecodeConfig(bytes.NewReader(blob.Data))
			if err != nil {
				t.Fatalf("DecodeConfig: %v", err)
			}
			if cfg.Width != tc.w || cfg.Height != tc.h {
				t.Errorf("decoded size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tc.w, tc.h)
			}
			if want := map[model.ImageFormat]string{model.FormatPNG: "png", model.FormatJPG: "jpeg"}[tc.format]; format != want {
				t.Errorf("decoded format = %q, want %q", format, want)
			}
		})
	}
}

func TestRenderToImageResetFillsCanvas(t *testing.T) {
	proj := geo.NewProjection(960, 500)
	e := NewExporter(nil)
	defer e.Close()

	blob, err := e.RenderToImage(liveSurface, testScene(t), proj, Options{
		Format:     model.FormatPNG,
		Resolution: model.Resolution1080p,
		Background: model.Background{Transparent: true},
	})
	if err != nil {
		t.Fatalf("RenderToImage: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(blob.Data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1920 || b.Dy() != 1080 {
		t.Fatalf("bounds = %v", b)
	}

	if _, _, _, a := img.At(0, 1079).RGBA(); a != 0 {
		t.Errorf("transparent corner has alpha %d", a)
	}

	view := ExportTransform(model.Identity(), 960, 500, 1920, 1080, 0)
	p, ok := proj.Project(orb.Point{5, 45})
	if !ok {
		t.Fatal("projecting FR centre failed")
	}
	x, y := view.Apply(p[0], p[1])
	r, g, b, a := img.At(int(x), int(y)).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 || a>>8 < 200 {
		t.Errorf("FR centre pixel = %d,%d,%d,%d, want red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRenderToImageJPEGHasOpaqueBackground(t *testing.T) {
	proj := geo.NewProjection(960, 500)
	e := NewExporter(nil)
	defer e.Close()

	blob, err := e.RenderToImage(liveSurface, testScene(t), proj, Options{
		Format:     model.FormatJPG,
		Resolution: model.Resolution1080p,
		Background: model.Background{Transparent: true},
	})
	if err != nil {
		t.Fatalf("RenderToImage: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(blob.Data))
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	r, g, b, _ := img.At(2, 1077).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("corner = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
}

func TestRenderToImageErrors(t *testing.T) {
	proj := geo.NewProjection(960, 500)
	e := NewExporter(nil)
	defer e.Close()
	opts := Options{Format: model.FormatPNG, Resolution: model.Resolution1080p}

	if _, err := e.RenderToImage(liveSurface, Scene{}, proj, opts); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("empty scene: err = %v, want ErrEmptyScene", err)
	}
	bad := liveSurface
	bad.Transform = "rotate(30)"
	if _, err := e.RenderToImage(bad, testScene(t), proj, opts); err == nil {
		t.Error("rotated surface: expected error")
	}
	if _, err := e.RenderToImage(Surface{}, testScene(t), proj, opts); err == nil {
		t.Error("zero-size surface: expected error")
	}
}

func TestWriteSVG(t *testing.T) {
	proj := geo.NewProjection(960, 500)
	scene := testScene(t)
	view := model.ViewportTransform{Scale: 2, TranslateX: -100, TranslateY: -50}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, scene, proj, view); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<g id="map-root" transform="translate(-100,-50) scale(2)">`,
		`data-code="FR"`,
		`data-code="DE"`,
		`data-code="BR"`,
		`fill="#ff0000"`,
		`<pattern id="p-stripes-0000ff"`,
		`fill="url(#p-stripes-0000ff)"`,
		`fill="` + LandColor + `"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if strings.Contains(out, "flight-path") {
		t.Error("svg has a flight path without a flight")
	}

	ctx := geo.NewProjectionContext(proj, geo.DefaultReferencePoints())
	anim, err := flight.Plan(ctx, "FR", "BR", 0, flight.ThemeByID(flight.DefaultTheme))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	_, frame, _ := flight.Advance(anim, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	scene.Flight = &frame
	buf.Reset()
	if err := WriteSVG(&buf, scene, proj, view); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, `class="flight-path"`) || !strings.Contains(out, `class="plane"`) {
		t.Error("svg is missing the flight overlay")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		a       uint8
		wantErr bool
	}{
		{in: "#fff", r: 255, g: 255, b: 255, a: 255},
		{in: "#1a2b3c", r: 0x1a, g: 0x2b, b: 0x3c, a: 255},
		{in: "1A2B3C80", r: 0x1a, g: 0x2b, b: 0x3c, a: 0x80},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		c, err := ParseHexColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || c.R != tc.r || c.G != tc.g || c.B != tc.b || c.A != tc.a {
			t.Errorf("ParseHexColor(%q) = %+v, %v", tc.in, c, err)
		}
	}
}
