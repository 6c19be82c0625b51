package render

import (
	"math"
	"testing"

	"github.com/rendis/geopaint/internal/model"
)

func near(a, b model.ViewportTransform) bool {
	return math.Abs(a.Scale-b.Scale) < 1e-6 &&
		math.Abs(a.TranslateX-b.TranslateX) < 1e-6 &&
		math.Abs(a.TranslateY-b.TranslateY) < 1e-6
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in   string
		want model.ViewportTransform
	}{
		{"", model.Identity()},
		{"translate(10,20) scale(2)", model.ViewportTransform{Scale: 2, TranslateX: 10, TranslateY: 20}},
		{"scale(2) translate(10,20)", model.ViewportTransform{Scale: 2, TranslateX: 20, TranslateY: 40}},
		{"translate(5)", model.ViewportTransform{Scale: 1, TranslateX: 5}},
		{"translate(-3.5 7e1)scale(0.5,0.5)", model.ViewportTransform{Scale: 0.5, TranslateX: -3.5, TranslateY: 70}},
		{"matrix(2,0,0,2,3,4)", model.ViewportTransform{Scale: 2, TranslateX: 3, TranslateY: 4}},
		{" translate(1,1) , translate(2,2) ", model.ViewportTransform{Scale: 1, TranslateX: 3, TranslateY: 3}},
	}
	for _, tc := range tests {
		got, err := ParseTransform(tc.in)
		if err != nil {
			t.Errorf("ParseTransform(%q): %v", tc.in, err)
			continue
		}
		if !near(got, tc.want) {
			t.Errorf("ParseTransform(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseTransformErrors(t *testing.T) {
	for _, in := range []string{
		"rotate(45)",
		"scale(1,2)",
		"translate(1,2",
		"scale(0)",
		"scale(abc)",
		"matrix(1,0.5,0,1,0,0)",
		"translate(1,2,3)",
		"garbage",
	} {
		if got, err := ParseTransform(in); err == nil {
			t.Errorf("ParseTransform(%q) = %+v, want error", in, got)
		}
	}
}

func TestParseTransformRoundTrip(t *testing.T) {
	for _, v := range []model.ViewportTransform{
		model.Identity(),
		{Scale: 3.25, TranslateX: -812.5, TranslateY: 120.125},
		{Scale: 0.7, TranslateX: 14, TranslateY: -9.5},
	} {
		got, err := ParseTransform(v.String())
		if err != nil || !near(got, v) {
			t.Errorf("round trip %+v -> %q -> %+v (%v)", v, v.String(), got, err)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		v    model.ViewportTransform
		want ViewKind
	}{
		{model.Identity(), ViewReset},
		{model.ViewportTransform{Scale: 1.0005, TranslateX: 0.2, TranslateY: -0.3}, ViewReset},
		{model.ViewportTransform{Scale: 1.01}, ViewZoomed},
		{model.ViewportTransform{Scale: 1, TranslateX: 1}, ViewZoomed},
		{model.ViewportTransform{Scale: 2, TranslateX: -300, TranslateY: -100}, ViewZoomed},
	}
	for _, tc := range tests {
		if got := Classify(tc.v); got != tc.want {
			t.Errorf("Classify(%+v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestExportTransform(t *testing.T) {
	reset := ExportTransform(model.Identity(), 960, 500, 1920, 1080, 0)
	if want := math.Max(2, 2.16) * 0.98; math.Abs(reset.Scale-want) > 1e-9 {
		t.Errorf("reset scale = %f, want %f", reset.Scale, want)
	}
	if x, y := reset.Apply(480, 250); math.Abs(x-960) > 1e-9 || math.Abs(y-540) > 1e-9 {
		t.Errorf("reset centre -> %f,%f", x, y)
	}

	live := model.ViewportTransform{Scale: 2, TranslateX: -400, TranslateY: -100}
	zoomed := ExportTransform(live, 960, 500, 1920, 1080, 0)
	if math.Abs(zoomed.Scale-4) > 1e-9 {
		t.Errorf("zoomed scale = %f, want 4 (live 2 x min ratio 2)", zoomed.Scale)
	}
	// What sits at the live canvas centre stays at the export centre.
	px, py := (480+400)/2.0, (250+100)/2.0
	if x, y := zoomed.Apply(px, py); math.Abs(x-960) > 1e-9 || math.Abs(y-540) > 1e-9 {
		t.Errorf("zoomed centre -> %f,%f", x, y)
	}

	banded := ExportTransform(live, 960, 500, 1920, 1080, 130)
	wantK := math.Min(2, 950.0/500) * 2
	if math.Abs(banded.Scale-wantK) > 1e-9 {
		t.Errorf("banded scale = %f, want %f", banded.Scale, wantK)
	}
	if _, y := banded.Apply(px, py); math.Abs(y-(130+950.0/2)) > 1e-9 {
		t.Errorf("banded centre y = %f", y)
	}
}

func TestTitleBandAndFontScale(t *testing.T) {
	title := model.TitleBlock{Text: "Trade partners"}
	if got := TitleBand(title, 1080); got != 130 {
		t.Errorf("TitleBand = %f, want 130", got)
	}
	title.Hidden = true
	if got := TitleBand(title, 1080); got != 0 {
		t.Errorf("hidden TitleBand = %f", got)
	}
	if got := TitleBand(model.TitleBlock{Text: "  "}, 1080); got != 0 {
		t.Errorf("blank TitleBand = %f", got)
	}
	if FontScale(3840) != 2 || FontScale(1920) != 1 {
		t.Error("font scale is not width/1920")
	}
}
