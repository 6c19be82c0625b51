package views

import (
	"testing"

	"github.com/rendis/geopaint/internal/config"
	"github.com/rendis/geopaint/internal/model"
)

func TestNewPreviewModelFormat(t *testing.T) {
	tests := []struct {
		name     string
		settings *config.Settings
		want     model.ImageFormat
	}{
		{"no settings", nil, model.FormatPNG},
		{"jpg", &config.Settings{Format: model.FormatJPG}, model.FormatJPG},
		{"jpeg spelling", &config.Settings{Format: "JPEG"}, model.FormatJPG},
		{"unknown", &config.Settings{Format: "webp"}, model.FormatPNG},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewPreviewModel(&Env{Settings: tc.settings}, 100, 40)
			if m.format != tc.want {
				t.Errorf("format = %q, want %q", m.format, tc.want)
			}
		})
	}
}
