package geo

import (
	"strings"

	"github.com/rendis/geopaint/internal/model"
)

// Preset is a named static country list that can be loaded into a group.
type Preset struct {
	ID      string
	Name    string
	Members []model.CountryCode
}

func preset(id, name string, codes ...string) Preset {
	p := Preset{ID: id, Name: name, Members: make([]model.CountryCode, len(codes))}
	for i, c := range codes {
		p.Members[i] = model.CountryCode(c)
	}
	return p
}

var presets = []Preset{
	preset("gcc", "Gulf Cooperation Council", "SA", "AE", "QA", "BH", "KW", "OM"),
	preset("eu", "European Union",
		"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "GR", "HU", "IE",
		"IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK", "SI", "ES", "SE"),
	preset("g7", "G7", "US", "CA", "GB", "FR", "DE", "IT", "JP"),
	preset("g20", "G20",
		"AR", "AU", "BR", "CA", "CN", "FR", "DE", "IN", "ID", "IT", "JP", "KR", "MX", "RU",
		"SA", "ZA", "TR", "GB", "US"),
	preset("brics", "BRICS", "BR", "RU", "IN", "CN", "ZA", "EG", "ET", "IR", "AE", "ID"),
	preset("asean", "ASEAN", "BN", "KH", "ID", "LA", "MY", "MM", "PH", "SG", "TH", "VN"),
	preset("nato", "NATO",
		"AL", "BE", "BG", "CA", "HR", "CZ", "DK", "EE", "FI", "FR", "DE", "GR", "HU", "IS",
		"IT", "LV", "LT", "LU", "ME", "NL", "MK", "NO", "PL", "PT", "RO", "SK", "SI", "ES",
		"SE", "TR", "GB", "US"),
	preset("nordic", "Nordic countries", "DK", "FI", "IS", "NO", "SE"),
	preset("benelux", "Benelux", "BE", "NL", "LU"),
	preset("five-eyes", "Five Eyes", "US", "GB", "CA", "AU", "NZ"),
	preset("mercosur", "Mercosur", "AR", "BR", "PY", "UY", "BO"),
}

// Presets returns every preset in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p
		out[i].Members = append([]model.CountryCode(nil), p.Members...)
	}
	return out
}

// LookupPreset finds a preset by id, case-insensitively. The returned
// members are a fresh slice.
func LookupPreset(id string) (Preset, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range presets {
		if p.ID == id {
			p.Members = append([]model.CountryCode(nil), p.Members...)
			return p, true
		}
	}
	return Preset{}, false
}
