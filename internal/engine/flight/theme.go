package flight

import "strings"

// Theme styles the flight overlay.
type Theme struct {
	ID         string
	Name       string
	PathColor  string
	PlaneColor string
	PathWidth  float64
	Dash       []float64 // empty means a solid line
}

var themes = []Theme{
	{ID: "classic", Name: "Classic", PathColor: "#1f2937", PlaneColor: "#dc2626", PathWidth: 2, Dash: []float64{6, 4}},
	{ID: "neon", Name: "Neon", PathColor: "#22d3ee", PlaneColor: "#f0abfc", PathWidth: 3},
	{ID: "sunset", Name: "Sunset", PathColor: "#f97316", PlaneColor: "#7c2d12", PathWidth: 2.5, Dash: []float64{10, 5}},
	{ID: "mono", Name: "Monochrome", PathColor: "#4b5563", PlaneColor: "#111827", PathWidth: 1.5, Dash: []float64{2, 3}},
}

// DefaultTheme is used for unknown theme ids.
const DefaultTheme = "classic"

// ThemeByID returns the named theme, falling back to classic.
func ThemeByID(id string) Theme {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

// Themes lists every theme.
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}
