package geo

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rendis/geopaint/internal/model"
)

// Continent groups countries for "select continent".
type Continent string

const (
	Africa       Continent = "Africa"
	Asia         Continent = "Asia"
	Europe       Continent = "Europe"
	NorthAmerica Continent = "North America"
	SouthAmerica Continent = "South America"
	Oceania      Continent = "Oceania"
	Antarctica   Continent = "Antarctica"
)

// Continents lists every continent in display order.
var Continents = []Continent{Africa, Asia, Europe, NorthAmerica, SouthAmerica, Oceania, Antarctica}

// ParseContinent matches a continent name case-insensitively.
func ParseContinent(s string) (Continent, bool) {
	for _, c := range Continents {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// Topology answers neighbour and continent queries over static tables.
type Topology struct {
	reg         *Registry
	raw         map[model.CountryCode][]model.CountryCode
	neighbors   map[model.CountryCode]map[model.CountryCode]bool
	members     map[Continent][]model.CountryCode
	continentOf map[model.CountryCode]Continent
}

var defaultTopology = sync.OnceValue(func() *Topology {
	return NewTopology(DefaultRegistry(), landBorders, continentMembers)
})

// DefaultTopology returns the process-wide topology over the embedded tables.
func DefaultTopology() *Topology {
	return defaultTopology()
}

// NewTopology builds the adjacency graph. Edges are made symmetric: if A
// lists B, B borders A even when the table forgot the reverse entry.
func NewTopology(reg *Registry, borders map[string][]string, continents map[Continent][]string) *Topology {
	t := &Topology{
		reg:         reg,
		raw:         make(map[model.CountryCode][]model.CountryCode, len(borders)),
		neighbors:   make(map[model.CountryCode]map[model.CountryCode]bool, len(borders)),
		members:     make(map[Continent][]model.CountryCode, len(continents)),
		continentOf: make(map[model.CountryCode]Continent),
	}

	link := func(a, b model.CountryCode) {
		if t.neighbors[a] == nil {
			t.neighbors[a] = make(map[model.CountryCode]bool)
		}
		t.neighbors[a][b] = true
	}
	for from, tos := range borders {
		a := model.CountryCode(strings.ToUpper(from))
		for _, to := range tos {
			b := model.CountryCode(strings.ToUpper(to))
			t.raw[a] = append(t.raw[a], b)
			if a == b {
				continue
			}
			link(a, b)
			link(b, a)
		}
	}

	for cont, codes := range continents {
		for _, c := range codes {
			code := model.CountryCode(strings.ToUpper(c))
			t.members[cont] = append(t.members[cont], code)
			t.continentOf[code] = cont
		}
	}
	return t
}

// NeighborsOf returns the land neighbours of code, sorted. Unknown codes and
// countries without an entry have none.
func (t *Topology) NeighborsOf(code model.CountryCode) []model.CountryCode {
	return sortedCodes(t.neighbors[code])
}

// AllNeighborsOf returns the union of neighbours of every selected country,
// excluding anything already selected.
func (t *Topology) AllNeighborsOf(selection []model.CountryCode) []model.CountryCode {
	selected := make(map[model.CountryCode]bool, len(selection))
	for _, c := range selection {
		selected[c] = true
	}
	out := make(map[model.CountryCode]bool)
	for _, c := range selection {
		for n := range t.neighbors[c] {
			if !selected[n] {
				out[n] = true
			}
		}
	}
	return sortedCodes(out)
}

// ContinentOf returns the continent of code.
func (t *Topology) ContinentOf(code model.CountryCode) (Continent, bool) {
	c, ok := t.continentOf[code]
	return c, ok
}

// CountriesIn returns the members of a continent that the registry knows,
// in table order. Codes the registry does not recognise are skipped.
func (t *Topology) CountriesIn(c Continent) []model.CountryCode {
	var out []model.CountryCode
	for _, code := range t.members[c] {
		if t.reg.Contains(code) {
			out = append(out, code)
		}
	}
	return out
}

// Inverse returns every registry code not in selection, sorted.
func (t *Topology) Inverse(selection []model.CountryCode) []model.CountryCode {
	selected := make(map[model.CountryCode]bool, len(selection))
	for _, c := range selection {
		selected[c] = true
	}
	var out []model.CountryCode
	for _, code := range t.reg.Codes() {
		if !selected[code] {
			out = append(out, code)
		}
	}
	return out
}

// Validate checks the raw tables: unknown codes, self loops, one-sided
// border entries and countries listed on two continents. The graph served by
// NeighborsOf is already symmetric; this reports what the authored data got
// wrong.
func (t *Topology) Validate() []error {
	var errs []error
	for _, a := range sortedKeys(t.raw) {
		if !t.reg.Contains(a) {
			errs = append(errs, fmt.Errorf("border table: unknown country %s", a))
		}
		for _, b := range t.raw[a] {
			switch {
			case a == b:
				errs = append(errs, fmt.Errorf("border table: %s lists itself", a))
			case !t.reg.Contains(b):
				errs = append(errs, fmt.Errorf("border table: %s lists unknown country %s", a, b))
			case !containsCode(t.raw[b], a):
				errs = append(errs, fmt.Errorf("border table: %s lists %s but not the reverse", a, b))
			}
		}
	}

	seen := make(map[model.CountryCode]Continent)
	for _, cont := range Continents {
		for _, code := range t.members[cont] {
			if prev, ok := seen[code]; ok {
				errs = append(errs, fmt.Errorf("continent table: %s in both %s and %s", code, prev, cont))
			}
			seen[code] = cont
		}
	}
	return errs
}

// MustValidate panics when the static tables are inconsistent.
func (t *Topology) MustValidate() {
	if errs := t.Validate(); len(errs) > 0 {
		panic(fmt.Sprintf("geo: %d topology errors, first: %v", len(errs), errs[0]))
	}
}

func containsCode(list []model.CountryCode, c model.CountryCode) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

func sortedCodes(set map[model.CountryCode]bool) []model.CountryCode {
	out := make([]model.CountryCode, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeys(m map[model.CountryCode][]model.CountryCode) []model.CountryCode {
	out := make([]model.CountryCode, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
