package geo

import (
	"strings"
	"testing"

	"github.com/rendis/geopaint/internal/model"
)

func TestResolve(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		in   string
		want model.CountryCode
		ok   bool
	}{
		{"India", "IN", true},
		{"  uae ", "AE", true},
		{"DEU", "DE", true},
		{"deu", "DE", true},
		{"fr", "FR", true},
		{"United States of America", "US", true},
		{"Côte d'Ivoire", "CI", true},
		{"cote d'ivoire", "CI", true},
		{"ivory coast", "CI", true},
		{"Atlantis", "", false},
		{"", "", false},
		{"   ", "", false},
		{"Indi", "", false},
	}
	for _, tc := range tests {
		got, ok := reg.Resolve(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Resolve(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveIsCaseAndSpaceInsensitive(t *testing.T) {
	reg := DefaultRegistry()
	for alias, code := range reg.Aliases() {
		variants := []string{alias, strings.ToUpper(alias), " " + alias + "\t"}
		for _, v := range variants {
			got, ok := reg.Resolve(v)
			if !ok || got != code {
				t.Errorf("Resolve(%q) = %q,%v want %q", v, got, ok, code)
			}
		}
		// The display name of the resolved country resolves back to it.
		if got, _ := reg.Resolve(reg.DisplayName(code)); got != code {
			t.Errorf("display name of %s resolves to %s", code, got)
		}
	}
}

func TestDefaultRegistryHasNoConflicts(t *testing.T) {
	if c := DefaultRegistry().Conflicts(); len(c) > 0 {
		t.Fatalf("alias conflicts: %+v", c)
	}
}

func TestRegistryLastWriteWins(t *testing.T) {
	reg := NewRegistry([]CountryRecord{
		{ISO2: "CG", ISO3: "COG", Name: "Republic of the Congo", Aliases: []string{"congo"}},
		{ISO2: "CD", ISO3: "COD", Name: "DR Congo", Aliases: []string{"congo"}},
	})
	if got, _ := reg.Resolve("Congo"); got != "CD" {
		t.Errorf("Resolve(Congo) = %q, want CD", got)
	}
	c := reg.Conflicts()
	if len(c) != 1 || c[0].Alias != "congo" || c[0].Loser != "CG" || c[0].Winner != "CD" {
		t.Errorf("conflicts = %+v", c)
	}
}

func TestLookupAndDisplayName(t *testing.T) {
	reg := DefaultRegistry()
	rc, ok := reg.Lookup("de")
	if !ok || rc.ISO3 != "DEU" || rc.Name != "Germany" {
		t.Fatalf("Lookup(de) = %+v,%v", rc, ok)
	}
	if name := reg.DisplayName("ZZ"); name != "ZZ" {
		t.Errorf("DisplayName(ZZ) = %q", name)
	}
	codes := reg.Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted at %d: %s %s", i, codes[i-1], codes[i])
		}
	}
}

func TestSuggest(t *testing.T) {
	reg := DefaultRegistry()
	got := reg.Suggest("land", 50)
	if len(got) == 0 {
		t.Fatal("no suggestions for land")
	}
	for _, rc := range got {
		if !strings.Contains(strings.ToLower(rc.Name), "land") {
			t.Errorf("suggestion %q does not contain land", rc.Name)
		}
	}
	if s := reg.Suggest("ind", 1); len(s) != 1 {
		t.Errorf("limit not applied: %d", len(s))
	}
	if s := reg.Suggest("bra", 5); len(s) == 0 || s[0].ISO2 != "BR" {
		t.Errorf("Suggest(bra) = %+v", s)
	}
	if s := reg.Suggest("", 5); s != nil {
		t.Errorf("empty query gave %+v", s)
	}
}
