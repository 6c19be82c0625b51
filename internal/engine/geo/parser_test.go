package geo

import (
	"reflect"
	"testing"

	"github.com/rendis/geopaint/internal/model"
)

func TestParseList(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name       string
		in         string
		valid      []model.CountryCode
		invalid    []string
		duplicates []string
	}{
		{
			name:  "names codes and aliases",
			in:    "India, UAE, Brazil, FR, DEU",
			valid: []model.CountryCode{"IN", "AE", "BR", "FR", "DE"},
		},
		{
			name:       "unknown and repeated",
			in:         "Atlantis, US, us",
			valid:      []model.CountryCode{"US"},
			invalid:    []string{"Atlantis"},
			duplicates: []string{"us"},
		},
		{
			name:       "mixed separators",
			in:         "Japan;\tKorea\nJPN\r\n,, ;",
			valid:      []model.CountryCode{"JP", "KR"},
			duplicates: []string{"JPN"},
		},
		{
			name: "empty",
			in:   " , ;\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := reg.ParseList(tc.in)
			if !reflect.DeepEqual(res.Valid, tc.valid) {
				t.Errorf("valid = %v, want %v", res.Valid, tc.valid)
			}
			if !reflect.DeepEqual(res.Invalid, tc.invalid) {
				t.Errorf("invalid = %v, want %v", res.Invalid, tc.invalid)
			}
			if !reflect.DeepEqual(res.Duplicates, tc.duplicates) {
				t.Errorf("duplicates = %v, want %v", res.Duplicates, tc.duplicates)
			}
		})
	}
}

func TestParseListValidIsUniqueAndKnown(t *testing.T) {
	reg := DefaultRegistry()
	inputs := []string{
		"france, FRA, Frankreich, fr, germany",
		"cn; china; CHN; taiwan; TW",
		"uk, united kingdom, GB, england, ie",
	}
	for _, in := range inputs {
		res := reg.ParseList(in)
		seen := map[model.CountryCode]bool{}
		for _, c := range res.Valid {
			if seen[c] {
				t.Errorf("%q: duplicate %s in valid", in, c)
			}
			seen[c] = true
			if !reg.Contains(c) {
				t.Errorf("%q: %s not in registry", in, c)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize(" a ,b;;c\n\td ")
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}
