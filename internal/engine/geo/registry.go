package geo

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rendis/geopaint/internal/model"
)

// CountryRecord is one entry of the registry.
type CountryRecord struct {
	ISO2    string
	ISO3    string
	Name    string
	Aliases []string // lowercase; ISO2, ISO3 and Name are added on index
}

// Code returns the record's canonical code.
func (r CountryRecord) Code() model.CountryCode {
	return model.CountryCode(strings.ToUpper(r.ISO2))
}

// AliasConflict records an alias claimed by two countries. The later record
// wins the lookup.
type AliasConflict struct {
	Alias  string
	Loser  model.CountryCode
	Winner model.CountryCode
}

// Registry resolves free text to canonical country codes. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	records   []CountryRecord
	byCode    map[model.CountryCode]int
	aliases   map[string]model.CountryCode // key: lowercase trimmed alias
	folded    map[string]model.CountryCode // key: alias with diacritics removed
	conflicts []AliasConflict
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(countryRecords)
})

// DefaultRegistry returns the process-wide registry built from the embedded
// country table.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// NewRegistry indexes records by code, name and aliases.
func NewRegistry(records []CountryRecord) *Registry {
	r := &Registry{
		byCode:  make(map[model.CountryCode]int, len(records)),
		aliases: make(map[string]model.CountryCode, len(records)*4),
		folded:  make(map[string]model.CountryCode, len(records)*4),
	}

	for _, rc := range records {
		rc.ISO2 = strings.ToUpper(strings.TrimSpace(rc.ISO2))
		rc.ISO3 = strings.ToUpper(strings.TrimSpace(rc.ISO3))
		if rc.ISO2 == "" {
			continue
		}
		code := rc.Code()
		if idx, ok := r.byCode[code]; ok {
			r.records[idx] = rc
		} else {
			r.byCode[code] = len(r.records)
			r.records = append(r.records, rc)
		}

		keys := append([]string{rc.ISO2, rc.ISO3, rc.Name}, rc.Aliases...)
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			if prev, ok := r.aliases[k]; ok && prev != code {
				r.conflicts = append(r.conflicts, AliasConflict{Alias: k, Loser: prev, Winner: code})
			}
			r.aliases[k] = code
			r.folded[fold(k)] = code
		}
	}

	return r
}

// Resolve maps a token to a country code. Matching is exact after trimming
// and lowercasing, with a second exact lookup on the accent-folded form.
func (r *Registry) Resolve(token string) (model.CountryCode, bool) {
	k := strings.ToLower(strings.TrimSpace(token))
	if k == "" {
		return "", false
	}
	if code, ok := r.aliases[k]; ok {
		return code, true
	}
	code, ok := r.folded[fold(k)]
	return code, ok
}

// Lookup returns the record for a code.
func (r *Registry) Lookup(code model.CountryCode) (CountryRecord, bool) {
	idx, ok := r.byCode[model.CountryCode(strings.ToUpper(string(code)))]
	if !ok {
		return CountryRecord{}, false
	}
	return r.records[idx], true
}

// Contains reports whether code is a known country.
func (r *Registry) Contains(code model.CountryCode) bool {
	_, ok := r.byCode[code]
	return ok
}

// DisplayName returns the country's name, or the code itself when unknown.
func (r *Registry) DisplayName(code model.CountryCode) string {
	if rc, ok := r.Lookup(code); ok {
		return rc.Name
	}
	return string(code)
}

// Codes returns every known code sorted alphabetically.
func (r *Registry) Codes() []model.CountryCode {
	codes := make([]model.CountryCode, 0, len(r.records))
	for _, rc := range r.records {
		codes = append(codes, rc.Code())
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Records returns all records sorted by name.
func (r *Registry) Records() []CountryRecord {
	out := append([]CountryRecord(nil), r.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Aliases returns every indexed alias. Used by data checks and tests.
func (r *Registry) Aliases() map[string]model.CountryCode {
	out := make(map[string]model.CountryCode, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// Conflicts lists aliases that were claimed by more than one country.
func (r *Registry) Conflicts() []AliasConflict {
	return append([]AliasConflict(nil), r.conflicts...)
}

// Suggest returns up to limit records whose name contains the query, or whose
// code equals it, for interactive completion.
func (r *Registry) Suggest(query string, limit int) []CountryRecord {
	raw := strings.TrimSpace(query)
	if raw == "" || limit <= 0 {
		return nil
	}
	q := fold(strings.ToLower(raw))
	var matches []CountryRecord
	for _, rc := range r.Records() {
		if strings.Contains(fold(strings.ToLower(rc.Name)), q) ||
			strings.EqualFold(rc.ISO2, raw) ||
			strings.EqualFold(rc.ISO3, raw) {
			matches = append(matches, rc)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// fold strips combining marks so "côte" and "cote" share a key.
func fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
