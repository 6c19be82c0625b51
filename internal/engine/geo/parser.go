package geo

import (
	"strings"

	"github.com/rendis/geopaint/internal/model"
)

// ParseResult classifies the tokens of a free-text country list.
type ParseResult struct {
	Valid      []model.CountryCode // first occurrence order, no repeats
	Invalid    []string            // original token text
	Duplicates []string            // original token text of repeated codes
}

// Tokenize splits input on commas, semicolons, newlines and tabs, trims every
// token and drops the empty ones.
func Tokenize(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r', '\t':
			return true
		}
		return false
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ParseList resolves every token of input. It never fails: unknown tokens
// are reported in Invalid for the caller to display.
func (r *Registry) ParseList(input string) ParseResult {
	var res ParseResult
	seen := make(map[model.CountryCode]bool)
	for _, tok := range Tokenize(input) {
		code, ok := r.Resolve(tok)
		switch {
		case !ok:
			res.Invalid = append(res.Invalid, tok)
		case seen[code]:
			res.Duplicates = append(res.Duplicates, tok)
		default:
			seen[code] = true
			res.Valid = append(res.Valid, code)
		}
	}
	return res
}
