package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/rendis/geopaint/internal/model"
)

// CodeForFeatureID maps a dataset feature id to a country code. World-atlas
// ids arrive as zero-padded strings ("004") or as JSON numbers.
func CodeForFeatureID(id any) (model.CountryCode, bool) {
	var n int
	switch v := id.(type) {
	case string:
		s := strings.TrimSpace(v)
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return "", false
		}
		n = parsed
	case float64:
		if v != math.Trunc(v) {
			return "", false
		}
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	default:
		return "", false
	}
	code, ok := numericToISO2[n]
	return model.CountryCode(code), ok
}

// NumericID returns the ISO numeric id of a code, zero-padded to three digits.
func NumericID(code model.CountryCode) (string, bool) {
	for n, c := range numericToISO2 {
		if c == string(code) {
			return padNumeric(n), true
		}
	}
	return "", false
}

func padNumeric(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
