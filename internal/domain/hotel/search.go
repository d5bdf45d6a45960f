package hotel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch pasa a minúsculas y elimina tildes para comparar nombres ("José" == "jose").
func NormalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// MatchesSearch indica si alguno de los campos contiene la consulta normalizada.
func MatchesSearch(query string, fields ...string) bool {
	q := NormalizeSearch(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(NormalizeSearch(f), q) {
			return true
		}
	}
	return false
}
