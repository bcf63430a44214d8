// Package discipline normalizes the informal discipline spellings found in
// federation documents and classifies disciplines as track or field events.
//
// The source PDFs spell the same ~20 disciplines inconsistently (with and
// without accents, "m" vs "metros", singular/plural), so a fixed alias
// table keyed on accent-folded lowercase text beats fuzzy matching.
package discipline

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"fam-bot/internal/competition"
)

// aliases maps folded-lowercase variants to canonical discipline tokens.
var aliases = map[string]string{
	// Track
	"60 m":               "60",
	"60m":                "60",
	"100 m":              "100",
	"100m":               "100",
	"200 m":              "200",
	"200m":               "200",
	"400 m":              "400",
	"400m":               "400",
	"800 m":              "800",
	"800m":               "800",
	"1500 m":             "1500",
	"1500m":              "1500",
	"3000 m":             "3000",
	"3000m":              "3000",
	"5000 m":             "5000",
	"5000m":              "5000",
	"10000 m":            "10000",
	"10000m":             "10000",
	"60 m vallas":        "60 Vallas",
	"60m vallas":         "60 Vallas",
	"100 m vallas":       "100 Vallas",
	"100m vallas":        "100 Vallas",
	"110 m vallas":       "110 Vallas",
	"110m vallas":        "110 Vallas",
	"400 m vallas":       "400 Vallas",
	"400m vallas":        "400 Vallas",
	"3000 m obstaculos":  "3000 Obstáculos",
	"3000 obstaculos":    "3000 Obstáculos",
	"4x100 m":            "4x100",
	"4x100m":             "4x100",
	"4x400 m":            "4x400",
	"4x400m":             "4x400",
	// Field
	"salto de altura":        "Altura",
	"altura":                 "Altura",
	"salto de longitud":      "Longitud",
	"longitud":               "Longitud",
	"triple salto":           "Triple Salto",
	"salto con pertiga":      "Pértiga",
	"pertiga":                "Pértiga",
	"lanzamiento de peso":    "Peso",
	"peso":                   "Peso",
	"lanzamiento de disco":   "Disco",
	"disco":                  "Disco",
	"lanzamiento de martillo": "Martillo",
	"martillo":               "Martillo",
	"lanzamiento de jabalina": "Jabalina",
	"jabalina":               "Jabalina",
}

// fieldKeywords mark a discipline as a field event ("concurso").
// Numeric distances, hurdles and relays default to track.
var fieldKeywords = []string{
	"altura",
	"longitud",
	"triple",
	"pertiga",
	"peso",
	"disco",
	"martillo",
	"jabalina",
	"salto",
}

// Fold lowercases s and strips diacritics ("Pértiga" -> "pertiga").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Normalize maps an informal discipline spelling to its canonical token.
// Unknown inputs pass through trimmed but otherwise unchanged.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := aliases[Fold(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Classify reports whether a discipline is a track or a field event.
// It is total: anything not matching a field keyword is a track event.
func Classify(d string) competition.EventType {
	folded := Fold(d)
	for _, kw := range fieldKeywords {
		if strings.Contains(folded, kw) {
			return competition.EventTypeField
		}
	}
	return competition.EventTypeTrack
}
