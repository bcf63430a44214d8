package discipline

import (
	"regexp"
	"strings"
)

// knownDistances are the race distances that actually appear in regional
// announcements. Restricting detection to this set keeps years, fees and
// bib numbers from being read as races.
var knownDistances = map[string]bool{
	"50":    true,
	"60":    true,
	"80":    true,
	"100":   true,
	"110":   true,
	"150":   true,
	"200":   true,
	"300":   true,
	"400":   true,
	"500":   true,
	"600":   true,
	"800":   true,
	"1000":  true,
	"1500":  true,
	"2000":  true,
	"3000":  true,
	"5000":  true,
	"10000": true,
}

// canonicalField maps field-event keywords to canonical names, in match
// priority order. "salto" and "lanzamiento" alone are too ambiguous to
// resolve, so only the specific apparatus words appear here.
var canonicalField = []struct {
	keyword   string
	canonical string
}{
	{"triple", "Triple Salto"},
	{"pertiga", "Pértiga"},
	{"altura", "Altura"},
	{"longitud", "Longitud"},
	{"peso", "Peso"},
	{"disco", "Disco"},
	{"martillo", "Martillo"},
	{"jabalina", "Jabalina"},
}

var (
	relayRe    = regexp.MustCompile(`\b4\s*x\s*(100|400)\b`)
	distanceRe = regexp.MustCompile(`\b(\d{2,5})\b`)
)

// Detect finds a discipline inside free-form text. Unlike Normalize it
// tolerates surrounding noise (times, series numbers, categories) and
// reports whether anything was recognized at all.
func Detect(text string) (string, bool) {
	folded := Fold(strings.TrimSpace(text))
	if canonical, ok := aliases[folded]; ok {
		return canonical, true
	}
	if m := relayRe.FindStringSubmatch(folded); m != nil {
		return "4x" + m[1], true
	}
	for _, f := range canonicalField {
		if strings.Contains(folded, f.keyword) {
			return f.canonical, true
		}
	}
	for _, m := range distanceRe.FindAllStringSubmatch(folded, -1) {
		if !knownDistances[m[1]] {
			continue
		}
		switch {
		case strings.Contains(folded, "obstaculo"):
			return m[1] + " Obstáculos", true
		case strings.Contains(folded, "vallas"):
			return m[1] + " Vallas", true
		}
		return m[1], true
	}
	return "", false
}
