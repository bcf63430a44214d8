package pdfparse

import (
	"regexp"
	"strings"
	"time"

	"fam-bot/internal/competition"
	"fam-bot/internal/discipline"
)

var (
	venueLabelRe = regexp.MustCompile(`(?i)lugar\s*:\s*(.+)`)
	dateLabelRe  = regexp.MustCompile(`(?i)(?:d[ií]a|fecha(?:\s+de\s+la\s+competici[oó]n)?)\s*:\s*(.+)`)
)

// knownVenues are the region's usual athletics facilities, checked when
// no LUGAR label is present.
var knownVenues = []string{
	"Vallehermoso",
	"Gallur",
	"Alcorcón",
	"Alcobendas",
	"Pista Cubierta",
	"Polideportivo",
}

// nameKeywords identify a title line when the calendar gave no name.
var nameKeywords = []string{
	"campeonato",
	"copa",
	"trofeo",
	"memorial",
	"meeting",
	"control",
	"jornada",
	"criterium",
	"gran premio",
}

// extractVenue finds the venue via the LUGAR label, then by scanning for
// known facility names. Empty means unknown.
func extractVenue(lines []string) string {
	for _, line := range lines {
		if m := venueLabelRe.FindStringSubmatch(line); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	folded := discipline.Fold(strings.Join(lines, "\n"))
	for _, v := range knownVenues {
		if strings.Contains(folded, discipline.Fold(v)) {
			return v
		}
	}
	return ""
}

// extractDate finds the competition date via its label line. Only the
// labeled payload is parsed; bare dates elsewhere in the document (entry
// deadlines, publication dates) are too ambiguous.
func extractDate(lines []string) (time.Time, bool) {
	for _, line := range lines {
		if m := dateLabelRe.FindStringSubmatch(line); m != nil {
			if d, ok := competition.ParseSpanishDate(strings.TrimSpace(m[1])); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// extractName picks a plausible title from the leading lines.
func extractName(lines []string) string {
	limit := len(lines)
	if limit > 15 {
		limit = 15
	}
	for _, line := range lines[:limit] {
		trimmed := strings.Join(strings.Fields(line), " ")
		if len(trimmed) < 8 || len(trimmed) > 120 {
			continue
		}
		folded := discipline.Fold(trimmed)
		for _, kw := range nameKeywords {
			if strings.Contains(folded, kw) {
				return trimmed
			}
		}
	}
	return ""
}

// fallbackEvents scans the full text line by line when no table yielded
// events. Sex is inferred from the same line; one event per discipline
// and sex.
func fallbackEvents(lines []string) []competition.Event {
	seen := map[string]bool{}
	var events []competition.Event
	for _, line := range lines {
		d, ok := discipline.Detect(line)
		if !ok {
			continue
		}
		sex := competition.SexMale
		if f := discipline.Fold(line); strings.Contains(f, "femen") || strings.Contains(f, "mujer") {
			sex = competition.SexFemale
		}
		key := competition.SubscriptionKey(d, sex)
		if seen[key] {
			continue
		}
		seen[key] = true
		ev := competition.Event{
			Discipline: d,
			Type:       discipline.Classify(d),
			Sex:        sex,
			Category:   defaultCategory,
		}
		if hm, ok := findTime([]string{line}); ok {
			ev.ScheduledTime = hm
		}
		events = append(events, ev)
	}
	return events
}
