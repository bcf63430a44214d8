package pdfparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fam-bot/internal/competition"
	"fam-bot/internal/discipline"
)

const defaultCategory = "Absoluto"

var (
	timeRe     = regexp.MustCompile(`\b(\d{1,2})[:.h](\d{2})\b`)
	serieRe    = regexp.MustCompile(`(?i)\bserie\s*\d*\b`)
	categoryRe = regexp.MustCompile(`(?i)\b(sub\s*-?\s*\d{1,2}|absolut\w*|senior|master|juvenil|cadete|infantil|alevin|benjamin|veteran\w*|serie\s*\d*)\b`)
)

// tableEvents routes a table to the parser for its shape.
func tableEvents(t table) []competition.Event {
	switch classifyTable(t) {
	case kindLabeledSection:
		return parseLabeledSection(t)
	case kindColumnHeader:
		return parseColumnTable(t)
	case kindAnchorHeader:
		return parseAnchorTable(t)
	default:
		return parseUnstructured(t)
	}
}

// parseLabeledSection handles tables split by CARRERAS / CONCURSOS label
// rows. The label fixes the event type for every row below it until the
// next label.
func parseLabeledSection(t table) []competition.Event {
	var events []competition.Event
	typ := competition.EventTypeTrack
	for _, row := range t {
		joined := discipline.Fold(strings.Join(row, " "))
		switch {
		case strings.Contains(joined, "carreras"):
			typ = competition.EventTypeTrack
			continue
		case strings.Contains(joined, "concursos"):
			typ = competition.EventTypeField
			continue
		}
		if ev, ok := parseEventRow(row, typ); ok {
			events = append(events, ev)
		}
	}
	return events
}

// parseColumnTable handles tables with a recognizable header row. Columns
// are bound by header label; rows in columns the header does not explain
// fall back to positional scanning.
func parseColumnTable(t table) []competition.Event {
	header := t[0]
	discCol := columnIndex(header, "prueba", "disciplina")
	sexCol := columnIndex(header, "sexo")
	timeCol := columnIndex(header, "hora", "horario")
	catCol := columnIndex(header, "categoria")

	var events []competition.Event
	for _, row := range t[1:] {
		raw := cellAt(row, discCol)
		if raw == "" {
			if ev, ok := parseEventRow(row, ""); ok {
				events = append(events, ev)
			}
			continue
		}

		disc, ok := discipline.Detect(raw)
		if !ok {
			disc = cleanDiscipline(raw)
		}
		if disc == "" {
			continue
		}

		ev := competition.Event{
			Discipline: disc,
			Type:       discipline.Classify(disc),
			Sex:        competition.SexMale,
			Category:   defaultCategory,
		}
		if s, ok := parseSexToken(cellAt(row, sexCol)); ok {
			ev.Sex = s
		}
		if hm, ok := findTime([]string{cellAt(row, timeCol)}); ok {
			ev.ScheduledTime = hm
		} else if hm, ok := findTime(row); ok {
			ev.ScheduledTime = hm
		}
		if c := cellAt(row, catCol); c != "" {
			ev.Category = c
		}
		events = append(events, ev)
	}
	return events
}

// parseAnchorTable handles grids whose first row is itself an event (a
// time slot with a discipline, no separate header). The header row's
// discipline fixes the type for sibling rows that only repeat times.
func parseAnchorTable(t table) []competition.Event {
	var typ competition.EventType
	if d, ok := findDiscipline(t[0]); ok {
		typ = discipline.Classify(d)
	}
	var events []competition.Event
	for _, row := range t {
		if ev, ok := parseEventRow(row, typ); ok {
			events = append(events, ev)
		}
	}
	return events
}

// parseUnstructured scans every row for recognizable disciplines.
func parseUnstructured(t table) []competition.Event {
	var events []competition.Event
	for _, row := range t {
		if ev, ok := parseEventRow(row, ""); ok {
			events = append(events, ev)
		}
	}
	return events
}

// parseEventRow extracts one event from a row of cells. A row that yields
// no discipline is discarded. A zero typ means derive it from the
// discipline.
func parseEventRow(cells []string, typ competition.EventType) (competition.Event, bool) {
	disc := ""
	discIdx := -1
	for i, c := range cells {
		if d, ok := discipline.Detect(c); ok {
			disc, discIdx = d, i
			break
		}
	}
	if disc == "" {
		return competition.Event{}, false
	}

	ev := competition.Event{
		Discipline: disc,
		Type:       typ,
		Sex:        competition.SexMale,
		Category:   defaultCategory,
	}
	if typ == "" {
		ev.Type = discipline.Classify(disc)
	}
	if hm, ok := findTime(cells); ok {
		ev.ScheduledTime = hm
	}
	for i, c := range cells {
		if i == discIdx {
			continue
		}
		if s, ok := parseSexToken(c); ok {
			ev.Sex = s
			break
		}
	}
	for i, c := range cells {
		if i == discIdx || timeRe.MatchString(c) {
			continue
		}
		if categoryRe.MatchString(c) {
			ev.Category = strings.TrimSpace(c)
			break
		}
	}
	return ev, true
}

// findTime returns the first valid HH:MM in the cells, normalizing the
// "10.30" and "10h30" spellings.
func findTime(cells []string) (string, bool) {
	for _, c := range cells {
		m := timeRe.FindStringSubmatch(c)
		if m == nil {
			continue
		}
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h < 24 && min < 60 {
			return fmt.Sprintf("%02d:%02d", h, min), true
		}
	}
	return "", false
}

func findDiscipline(cells []string) (string, bool) {
	for _, c := range cells {
		if d, ok := discipline.Detect(c); ok {
			return d, true
		}
	}
	return "", false
}

// parseSexToken interprets a cell as a sex marker. Exact abbreviations
// first, then the spelled-out words anywhere in the cell.
func parseSexToken(cell string) (competition.Sex, bool) {
	f := strings.ToUpper(discipline.Fold(strings.TrimSpace(cell)))
	switch f {
	case "M", "H", "MASC", "MASCULINO", "HOMBRE", "HOMBRES":
		return competition.SexMale, true
	case "F", "FEM", "FEMENINO", "MUJER", "MUJERES", "W":
		return competition.SexFemale, true
	}
	switch {
	case strings.Contains(f, "FEMEN"), strings.Contains(f, "MUJER"):
		return competition.SexFemale, true
	case strings.Contains(f, "MASCUL"), strings.Contains(f, "HOMBRE"):
		return competition.SexMale, true
	}
	return "", false
}

// cleanDiscipline strips time and series tokens from a cell that sits in
// a discipline column but matched no known pattern, so unfamiliar
// disciplines still pass through.
func cleanDiscipline(raw string) string {
	s := timeRe.ReplaceAllString(raw, "")
	s = serieRe.ReplaceAllString(s, "")
	return discipline.Normalize(strings.Join(strings.Fields(s), " "))
}

func columnIndex(header []string, labels ...string) int {
	for i, cell := range header {
		f := discipline.Fold(cell)
		for _, label := range labels {
			if strings.Contains(f, label) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// dedupeEvents drops exact duplicates produced by overlapping tables,
// preserving first-seen order.
func dedupeEvents(events []competition.Event) []competition.Event {
	seen := make(map[competition.Event]bool, len(events))
	out := events[:0]
	for _, ev := range events {
		if seen[ev] {
			continue
		}
		seen[ev] = true
		out = append(out, ev)
	}
	return out
}
