package competition

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MonthsES maps lowercase Spanish month names to their month number.
var MonthsES = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var (
	parenNoteRe   = regexp.MustCompile(`\s*\([^)]*\)`)
	dayListRe     = regexp.MustCompile(`^(\d{1,2}(?:[y,]\d{1,2})+)\.(\d{1,2})`)
	simpleDayRe   = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})`)
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	rangeDateRe   = regexp.MustCompile(`(\d{1,2})\s*y\s*(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	spanishDateRe = regexp.MustCompile(`(?i)(\d{1,2})\s*de\s+(\p{L}+)\s*de\s+(\d{4})`)
	dayMonthRe    = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)
	daySepRe      = regexp.MustCompile(`[y,]`)
)

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject overflow like 31/02 -> 02/03.
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// ParseCalendarDate parses a calendar-column date like "03.01 (S)",
// "17y18.01 (S-D)" or "3,4.02" into a canonical date plus any additional
// dates. The month and year hints complete what the text omits; ranges
// spanning a year boundary keep the hinted year for every day.
func ParseCalendarDate(raw string, month, year int) (time.Time, []time.Time, bool) {
	text := strings.TrimSpace(parenNoteRe.ReplaceAllString(raw, ""))
	if text == "" {
		return time.Time{}, nil, false
	}

	if m := dayListRe.FindStringSubmatch(text); m != nil {
		monthNum, _ := strconv.Atoi(m[2])
		days := daySepRe.Split(m[1], -1)
		var dates []time.Time
		for _, ds := range days {
			day, _ := strconv.Atoi(ds)
			if d, ok := makeDate(year, time.Month(monthNum), day); ok {
				dates = append(dates, d)
			}
		}
		if len(dates) == 0 {
			return time.Time{}, nil, false
		}
		return dates[0], dates[1:], true
	}

	if m := simpleDayRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		if d, ok := makeDate(year, time.Month(monthNum), day); ok {
			return d, nil, true
		}
		return time.Time{}, nil, false
	}

	// Already-normalized "03/01" shapes.
	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		if d, ok := makeDate(year, time.Month(monthNum), day); ok {
			return d, nil, true
		}
	}

	return time.Time{}, nil, false
}

// ParseSpanishDate parses the date shapes that appear in announcement
// PDFs: "03/01/2026", "17 y 18/01/2026" (first day wins) and
// "11 de enero de 2026". First successful pattern wins.
func ParseSpanishDate(s string) (time.Time, bool) {
	if m := rangeDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[3])
		year, _ := strconv.Atoi(m[4])
		if d, ok := makeDate(year, time.Month(monthNum), day); ok {
			return d, true
		}
	}

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, time.Month(monthNum), day); ok {
			return d, true
		}
	}

	if m := spanishDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := MonthsES[strings.ToLower(m[2])]; ok {
			if d, ok := makeDate(year, month, day); ok {
				return d, true
			}
		}
	}

	return time.Time{}, false
}

// ParseDayMonth parses a normalized "DD/MM" calendar string with a year
// hint, as used when falling back to calendar-row data for a competition
// whose PDF could not be parsed.
func ParseDayMonth(s string, year int) (time.Time, bool) {
	m := dayMonthRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	monthNum, _ := strconv.Atoi(m[2])
	return makeDate(year, time.Month(monthNum), day)
}
