package scraper

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fam-bot/internal/competition"
)

// Calendar table layout, stable across recent site versions:
// 0: Fecha | 1: Límite inscripción | 2: Competición | 3: Lugar |
// 4: regl. | 5: insc. | 6: (empty) | 7: Tipo
const (
	colDate       = 0
	colName       = 2
	colVenue      = 3
	colReglamento = 4
	colEnrollment = 5
	colType       = 7
)

// highlightColors are the inline background colors the site uses to mark
// modified or external entries. The set is enumerable, not a visual guess.
var highlightColors = []string{
	"#ebffaa",
	"yellow",
	"#ffff",
	"#ff0",
	"#ffc",
	"#ffd",
	"#ffe",
}

var (
	parenCleanRe = regexp.MustCompile(`\s*\([^)]*\)`)
	rangeDayRe   = regexp.MustCompile(`^(\d{1,2})y(\d{1,2})\.(\d{1,2})`)
	dayListTxtRe = regexp.MustCompile(`^(\d{1,2}(?:,\d{1,2})+)\.(\d{1,2})`)
	simpleTxtRe  = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})`)
)

// Competitions fetches and parses the calendar for one month.
func (s *Scraper) Competitions(ctx context.Context, month, year int) ([]competition.RawEntry, error) {
	html, err := s.FetchCalendarPage(ctx, month, year)
	if err != nil {
		return nil, err
	}
	entries := s.parseCalendar(html, month, year)
	s.log.Info("calendar scraped",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("entries", len(entries)))
	return entries, nil
}

// parseCalendar extracts raw competition entries from calendar HTML.
// A page with no recognizable calendar table yields zero entries.
func (s *Scraper) parseCalendar(html string, month, year int) []competition.RawEntry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.log.Warn("unparseable calendar html", zap.Error(err))
		return nil
	}

	table := findCalendarTable(doc)
	if table == nil {
		s.log.Warn("calendar table not found", zap.Int("month", month), zap.Int("year", year))
		return nil
	}

	var entries []competition.RawEntry
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if entry, ok := s.parseRow(row); ok {
			entries = append(entries, entry)
		}
	})
	return entries
}

// findCalendarTable tries the known table selectors in order of
// specificity, then falls back to the densest table on the page.
func findCalendarTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find("table.calendario").First(); t.Length() > 0 {
		return t
	}
	if t := doc.Find("div#calendario table").First(); t.Length() > 0 {
		return t
	}

	var best *goquery.Selection
	bestRows := 0
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		rows := 0
		t.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if row.Find("td").Length() >= 5 {
				rows++
			}
		})
		if rows > bestRows {
			best = t
			bestRows = rows
		}
	})
	if bestRows < 2 {
		return nil
	}
	return best
}

func (s *Scraper) parseRow(row *goquery.Selection) (competition.RawEntry, bool) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		// Header (th) or incomplete row.
		return competition.RawEntry{}, false
	}

	docURL := s.reglamentoLink(cells.Eq(colReglamento))
	name := cellName(cells.Eq(colName))

	if name == "" && docURL == "" {
		return competition.RawEntry{}, false
	}

	dateText, extraDates := normalizeDateText(cellText(cells.Eq(colDate)))

	entry := competition.RawEntry{
		Name:        name,
		DateText:    dateText,
		DocumentURL: docURL,
		Venue:       cellText(cells.Eq(colVenue)),
		Highlighted: hasHighlightBackground(row, cells),
		ExtraDates:  extraDates,
	}
	if cells.Length() > colEnrollment {
		if href, ok := cells.Eq(colEnrollment).Find("a").First().Attr("href"); ok {
			entry.EnrollmentURL = s.absoluteURL(href)
		}
	}
	if cells.Length() > colType {
		entry.Type = cellText(cells.Eq(colType))
	}
	return entry, true
}

// reglamentoLink finds the announcement-document anchor in the regl. cell,
// trying label text, title attribute, the reglamento_circular span, and
// finally the first anchor in the cell.
func (s *Scraper) reglamentoLink(cell *goquery.Selection) string {
	var href string

	cell.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(a.Text()), "regl") {
			href, _ = a.Attr("href")
			return false
		}
		if title, ok := a.Attr("title"); ok && strings.Contains(title, "Reglamento") {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})

	if href == "" {
		if a := cell.Find("span.reglamento_circular a").First(); a.Length() > 0 {
			href, _ = a.Attr("href")
		}
	}
	if href == "" {
		if a := cell.Find("a").First(); a.Length() > 0 {
			href, _ = a.Attr("href")
		}
	}
	if href == "" {
		return ""
	}
	return s.absoluteURL(href)
}

func cellName(cell *goquery.Selection) string {
	if a := cell.Find("a").First(); a.Length() > 0 {
		return strings.TrimSpace(a.Text())
	}
	return strings.TrimSpace(cell.Text())
}

func cellText(cell *goquery.Selection) string {
	return strings.TrimSpace(cell.Text())
}

// normalizeDateText cleans a calendar date like "03.01 (S)" into "03/01"
// and splits multi-day notations ("17y18.01", "3,4.02") into a canonical
// date text plus the remaining day strings.
func normalizeDateText(raw string) (string, []string) {
	text := strings.TrimSpace(parenCleanRe.ReplaceAllString(raw, ""))
	if text == "" {
		return "", nil
	}

	if m := rangeDayRe.FindStringSubmatch(text); m != nil {
		return m[1] + "/" + m[3], []string{m[2] + "/" + m[3]}
	}

	if m := dayListTxtRe.FindStringSubmatch(text); m != nil {
		days := strings.Split(m[1], ",")
		extras := make([]string, 0, len(days)-1)
		for _, d := range days[1:] {
			extras = append(extras, d+"/"+m[2])
		}
		return days[0] + "/" + m[2], extras
	}

	if m := simpleTxtRe.FindStringSubmatch(text); m != nil {
		return m[1] + "/" + m[2], nil
	}

	return text, nil
}

// hasHighlightBackground reports whether the row (or any of its cells)
// carries one of the site's modified/external background colors.
func hasHighlightBackground(row *goquery.Selection, cells *goquery.Selection) bool {
	if styleHasHighlight(row) {
		return true
	}
	found := false
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if styleHasHighlight(cell) {
			found = true
			return false
		}
		return true
	})
	return found
}

func styleHasHighlight(sel *goquery.Selection) bool {
	style, ok := sel.Attr("style")
	if !ok {
		return false
	}
	style = strings.ToLower(style)
	for _, color := range highlightColors {
		if strings.Contains(style, color) {
			return true
		}
	}
	return false
}
