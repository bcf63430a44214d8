package scraper

import (
	"testing"

	"go.uber.org/zap"
)

const calendarFixture = `
<html><body>
<div id="calendario">
<table>
<tr>
  <th>Fecha</th><th>Límite</th><th>Competición</th><th>Lugar</th>
  <th>regl.</th><th>insc.</th><th></th><th>Tipo</th>
</tr>
<tr>
  <td>03.01 (S)</td>
  <td>30.12</td>
  <td><a href="/competicion/1">Control de Marcas</a></td>
  <td>Gallur</td>
  <td><a href="/docs/control.pdf" title="Reglamento">PDF</a></td>
  <td><a href="https://inscripciones.example.com/1">Inscripción</a></td>
  <td></td>
  <td>PC</td>
</tr>
<tr style="background:#ebffaa">
  <td>10.01 (S)</td>
  <td>07.01</td>
  <td><a href="/competicion/2">Trofeo Villa de Madrid</a></td>
  <td>Vallehermoso</td>
  <td><span class="reglamento_circular"><a href="/docs/trofeo.pdf">circular</a></span></td>
  <td></td>
  <td></td>
  <td>AL</td>
</tr>
<tr>
  <td>17y18.01 (S-D)</td>
  <td>14.01</td>
  <td>Campeonato de Madrid Absoluto</td>
  <td>Gallur</td>
  <td><a href="/docs/cto.pdf">ver</a></td>
  <td></td>
  <td></td>
  <td>PC</td>
</tr>
<tr>
  <td style="background-color: yellow">24.01 (S)</td>
  <td>21.01</td>
  <td><a href="/competicion/4">Memorial Ciudad de Madrid</a></td>
  <td>Vallehermoso</td>
  <td><a href="/docs/memorial.pdf" title="Reglamento">PDF</a></td>
  <td></td>
  <td></td>
  <td>AL</td>
</tr>
</table>
</div>
</body></html>`

func testScraper(t *testing.T) *Scraper {
	t.Helper()
	return New("https://www.atletismomadrid.com", "/calendario", zap.NewNop())
}

func TestParseCalendar(t *testing.T) {
	s := testScraper(t)
	entries := s.parseCalendar(calendarFixture, 1, 2026)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	first := entries[0]
	if first.Name != "Control de Marcas" {
		t.Errorf("name = %q", first.Name)
	}
	if first.DateText != "03/01" {
		t.Errorf("date text = %q", first.DateText)
	}
	if first.Venue != "Gallur" {
		t.Errorf("venue = %q", first.Venue)
	}
	if first.DocumentURL != "https://www.atletismomadrid.com/docs/control.pdf" {
		t.Errorf("document url = %q", first.DocumentURL)
	}
	if first.EnrollmentURL != "https://inscripciones.example.com/1" {
		t.Errorf("enrollment url = %q", first.EnrollmentURL)
	}
	if first.Type != "PC" {
		t.Errorf("type = %q", first.Type)
	}
	if first.Highlighted {
		t.Error("plain row reported as highlighted")
	}

	second := entries[1]
	if !second.Highlighted {
		t.Error("highlighted row not detected")
	}
	if second.DocumentURL != "https://www.atletismomadrid.com/docs/trofeo.pdf" {
		t.Errorf("reglamento_circular link = %q", second.DocumentURL)
	}
	if second.EnrollmentURL != "" {
		t.Errorf("enrollment url = %q, want empty", second.EnrollmentURL)
	}

	third := entries[2]
	if third.DateText != "17/01" {
		t.Errorf("range date text = %q", third.DateText)
	}
	if len(third.ExtraDates) != 1 || third.ExtraDates[0] != "18/01" {
		t.Errorf("extra dates = %v", third.ExtraDates)
	}
	// Plain-text cell name, no anchor.
	if third.Name != "Campeonato de Madrid Absoluto" {
		t.Errorf("name = %q", third.Name)
	}
	// Fallback to the first anchor when neither label nor title match.
	if third.DocumentURL != "https://www.atletismomadrid.com/docs/cto.pdf" {
		t.Errorf("document url = %q", third.DocumentURL)
	}

	// A yellow inline style on a single cell marks the row too.
	fourth := entries[3]
	if !fourth.Highlighted {
		t.Error("yellow-styled row not detected as highlighted")
	}
	if fourth.Name != "Memorial Ciudad de Madrid" {
		t.Errorf("name = %q", fourth.Name)
	}
}

func TestParseCalendarNoTable(t *testing.T) {
	s := testScraper(t)
	if entries := s.parseCalendar("<html><body><p>Sin calendario</p></body></html>", 1, 2026); entries != nil {
		t.Errorf("got %v, want nil", entries)
	}
}

func TestParseCalendarDensestTableFallback(t *testing.T) {
	// No id or class markers; the calendar must still be found by density.
	html := `
<table><tr><td>menú</td><td>enlaces</td></tr></table>
<table>
<tr><td>03.01</td><td></td><td><a href="/c/1">Control</a></td><td>Gallur</td>
<td><a href="/d/1.pdf">Reglamento</a></td><td></td><td></td><td>PC</td></tr>
<tr><td>04.01</td><td></td><td><a href="/c/2">Jornada</a></td><td>Gallur</td>
<td><a href="/d/2.pdf">Reglamento</a></td><td></td><td></td><td>PC</td></tr>
</table>`
	s := testScraper(t)
	entries := s.parseCalendar(html, 1, 2026)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestNormalizeDateText(t *testing.T) {
	tests := []struct {
		raw        string
		want       string
		wantExtras []string
	}{
		{"03.01 (S)", "03/01", nil},
		{"17y18.01 (S-D)", "17/01", []string{"18/01"}},
		{"3,4.02", "3/02", []string{"4/02"}},
		{"2,3,4.02", "2/02", []string{"3/02", "4/02"}},
		{"próximamente", "próximamente", nil},
		{"  ", "", nil},
	}
	for _, tt := range tests {
		got, extras := normalizeDateText(tt.raw)
		if got != tt.want {
			t.Errorf("normalizeDateText(%q) = %q, want %q", tt.raw, got, tt.want)
		}
		if len(extras) != len(tt.wantExtras) {
			t.Errorf("normalizeDateText(%q) extras = %v, want %v", tt.raw, extras, tt.wantExtras)
			continue
		}
		for i := range extras {
			if extras[i] != tt.wantExtras[i] {
				t.Errorf("normalizeDateText(%q) extras = %v, want %v", tt.raw, extras, tt.wantExtras)
				break
			}
		}
	}
}

func TestCalendarURL(t *testing.T) {
	plain := New("https://example.com", "/calendario", zap.NewNop())
	if got := plain.calendarURL(1, 2026); got != "https://example.com/calendario?temporada=2026&mes=1" {
		t.Errorf("calendarURL = %q", got)
	}

	query := New("https://example.com", "/index.php?page=calendario", zap.NewNop())
	if got := query.calendarURL(12, 2025); got != "https://example.com/index.php?page=calendario&temporada=2025&mes=12" {
		t.Errorf("calendarURL = %q", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	s := testScraper(t)
	tests := []struct {
		href string
		want string
	}{
		{"/docs/a.pdf", "https://www.atletismomadrid.com/docs/a.pdf"},
		{"https://other.example.com/b.pdf", "https://other.example.com/b.pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := s.absoluteURL(tt.href); got != tt.want {
			t.Errorf("absoluteURL(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
