package notifier

import (
	"fmt"
	"html"
	"strings"

	"fam-bot/internal/competition"
	"fam-bot/internal/storage"
)

// pending is one (competition, event) pair owed to a user.
type pending struct {
	comp  *storage.Competition
	event *storage.Event
}

// formatMessage renders one user's batch as Telegram HTML, grouped by
// competition in calendar order.
func formatMessage(items []pending) string {
	var b strings.Builder
	b.WriteString("🏃 <b>¡Nuevas competiciones para ti!</b>\n")

	var lastCompID int64 = -1
	for _, it := range items {
		if it.comp.ID != lastCompID {
			lastCompID = it.comp.ID
			b.WriteString("\n")
			writeCompetitionHeader(&b, it.comp)
		}
		writeEventLine(&b, it.event)
	}

	b.WriteString("\nUsa /mis_pruebas para gestionar tus suscripciones.")
	return b.String()
}

func writeCompetitionHeader(b *strings.Builder, c *storage.Competition) {
	fmt.Fprintf(b, "📅 <b>%s</b>\n", html.EscapeString(c.Name))
	if c.HasModifications {
		b.WriteString("⚠️ <i>Horario modificado</i>\n")
	}
	fmt.Fprintf(b, "🗓 %s · 📍 %s\n", c.Domain().DateDisplay(), html.EscapeString(c.Venue))
	links := make([]string, 0, 2)
	if c.PDFURL != "" {
		links = append(links, fmt.Sprintf(`📄 <a href="%s">Reglamento</a>`, c.PDFURL))
	}
	if c.EnrollmentURL != "" {
		links = append(links, fmt.Sprintf(`📝 <a href="%s">Inscripción</a>`, c.EnrollmentURL))
	}
	if len(links) > 0 {
		b.WriteString(strings.Join(links, " · "))
		b.WriteString("\n")
	}
}

func writeEventLine(b *strings.Builder, e *storage.Event) {
	emoji := "👨"
	if e.Sex == string(competition.SexFemale) {
		emoji = "👩"
	}
	domain := competition.Event{Discipline: e.Discipline, Sex: competition.Sex(e.Sex)}
	fmt.Fprintf(b, "  %s %s", emoji, html.EscapeString(domain.DisplayName()))
	if e.ScheduledTime != "" {
		fmt.Fprintf(b, " a las <b>%s</b>", e.ScheduledTime)
	}
	if e.Category != "" && e.Category != "Absoluto" {
		fmt.Fprintf(b, " (%s)", html.EscapeString(e.Category))
	}
	b.WriteString("\n")
}
