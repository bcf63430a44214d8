package bot

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) cmdStatus(ctx context.Context, tgID int64) error {
	if !a.isAdmin(tgID) {
		return a.sendText(tgID, "Este comando es solo para administración.")
	}

	users, err := a.users.Count(ctx)
	if err != nil {
		return err
	}
	subs, err := a.subs.Count(ctx)
	if err != nil {
		return err
	}
	comps, err := a.comps.Count(ctx)
	if err != nil {
		return err
	}
	return a.sendText(tgID, fmt.Sprintf(
		"📊 Estado\nUsuarios: %d\nSuscripciones: %d\nCompeticiones: %d",
		users, subs, comps))
}

func (a *App) cmdForceScrape(ctx context.Context, tgID int64) error {
	if !a.isAdmin(tgID) {
		return a.sendText(tgID, "Este comando es solo para administración.")
	}
	if a.scrape == nil {
		return a.sendText(tgID, "El scraping no está configurado en este proceso.")
	}

	if err := a.sendText(tgID, "⏳ Lanzando scraping..."); err != nil {
		return err
	}
	stats, err := a.scrape(ctx)
	if err != nil {
		return a.sendText(tgID, "❌ Scraping fallido: "+err.Error())
	}
	return a.sendText(tgID, fmt.Sprintf(
		"✅ Scraping terminado (run %s)\nMeses: %d\nEncontradas: %d\nNuevas: %d\nActualizadas: %d\nErrores: %d",
		stats.RunID, stats.MonthsScraped, stats.CompetitionsFound, stats.Created, stats.Updated, stats.Errors))
}

func (a *App) cmdLastErrors(ctx context.Context, tgID int64) error {
	if !a.isAdmin(tgID) {
		return a.sendText(tgID, "Este comando es solo para administración.")
	}

	entries, err := a.errs.Recent(ctx, 10)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return a.sendText(tgID, "Sin errores registrados. 🎉")
	}

	var b strings.Builder
	b.WriteString("🧾 Últimos errores:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n[%s] %s", e.CreatedAt.Format("02/01 15:04"), e.Stage)
		if e.URL != "" {
			b.WriteString(" " + e.URL)
		}
		b.WriteString("\n" + truncate(e.Message, 200) + "\n")
	}
	return a.sendText(tgID, b.String())
}
