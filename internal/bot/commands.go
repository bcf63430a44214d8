package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fam-bot/internal/competition"
	"fam-bot/internal/discipline"
	"fam-bot/internal/storage"
)

const helpText = `🏃 Bot del calendario de atletismo de Madrid

/suscribir — recibir avisos de una prueba
/mis_pruebas — ver tus suscripciones
/desuscribir — quitar una suscripción
/proximas — competiciones de los próximos días
/buscar <prueba> — buscar una prueba en el calendario
/ayuda — este mensaje`

func (a *App) cmdStart(ctx context.Context, m *tgbotapi.Message) error {
	user, err := a.users.GetOrCreate(ctx, m.From.ID, m.From.UserName, m.From.FirstName)
	if err != nil {
		return err
	}
	a.log.Info("user started", zap.Int64("user_id", user.ID), zap.Int64("telegram_id", user.TelegramID))

	welcome := "¡Hola"
	if m.From.FirstName != "" {
		welcome += ", " + m.From.FirstName
	}
	welcome += "! Te avisaré cuando se publiquen competiciones con tus pruebas.\n\n" + helpText
	return a.sendText(m.From.ID, welcome)
}

func (a *App) cmdHelp(tgID int64) error {
	return a.sendText(tgID, helpText)
}

func (a *App) cmdSubscribe(tgID int64) error {
	msg := tgbotapi.NewMessage(tgID, "¿Qué tipo de prueba te interesa?")
	msg.ReplyMarkup = typeKeyboard()
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) cmdMySubscriptions(ctx context.Context, m *tgbotapi.Message) error {
	user, err := a.users.GetOrCreate(ctx, m.From.ID, m.From.UserName, m.From.FirstName)
	if err != nil {
		return err
	}
	subs, err := a.subs.ByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return a.sendText(m.From.ID, "No tienes suscripciones todavía. Usa /suscribir para añadir una.")
	}

	var b strings.Builder
	b.WriteString("📋 Tus suscripciones:\n")
	for _, s := range subs {
		label := competition.Event{Discipline: s.Discipline, Sex: competition.Sex(s.Sex)}.DisplayName()
		b.WriteString("• " + label + "\n")
	}
	b.WriteString("\nUsa /desuscribir para quitar alguna.")
	return a.sendText(m.From.ID, b.String())
}

func (a *App) cmdUnsubscribe(ctx context.Context, m *tgbotapi.Message) error {
	user, err := a.users.GetOrCreate(ctx, m.From.ID, m.From.UserName, m.From.FirstName)
	if err != nil {
		return err
	}
	subs, err := a.subs.ByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return a.sendText(m.From.ID, "No tienes suscripciones que quitar.")
	}
	msg := tgbotapi.NewMessage(m.From.ID, "Elige la suscripción a quitar:")
	msg.ReplyMarkup = unsubscribeKeyboard(subs)
	_, err = a.bot.Send(msg)
	return err
}

func (a *App) cmdUpcoming(ctx context.Context, tgID int64) error {
	from := time.Now().Truncate(24 * time.Hour)
	comps, err := a.comps.Upcoming(ctx, from, from.AddDate(0, 0, 14))
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		return a.sendText(tgID, "No hay competiciones en los próximos 14 días.")
	}
	if len(comps) > 10 {
		comps = comps[:10]
	}

	msg := tgbotapi.NewMessage(tgID, formatCompetitionList("📅 Próximas competiciones:", comps))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = calendarKeyboard(comps)
	_, err = a.bot.Send(msg)
	return err
}

func (a *App) cmdSearch(ctx context.Context, tgID int64, args string) error {
	if args == "" {
		a.setFlow(tgID, flowSearch)
		return a.sendText(tgID, "¿Qué prueba buscas? (por ejemplo: 60, pértiga, triple salto)")
	}
	return a.searchDiscipline(ctx, tgID, args)
}

func (a *App) searchDiscipline(ctx context.Context, tgID int64, query string) error {
	disc := discipline.Normalize(query)
	if d, ok := discipline.Detect(query); ok {
		disc = d
	}

	from := time.Now().Truncate(24 * time.Hour)
	comps, err := a.comps.SearchDiscipline(ctx, disc, from)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		return a.sendText(tgID, fmt.Sprintf("No hay competiciones próximas con %q.", disc))
	}
	if len(comps) > 10 {
		comps = comps[:10]
	}

	header := fmt.Sprintf("🔎 Competiciones con <b>%s</b>:", html.EscapeString(disc))
	msg := tgbotapi.NewMessage(tgID, formatCompetitionList(header, comps))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = calendarKeyboard(comps)
	_, err = a.bot.Send(msg)
	return err
}

// formatCompetitionList renders competitions as a compact HTML list.
func formatCompetitionList(header string, comps []*storage.Competition) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, c := range comps {
		b.WriteString("\n")
		fmt.Fprintf(&b, "🗓 %s — <b>%s</b>\n", c.Domain().DateDisplay(), html.EscapeString(c.Name))
		if c.Venue != "" {
			fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(c.Venue))
		}
		if c.PDFURL != "" {
			fmt.Fprintf(&b, `📄 <a href="%s">Reglamento</a>`+"\n", c.PDFURL)
		}
	}
	return b.String()
}
