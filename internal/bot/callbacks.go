package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fam-bot/internal/competition"
	"fam-bot/internal/ics"
)

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	tgID := q.From.ID

	ack := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.bot.Request(ack)

	kind, args := parseCallback(q.Data)
	switch kind {
	case cbType:
		if len(args) != 1 {
			return nil
		}
		msg := tgbotapi.NewMessage(tgID, "Elige la prueba:")
		msg.ReplyMarkup = disciplineKeyboard(args[0])
		_, err := a.bot.Send(msg)
		return err

	case cbDiscipline:
		if len(args) != 1 {
			return nil
		}
		msg := tgbotapi.NewMessage(tgID, fmt.Sprintf("%s, ¿en qué categoría?", args[0]))
		msg.ReplyMarkup = sexKeyboard(args[0])
		_, err := a.bot.Send(msg)
		return err

	case cbSex:
		if len(args) != 2 {
			return nil
		}
		return a.finishSubscription(ctx, q, args[0], args[1])

	case cbUnsubscribe:
		if len(args) != 2 {
			return nil
		}
		return a.removeSubscription(ctx, q, args[0], args[1])

	case cbCalendar:
		if len(args) != 1 {
			return nil
		}
		return a.sendCalendarFile(ctx, tgID, args[0])
	}
	return nil
}

// finishSubscription stores the chosen subscription. "B" expands into
// both sexes; storage only ever sees M or F.
func (a *App) finishSubscription(ctx context.Context, q *tgbotapi.CallbackQuery, disc, sex string) error {
	tgID := q.From.ID
	user, err := a.users.GetOrCreate(ctx, tgID, q.From.UserName, q.From.FirstName)
	if err != nil {
		return err
	}

	sexes := []string{sex}
	if sex == "B" {
		sexes = []string{string(competition.SexMale), string(competition.SexFemale)}
	}
	for _, s := range sexes {
		if err := a.subs.Add(ctx, user.ID, disc, s); err != nil {
			return err
		}
	}

	label := disc
	switch sex {
	case string(competition.SexMale):
		label += " Masculino"
	case string(competition.SexFemale):
		label += " Femenino"
	default:
		label += " (ambos)"
	}
	return a.sendText(tgID, "✅ Suscripción añadida: "+label+"\nTe avisaré cuando haya competiciones con esta prueba.")
}

func (a *App) removeSubscription(ctx context.Context, q *tgbotapi.CallbackQuery, disc, sex string) error {
	tgID := q.From.ID
	user, err := a.users.GetOrCreate(ctx, tgID, q.From.UserName, q.From.FirstName)
	if err != nil {
		return err
	}
	if err := a.subs.Remove(ctx, user.ID, disc, sex); err != nil {
		return err
	}
	label := competition.Event{Discipline: disc, Sex: competition.Sex(sex)}.DisplayName()
	return a.sendText(tgID, "🗑 Suscripción eliminada: "+label)
}

// sendCalendarFile delivers a competition as an .ics attachment.
func (a *App) sendCalendarFile(ctx context.Context, tgID int64, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil
	}

	comp, err := a.comps.ByID(ctx, id)
	if err != nil {
		return err
	}
	if comp == nil {
		return a.sendText(tgID, "Esa competición ya no está en el calendario.")
	}

	file := tgbotapi.FileBytes{
		Name:  "competicion.ics",
		Bytes: []byte(ics.GenerateICS(comp.Domain())),
	}
	doc := tgbotapi.NewDocument(tgID, file)
	doc.Caption = comp.Name
	_, err = a.bot.Send(doc)
	return err
}
