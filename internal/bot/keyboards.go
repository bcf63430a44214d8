package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fam-bot/internal/competition"
	"fam-bot/internal/storage"
)

const flowSearch = "buscar"

// Callback data is "<kind>:<arg>:..." with kinds:
//
//	st  subscribe, type chosen        st:carrera
//	sd  subscribe, discipline chosen  sd:60 Vallas
//	sx  subscribe, sex chosen         sx:60 Vallas:B
//	un  unsubscribe one subscription  un:60:F
//	cal send competition ICS          cal:42
const (
	cbType        = "st"
	cbDiscipline  = "sd"
	cbSex         = "sx"
	cbUnsubscribe = "un"
	cbCalendar    = "cal"
)

// Disciplines offered in the subscribe keyboards, canonical spelling.
var (
	trackDisciplines = []string{
		"60", "100", "200", "400", "800", "1500", "3000", "5000", "10000",
		"60 Vallas", "100 Vallas", "110 Vallas", "400 Vallas",
		"3000 Obstáculos", "4x100", "4x400",
	}
	fieldDisciplines = []string{
		"Altura", "Pértiga", "Longitud", "Triple Salto",
		"Peso", "Disco", "Martillo", "Jabalina",
	}
)

func callbackData(kind string, args ...string) string {
	return strings.Join(append([]string{kind}, args...), ":")
}

// parseCallback splits callback data into its kind and arguments.
func parseCallback(data string) (string, []string) {
	parts := strings.Split(data, ":")
	return parts[0], parts[1:]
}

func typeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏃 Carreras", callbackData(cbType, string(competition.EventTypeTrack))),
			tgbotapi.NewInlineKeyboardButtonData("🤸 Concursos", callbackData(cbType, string(competition.EventTypeField))),
		),
	)
}

func disciplineKeyboard(typ string) tgbotapi.InlineKeyboardMarkup {
	disciplines := trackDisciplines
	if typ == string(competition.EventTypeField) {
		disciplines = fieldDisciplines
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(disciplines); i += 3 {
		var row []tgbotapi.InlineKeyboardButton
		for _, d := range disciplines[i:min(i+3, len(disciplines))] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(d, callbackData(cbDiscipline, d)))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sexKeyboard(disc string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👨 Masculino", callbackData(cbSex, disc, "M")),
			tgbotapi.NewInlineKeyboardButtonData("👩 Femenino", callbackData(cbSex, disc, "F")),
			tgbotapi.NewInlineKeyboardButtonData("👫 Ambos", callbackData(cbSex, disc, "B")),
		),
	)
}

func unsubscribeKeyboard(subs []*storage.Subscription) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subs {
		label := competition.Event{
			Discipline: s.Discipline,
			Sex:        competition.Sex(s.Sex),
		}.DisplayName()
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ "+label, callbackData(cbUnsubscribe, s.Discipline, s.Sex)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func calendarKeyboard(comps []*storage.Competition) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range comps {
		label := fmt.Sprintf("📆 %s (%s)", truncate(c.Name, 40), c.Date.Format("02/01"))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbCalendar, fmt.Sprint(c.ID))),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
