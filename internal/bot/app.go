package bot

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fam-bot/internal/config"
	"fam-bot/internal/orchestrator"
	"fam-bot/internal/storage"
)

// ScrapeFunc triggers one scraping pass, for the admin /force_scrape
// command.
type ScrapeFunc func(ctx context.Context) (*orchestrator.Stats, error)

// App is the long-polling Telegram bot.
type App struct {
	cfg    *config.Config
	bot    *tgbotapi.BotAPI
	users  *storage.UserRepo
	subs   *storage.SubscriptionRepo
	comps  *storage.CompetitionRepo
	errs   *storage.ErrorRepo
	scrape ScrapeFunc
	log    *zap.Logger

	mu    sync.Mutex
	state map[int64]userState
}

// userState is the in-memory flow state for one chat.
type userState struct {
	Flow string
}

func New(cfg *config.Config, api *tgbotapi.BotAPI, users *storage.UserRepo, subs *storage.SubscriptionRepo, comps *storage.CompetitionRepo, errs *storage.ErrorRepo, scrape ScrapeFunc, log *zap.Logger) *App {
	return &App{
		cfg:    cfg,
		bot:    api,
		users:  users,
		subs:   subs,
		comps:  comps,
		errs:   errs,
		scrape: scrape,
		log:    log,
		state:  map[int64]userState{},
	}
}

// Run consumes updates until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	a.log.Info("bot started", zap.String("username", a.bot.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				if err := a.handleMessage(ctx, upd.Message); err != nil {
					a.log.Error("handling message", zap.Error(err))
				}
			} else if upd.CallbackQuery != nil {
				if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
					a.log.Error("handling callback", zap.Error(err))
				}
			}
		}
	}
}

func (a *App) setFlow(tgID int64, flow string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if flow == "" {
		delete(a.state, tgID)
		return
	}
	a.state[tgID] = userState{Flow: flow}
}

func (a *App) flow(tgID int64) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state[tgID].Flow
}

func (a *App) isAdmin(tgID int64) bool {
	return a.cfg.AdminChatID != 0 && tgID == a.cfg.AdminChatID
}

func (a *App) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) sendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	tgID := m.From.ID
	txt := strings.TrimSpace(m.Text)

	if strings.HasPrefix(txt, "/") {
		a.setFlow(tgID, "")
		cmd, args := splitCommand(txt)
		switch cmd {
		case "/start":
			return a.cmdStart(ctx, m)
		case "/ayuda", "/help":
			return a.cmdHelp(tgID)
		case "/suscribir":
			return a.cmdSubscribe(tgID)
		case "/mis_pruebas":
			return a.cmdMySubscriptions(ctx, m)
		case "/desuscribir":
			return a.cmdUnsubscribe(ctx, m)
		case "/proximas":
			return a.cmdUpcoming(ctx, tgID)
		case "/buscar":
			return a.cmdSearch(ctx, tgID, args)
		case "/status":
			return a.cmdStatus(ctx, tgID)
		case "/force_scrape":
			return a.cmdForceScrape(ctx, tgID)
		case "/last_errors":
			return a.cmdLastErrors(ctx, tgID)
		default:
			return a.sendText(tgID, "Comando desconocido. Usa /ayuda para ver los disponibles.")
		}
	}

	if a.flow(tgID) == flowSearch {
		a.setFlow(tgID, "")
		return a.searchDiscipline(ctx, tgID, txt)
	}

	return a.cmdHelp(tgID)
}

// splitCommand separates "/buscar pértiga" into the command and its
// argument, dropping the @botname suffix groups add.
func splitCommand(txt string) (string, string) {
	cmd, args, _ := strings.Cut(txt, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd, strings.TrimSpace(args)
}
