package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fam-bot/internal/bot"
	"fam-bot/internal/notifier"
	"fam-bot/internal/orchestrator"
	"fam-bot/internal/pdfparse"
	"fam-bot/internal/scheduler"
	"fam-bot/internal/scraper"
	"fam-bot/internal/storage"
)

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot with the daily scrape/notify/cleanup scheduler",
		RunE:  runBot,
	}
}

func runBot(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if e.cfg.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required for the bot process")
	}
	api, err := tgbotapi.NewBotAPI(e.cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("initializing telegram: %w", err)
	}

	if err := storage.CreateTables(cmd.Context(), e.db); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	compRepo := storage.NewCompetitionRepo(e.db)
	userRepo := storage.NewUserRepo(e.db)
	subRepo := storage.NewSubscriptionRepo(e.db)
	notifRepo := storage.NewNotificationRepo(e.db)
	errRepo := storage.NewErrorRepo(e.db)

	o := orchestrator.New(
		scraper.New(e.cfg.FAMBaseURL, e.cfg.FAMCalendarPath, e.log),
		pdfparse.New(e.log),
		compRepo,
		errRepo,
		e.log,
	)
	notifySvc := notifier.NewService(compRepo, subRepo, notifRepo, notifier.NewTelegramSender(api), e.log)

	sched, err := scheduler.New(e.cfg, scheduler.Jobs{
		Scrape: func(ctx context.Context) error {
			_, err := o.Run(ctx)
			return err
		},
		Notify: func(ctx context.Context) error {
			_, err := notifySvc.Run(ctx)
			return err
		},
		Cleanup: func(ctx context.Context) error {
			cutoff := scheduler.RetentionCutoff(1)
			deleted, err := compRepo.DeleteBefore(ctx, cutoff)
			if err != nil {
				return err
			}
			e.log.Info("cleanup finished", zap.Int64("deleted", deleted))
			return nil
		},
	}, e.log)
	if err != nil {
		return err
	}

	app := bot.New(e.cfg, api, userRepo, subRepo, compRepo, errRepo, o.Run, e.log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	defer sched.Stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("bot stopped: %w", err)
	}
	e.log.Info("shutting down")
	return nil
}
