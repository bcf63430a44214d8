package cli

import (
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"fam-bot/internal/notifier"
	"fam-bot/internal/storage"
)

var flagNotifyDryRun bool

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run one notification pass",
		RunE:  runNotify,
	}
	cmd.Flags().BoolVar(&flagNotifyDryRun, "dry-run", false, "Print messages without sending them")
	return cmd
}

func runNotify(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	var sender notifier.Sender
	if flagNotifyDryRun {
		sender = notifier.NewDryRunSender()
	} else {
		api, err := tgbotapi.NewBotAPI(e.cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("initializing telegram: %w", err)
		}
		sender = notifier.NewTelegramSender(api)
	}

	svc := notifier.NewService(
		storage.NewCompetitionRepo(e.db),
		storage.NewSubscriptionRepo(e.db),
		storage.NewNotificationRepo(e.db),
		sender,
		e.log,
	)
	stats, err := svc.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("notification pass: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(os.Stdout, stats)
	}
	return writeKV(os.Stdout, [][2]string{
		{"Users notified", fmt.Sprint(stats.UsersNotified)},
		{"Events notified", fmt.Sprint(stats.EventsNotified)},
		{"Skipped", fmt.Sprint(stats.Skipped)},
		{"Errors", fmt.Sprint(stats.Errors)},
	})
}
