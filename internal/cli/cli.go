package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"fam-bot/internal/config"
	"fam-bot/internal/logger"
	"fam-bot/internal/storage"
)

var flagFormat string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fam-bot",
		Short: "Competition calendar scraper and notification bot",
		Long: `fam-bot scrapes the Madrid athletics federation calendar, extracts
competition announcements from their PDF documents and notifies
subscribed Telegram users about the disciplines they follow.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	cmd.AddCommand(
		newScrapeCmd(),
		newNotifyCmd(),
		newBotCmd(),
		newMigrateCmd(),
		newCleanupCmd(),
	)
	return cmd
}

// env bundles the pieces every subcommand needs.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *bun.DB
}

func newEnv() (*env, error) {
	cfg := config.Load()
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return &env{cfg: cfg, log: log, db: storage.Setup(cfg)}, nil
}

func (e *env) close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}
