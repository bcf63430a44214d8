package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fam-bot/internal/orchestrator"
	"fam-bot/internal/pdfparse"
	"fam-bot/internal/scraper"
	"fam-bot/internal/storage"
)

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Run one scraping pass over the current and next month",
		RunE:  runScrape,
	}
}

func runScrape(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	o := orchestrator.New(
		scraper.New(e.cfg.FAMBaseURL, e.cfg.FAMCalendarPath, e.log),
		pdfparse.New(e.log),
		storage.NewCompetitionRepo(e.db),
		storage.NewErrorRepo(e.db),
		e.log,
	)
	stats, err := o.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scraping pass: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(os.Stdout, stats)
	}
	return writeKV(os.Stdout, [][2]string{
		{"Run", stats.RunID},
		{"Months scraped", fmt.Sprint(stats.MonthsScraped)},
		{"Competitions found", fmt.Sprint(stats.CompetitionsFound)},
		{"Created", fmt.Sprint(stats.Created)},
		{"Updated", fmt.Sprint(stats.Updated)},
		{"Unchanged", fmt.Sprint(stats.Unchanged)},
		{"Errors", fmt.Sprint(stats.Errors)},
	})
}
