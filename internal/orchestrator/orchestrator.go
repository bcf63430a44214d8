package orchestrator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fam-bot/internal/competition"
	"fam-bot/internal/pdfparse"
	"fam-bot/internal/scraper"
	"fam-bot/internal/storage"
)

// calendarSource lists a month's competitions and fetches documents.
type calendarSource interface {
	Competitions(ctx context.Context, month, year int) ([]competition.RawEntry, error)
	DownloadPDF(ctx context.Context, url string) ([]byte, error)
}

// announcementParser turns document bytes into a competition.
type announcementParser interface {
	Parse(content []byte, opts pdfparse.Options) (*competition.Competition, error)
}

// store persists competitions.
type store interface {
	Upsert(ctx context.Context, c *competition.Competition) (storage.Action, error)
}

// errorSink records failures for the admin surface. It is advisory;
// a failing sink never fails the run.
type errorSink interface {
	Log(ctx context.Context, runID, stage, url, message string) error
}

// Stats summarizes one scraping pass.
type Stats struct {
	RunID             string `json:"runId"`
	MonthsScraped     int    `json:"monthsScraped"`
	CompetitionsFound int    `json:"competitionsFound"`
	Created           int    `json:"created"`
	Updated           int    `json:"updated"`
	Unchanged         int    `json:"unchanged"`
	Errors            int    `json:"errors"`
}

// Orchestrator runs scraping passes.
type Orchestrator struct {
	source calendarSource
	parser announcementParser
	store  store
	errors errorSink
	log    *zap.Logger
	now    func() time.Time
}

func New(source calendarSource, parser announcementParser, store store, errors errorSink, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		source: source,
		parser: parser,
		store:  store,
		errors: errors,
		log:    log,
		now:    time.Now,
	}
}

// Run executes one pass over the current and next month. Only context
// cancellation returns an error; every other failure is recorded in the
// stats and the error log.
func (o *Orchestrator) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{RunID: uuid.NewString()}
	o.log.Info("scraping pass started", zap.String("run_id", stats.RunID))

	for _, my := range scraper.CurrentAndNextMonths(o.now()) {
		entries, err := o.source.Competitions(ctx, my.Month, my.Year)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Errors++
			o.recordError(ctx, stats.RunID, "calendar", "", err)
			continue
		}
		stats.MonthsScraped++
		stats.CompetitionsFound += len(entries)

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			o.processEntry(ctx, stats, entry, my)
		}
	}

	o.log.Info("scraping pass finished",
		zap.String("run_id", stats.RunID),
		zap.Int("months", stats.MonthsScraped),
		zap.Int("found", stats.CompetitionsFound),
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("unchanged", stats.Unchanged),
		zap.Int("errors", stats.Errors))
	return stats, nil
}

func (o *Orchestrator) processEntry(ctx context.Context, stats *Stats, entry competition.RawEntry, my scraper.MonthYear) {
	comp := o.buildCompetition(ctx, stats, entry, my)
	if comp == nil {
		return
	}

	action, err := o.store.Upsert(ctx, comp)
	if err != nil {
		stats.Errors++
		o.recordError(ctx, stats.RunID, "upsert", entry.DocumentURL, err)
		return
	}
	switch action {
	case storage.ActionCreate:
		stats.Created++
	case storage.ActionUpdate:
		stats.Updated++
	default:
		stats.Unchanged++
	}
}

// buildCompetition parses the entry's document, degrading to a minimal
// calendar-only competition when the document cannot be fetched or
// parsed. A nil result means the entry carries too little to store.
func (o *Orchestrator) buildCompetition(ctx context.Context, stats *Stats, entry competition.RawEntry, my scraper.MonthYear) *competition.Competition {
	if !isPDFLink(entry.DocumentURL) {
		return o.basicRecord(entry, my)
	}

	content, err := o.source.DownloadPDF(ctx, entry.DocumentURL)
	if err != nil {
		stats.Errors++
		o.recordError(ctx, stats.RunID, "download", entry.DocumentURL, err)
		return o.basicRecord(entry, my)
	}

	comp, err := o.parser.Parse(content, pdfparse.Options{
		Name:          entry.Name,
		DocumentURL:   entry.DocumentURL,
		EnrollmentURL: entry.EnrollmentURL,
		Highlighted:   entry.Highlighted,
		Type:          entry.Type,
	})
	if err != nil {
		stats.Errors++
		o.recordError(ctx, stats.RunID, "parse", entry.DocumentURL, err)
		return o.basicRecord(entry, my)
	}

	o.mergeCalendarData(comp, entry, my)
	return comp
}

// mergeCalendarData overlays calendar-row facts onto a parsed
// competition. The published calendar is authoritative for dates; the
// document's own date only stands when the calendar cell was
// unparseable.
func (o *Orchestrator) mergeCalendarData(comp *competition.Competition, entry competition.RawEntry, my scraper.MonthYear) {
	if d, ok := competition.ParseDayMonth(entry.DateText, my.Year); ok {
		comp.Date = d
	}
	for _, extra := range entry.ExtraDates {
		if d, ok := competition.ParseDayMonth(extra, my.Year); ok {
			comp.AdditionalDates = append(comp.AdditionalDates, d)
		}
	}
	if comp.Venue == "Madrid" && entry.Venue != "" {
		comp.Venue = entry.Venue
	}
}

// isPDFLink reports whether a document link points at a PDF. Some rows
// link HTML circulars or external registration pages instead; those carry
// no parseable schedule and degrade to the calendar-only record without
// counting as failures.
func isPDFLink(url string) bool {
	return strings.Contains(strings.ToLower(url), ".pdf")
}

// basicRecord builds a minimal competition from the calendar row alone,
// with no events. Entries without even a name are dropped.
func (o *Orchestrator) basicRecord(entry competition.RawEntry, my scraper.MonthYear) *competition.Competition {
	if entry.Name == "" {
		return nil
	}
	comp := &competition.Competition{
		Name:             entry.Name,
		Venue:            entry.Venue,
		DocumentURL:      entry.DocumentURL,
		EnrollmentURL:    entry.EnrollmentURL,
		HasModifications: entry.Highlighted,
		Type:             entry.Type,
	}
	if comp.Venue == "" {
		comp.Venue = "Madrid"
	}
	if d, ok := competition.ParseDayMonth(entry.DateText, my.Year); ok {
		comp.Date = d
	} else {
		comp.Date = time.Date(my.Year, time.Month(my.Month), 1, 0, 0, 0, 0, time.UTC)
	}
	for _, extra := range entry.ExtraDates {
		if d, ok := competition.ParseDayMonth(extra, my.Year); ok {
			comp.AdditionalDates = append(comp.AdditionalDates, d)
		}
	}
	return comp
}

func (o *Orchestrator) recordError(ctx context.Context, runID, stage, url string, err error) {
	o.log.Error("scraping error",
		zap.String("run_id", runID),
		zap.String("stage", stage),
		zap.String("url", url),
		zap.Error(err))
	if o.errors == nil {
		return
	}
	if logErr := o.errors.Log(ctx, runID, stage, url, err.Error()); logErr != nil {
		o.log.Warn("error sink failed", zap.Error(logErr))
	}
}
