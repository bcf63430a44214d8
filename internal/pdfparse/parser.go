package pdfparse

import (
	"time"

	"go.uber.org/zap"

	"fam-bot/internal/competition"
	"fam-bot/internal/hash"
)

const (
	defaultVenue = "Madrid"
	defaultName  = "Competición sin nombre"
)

// Options carries the calendar-row context for a document, used to fill
// fields the PDF itself lacks.
type Options struct {
	Name          string
	DocumentURL   string
	EnrollmentURL string
	Highlighted   bool
	Type          string
}

// Parser turns announcement documents into competitions.
type Parser struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Parser {
	return &Parser{log: log}
}

// Parse extracts a competition from document bytes. It returns a
// ParseError only when the document cannot be opened; every later
// failure degrades to defaults, so an unreadable schedule still yields a
// valid competition with zero events.
func (p *Parser) Parse(content []byte, opts Options) (*competition.Competition, error) {
	reader, err := openReader(content)
	if err != nil {
		return nil, err
	}

	var lines []string
	var tables []table
	for i := 1; i <= reader.NumPage(); i++ {
		pageLines, rows, perr := pageContent(reader, i)
		if perr != nil {
			p.log.Warn("skipping unreadable page",
				zap.String("url", opts.DocumentURL),
				zap.Int("page", i),
				zap.Error(perr))
			continue
		}
		lines = append(lines, pageLines...)
		tables = append(tables, segmentTables(rows)...)
	}

	comp := &competition.Competition{
		Name:             opts.Name,
		Venue:            defaultVenue,
		DocumentURL:      opts.DocumentURL,
		EnrollmentURL:    opts.EnrollmentURL,
		ContentHash:      hash.Bytes(content),
		HasModifications: opts.Highlighted,
		Type:             opts.Type,
	}

	if v := extractVenue(lines); v != "" {
		comp.Venue = v
	}

	if d, ok := extractDate(lines); ok {
		comp.Date = d
	} else {
		comp.Date = time.Now().UTC().Truncate(24 * time.Hour)
		p.log.Warn("no date in announcement, defaulting to today",
			zap.String("url", opts.DocumentURL))
	}

	if comp.Name == "" {
		comp.Name = extractName(lines)
	}
	if comp.Name == "" {
		comp.Name = defaultName
	}

	for _, t := range tables {
		comp.Events = append(comp.Events, tableEvents(t)...)
	}
	if len(comp.Events) == 0 {
		comp.Events = fallbackEvents(lines)
	}
	comp.Events = dedupeEvents(comp.Events)

	p.log.Info("announcement parsed",
		zap.String("name", comp.Name),
		zap.Int("tables", len(tables)),
		zap.Int("events", len(comp.Events)))
	return comp, nil
}
