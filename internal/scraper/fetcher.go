package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// Timeout bounds every calendar and PDF request.
	Timeout = 30 * time.Second

	// The site rejects bare default user agents, so requests carry a
	// realistic browser header set.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// Scraper fetches and parses the federation calendar.
type Scraper struct {
	client       *http.Client
	baseURL      string
	calendarPath string
	log          *zap.Logger
}

// New creates a Scraper for the given federation base URL and calendar path.
func New(baseURL, calendarPath string, log *zap.Logger) *Scraper {
	return &Scraper{
		client:       &http.Client{Timeout: Timeout},
		baseURL:      baseURL,
		calendarPath: calendarPath,
		log:          log,
	}
}

// calendarURL builds the month-filtered calendar URL. The site filters
// via temporada (year) and mes query parameters.
func (s *Scraper) calendarURL(month, year int) string {
	separator := "?"
	if strings.Contains(s.calendarPath, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s%stemporada=%d&mes=%d", s.baseURL, s.calendarPath, separator, year, month)
}

// FetchCalendarPage retrieves the calendar HTML for one month.
func (s *Scraper) FetchCalendarPage(ctx context.Context, month, year int) (string, error) {
	pageURL := s.calendarURL(month, year)
	body, err := s.get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadPDF retrieves the raw bytes of an announcement document.
func (s *Scraper) DownloadPDF(ctx context.Context, docURL string) ([]byte, error) {
	s.log.Info("downloading pdf", zap.String("url", docURL))
	return s.get(ctx, docURL)
}

func (s *Scraper) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	return body, nil
}

// absoluteURL resolves href against the scraper's base URL.
func (s *Scraper) absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
