package scraper

import "fmt"

// FetchError wraps any transport-level failure (connection, timeout,
// non-2xx status) behind a single recoverable error type. The unit of
// work that needed the document is skipped; nothing retries here.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
