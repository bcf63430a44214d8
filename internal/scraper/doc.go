// Package scraper fetches the federation's competition calendar and turns
// its HTML listing into raw competition entries, and downloads the
// announcement PDFs linked from it.
//
// The calendar markup has changed versions over time, so table discovery
// tries several strategies before giving up; a page with no recognizable
// calendar yields zero entries, not an error. Transport failures are
// translated into *FetchError and left to the orchestrator; the fetcher
// itself never retries.
package scraper
