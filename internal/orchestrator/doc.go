// Package orchestrator drives one scraping pass: calendar months in,
// upserted competitions out.
//
// Failures are isolated at the smallest unit that needed the failing
// resource. A month whose calendar page cannot be fetched is skipped; an
// entry whose document cannot be fetched or parsed degrades to a minimal
// competition built from the calendar row alone. Nothing aborts the run
// except context cancellation, checked between entries.
package orchestrator
