// Package storage persists competitions, subscribers and notification
// history in PostgreSQL via bun.
//
// Competitions are identified by their (pdf_url, name) pair: the same
// document republished under a new name is a new competition, and upsert
// decisions compare the stored content hash against the incoming one.
package storage
