// Package cli defines the fam-bot command tree: one-shot scrape, notify,
// migrate and cleanup passes, plus the long-running bot process that
// combines Telegram long polling with the daily scheduler.
package cli
