package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// NotificationRepo records which user has been told about which event.
type NotificationRepo struct {
	db *bun.DB
}

func NewNotificationRepo(db *bun.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// WasNotified reports whether the user already received this event.
func (r *NotificationRepo) WasNotified(ctx context.Context, userID, eventID int64) (bool, error) {
	exists, err := r.db.NewSelect().Model((*NotificationLog)(nil)).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("checking notification log: %w", err)
	}
	return exists, nil
}

// Log records a delivered notification. Concurrent duplicates lose to
// the unique (user_id, event_id) constraint and are silently dropped.
func (r *NotificationRepo) Log(ctx context.Context, userID, eventID int64, messageHash string) error {
	entry := &NotificationLog{
		UserID:      userID,
		EventID:     eventID,
		MessageHash: messageHash,
	}
	_, err := r.db.NewInsert().Model(entry).
		On("CONFLICT (user_id, event_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("logging notification: %w", err)
	}
	return nil
}

// ErrorRepo records scrape-run failures for the admin surface.
type ErrorRepo struct {
	db *bun.DB
}

func NewErrorRepo(db *bun.DB) *ErrorRepo {
	return &ErrorRepo{db: db}
}

// Log records one failure. Logging must never break the run, so callers
// treat the returned error as advisory.
func (r *ErrorRepo) Log(ctx context.Context, runID, stage, url, message string) error {
	entry := &ErrorLog{
		RunID:   runID,
		Stage:   stage,
		URL:     url,
		Message: message,
	}
	if _, err := r.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("logging error: %w", err)
	}
	return nil
}

// Recent returns the latest failures, newest first.
func (r *ErrorRepo) Recent(ctx context.Context, limit int) ([]*ErrorLog, error) {
	var entries []*ErrorLog
	err := r.db.NewSelect().Model(&entries).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading error log: %w", err)
	}
	return entries, nil
}
