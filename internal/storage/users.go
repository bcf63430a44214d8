package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// UserRepo persists Telegram subscribers.
type UserRepo struct {
	db *bun.DB
}

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetOrCreate registers a Telegram user on first contact and refreshes
// the stored handle on later ones.
func (r *UserRepo) GetOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*User, error) {
	user := &User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
	}
	_, err := r.db.NewInsert().Model(user).
		On("CONFLICT (telegram_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("first_name = EXCLUDED.first_name").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("upserting user: %w", err)
	}
	return user, nil
}

// Count returns the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*User)(nil)).Count(ctx)
}

// SubscriptionRepo persists per-user discipline subscriptions.
type SubscriptionRepo struct {
	db *bun.DB
}

func NewSubscriptionRepo(db *bun.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// Add subscribes a user to one discipline and sex. Adding an existing
// subscription is a no-op.
func (r *SubscriptionRepo) Add(ctx context.Context, userID int64, discipline, sex string) error {
	sub := &Subscription{
		UserID:     userID,
		Discipline: discipline,
		Sex:        sex,
	}
	_, err := r.db.NewInsert().Model(sub).
		On("CONFLICT (user_id, discipline, sex) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("adding subscription: %w", err)
	}
	return nil
}

// Remove drops one subscription. Removing a missing one is a no-op.
func (r *SubscriptionRepo) Remove(ctx context.Context, userID int64, discipline, sex string) error {
	_, err := r.db.NewDelete().Model((*Subscription)(nil)).
		Where("user_id = ? AND lower(discipline) = lower(?) AND sex = ?", userID, discipline, sex).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("removing subscription: %w", err)
	}
	return nil
}

// ByUser returns a user's subscriptions, oldest first.
func (r *SubscriptionRepo) ByUser(ctx context.Context, userID int64) ([]*Subscription, error) {
	var subs []*Subscription
	err := r.db.NewSelect().Model(&subs).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subscriptions: %w", err)
	}
	return subs, nil
}

// AllWithUsers returns every subscription with its user loaded, for the
// notification matcher.
func (r *SubscriptionRepo) AllWithUsers(ctx context.Context) ([]*Subscription, error) {
	var subs []*Subscription
	err := r.db.NewSelect().Model(&subs).
		Relation("User").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading all subscriptions: %w", err)
	}
	return subs, nil
}

// Count returns the number of stored subscriptions.
func (r *SubscriptionRepo) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Subscription)(nil)).Count(ctx)
}
