package notifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fam-bot/internal/hash"
	"fam-bot/internal/storage"
)

// DefaultWindowDays is how far ahead the matcher looks.
const DefaultWindowDays = 7

type competitionSource interface {
	Upcoming(ctx context.Context, from, to time.Time) ([]*storage.Competition, error)
}

type subscriptionSource interface {
	AllWithUsers(ctx context.Context) ([]*storage.Subscription, error)
}

type deliveryLog interface {
	WasNotified(ctx context.Context, userID, eventID int64) (bool, error)
	Log(ctx context.Context, userID, eventID int64, messageHash string) error
}

// Stats summarizes one notification pass.
type Stats struct {
	UsersNotified  int `json:"usersNotified"`
	EventsNotified int `json:"eventsNotified"`
	Skipped        int `json:"skipped"`
	Errors         int `json:"errors"`
}

// Service matches upcoming events to subscriptions and delivers one
// message per user.
type Service struct {
	comps      competitionSource
	subs       subscriptionSource
	deliveries deliveryLog
	sender     Sender
	log        *zap.Logger
	windowDays int
	now        func() time.Time
}

func NewService(comps competitionSource, subs subscriptionSource, deliveries deliveryLog, sender Sender, log *zap.Logger) *Service {
	return &Service{
		comps:      comps,
		subs:       subs,
		deliveries: deliveries,
		sender:     sender,
		log:        log,
		windowDays: DefaultWindowDays,
		now:        time.Now,
	}
}

// Run executes one notification pass. A user's whole batch is delivered
// as one message; its events are logged only after a successful send, so
// a failed delivery is retried on the next pass.
func (s *Service) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	from := s.now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, s.windowDays)
	comps, err := s.comps.Upcoming(ctx, from, to)
	if err != nil {
		return stats, fmt.Errorf("loading upcoming competitions: %w", err)
	}
	subs, err := s.subs.AllWithUsers(ctx)
	if err != nil {
		return stats, fmt.Errorf("loading subscriptions: %w", err)
	}

	subsByKey := make(map[string][]*storage.Subscription)
	for _, sub := range subs {
		if sub.User == nil {
			continue
		}
		subsByKey[sub.Key()] = append(subsByKey[sub.Key()], sub)
	}

	batches := map[int64][]pending{}   // keyed by user ID
	users := map[int64]*storage.User{} // same key
	var order []int64

	for _, comp := range comps {
		for _, ev := range comp.Events {
			for _, sub := range subsByKey[ev.SubscriptionKey()] {
				if err := ctx.Err(); err != nil {
					return stats, err
				}
				sent, err := s.deliveries.WasNotified(ctx, sub.UserID, ev.ID)
				if err != nil {
					stats.Errors++
					s.log.Error("notification log lookup failed", zap.Error(err))
					continue
				}
				if sent {
					stats.Skipped++
					continue
				}
				if _, seen := batches[sub.UserID]; !seen {
					order = append(order, sub.UserID)
					users[sub.UserID] = sub.User
				}
				batches[sub.UserID] = append(batches[sub.UserID], pending{comp: comp, event: ev})
			}
		}
	}

	for _, userID := range order {
		items := batches[userID]
		user := users[userID]
		if err := s.sender.Send(ctx, user.TelegramID, formatMessage(items)); err != nil {
			stats.Errors++
			s.log.Error("delivery failed",
				zap.Int64("telegram_id", user.TelegramID),
				zap.Error(err))
			continue
		}
		stats.UsersNotified++
		for _, it := range items {
			digest := hash.Text(fmt.Sprintf("%d_%d", userID, it.event.ID))
			if err := s.deliveries.Log(ctx, userID, it.event.ID, digest); err != nil {
				stats.Errors++
				s.log.Error("recording delivery failed", zap.Error(err))
				continue
			}
			stats.EventsNotified++
		}
	}

	s.log.Info("notification pass finished",
		zap.Int("users", stats.UsersNotified),
		zap.Int("events", stats.EventsNotified),
		zap.Int("skipped", stats.Skipped),
		zap.Int("errors", stats.Errors))
	return stats, nil
}
