package storage

import (
	"strings"
	"time"

	"github.com/uptrace/bun"

	"fam-bot/internal/competition"
)

// Competition is one stored announcement.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:c"`

	ID               int64     `bun:"id,pk,autoincrement"`
	Name             string    `bun:"name,notnull"`
	Date             time.Time `bun:"date,notnull,type:date"`
	AdditionalDates  string    `bun:"additional_dates"` // comma-joined YYYY-MM-DD
	Venue            string    `bun:"venue"`
	PDFURL           string    `bun:"pdf_url,notnull"`
	EnrollmentURL    string    `bun:"enrollment_url"`
	ContentHash      string    `bun:"content_hash"`
	HasModifications bool      `bun:"has_modifications,notnull,default:false"`
	Type             string    `bun:"type"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Events []*Event `bun:"rel:has-many,join:id=competition_id"`
}

// Event is one stored test of a competition.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID            int64  `bun:"id,pk,autoincrement"`
	CompetitionID int64  `bun:"competition_id,notnull"`
	Discipline    string `bun:"discipline,notnull"`
	Type          string `bun:"type,notnull"`
	Sex           string `bun:"sex,notnull"`
	ScheduledTime string `bun:"scheduled_time"`
	Category      string `bun:"category"`

	Competition *Competition `bun:"rel:belongs-to,join:competition_id=id"`
}

// SubscriptionKey is the matching key against subscriptions.
func (e *Event) SubscriptionKey() string {
	return competition.SubscriptionKey(e.Discipline, competition.Sex(e.Sex))
}

// User is one Telegram subscriber.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         int64     `bun:"id,pk,autoincrement"`
	TelegramID int64     `bun:"telegram_id,notnull,unique"`
	Username   string    `bun:"username"`
	FirstName  string    `bun:"first_name"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Subscriptions []*Subscription `bun:"rel:has-many,join:id=user_id"`
}

// Subscription is one discipline a user wants to hear about. Sex is
// always M or F; "both" is expanded before it reaches storage.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:s"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Discipline string    `bun:"discipline,notnull"`
	Sex        string    `bun:"sex,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}

// Key is the matching key against events.
func (s *Subscription) Key() string {
	return competition.SubscriptionKey(s.Discipline, competition.Sex(s.Sex))
}

// NotificationLog records one delivered event notification; its unique
// (user_id, event_id) pair is what makes notifications once-only.
type NotificationLog struct {
	bun.BaseModel `bun:"table:notification_log,alias:n"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      int64     `bun:"user_id,notnull"`
	EventID     int64     `bun:"event_id,notnull"`
	MessageHash string    `bun:"message_hash,notnull"`
	SentAt      time.Time `bun:"sent_at,notnull,default:current_timestamp"`
}

// ErrorLog records one scrape-run failure for the admin surface.
type ErrorLog struct {
	bun.BaseModel `bun:"table:error_log,alias:el"`

	ID        int64     `bun:"id,pk,autoincrement"`
	RunID     string    `bun:"run_id,notnull"`
	Stage     string    `bun:"stage,notnull"`
	URL       string    `bun:"url"`
	Message   string    `bun:"message,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

const dateLayout = "2006-01-02"

// NewCompetition converts a parsed competition into its storage row,
// events included.
func NewCompetition(dc *competition.Competition) *Competition {
	row := &Competition{
		Name:             dc.Name,
		Date:             dc.Date,
		Venue:            dc.Venue,
		PDFURL:           dc.DocumentURL,
		EnrollmentURL:    dc.EnrollmentURL,
		ContentHash:      dc.ContentHash,
		HasModifications: dc.HasModifications,
		Type:             dc.Type,
	}
	row.SetAdditionalDates(dc.AdditionalDates)
	for _, ev := range dc.Events {
		row.Events = append(row.Events, &Event{
			Discipline:    ev.Discipline,
			Type:          string(ev.Type),
			Sex:           string(ev.Sex),
			ScheduledTime: ev.ScheduledTime,
			Category:      ev.Category,
		})
	}
	return row
}

// Domain converts the row back into the domain model.
func (c *Competition) Domain() *competition.Competition {
	dc := &competition.Competition{
		Name:             c.Name,
		Date:             c.Date,
		AdditionalDates:  c.AdditionalDatesList(),
		Venue:            c.Venue,
		DocumentURL:      c.PDFURL,
		EnrollmentURL:    c.EnrollmentURL,
		ContentHash:      c.ContentHash,
		HasModifications: c.HasModifications,
		Type:             c.Type,
	}
	for _, ev := range c.Events {
		dc.Events = append(dc.Events, competition.Event{
			Discipline:    ev.Discipline,
			Type:          competition.EventType(ev.Type),
			Sex:           competition.Sex(ev.Sex),
			ScheduledTime: ev.ScheduledTime,
			Category:      ev.Category,
		})
	}
	return dc
}

// SetAdditionalDates stores the extra meet days as a sorted text column.
func (c *Competition) SetAdditionalDates(dates []time.Time) {
	var parts []string
	for _, d := range dates {
		if !d.IsZero() {
			parts = append(parts, d.Format(dateLayout))
		}
	}
	c.AdditionalDates = strings.Join(parts, ",")
}

// AdditionalDatesList parses the extra meet days back out of the column.
func (c *Competition) AdditionalDatesList() []time.Time {
	if c.AdditionalDates == "" {
		return nil
	}
	var dates []time.Time
	for _, part := range strings.Split(c.AdditionalDates, ",") {
		if d, err := time.Parse(dateLayout, strings.TrimSpace(part)); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}
