package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"fam-bot/internal/competition"
)

// CompetitionRepo persists competitions and their events.
type CompetitionRepo struct {
	db *bun.DB
}

func NewCompetitionRepo(db *bun.DB) *CompetitionRepo {
	return &CompetitionRepo{db: db}
}

// Upsert stores a parsed competition. Identity is the (pdf_url, name)
// pair; an unchanged document is a no-op, a changed one replaces the
// stored row and its events wholesale, together with the events'
// delivery history, so a changed schedule gets announced again. The
// whole operation is one transaction.
func (r *CompetitionRepo) Upsert(ctx context.Context, dc *competition.Competition) (Action, error) {
	var action Action
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := new(Competition)
		err := tx.NewSelect().Model(existing).
			Where("pdf_url = ? AND name = ?", dc.DocumentURL, dc.Name).
			Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			existing = nil
		case err != nil:
			return fmt.Errorf("looking up competition: %w", err)
		}

		action = PlanUpsert(existing, dc.ContentHash, dc.EnrollmentURL)
		if action == ActionNoop {
			return nil
		}

		row := NewCompetition(dc)
		row.UpdatedAt = time.Now()

		if action == ActionCreate {
			row.CreatedAt = row.UpdatedAt
			if _, err := tx.NewInsert().Model(row).ExcludeColumn("id").Returning("id").Exec(ctx); err != nil {
				return fmt.Errorf("inserting competition: %w", err)
			}
		} else {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			if _, err := tx.NewUpdate().Model(row).WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("updating competition: %w", err)
			}
			if _, err := tx.NewDelete().Model((*NotificationLog)(nil)).
				Where("event_id IN (SELECT id FROM events WHERE competition_id = ?)", row.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("clearing notification history: %w", err)
			}
			if _, err := tx.NewDelete().Model((*Event)(nil)).
				Where("competition_id = ?", row.ID).Exec(ctx); err != nil {
				return fmt.Errorf("clearing events: %w", err)
			}
		}

		for _, ev := range row.Events {
			ev.CompetitionID = row.ID
		}
		if len(row.Events) > 0 {
			if _, err := tx.NewInsert().Model(&row.Events).Exec(ctx); err != nil {
				return fmt.Errorf("inserting events: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return ActionNoop, err
	}
	return action, nil
}

// ByID returns one competition with its events, or nil when absent.
func (r *CompetitionRepo) ByID(ctx context.Context, id int64) (*Competition, error) {
	comp := new(Competition)
	err := r.db.NewSelect().Model(comp).
		Relation("Events").
		Where("c.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading competition %d: %w", id, err)
	}
	return comp, nil
}

// Upcoming returns competitions dated within [from, to], events loaded,
// soonest first.
func (r *CompetitionRepo) Upcoming(ctx context.Context, from, to time.Time) ([]*Competition, error) {
	var comps []*Competition
	err := r.db.NewSelect().Model(&comps).
		Relation("Events").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading upcoming competitions: %w", err)
	}
	return comps, nil
}

// SearchDiscipline returns upcoming competitions that schedule the given
// discipline, events loaded.
func (r *CompetitionRepo) SearchDiscipline(ctx context.Context, disc string, from time.Time) ([]*Competition, error) {
	var comps []*Competition
	err := r.db.NewSelect().Model(&comps).
		Relation("Events").
		Where("c.date >= ?", from).
		Where("EXISTS (SELECT 1 FROM events e WHERE e.competition_id = c.id AND lower(e.discipline) = lower(?))", disc).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching competitions: %w", err)
	}
	return comps, nil
}

// DeleteBefore removes competitions dated strictly before the cutoff,
// together with their events and notification history. Returns the
// number of competitions removed.
func (r *CompetitionRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*NotificationLog)(nil)).
			Where("event_id IN (SELECT e.id FROM events e JOIN competitions c ON c.id = e.competition_id WHERE c.date < ?)", cutoff).
			Exec(ctx); err != nil {
			return fmt.Errorf("clearing notification history: %w", err)
		}
		if _, err := tx.NewDelete().Model((*Event)(nil)).
			Where("competition_id IN (SELECT id FROM competitions WHERE date < ?)", cutoff).
			Exec(ctx); err != nil {
			return fmt.Errorf("clearing events: %w", err)
		}
		res, err := tx.NewDelete().Model((*Competition)(nil)).
			Where("date < ?", cutoff).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("deleting competitions: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

// Count returns the number of stored competitions.
func (r *CompetitionRepo) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Competition)(nil)).Count(ctx)
}
