package store

import (
	"context"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const eventColumns = "id, user_id, title, description, starts_at, ends_at, all_day, created_at, updated_at"

// CreateEvent inserts a calendar event owned by ev.UserID.
func (s *Store) CreateEvent(ctx context.Context, ev *models.CalendarEvent) error {
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	id, err := s.insert(ctx,
		"INSERT INTO calendar_events (user_id, title, description, starts_at, ends_at, all_day, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		ev.UserID, ev.Title, ev.Description, ev.StartsAt, ev.EndsAt, ev.AllDay, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return err
	}
	ev.ID = id
	return nil
}

// GetEvent retrieves an event by id, constrained to its owner. A row owned
// by someone else is indistinguishable from a missing one.
func (s *Store) GetEvent(ctx context.Context, id, userID int64) (*models.CalendarEvent, error) {
	ev := &models.CalendarEvent{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+eventColumns+" FROM calendar_events WHERE id = ? AND user_id = ?"),
		id, userID,
	).Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Description, &ev.StartsAt, &ev.EndsAt, &ev.AllDay, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return ev, nil
}

// ListEvents returns the user's events, optionally constrained to the
// [from, to) window when either bound is non-zero.
func (s *Store) ListEvents(ctx context.Context, userID int64, from, to time.Time) ([]*models.CalendarEvent, error) {
	query := "SELECT " + eventColumns + " FROM calendar_events WHERE user_id = ?"
	args := []interface{}{userID}
	if !from.IsZero() {
		query += " AND starts_at >= ?"
		args = append(args, from)
	}
	if !to.IsZero() {
		query += " AND starts_at < ?"
		args = append(args, to)
	}
	query += " ORDER BY starts_at"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.CalendarEvent
	for rows.Next() {
		ev := &models.CalendarEvent{}
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Description, &ev.StartsAt, &ev.EndsAt, &ev.AllDay, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// UpdateEvent updates an event. The WHERE clause carries both the id and the
// owner so a non-owner update affects zero rows and reports ErrNotFound.
func (s *Store) UpdateEvent(ctx context.Context, ev *models.CalendarEvent) error {
	ev.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE calendar_events SET title = ?, description = ?, starts_at = ?, ends_at = ?, all_day = ?, updated_at = ? WHERE id = ? AND user_id = ?"),
		ev.Title, ev.Description, ev.StartsAt, ev.EndsAt, ev.AllDay, ev.UpdatedAt, ev.ID, ev.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteEvent removes an event owned by userID.
func (s *Store) DeleteEvent(ctx context.Context, id, userID int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"DELETE FROM calendar_events WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}
