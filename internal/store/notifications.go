package store

import (
	"context"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const notificationColumns = "id, user_id, title, body, is_read, created_at"

// CreateNotification inserts a notification for a single user.
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now().UTC()

	id, err := s.insert(ctx,
		"INSERT INTO notifications (user_id, title, body, is_read, created_at) VALUES (?, ?, ?, ?, ?)",
		n.UserID, n.Title, n.Body, n.Read, n.CreatedAt,
	)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// GetNotification retrieves a notification by id, constrained to its owner.
func (s *Store) GetNotification(ctx context.Context, id, userID int64) (*models.Notification, error) {
	n := &models.Notification{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+notificationColumns+" FROM notifications WHERE id = ? AND user_id = ?"),
		id, userID,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return n, nil
}

// ListNotifications returns a user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID int64) ([]*models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT "+notificationColumns+" FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC"),
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnreadNotifications returns the user's unread count.
func (s *Store) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?"), userID, false).Scan(&count)
	return count, err
}

// MarkNotificationRead marks one notification read, constrained to its owner.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?"), true, id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// MarkAllNotificationsRead marks every notification of the user read. Zero
// affected rows is not an error here.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE notifications SET is_read = ? WHERE user_id = ? AND is_read = ?"), true, userID, false)
	return err
}

// DeleteNotification removes a notification owned by userID.
func (s *Store) DeleteNotification(ctx context.Context, id, userID int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"DELETE FROM notifications WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// BroadcastNotification fans a notification out to every user inside one
// transaction and returns the number of rows written.
func (s *Store) BroadcastNotification(ctx context.Context, title, body string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM users")
	if err != nil {
		return 0, err
	}
	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	now := time.Now().UTC()
	query := s.rebind("INSERT INTO notifications (user_id, title, body, is_read, created_at) VALUES (?, ?, ?, ?, ?)")
	var count int64
	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx, query, userID, title, body, false, now); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
