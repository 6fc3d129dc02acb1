package store

import (
	"context"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

// GetSettings retrieves a user's settings row. ErrNotFound means the user
// has never saved settings; callers fall back to models.DefaultSettings.
func (s *Store) GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	settings := &models.UserSettings{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT user_id, theme, locale, email_notifications, reminder_lead_minutes, updated_at FROM user_settings WHERE user_id = ?"),
		userID,
	).Scan(&settings.UserID, &settings.Theme, &settings.Locale, &settings.EmailNotifications, &settings.ReminderLeadMins, &settings.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return settings, nil
}

// UpsertSettings writes the user's settings row, creating it on first save.
// The user_id comes from the authenticated identity, never the request body.
func (s *Store) UpsertSettings(ctx context.Context, settings *models.UserSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	// ON CONFLICT upsert is supported by both postgres and sqlite >= 3.24.
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO user_settings (user_id, theme, locale, email_notifications, reminder_lead_minutes, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			theme = excluded.theme,
			locale = excluded.locale,
			email_notifications = excluded.email_notifications,
			reminder_lead_minutes = excluded.reminder_lead_minutes,
			updated_at = excluded.updated_at`),
		settings.UserID, settings.Theme, settings.Locale, settings.EmailNotifications, settings.ReminderLeadMins, settings.UpdatedAt,
	)
	return err
}
