package store

import (
	"context"
	"strings"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

// NormalizeEmail lowercases and trims an email address. Emails are stored
// normalized so lookups stay case-insensitive without relying on collation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates a new user with an already-hashed password.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.insert(ctx,
		"INSERT INTO users (email, password_hash, role, email_verified, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.Email, user.PasswordHash, user.Role, false, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT id, email, password_hash, role, email_verified, created_at, updated_at FROM users WHERE id = ?"),
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT id, email, password_hash, role, email_verified, created_at, updated_at FROM users WHERE email = ?"),
		NormalizeEmail(email),
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}

// ListUsers returns all users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, password_hash, role, email_verified, created_at, updated_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountUsers returns the number of user accounts.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// UpdateUserPassword replaces a user's password hash.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?"),
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteUser removes a user. Settings, notifications and calendar events go
// with it via foreign key cascades.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
