package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const hostingColumns = "id, client_id, domain, provider, plan, renewal_date, status, created_at, updated_at"

// CreateHostingAccount inserts a hosting account for a client.
func (s *Store) CreateHostingAccount(ctx context.Context, h *models.HostingAccount) error {
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Status == "" {
		h.Status = models.HostingStatusActive
	}

	id, err := s.insert(ctx,
		"INSERT INTO hosting_accounts (client_id, domain, provider, plan, renewal_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		h.ClientID, h.Domain, h.Provider, h.Plan, h.RenewalDate, h.Status, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

func scanHosting(row interface{ Scan(...interface{}) error }) (*models.HostingAccount, error) {
	h := &models.HostingAccount{}
	var renewal sql.NullTime
	err := row.Scan(&h.ID, &h.ClientID, &h.Domain, &h.Provider, &h.Plan, &renewal, &h.Status, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if renewal.Valid {
		h.RenewalDate = &renewal.Time
	}
	return h, nil
}

// GetHostingAccount retrieves a hosting account by id.
func (s *Store) GetHostingAccount(ctx context.Context, id int64) (*models.HostingAccount, error) {
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+hostingColumns+" FROM hosting_accounts WHERE id = ?"), id)
	h, err := scanHosting(row)
	if err != nil {
		return nil, translateErr(err)
	}
	return h, nil
}

// ListHostingAccounts returns hosting accounts, optionally filtered by client
// (0 = all).
func (s *Store) ListHostingAccounts(ctx context.Context, clientID int64) ([]*models.HostingAccount, error) {
	query := "SELECT " + hostingColumns + " FROM hosting_accounts ORDER BY domain"
	args := []interface{}{}
	if clientID != 0 {
		query = "SELECT " + hostingColumns + " FROM hosting_accounts WHERE client_id = ? ORDER BY domain"
		args = append(args, clientID)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.HostingAccount
	for rows.Next() {
		h, err := scanHosting(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, h)
	}
	return accounts, rows.Err()
}

// UpdateHostingAccount updates a hosting account's mutable fields.
func (s *Store) UpdateHostingAccount(ctx context.Context, h *models.HostingAccount) error {
	h.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE hosting_accounts SET domain = ?, provider = ?, plan = ?, renewal_date = ?, status = ?, updated_at = ? WHERE id = ?"),
		h.Domain, h.Provider, h.Plan, h.RenewalDate, h.Status, h.UpdatedAt, h.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteHostingAccount removes a hosting account.
func (s *Store) DeleteHostingAccount(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM hosting_accounts WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
