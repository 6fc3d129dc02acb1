package store

import (
	"context"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const clientColumns = "id, name, company, contact_name, contact_email, contact_phone, notes, status, created_at, updated_at"

// CreateClient inserts a new client record.
func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.ClientStatusActive
	}

	id, err := s.insert(ctx,
		"INSERT INTO clients (name, company, contact_name, contact_email, contact_phone, notes, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		c.Name, c.Company, c.ContactName, c.ContactEmail, c.ContactPhone, c.Notes, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetClient retrieves a client by id.
func (s *Store) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	c := &models.Client{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+clientColumns+" FROM clients WHERE id = ?"), id,
	).Scan(&c.ID, &c.Name, &c.Company, &c.ContactName, &c.ContactEmail, &c.ContactPhone, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return c, nil
}

// ListClients returns all clients ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+clientColumns+" FROM clients ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c := &models.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.ContactName, &c.ContactEmail, &c.ContactPhone, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// UpdateClient updates a client's mutable fields.
func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE clients SET name = ?, company = ?, contact_name = ?, contact_email = ?, contact_phone = ?, notes = ?, status = ?, updated_at = ? WHERE id = ?"),
		c.Name, c.Company, c.ContactName, c.ContactEmail, c.ContactPhone, c.Notes, c.Status, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteClient removes a client. Projects, services, hosting accounts and
// document rows cascade via foreign keys; the caller is responsible for
// removing stored document files first (see Api.DeleteClientHandler).
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM clients WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
