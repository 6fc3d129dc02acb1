package store

import (
	"context"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const serviceColumns = "id, client_id, name, rate, billing_cycle, active, created_at, updated_at"

// CreateService inserts a recurring service line for a client.
func (s *Store) CreateService(ctx context.Context, svc *models.ServiceItem) error {
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if svc.BillingCycle == "" {
		svc.BillingCycle = models.BillingMonthly
	}

	id, err := s.insert(ctx,
		"INSERT INTO services (client_id, name, rate, billing_cycle, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		svc.ClientID, svc.Name, svc.Rate, svc.BillingCycle, svc.Active, svc.CreatedAt, svc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	svc.ID = id
	return nil
}

// GetService retrieves a service by id.
func (s *Store) GetService(ctx context.Context, id int64) (*models.ServiceItem, error) {
	svc := &models.ServiceItem{}
	err := s.db.QueryRowContext(ctx, s.rebind("SELECT "+serviceColumns+" FROM services WHERE id = ?"), id).
		Scan(&svc.ID, &svc.ClientID, &svc.Name, &svc.Rate, &svc.BillingCycle, &svc.Active, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return svc, nil
}

// ListServices returns services, optionally filtered by client (0 = all).
func (s *Store) ListServices(ctx context.Context, clientID int64) ([]*models.ServiceItem, error) {
	query := "SELECT " + serviceColumns + " FROM services ORDER BY created_at DESC"
	args := []interface{}{}
	if clientID != 0 {
		query = "SELECT " + serviceColumns + " FROM services WHERE client_id = ? ORDER BY created_at DESC"
		args = append(args, clientID)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.ServiceItem
	for rows.Next() {
		svc := &models.ServiceItem{}
		if err := rows.Scan(&svc.ID, &svc.ClientID, &svc.Name, &svc.Rate, &svc.BillingCycle, &svc.Active, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

// UpdateService updates a service's mutable fields.
func (s *Store) UpdateService(ctx context.Context, svc *models.ServiceItem) error {
	svc.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE services SET name = ?, rate = ?, billing_cycle = ?, active = ?, updated_at = ? WHERE id = ?"),
		svc.Name, svc.Rate, svc.BillingCycle, svc.Active, svc.UpdatedAt, svc.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteService removes a service.
func (s *Store) DeleteService(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM services WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
