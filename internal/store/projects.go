package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const projectColumns = "id, client_id, name, description, status, due_date, budget, created_at, updated_at"

// CreateProject inserts a new project for a client.
func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.ProjectStatusPlanned
	}

	id, err := s.insert(ctx,
		"INSERT INTO projects (client_id, name, description, status, due_date, budget, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		p.ClientID, p.Name, p.Description, p.Status, p.DueDate, p.Budget, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	p := &models.Project{}
	var due sql.NullTime
	var budget sql.NullFloat64
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status, &due, &budget, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		p.DueDate = &due.Time
	}
	if budget.Valid {
		p.Budget = &budget.Float64
	}
	return p, nil
}

// GetProject retrieves a project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+projectColumns+" FROM projects WHERE id = ?"), id)
	p, err := scanProject(row)
	if err != nil {
		return nil, translateErr(err)
	}
	return p, nil
}

// ListProjects returns projects, optionally filtered by client. clientID 0
// means all clients.
func (s *Store) ListProjects(ctx context.Context, clientID int64) ([]*models.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects ORDER BY created_at DESC"
	args := []interface{}{}
	if clientID != 0 {
		query = "SELECT " + projectColumns + " FROM projects WHERE client_id = ? ORDER BY created_at DESC"
		args = append(args, clientID)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject updates a project's mutable fields.
func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE projects SET name = ?, description = ?, status = ?, due_date = ?, budget = ?, updated_at = ? WHERE id = ?"),
		p.Name, p.Description, p.Status, p.DueDate, p.Budget, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteProject removes a project.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM projects WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
