package store

import (
	"context"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
)

const documentColumns = "id, client_id, file_name, storage_key, size, content_type, uploaded_by, created_at"

// CreateDocument records an uploaded file in a client's document folder.
func (s *Store) CreateDocument(ctx context.Context, d *models.Document) error {
	d.CreatedAt = time.Now().UTC()

	id, err := s.insert(ctx,
		"INSERT INTO documents (client_id, file_name, storage_key, size, content_type, uploaded_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		d.ClientID, d.FileName, d.StorageKey, d.Size, d.ContentType, d.UploadedBy, d.CreatedAt,
	)
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// GetDocument retrieves a document by id within a client's folder. The
// client id keeps one client's document ids from resolving under another
// client's URL.
func (s *Store) GetDocument(ctx context.Context, id, clientID int64) (*models.Document, error) {
	d := &models.Document{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+documentColumns+" FROM documents WHERE id = ? AND client_id = ?"),
		id, clientID,
	).Scan(&d.ID, &d.ClientID, &d.FileName, &d.StorageKey, &d.Size, &d.ContentType, &d.UploadedBy, &d.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return d, nil
}

// ListDocuments returns a client's documents, newest first.
func (s *Store) ListDocuments(ctx context.Context, clientID int64) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT "+documentColumns+" FROM documents WHERE client_id = ? ORDER BY created_at DESC, id DESC"),
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		d := &models.Document{}
		if err := rows.Scan(&d.ID, &d.ClientID, &d.FileName, &d.StorageKey, &d.Size, &d.ContentType, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

// DeleteDocument removes a document row within a client's folder.
func (s *Store) DeleteDocument(ctx context.Context, id, clientID int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(
		"DELETE FROM documents WHERE id = ? AND client_id = ?"), id, clientID)
	if err != nil {
		return err
	}
	return requireRow(result)
}
