package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when no row matches the query. Callers must
	// not distinguish "absent" from "owned by someone else"; user-scoped
	// queries constrain on user_id so both cases land here.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("record already exists")
)

// Store handles all database operations.
type Store struct {
	db      *sql.DB
	dialect string
}

// New creates a new store instance. dialect is "postgres" or "sqlite" and
// must match the driver behind db.
func New(db *sql.DB, dialect string) *Store {
	return &Store{db: db, dialect: dialect}
}

// rebind converts ? placeholders to the $n form PostgreSQL expects. Queries
// throughout this package are written with ? and rebound on the way out.
func (s *Store) rebind(query string) string {
	if s.dialect != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// insert executes an INSERT and returns the generated id, papering over the
// RETURNING / LastInsertId split between the two drivers. query must not
// include a RETURNING clause; one is appended for postgres.
func (s *Store) insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if s.dialect == "postgres" {
		var id int64
		err := s.db.QueryRowContext(ctx, s.rebind(query+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			return 0, translateErr(err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateErr(err)
	}
	return result.LastInsertId()
}

// requireRow turns a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// translateErr maps driver-specific failures onto the store's sentinel errors.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	msg := err.Error()
	// lib/pq reports 23505 as "duplicate key value violates unique constraint";
	// go-sqlite3 reports "UNIQUE constraint failed".
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}
