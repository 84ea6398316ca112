package errlog

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists audit records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS error_log (
	id        UUID PRIMARY KEY,
	message   TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the backing table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure error_log schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, record Record) error {
	query := `INSERT INTO error_log (id, message, timestamp) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.Message, record.Timestamp); err != nil {
		return fmt.Errorf("append error log: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	query := `SELECT id, message, timestamp FROM error_log ORDER BY timestamp DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list error log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Message, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan error log: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate error log: %w", err)
	}
	return records, nil
}
