package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gatehouse/internal/visitor/models"
	"gatehouse/pkg/platform/sentinel"
)

// Postgres persists visitors in PostgreSQL via database/sql.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed visitor store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema creates the visitors table. The seq column preserves insertion order
// for listings.
const Schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id           UUID PRIMARY KEY,
	seq          BIGSERIAL NOT NULL,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	email        TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	purpose      TEXT NOT NULL,
	time_in      TEXT NOT NULL,
	time_out     TEXT NOT NULL,
	status       TEXT NOT NULL,
	deleted      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL,
	modified_at  TIMESTAMPTZ
)`

// EnsureSchema creates the backing table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure visitors schema: %w", err)
	}
	return nil
}

const visitorColumns = `id, first_name, last_name, email, phone_number, purpose, time_in, time_out, status, deleted, created_at, modified_at`

func (s *Postgres) Insert(ctx context.Context, v *models.Visitor) error {
	query := `
		INSERT INTO visitors (` + visitorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(v.ID), v.FirstName, v.LastName, v.Email, v.PhoneNumber,
		v.Purpose, v.TimeIn, v.TimeOut, string(v.Status), v.Deleted,
		v.CreatedAt, nullableTime(v.ModifiedAt),
	)
	if err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id models.VisitorID) (*models.Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1`
	v, err := scanVisitor(s.db.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	return v, nil
}

func (s *Postgres) Update(ctx context.Context, v *models.Visitor) error {
	query := `
		UPDATE visitors
		SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
		    purpose = $6, time_in = $7, time_out = $8, status = $9,
		    deleted = $10, modified_at = $11
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(v.ID), v.FirstName, v.LastName, v.Email, v.PhoneNumber,
		v.Purpose, v.TimeIn, v.TimeOut, string(v.Status), v.Deleted,
		nullableTime(v.ModifiedAt),
	)
	if err != nil {
		return fmt.Errorf("update visitor: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) Delete(ctx context.Context, id models.VisitorID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete visitor: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) List(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, int, error) {
	filter = filter.Normalize()
	where, args := buildWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM visitors ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count visitors: %w", err)
	}

	pageQuery := `SELECT ` + visitorColumns + ` FROM visitors ` + where +
		` ORDER BY seq LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	rows, err := s.db.QueryContext(ctx, pageQuery, append(args, filter.PageSize, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	visitors, err := scanVisitors(rows)
	if err != nil {
		return nil, 0, err
	}
	return visitors, total, nil
}

func (s *Postgres) ListAll(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, error) {
	where, args := buildWhere(filter)
	query := `SELECT ` + visitorColumns + ` FROM visitors ` + where + ` ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all visitors: %w", err)
	}
	defer rows.Close()
	return scanVisitors(rows)
}

func (s *Postgres) UpdateStatus(ctx context.Context, ids []models.VisitorID, status models.Status) error {
	query := `UPDATE visitors SET status = $1 WHERE id = ANY($2)`
	if _, err := s.db.ExecContext(ctx, query, string(status), pq.Array(idStrings(ids))); err != nil {
		return fmt.Errorf("bulk update status: %w", err)
	}
	return nil
}

func (s *Postgres) SetDeleted(ctx context.Context, ids []models.VisitorID, deleted bool) error {
	query := `UPDATE visitors SET deleted = $1 WHERE id = ANY($2)`
	if _, err := s.db.ExecContext(ctx, query, deleted, pq.Array(idStrings(ids))); err != nil {
		return fmt.Errorf("bulk set deleted: %w", err)
	}
	return nil
}

// buildWhere composes the shared filter predicate. Both List and ListAll use
// it so paginated listings and exports select the same records.
func buildWhere(filter models.ListFilter) (string, []any) {
	where := `WHERE deleted = $1`
	args := []any{filter.ShowDeleted}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)`
		args = append(args, pattern)
	}
	if filter.Status != nil {
		where += ` AND status = $` + strconv.Itoa(len(args)+1)
		args = append(args, string(*filter.Status))
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisitor(row rowScanner) (*models.Visitor, error) {
	var (
		v        models.Visitor
		id       uuid.UUID
		status   string
		modified sql.NullTime
	)
	err := row.Scan(&id, &v.FirstName, &v.LastName, &v.Email, &v.PhoneNumber,
		&v.Purpose, &v.TimeIn, &v.TimeOut, &status, &v.Deleted, &v.CreatedAt, &modified)
	if err != nil {
		return nil, err
	}
	v.ID = models.VisitorID(id)
	v.Status = models.Status(status)
	if modified.Valid {
		t := modified.Time
		v.ModifiedAt = &t
	}
	return &v, nil
}

func scanVisitors(rows *sql.Rows) ([]*models.Visitor, error) {
	var visitors []*models.Visitor
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visitors: %w", err)
	}
	return visitors, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func idStrings(ids []models.VisitorID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
