package errlog

import "context"

// Store persists audit records. Append-only; List returns newest first.
type Store interface {
	Append(ctx context.Context, record Record) error
	List(ctx context.Context) ([]Record, error)
}
