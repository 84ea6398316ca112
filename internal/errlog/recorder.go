package errlog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"gatehouse/pkg/requestcontext"
)

// Recorder captures failure records. It uses the storage layer for
// persistence so tests can swap sinks easily. A failure to persist the record
// itself must never mask the original error, so Record logs and swallows
// sink errors.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends an audit entry for a failed mutation.
func (r *Recorder) Record(ctx context.Context, message string) {
	record := Record{
		ID:        uuid.New(),
		Message:   message,
		Timestamp: requestcontext.Now(ctx),
	}
	if err := r.store.Append(ctx, record); err != nil {
		r.logger.ErrorContext(ctx, "failed to append error log record",
			"request_id", requestcontext.RequestID(ctx),
			"message", message,
			"error", err.Error(),
		)
	}
}

// List returns the audit trail, newest first.
func (r *Recorder) List(ctx context.Context) ([]Record, error) {
	return r.store.List(ctx)
}
