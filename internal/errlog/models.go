// Package errlog records store-mutation failures as an append-only audit
// trail. Every failed mutating operation appends a record before the failure
// propagates; the trail itself is never updated or deleted by the service.
package errlog

import (
	"time"

	"github.com/google/uuid"
)

// Record is one audit entry for a failed mutation.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
