// Package store persists visitor records. Implementations return sentinel
// errors; the service layer translates them into domain errors.
package store

import (
	"context"

	"gatehouse/internal/visitor/models"
)

// Store is the persistence boundary for visitor records. Lookups by ID are
// never restricted by the deleted flag so restore and permanent delete can
// reach soft-deleted records.
type Store interface {
	// Insert persists a new record.
	Insert(ctx context.Context, v *models.Visitor) error

	// FindByID returns the record or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id models.VisitorID) (*models.Visitor, error)

	// Update replaces an existing record; sentinel.ErrNotFound if absent.
	Update(ctx context.Context, v *models.Visitor) error

	// Delete removes the record permanently; sentinel.ErrNotFound if absent.
	Delete(ctx context.Context, id models.VisitorID) error

	// List returns one page of matching records in insertion order plus the
	// total count of the full filtered set.
	List(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, int, error)

	// ListAll returns every matching record, unpaginated, for export.
	ListAll(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, error)

	// UpdateStatus sets the status for every matching ID in one set-oriented
	// operation. IDs with no record are silently skipped.
	UpdateStatus(ctx context.Context, ids []models.VisitorID, status models.Status) error

	// SetDeleted sets the deleted flag for every matching ID in one
	// set-oriented operation. IDs with no record are silently skipped.
	SetDeleted(ctx context.Context, ids []models.VisitorID, deleted bool) error
}
