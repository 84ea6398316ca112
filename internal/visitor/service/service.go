// Package service implements the visitor lifecycle and query engine. All
// filter composition and state-transition rules live here so transport stays
// a thin mapping and stores stay mechanical.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"gatehouse/internal/errlog"
	vmetrics "gatehouse/internal/visitor/metrics"
	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/store"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

// VisitorService orchestrates the visitor lifecycle.
//
// State model: the deleted flag and the status move on independent axes.
// Soft delete and restore toggle the flag; bulk activate/deactivate flip the
// status; permanent delete is terminal. A deleted record keeps its last
// status and stays reachable by ID.
type VisitorService struct {
	visitors store.Store
	recorder *errlog.Recorder
	metrics  *vmetrics.Metrics
}

// New constructs the engine. metrics may be nil (tests).
func New(visitors store.Store, recorder *errlog.Recorder, metrics *vmetrics.Metrics) *VisitorService {
	return &VisitorService{
		visitors: visitors,
		recorder: recorder,
		metrics:  metrics,
	}
}

// List returns one page of visitors matching the filter plus the total count
// of the full filtered set, so pagination UIs stay correct on every page.
func (s *VisitorService) List(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, int, error) {
	start := time.Now()
	visitors, total, err := s.visitors.List(ctx, filter.Normalize())
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list visitors")
	}
	s.metrics.ObserveList(start)
	return visitors, total, nil
}

// Get fetches a visitor by ID. Soft-deleted records are returned too; the
// restore and permanent-delete paths depend on that.
func (s *VisitorService) Get(ctx context.Context, id models.VisitorID) (*models.Visitor, error) {
	v, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err)
	}
	return v, nil
}

// Create validates the fields, assigns an ID, and persists the record.
func (s *VisitorService) Create(ctx context.Context, fields models.Fields) (*models.Visitor, error) {
	v, err := models.NewVisitor(models.VisitorID(uuid.New()), fields, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.visitors.Insert(ctx, v); err != nil {
		return nil, s.mutationErr(ctx, err, "failed to create visitor")
	}
	s.metrics.IncrementVisitorsCreated()
	return v, nil
}

// Update merges a partial field update into an existing record and stamps
// modified_at. Unlike Create it performs no required-field validation: a
// field omitted from the update keeps its stored value, and there is no way
// to blank a required field by accident through a partial body. The deleted
// flag is out of Update's reach entirely.
func (s *VisitorService) Update(ctx context.Context, id models.VisitorID, update models.Update) (*models.Visitor, error) {
	v, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err)
	}

	v.ApplyUpdate(update, requestcontext.Now(ctx))
	if err := s.visitors.Update(ctx, v); err != nil {
		return nil, s.mutationErr(ctx, err, "failed to update visitor")
	}
	return v, nil
}

// SoftDelete hides the record from default listings. Idempotent: deleting an
// already-deleted record succeeds with no further effect.
func (s *VisitorService) SoftDelete(ctx context.Context, id models.VisitorID) error {
	v, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return s.lookupErr(err)
	}
	if v.Deleted {
		return nil
	}

	v.ApplySoftDelete()
	if err := s.visitors.Update(ctx, v); err != nil {
		return s.mutationErr(ctx, err, "failed to delete visitor")
	}
	return nil
}

// Restore brings a soft-deleted record back into default listings and
// returns it. All other fields come back unchanged.
func (s *VisitorService) Restore(ctx context.Context, id models.VisitorID) (*models.Visitor, error) {
	v, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err)
	}

	v.ApplyRestore()
	if err := s.visitors.Update(ctx, v); err != nil {
		return nil, s.mutationErr(ctx, err, "failed to restore visitor")
	}
	return v, nil
}

// PermanentDelete removes the record from the store irreversibly.
func (s *VisitorService) PermanentDelete(ctx context.Context, id models.VisitorID) error {
	if err := s.visitors.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "visitor not found")
		}
		return s.mutationErr(ctx, err, "failed to permanently delete visitor")
	}
	return nil
}

// BulkActivate sets status=active for every existing ID in the set.
func (s *VisitorService) BulkActivate(ctx context.Context, ids []models.VisitorID) error {
	return s.bulkStatus(ctx, ids, models.StatusActive)
}

// BulkDeactivate sets status=inactive for every existing ID in the set.
func (s *VisitorService) BulkDeactivate(ctx context.Context, ids []models.VisitorID) error {
	return s.bulkStatus(ctx, ids, models.StatusInactive)
}

// bulkStatus issues one set-oriented update. IDs with no record are silently
// skipped; atomicity across the set is whatever the store provides for a
// single statement.
func (s *VisitorService) bulkStatus(ctx context.Context, ids []models.VisitorID, status models.Status) error {
	if len(ids) == 0 {
		return dErrors.New(dErrors.CodeValidation, "no ids provided")
	}
	if err := s.visitors.UpdateStatus(ctx, ids, status); err != nil {
		return s.mutationErr(ctx, err, "failed to bulk update status")
	}
	return nil
}

// BulkSoftDelete marks every existing ID in the set deleted.
func (s *VisitorService) BulkSoftDelete(ctx context.Context, ids []models.VisitorID) error {
	if len(ids) == 0 {
		return dErrors.New(dErrors.CodeValidation, "no ids provided")
	}
	if err := s.visitors.SetDeleted(ctx, ids, true); err != nil {
		return s.mutationErr(ctx, err, "failed to bulk delete visitors")
	}
	return nil
}

// Export returns the full matching set, unpaginated, with the same filter
// semantics as List. The serializer decides the output format.
func (s *VisitorService) Export(ctx context.Context, filter models.ListFilter) ([]*models.Visitor, error) {
	start := time.Now()
	visitors, err := s.visitors.ListAll(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to export visitors")
	}
	s.metrics.ObserveExport(start)
	return visitors, nil
}

// lookupErr translates store lookup failures. Lookups are read-only and do
// not write audit records.
func (s *VisitorService) lookupErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "visitor not found")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load visitor")
}

// mutationErr appends an error-log record before surfacing a failed store
// mutation. The audit write happens first so the trail survives even when
// the caller drops the error.
func (s *VisitorService) mutationErr(ctx context.Context, err error, msg string) error {
	s.recorder.Record(ctx, err.Error())
	return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
}
