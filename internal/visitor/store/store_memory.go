package store

import (
	"context"
	"strings"
	"sync"

	"gatehouse/internal/visitor/models"
	"gatehouse/pkg/platform/sentinel"
)

// InMemory keeps visitors in a mutex-guarded map plus an insertion-order
// index, so listings come back in the store's natural order. It backs unit
// tests and runs the service when no database is configured.
type InMemory struct {
	mu       sync.RWMutex
	visitors map[models.VisitorID]*models.Visitor
	order    []models.VisitorID
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{visitors: make(map[models.VisitorID]*models.Visitor)}
}

func (s *InMemory) Insert(_ context.Context, v *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *v
	s.visitors[v.ID] = &record
	s.order = append(s.order, v.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.VisitorID) (*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.visitors[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	record := *v
	return &record, nil
}

func (s *InMemory) Update(_ context.Context, v *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visitors[v.ID]; !ok {
		return sentinel.ErrNotFound
	}
	record := *v
	s.visitors[v.ID] = &record
	return nil
}

func (s *InMemory) Delete(_ context.Context, id models.VisitorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visitors[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.visitors, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemory) List(_ context.Context, filter models.ListFilter) ([]*models.Visitor, int, error) {
	filter = filter.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.matchLocked(filter)
	total := len(matched)

	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	page := make([]*models.Visitor, 0, end-start)
	for _, v := range matched[start:end] {
		record := *v
		page = append(page, &record)
	}
	return page, total, nil
}

func (s *InMemory) ListAll(_ context.Context, filter models.ListFilter) ([]*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.matchLocked(filter)
	all := make([]*models.Visitor, 0, len(matched))
	for _, v := range matched {
		record := *v
		all = append(all, &record)
	}
	return all, nil
}

func (s *InMemory) UpdateStatus(_ context.Context, ids []models.VisitorID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if v, ok := s.visitors[id]; ok {
			v.Status = status
		}
	}
	return nil
}

func (s *InMemory) SetDeleted(_ context.Context, ids []models.VisitorID, deleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if v, ok := s.visitors[id]; ok {
			v.Deleted = deleted
		}
	}
	return nil
}

// matchLocked applies the filter predicate in insertion order. Callers must
// hold at least a read lock.
func (s *InMemory) matchLocked(filter models.ListFilter) []*models.Visitor {
	search := strings.ToLower(filter.Search)
	var matched []*models.Visitor
	for _, id := range s.order {
		v := s.visitors[id]
		if v.Deleted != filter.ShowDeleted {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(v.FirstName), search) &&
			!strings.Contains(strings.ToLower(v.LastName), search) &&
			!strings.Contains(strings.ToLower(v.Email), search) {
			continue
		}
		matched = append(matched, v)
	}
	return matched
}
