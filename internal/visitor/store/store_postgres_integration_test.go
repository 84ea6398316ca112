//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/store"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "visitors"))
}

func newTestVisitor(first, last, email string) *models.Visitor {
	return &models.Visitor{
		ID:          models.VisitorID(uuid.New()),
		FirstName:   first,
		LastName:    last,
		Email:       email,
		PhoneNumber: "123",
		Purpose:     "visit",
		TimeIn:      "09:00",
		TimeOut:     "10:00",
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	v := newTestVisitor("Ann", "Lee", "a@x.com")
	s.Require().NoError(s.store.Insert(ctx, v))

	found, err := s.store.FindByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(v.Email, found.Email)
	s.Equal(models.StatusActive, found.Status)
	s.False(found.Deleted)
	s.Nil(found.ModifiedAt)

	now := time.Now().UTC().Truncate(time.Microsecond)
	found.Email = "new@x.com"
	found.ModifiedAt = &now
	s.Require().NoError(s.store.Update(ctx, found))

	again, err := s.store.FindByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal("new@x.com", again.Email)
	s.Require().NotNil(again.ModifiedAt)
}

func (s *PostgresStoreSuite) TestListComposesFilter() {
	ctx := context.Background()
	ann := newTestVisitor("Ann", "Lee", "ann@x.com")
	bo := newTestVisitor("Bo", "Kim", "bo@x.com")
	gone := newTestVisitor("Dee", "Lee", "dee@x.com")
	gone.Deleted = true
	for _, v := range []*models.Visitor{ann, bo, gone} {
		s.Require().NoError(s.store.Insert(ctx, v))
	}

	page, total, err := s.store.List(ctx, models.ListFilter{})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(page, 2)
	s.Equal(ann.ID, page[0].ID, "insertion order preserved")

	page, total, err = s.store.List(ctx, models.ListFilter{Search: "LEE"})
	s.Require().NoError(err)
	s.Equal(1, total, "ILIKE matches Lee case-insensitively, deleted Lee excluded")
	s.Equal(ann.ID, page[0].ID)

	page, total, err = s.store.List(ctx, models.ListFilter{ShowDeleted: true})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal(gone.ID, page[0].ID)
}

func (s *PostgresStoreSuite) TestBulkSkipsUnknownIDs() {
	ctx := context.Background()
	ann := newTestVisitor("Ann", "Lee", "ann@x.com")
	s.Require().NoError(s.store.Insert(ctx, ann))

	err := s.store.UpdateStatus(ctx,
		[]models.VisitorID{ann.ID, models.VisitorID(uuid.New())},
		models.StatusInactive)
	s.Require().NoError(err)

	found, err := s.store.FindByID(ctx, ann.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInactive, found.Status)

	s.Require().NoError(s.store.SetDeleted(ctx, []models.VisitorID{ann.ID}, true))
	found, err = s.store.FindByID(ctx, ann.ID)
	s.Require().NoError(err)
	s.True(found.Deleted)
	s.Equal(models.StatusInactive, found.Status)
}

func (s *PostgresStoreSuite) TestDeletePermanently() {
	ctx := context.Background()
	v := newTestVisitor("Ann", "Lee", "a@x.com")
	s.Require().NoError(s.store.Insert(ctx, v))

	s.Require().NoError(s.store.Delete(ctx, v.ID))
	_, err := s.store.FindByID(ctx, v.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
