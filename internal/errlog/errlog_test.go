package errlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInMemoryStoreListsNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, store.Append(ctx, Record{ID: uuid.New(), Message: msg, Timestamp: time.Now()}))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Message)
	assert.Equal(t, "first", records[2].Message)
}

func TestRecorderStampsRequestTime(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(store, discardLogger())

	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	recorder.Record(ctx, "insert visitor: connection refused")

	records, err := recorder.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "insert visitor: connection refused", records[0].Message)
	assert.Equal(t, fixed, records[0].Timestamp)
	assert.NotEqual(t, uuid.Nil, records[0].ID)
}

type failingStore struct{}

func (failingStore) Append(context.Context, Record) error { return errors.New("sink down") }
func (failingStore) List(context.Context) ([]Record, error) {
	return nil, errors.New("sink down")
}

func TestRecorderSwallowsSinkFailure(t *testing.T) {
	recorder := NewRecorder(failingStore{}, discardLogger())
	// Must not panic or propagate; the original mutation error stays primary.
	recorder.Record(context.Background(), "update visitor: timeout")
}
