package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gatehouse/internal/visitor/models"
	dErrors "gatehouse/pkg/domain-errors"
)

func sampleVisitors() []*models.Visitor {
	modified := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	return []*models.Visitor{
		{
			ID:          models.VisitorID(uuid.New()),
			FirstName:   "Ann",
			LastName:    "Lee",
			Email:       "a@x.com",
			PhoneNumber: "123",
			Purpose:     "visit",
			TimeIn:      "09:00",
			TimeOut:     "10:00",
			Status:      models.StatusActive,
			Deleted:     true, // must not leak into output
			CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			ModifiedAt:  &modified,
		},
		{
			ID:        models.VisitorID(uuid.New()),
			FirstName: "Bo",
			LastName:  "Kim",
			Email:     "b@x.com",
			Status:    models.StatusInactive,
			CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"":     FormatXLSX,
		"xlsx": FormatXLSX,
		"CSV":  FormatCSV,
		" csv": FormatCSV,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestCSVExport(t *testing.T) {
	file, err := Visitors(sampleVisitors(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "visitors.csv", file.Filename)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per visitor")

	assert.Equal(t, headers, rows[0])
	assert.NotContains(t, rows[0], "id", "record id is excluded")
	assert.NotContains(t, rows[0], "deleted", "deleted flag is excluded")

	assert.Equal(t, "Ann", rows[1][0])
	assert.Equal(t, "active", rows[1][7])
	assert.Equal(t, "2026-03-01 10:30:00", rows[1][9])
	assert.Equal(t, "", rows[2][9], "absent modified_at serializes empty")
}

func TestCSVExportEmptySet(t *testing.T) {
	file, err := Visitors(nil, FormatCSV)
	require.NoError(t, err, "an empty set still yields a file")

	rows, readErr := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, rows, 1, "header row only")
}

func TestXLSXExport(t *testing.T) {
	file, err := Visitors(sampleVisitors(), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.Equal(t, "visitors.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	rows, err := wb.GetRows("Visitors")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "Bo", rows[2][0])
}
