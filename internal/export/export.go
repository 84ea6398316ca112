// Package export serializes visitor sets into downloadable spreadsheets.
// The record ID and the deleted flag are internal bookkeeping and never
// appear in exported output. An empty set produces a file containing only
// the header row.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"gatehouse/internal/visitor/models"
	dErrors "gatehouse/pkg/domain-errors"
)

// Format selects the output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat parses a format string; empty defaults to xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "format must be xlsx or csv")
}

// File is a serialized export ready to send as a download.
type File struct {
	Data        []byte
	ContentType string
	Filename    string
}

var headers = []string{
	"first_name", "last_name", "email", "phone_number",
	"purpose", "time_in", "time_out", "status", "created_at", "modified_at",
}

const sheetName = "Visitors"

// Visitors serializes the set in the requested format.
func Visitors(visitors []*models.Visitor, format Format) (*File, error) {
	switch format {
	case FormatCSV:
		return toCSV(visitors)
	default:
		return toXLSX(visitors)
	}
}

func row(v *models.Visitor) []string {
	modified := ""
	if v.ModifiedAt != nil {
		modified = v.ModifiedAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		v.FirstName, v.LastName, v.Email, v.PhoneNumber,
		v.Purpose, v.TimeIn, v.TimeOut, string(v.Status),
		v.CreatedAt.Format("2006-01-02 15:04:05"), modified,
	}
}

func toXLSX(visitors []*models.Visitor) (*File, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header cell: %w", err)
		}
	}

	for rowIdx, v := range visitors {
		for colIdx, val := range row(v) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &File{
		Data:        buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    "visitors.xlsx",
	}, nil
}

func toCSV(visitors []*models.Visitor) (*File, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range visitors {
		if err := writer.Write(row(v)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return &File{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Filename:    "visitors.csv",
	}, nil
}
