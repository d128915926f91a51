package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/motionlens/schema"
)

// ErrMissingColumn marks a header that lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// DecodeCSV reads a header row followed by data rows into raw records.
// Extra columns are kept; short rows simply lack the trailing fields.
func DecodeCSV(r io.Reader) ([]schema.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cleanHeader(header)
	if err := checkHeader(header, schema.RequiredColumns); err != nil {
		return nil, err
	}

	var rows []schema.RawRecord
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}
		row := make(schema.RawRecord, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cleanHeader trims column names and strips a UTF-8 byte order mark.
func cleanHeader(header []string) {
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
}

// checkHeader reports the first required column missing from header.
func checkHeader(header, required []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	for _, col := range required {
		if _, ok := present[col]; !ok {
			return &schema.ParseError{Row: 0, Field: col, Err: ErrMissingColumn}
		}
	}
	return nil
}
