package iocache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/parquet"
	"github.com/huangsam/motionlens/schema"
)

// ExportSummary reports what ExecuteCacheExport wrote.
type ExportSummary struct {
	Datasets int
	Records  int
	Skipped  int
}

// ExecuteCacheExport writes every cached dataset to one Parquet file, one row
// per record tagged with its cache key. Entries that no longer decode are skipped.
func ExecuteCacheExport(store contract.CacheStore, outputFile string, progress io.Writer) (ExportSummary, error) {
	var summary ExportSummary
	if outputFile == "" {
		return summary, errors.New("--output-file is required for export command")
	}
	if store == nil {
		return summary, errors.New("dataset cache is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return summary, fmt.Errorf("failed to get cache status: %w", err)
	}
	if status.TotalEntries == 0 {
		return summary, errors.New("no cached datasets found to export")
	}
	_, _ = fmt.Fprintf(progress, "Exporting data from %s backend...\n", status.Backend)

	entries, err := store.List()
	if err != nil {
		return summary, err
	}

	var rows []parquet.RecordRow
	for _, e := range entries {
		var data schema.Dataset
		if err := json.Unmarshal(e.Value, &data); err != nil {
			summary.Skipped++
			continue
		}
		rows = append(rows, parquet.ConvertRecords(data, e.Key)...)
		summary.Datasets++
		summary.Records += len(data)
	}

	if err := parquet.WriteRows(rows, outputFile); err != nil {
		return summary, fmt.Errorf("failed to write cached datasets: %w", err)
	}
	_, _ = fmt.Fprintf(progress, "Exported %d records from %d datasets to: %s\n", summary.Records, summary.Datasets, outputFile)
	return summary, nil
}
