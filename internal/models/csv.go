package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// headerIndex maps column names to positions so tables tolerate extra or
// reordered columns written by collaborator scripts.
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func (idx headerIndex) getter(row []string) func(column string) (string, bool) {
	return func(column string) (string, bool) {
		i, ok := idx[column]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}
}

func readTable[T any](path string, parse func(get func(string) (string, bool)) (*T, error)) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	idx := indexHeader(header)

	var out []*T
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rec, err := parse(idx.getter(row))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSegments loads the source annotation table
func ReadSegments(path string) ([]*SegmentRecord, error) {
	records, err := readTable(path, segmentFromFields)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return records, nil
}

// WriteQualityTable writes segment records with their quality scores
func WriteQualityTable(path string, records []*SegmentRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.qualityFields())
	}
	return writeTable(path, QualityColumns(), rows)
}

// ReadPlan loads an augmentation plan
func ReadPlan(path string) ([]*PlanEntry, error) {
	return readTable(path, planEntryFromFields)
}

// WritePlan writes an augmentation plan
func WritePlan(path string, entries []*PlanEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entry.fields())
	}
	return writeTable(path, PlanColumns(), rows)
}

// ReadProgress loads a checkpoint table; a missing file yields no records
func ReadProgress(path string) ([]*ProgressRecord, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return readTable(path, progressFromFields)
}

// WriteProgress writes the full checkpoint table
func WriteProgress(path string, records []*ProgressRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.fields())
	}
	return writeTable(path, ProgressColumns(), rows)
}
