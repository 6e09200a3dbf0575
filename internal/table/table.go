// Package table is a flat-file store for the pipeline's CSV tables: one
// header row, every value text, blank cells are empty strings (never a null
// marker).
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
)

// Table holds one CSV table in memory. Rows are maps keyed by column name;
// columns absent from a row serialize as blanks.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// New returns an empty table with the given column set.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Read loads the table at path.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a CSV table from r. The first row is the header.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	t := &Table{Columns: rows[0]}
	for _, rec := range rows[1:] {
		row := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Write serializes the table to path, replacing any existing file.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}
	if err := t.Serialize(f); err != nil {
		f.Close()
		return fmt.Errorf("writing table %s: %w", path, err)
	}
	return f.Close()
}

// Serialize writes the header row followed by every row in column order.
func (t *Table) Serialize(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Find returns the first row whose keyCol value equals key.
func (t *Table) Find(keyCol, key string) (map[string]string, bool) {
	for _, row := range t.Rows {
		if row[keyCol] == key {
			return row, true
		}
	}
	return nil, false
}

// Upsert replaces the row whose keyCol value matches row's, or appends the
// row when no match exists. Last write wins on duplicate keys.
func (t *Table) Upsert(keyCol string, row map[string]string) {
	for i, existing := range t.Rows {
		if existing[keyCol] == row[keyCol] {
			t.Rows[i] = row
			return
		}
	}
	t.Rows = append(t.Rows, row)
}

// Append adds rows to the end of the table, aligning values by column name.
// Values under columns the table does not carry are dropped.
func (t *Table) Append(rows ...map[string]string) {
	for _, row := range rows {
		aligned := make(map[string]string, len(t.Columns))
		for _, col := range t.Columns {
			aligned[col] = row[col]
		}
		t.Rows = append(t.Rows, aligned)
	}
}

// SortBy orders rows ascending by the given column.
func (t *Table) SortBy(col string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i][col] < t.Rows[j][col]
	})
}
