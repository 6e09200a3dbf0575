package metadata

import (
	"fmt"

	"github.com/bassettarchive/omeka-ingest/internal/table"
)

// DefaultColumns is the Omeka upload schema, identifier first.
var DefaultColumns = []string{
	ColIdentifier,
	ColTitle,
	ColDescription,
	ColDate,
	ColCreator,
	ColType,
	ColRights,
	ColSource,
	ColPublisher,
	ColFormat,
	ColLanguage,
	ColOriginalFormat,
	ColPhysicalDimensions,
	ColTags,
	ColUploadURL,
}

// ColumnsFromTemplate reads the column set from a header template CSV
// (a table with a header row and no data rows).
func ColumnsFromTemplate(path string) ([]string, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("header template %s has no columns", path)
	}
	return t.Columns, nil
}

// Builder assembles a batch of synthesized records into an upload table.
type Builder struct {
	Synth *Synthesizer

	// Columns is the upload table schema; nil means DefaultColumns.
	Columns []string
}

// BuildRecords synthesizes one record per filename, in input order. The
// first hard failure aborts the batch.
func (b *Builder) BuildRecords(dir string, filenames []string) ([]Record, error) {
	records := make([]Record, 0, len(filenames))
	for _, name := range filenames {
		rec, err := b.Synth.Synthesize(dir, name)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Table assembles records into a table keyed by identifier, sorted ascending.
// Duplicate stems overwrite silently; the reconciliation pass catches
// duplicates later.
func (b *Builder) Table(records []Record) *table.Table {
	columns := b.Columns
	if columns == nil {
		columns = DefaultColumns
	}

	t := table.New(columns)
	for _, rec := range records {
		t.Upsert(ColIdentifier, rec.Row())
	}
	t.SortBy(ColIdentifier)
	return t
}

// BuildTable synthesizes and assembles in one step.
func (b *Builder) BuildTable(dir string, filenames []string) (*table.Table, error) {
	records, err := b.BuildRecords(dir, filenames)
	if err != nil {
		return nil, err
	}
	return b.Table(records), nil
}
