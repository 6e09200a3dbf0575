// Package reconcile fills the persistent identifier registry from an Omeka
// CSV export and accumulates finalized upload batches into the items table.
package reconcile

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/bassettarchive/omeka-ingest/internal/table"
)

// Column names shared by the export, registry, and items tables.
const (
	ExportKeyColumn    = "Dublin Core:Identifier"
	ExportFileColumn   = "file"
	ExportItemIDColumn = "Item Id"

	RegistryKeyColumn     = "identifier"
	RegistryOmekaIDColumn = "omeka_id"
	RegistryItemIDColumn  = "item_id"
)

// MissingExportRowError reports a registry row with no matching export row.
// Every registry row is expected to have one once its upload completed, so
// this surfaces an upload that never finished.
type MissingExportRowError struct {
	Identifier string
}

func (e *MissingExportRowError) Error() string {
	return fmt.Sprintf("no export row for identifier %q: upload may not have completed", e.Identifier)
}

// Registry fills blank omeka_id and item_id fields in the registry from the
// export snapshot. Rows already holding an omeka_id are left untouched, so
// re-running over a partially reconciled registry is safe. Returns the
// number of rows updated.
func Registry(registry, export *table.Table) (int, error) {
	updated := 0
	for _, row := range registry.Rows {
		if row[RegistryOmekaIDColumn] != "" {
			continue
		}
		id := row[RegistryKeyColumn]

		exportRow, ok := export.Find(ExportKeyColumn, id)
		if !ok {
			return updated, &MissingExportRowError{Identifier: id}
		}

		omekaID, err := fileIdentifier(exportRow[ExportFileColumn])
		if err != nil {
			return updated, fmt.Errorf("identifier %q: %w", id, err)
		}

		row[RegistryOmekaIDColumn] = omekaID
		row[RegistryItemIDColumn] = exportRow[ExportItemIDColumn]
		slog.Info("reconciled registry row", "identifier", id, "omeka_id", omekaID, "item_id", row[RegistryItemIDColumn])
		updated++
	}
	return updated, nil
}

// fileIdentifier extracts the Omeka file identifier from a file URL: the
// final path segment with its extension removed.
func fileIdentifier(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing file URL %q: %w", raw, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("file URL %q has no path segment", raw)
	}
	return strings.SplitN(name, ".", 2)[0], nil
}

// AppendItems appends every row of a finalized upload batch onto the items
// table. No key check is made: duplicate detection is deferred to the
// registry pass. An items table read from an empty file adopts the batch's
// columns.
func AppendItems(items, batch *table.Table) {
	if len(items.Columns) == 0 {
		items.Columns = batch.Columns
	}
	items.Append(batch.Rows...)
}
