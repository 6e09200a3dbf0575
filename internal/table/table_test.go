package table

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse_BlankCellsAreEmptyStrings(t *testing.T) {
	csv := "identifier,omeka_id,item_id\nzoo_kcz_ph_00,,\nzoo_ftw_sk_01,AB123,999\n"

	tbl, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(tbl.Columns, []string{"identifier", "omeka_id", "item_id"}) {
		t.Fatalf("unexpected columns: %v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0]["omeka_id"] != "" {
		t.Errorf("blank cell should read as empty string, got %q", tbl.Rows[0]["omeka_id"])
	}
	if tbl.Rows[1]["item_id"] != "999" {
		t.Errorf("item_id = %q, want 999", tbl.Rows[1]["item_id"])
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")

	original := New([]string{"identifier", "title", "notes"})
	original.Append(
		map[string]string{"identifier": "a_ph_00", "title": "", "notes": "has, comma"},
		map[string]string{"identifier": "b_sk_01", "title": "untitled", "notes": ""},
	)

	if err := original.Write(path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	reread, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !reflect.DeepEqual(reread.Columns, original.Columns) {
		t.Errorf("columns changed: %v", reread.Columns)
	}
	if !reflect.DeepEqual(reread.Rows, original.Rows) {
		t.Errorf("rows changed: got %v, want %v", reread.Rows, original.Rows)
	}
}

func TestUpsert_LastWriteWins(t *testing.T) {
	tbl := New([]string{"identifier", "title"})
	tbl.Upsert("identifier", map[string]string{"identifier": "a", "title": "first"})
	tbl.Upsert("identifier", map[string]string{"identifier": "b", "title": "other"})
	tbl.Upsert("identifier", map[string]string{"identifier": "a", "title": "second"})

	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	row, ok := tbl.Find("identifier", "a")
	if !ok {
		t.Fatal("row a not found")
	}
	if row["title"] != "second" {
		t.Errorf("title = %q, want second", row["title"])
	}
}

func TestAppend_AlignsByColumnName(t *testing.T) {
	tbl := New([]string{"identifier", "title"})
	tbl.Append(map[string]string{"identifier": "a", "title": "x", "stray": "dropped"})

	if got := tbl.Rows[0]; got["identifier"] != "a" || got["title"] != "x" {
		t.Errorf("unexpected row: %v", got)
	}
	if _, ok := tbl.Rows[0]["stray"]; ok {
		t.Error("stray column should have been dropped")
	}
}

func TestSortBy(t *testing.T) {
	tbl := New([]string{"identifier"})
	tbl.Append(
		map[string]string{"identifier": "c"},
		map[string]string{"identifier": "a"},
		map[string]string{"identifier": "b"},
	)
	tbl.SortBy("identifier")

	got := []string{tbl.Rows[0]["identifier"], tbl.Rows[1]["identifier"], tbl.Rows[2]["identifier"]}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("sorted order = %v", got)
	}
}

func TestFind_Missing(t *testing.T) {
	tbl := New([]string{"identifier"})
	if _, ok := tbl.Find("identifier", "nope"); ok {
		t.Error("Find() on empty table should miss")
	}
}
