package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_HardLookups(t *testing.T) {
	v := Default()

	mime, err := v.MIMEType("tif")
	if err != nil {
		t.Fatalf("MIMEType(tif) error = %v", err)
	}
	if mime != "image/tiff" {
		t.Errorf("MIMEType(tif) = %q, want image/tiff", mime)
	}

	format, err := v.OriginalFormat("rp")
	if err != nil {
		t.Fatalf("OriginalFormat(rp) error = %v", err)
	}
	if format != "printed report" {
		t.Errorf("OriginalFormat(rp) = %q, want printed report", format)
	}

	creator, err := v.Creator("sk")
	if err != nil {
		t.Fatalf("Creator(sk) error = %v", err)
	}
	if creator != "James H. Bassett" {
		t.Errorf("Creator(sk) = %q, want James H. Bassett", creator)
	}
}

func TestUnknownCodes(t *testing.T) {
	v := Default()

	tests := []struct {
		name     string
		lookup   func() error
		wantKind string
		wantCode string
	}{
		{
			name:     "unknown extension",
			lookup:   func() error { _, err := v.MIMEType("bmp"); return err },
			wantKind: "extension",
			wantCode: "bmp",
		},
		{
			name:     "unknown format code",
			lookup:   func() error { _, err := v.OriginalFormat("xx"); return err },
			wantKind: "format code",
			wantCode: "xx",
		},
		{
			name:     "unknown creator code",
			lookup:   func() error { _, err := v.Creator(""); return err },
			wantKind: "format code",
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()
			var unknown *UnknownCodeError
			if !errors.As(err, &unknown) {
				t.Fatalf("expected UnknownCodeError, got %v", err)
			}
			if unknown.Kind != tt.wantKind || unknown.Code != tt.wantCode {
				t.Errorf("got %s %q, want %s %q", unknown.Kind, unknown.Code, tt.wantKind, tt.wantCode)
			}
		})
	}
}

func TestSoftLookups(t *testing.T) {
	v := Default()

	if lang := v.Language("sk"); lang != "en" {
		t.Errorf("Language(sk) = %q, want en", lang)
	}
	if lang := v.Language("ph"); lang != "" {
		t.Errorf("Language(ph) = %q, want empty", lang)
	}

	if tag, ok := v.Tag("kcz"); !ok || tag != "Kansas City" {
		t.Errorf("Tag(kcz) = %q, %v, want Kansas City, true", tag, ok)
	}
	if _, ok := v.Tag("chimp"); ok {
		t.Error("Tag(chimp) should be a miss")
	}
}

func TestLoad_OverridesOnlyListedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := "tags:\n  npk: \"National Park\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if tag, ok := v.Tag("npk"); !ok || tag != "National Park" {
		t.Errorf("Tag(npk) = %q, %v, want National Park, true", tag, ok)
	}
	// Overridden table replaces the default wholesale.
	if _, ok := v.Tag("zoo"); ok {
		t.Error("Tag(zoo) should miss after the tag table was overridden")
	}
	// Untouched tables keep their defaults.
	if mime, err := v.MIMEType("tif"); err != nil || mime != "image/tiff" {
		t.Errorf("MIMEType(tif) = %q, %v after override", mime, err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing vocabulary file")
	}
}
