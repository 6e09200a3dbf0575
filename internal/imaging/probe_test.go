package imaging

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestProbe_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoo_kcz_ph_00.png")
	writeTestPNG(t, path, 640, 480)

	w, h, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if w != 640 || h != 480 {
		t.Errorf("Probe() = %dx%d, want 640x480", w, h)
	}
}

func TestProbe_UndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report_rp_01.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Probe(path)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestProbe_MissingFile(t *testing.T) {
	_, _, err := Probe(filepath.Join(t.TempDir(), "absent.tif"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
