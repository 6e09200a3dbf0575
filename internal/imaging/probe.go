// Package imaging probes staged files for their pixel dimensions.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// ErrUnavailable reports that a file's pixel dimensions could not be read,
// either because the file is unreadable or because it is not a decodable
// raster image (PDFs, for instance).
var ErrUnavailable = errors.New("image dimensions unavailable")

// Probe returns the pixel width and height of the image at path.
func Probe(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return cfg.Width, cfg.Height, nil
}
