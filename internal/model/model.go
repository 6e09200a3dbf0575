package model

import (
	"fmt"

	"github.com/google/uuid"
)

// BatchID identifies one upload run, used to correlate log lines when a
// partially failed batch is re-run.
type BatchID string

// NewBatchID returns a freshly generated BatchID.
func NewBatchID() BatchID {
	return BatchID(uuid.NewString())
}

// Validate checks that the BatchID is a valid UUID.
func (b BatchID) Validate() error {
	if b == "" {
		return fmt.Errorf("batch-id cannot be empty")
	}
	if _, err := uuid.Parse(string(b)); err != nil {
		return fmt.Errorf("batch-id must be a valid UUID: %w", err)
	}
	return nil
}

// String returns the batch ID as a string.
func (b BatchID) String() string {
	return string(b)
}

// AcceptedExtensions are the raster and document formats the file mover will
// stage; everything else stays behind in the conversion directory.
func AcceptedExtensions() map[string]bool {
	return map[string]bool{
		"tif": true,
		"jpg": true,
		"png": true,
		"gif": true,
		"pdf": true,
	}
}
