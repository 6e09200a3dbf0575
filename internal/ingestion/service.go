// Package ingestion orchestrates one upload batch: move converted files into
// staging, synthesize their metadata table, and upload everything to the
// bucket.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bassettarchive/omeka-ingest/internal/metadata"
	"github.com/bassettarchive/omeka-ingest/internal/model"
	"github.com/bassettarchive/omeka-ingest/internal/staging"
	"github.com/bassettarchive/omeka-ingest/internal/storage"
)

// Mover relocates a conversion batch into the staging hierarchy.
type Mover interface {
	MoveBatch(src, dest string, exts map[string]bool) ([]string, error)
}

// MoveError wraps a failure during the staging move phase.
type MoveError struct {
	Err error
}

func (e *MoveError) Error() string { return fmt.Sprintf("move: %v", e.Err) }

func (e *MoveError) Unwrap() error { return e.Err }

// ObjectStorage writes staged files to the bucket.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data io.Reader) error
}

// BatchRequest carries the per-run parameters for an upload batch.
type BatchRequest struct {
	Subpath       string // bucket subpath, trailing slash included
	ConversionDir string
	UploadBaseDir string
	DataPath      string
}

// BatchReport summarizes a finished run. Failed uploads are not rolled back;
// re-running the batch retries only the missing subset, since moves skip
// existing files and the table build is deterministic.
type BatchReport struct {
	Moved    []string
	Uploaded []string
	Failed   []string
}

// Service orchestrates upload batches: move, synthesize, upload.
type Service struct {
	mover   Mover
	storage ObjectStorage
	builder *metadata.Builder
}

func NewService(mover Mover, storage ObjectStorage, builder *metadata.Builder) *Service {
	return &Service{mover: mover, storage: storage, builder: builder}
}

// Run executes one upload batch. A vocabulary miss aborts before anything is
// uploaded; upload failures are collected per file and do not stop the rest
// of the batch.
func (s *Service) Run(ctx context.Context, req BatchRequest, batchID model.BatchID) (BatchReport, error) {
	report := BatchReport{}

	if err := batchID.Validate(); err != nil {
		return report, err
	}

	// Preconditions: both ends of the move must be mounted.
	if err := staging.CheckDir(req.ConversionDir); err != nil {
		return report, err
	}
	if err := staging.CheckDir(req.UploadBaseDir); err != nil {
		return report, err
	}

	stagingDir := filepath.Join(req.UploadBaseDir, filepath.FromSlash(req.Subpath))
	slog.InfoContext(ctx, "moving conversion batch to staging", "src", req.ConversionDir, "dest", stagingDir, "batch_id", batchID)

	moved, err := s.mover.MoveBatch(req.ConversionDir, stagingDir, model.AcceptedExtensions())
	if err != nil {
		return report, &MoveError{Err: err}
	}
	report.Moved = moved

	// The batch covers everything staged under the subpath, not just this
	// run's moves, so a re-run picks up files whose upload failed earlier.
	filenames, err := staging.ListBatch(stagingDir)
	if err != nil {
		return report, err
	}

	slog.InfoContext(ctx, "synthesizing metadata", "files", len(filenames), "batch_id", batchID)
	records, err := s.builder.BuildRecords(stagingDir, filenames)
	if err != nil {
		return report, fmt.Errorf("metadata: %w", err)
	}

	uploadTable := s.builder.Table(records)
	uploadPath := filepath.Join(req.DataPath, "upload.csv")
	if err := uploadTable.Write(uploadPath); err != nil {
		return report, fmt.Errorf("metadata: %w", err)
	}
	slog.InfoContext(ctx, "upload table written", "path", uploadPath, "rows", len(uploadTable.Rows), "batch_id", batchID)

	for _, rec := range records {
		key := storage.ObjectKey{Subpath: req.Subpath, Filename: rec.Filename}

		if err := s.putFile(ctx, filepath.Join(stagingDir, rec.Filename), key.Key(), rec.Format); err != nil {
			slog.ErrorContext(ctx, "upload failed", "file", rec.Filename, "error", err, "batch_id", batchID)
			report.Failed = append(report.Failed, rec.Filename)
			continue
		}
		slog.InfoContext(ctx, "uploaded", "file", rec.Filename, "key", key.Key(), "batch_id", batchID)
		report.Uploaded = append(report.Uploaded, rec.Filename)
	}

	return report, nil
}

func (s *Service) putFile(ctx context.Context, path, key, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.storage.Put(ctx, key, contentType, f)
}
