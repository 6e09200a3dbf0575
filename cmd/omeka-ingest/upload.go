package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bassettarchive/omeka-ingest/internal/config"
	"github.com/bassettarchive/omeka-ingest/internal/exitcode"
	"github.com/bassettarchive/omeka-ingest/internal/imaging"
	"github.com/bassettarchive/omeka-ingest/internal/ingestion"
	"github.com/bassettarchive/omeka-ingest/internal/metadata"
	"github.com/bassettarchive/omeka-ingest/internal/model"
	"github.com/bassettarchive/omeka-ingest/internal/staging"
	"github.com/bassettarchive/omeka-ingest/internal/storage"
	"github.com/bassettarchive/omeka-ingest/internal/vocab"
)

var (
	uploadSubpath string
	uploadBatchID string
	uploadVocab   string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Move a conversion batch into staging, synthesize metadata, and upload",
	Long: `Moves converted images from the conversion directory into the local
staging hierarchy under the given subpath, synthesizes the Omeka upload
metadata table from their filenames, writes it to DATA_PATH/upload.csv, and
uploads every staged file to the bucket under {subpath}{filename}.

Per-file upload failures do not stop the batch; re-running uploads only the
missing subset.`,
	Run: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadSubpath, "subpath", "zoo/kcz/master/", "Bucket subpath for this batch")
	uploadCmd.Flags().StringVar(&uploadBatchID, "batch-id", "", "Batch identifier (UUID, generated when omitted)")
	uploadCmd.Flags().StringVar(&uploadVocab, "vocab", "", "Vocabulary override YAML file")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	batchID := model.BatchID(uploadBatchID)
	if uploadBatchID == "" {
		batchID = model.NewBatchID()
	}
	if err := batchID.Validate(); err != nil {
		slog.Error("invalid batch-id", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	subpath := uploadSubpath
	if !strings.HasSuffix(subpath, "/") {
		subpath += "/"
	}

	voc := vocab.Default()
	if uploadVocab != "" {
		voc, err = vocab.Load(uploadVocab)
		if err != nil {
			slog.Error("failed to load vocabulary", "error", err)
			os.Exit(exitcode.ConfigError)
		}
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.NewMinIOClient(ctx, storage.MinIOConfig{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		slog.Error("failed to initialize storage client", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	columns := metadata.DefaultColumns
	templatePath := filepath.Join(cfg.DataPath, "upload_headers.csv")
	if cols, err := metadata.ColumnsFromTemplate(templatePath); err == nil {
		columns = cols
	} else {
		slog.Warn("header template unavailable, using built-in columns", "path", templatePath, "error", err)
	}

	builder := &metadata.Builder{
		Synth: &metadata.Synthesizer{
			Vocab:   voc,
			Prober:  metadata.ProbeFunc(imaging.Probe),
			BaseURL: storage.BaseURL(cfg.S3Bucket, subpath),
		},
		Columns: columns,
	}

	svc := ingestion.NewService(staging.Mover{}, store, builder)
	req := ingestion.BatchRequest{
		Subpath:       subpath,
		ConversionDir: cfg.ConversionDir,
		UploadBaseDir: cfg.UploadBaseDir,
		DataPath:      cfg.DataPath,
	}

	report, err := svc.Run(ctx, req, batchID)
	if err != nil {
		slog.Error("batch failed", "error", err, "batch_id", batchID)
		os.Exit(uploadExitCode(err))
	}

	if len(report.Failed) > 0 {
		slog.Error("some uploads failed, re-run to retry them", "failed", report.Failed, "batch_id", batchID)
		os.Exit(exitcode.StorageError)
	}

	slog.Info("batch complete", "moved", len(report.Moved), "uploaded", len(report.Uploaded), "batch_id", batchID)
}

func uploadExitCode(err error) int {
	var unknown *vocab.UnknownCodeError
	var unavailable *staging.UnavailableError
	var move *ingestion.MoveError
	switch {
	case errors.As(err, &unknown):
		return exitcode.MetadataError
	case errors.As(err, &unavailable), errors.As(err, &move):
		return exitcode.StagingError
	default:
		return exitcode.StorageError
	}
}
