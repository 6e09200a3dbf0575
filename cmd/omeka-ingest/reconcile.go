package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bassettarchive/omeka-ingest/internal/adapters/omeka"
	"github.com/bassettarchive/omeka-ingest/internal/config"
	"github.com/bassettarchive/omeka-ingest/internal/exitcode"
	"github.com/bassettarchive/omeka-ingest/internal/reconcile"
	"github.com/bassettarchive/omeka-ingest/internal/table"
)

var reconcileExport string

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Fill the identifier registry from the Omeka export and accumulate items",
	Long: `Fills blank omeka_id and item_id fields in DATA_PATH/identifiers.csv by
matching against the Omeka CSV export, then appends the latest upload batch
(DATA_PATH/upload.csv) onto DATA_PATH/items.csv.

The export is read from DATA_PATH/export.csv, from the path given with
--export, or downloaded when --export is an HTTP(S) URL (OMEKA_API_KEY is
sent when set). Already-reconciled registry rows are never touched, so the
pass is safe to re-run.`,
	Run: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileExport, "export", "", "Export CSV path or URL (default: DATA_PATH/export.csv)")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	export, err := loadExport(ctx, cfg)
	if err != nil {
		slog.Error("failed to load export table", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	registryPath := filepath.Join(cfg.DataPath, "identifiers.csv")
	registry, err := table.Read(registryPath)
	if err != nil {
		slog.Error("failed to load identifier registry", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	updated, err := reconcile.Registry(registry, export)
	if err != nil {
		slog.Error("reconciliation failed", "error", err)
		os.Exit(exitcode.ReconcileError)
	}
	if err := registry.Write(registryPath); err != nil {
		slog.Error("failed to persist registry", "error", err)
		os.Exit(exitcode.ReconcileError)
	}
	slog.Info("registry reconciled", "updated", updated, "rows", len(registry.Rows))

	accumulateItems(cfg)
}

func loadExport(ctx context.Context, cfg *config.Config) (*table.Table, error) {
	source := reconcileExport
	if source == "" {
		source = filepath.Join(cfg.DataPath, "export.csv")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := omeka.NewClient(os.Getenv("OMEKA_API_KEY"))
		return client.FetchExport(ctx, source)
	}
	return table.Read(source)
}

// accumulateItems appends the latest finalized upload batch onto the running
// items table. A missing upload.csv just means there is no new batch.
func accumulateItems(cfg *config.Config) {
	uploadPath := filepath.Join(cfg.DataPath, "upload.csv")
	batch, err := table.Read(uploadPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("no upload batch to accumulate", "path", uploadPath)
			return
		}
		slog.Error("failed to load upload batch", "error", err)
		os.Exit(exitcode.ReconcileError)
	}

	itemsPath := filepath.Join(cfg.DataPath, "items.csv")
	items, err := table.Read(itemsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to load items table", "error", err)
			os.Exit(exitcode.ReconcileError)
		}
		items = table.New(batch.Columns)
	}

	reconcile.AppendItems(items, batch)
	if err := items.Write(itemsPath); err != nil {
		slog.Error("failed to persist items table", "error", err)
		os.Exit(exitcode.ReconcileError)
	}
	slog.Info("upload batch accumulated into items", "appended", len(batch.Rows), "total", len(items.Rows))
}
