package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bassettarchive/omeka-ingest/internal/exitcode"
)

var rootCmd = &cobra.Command{
	Use:   "omeka-ingest",
	Short: "Stage archival images and their metadata for an Omeka Classic site",
	Long: `omeka-ingest prepares digitized archival images for an Omeka Classic
installation: it moves converted images into a staging hierarchy, synthesizes
per-image Dublin Core metadata from their structured filenames, uploads the
files to the S3 bucket, and reconciles the local identifier registry against
the Omeka CSV export.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
		// Ensure environment variables are loaded
		if err := godotenv.Load(); err != nil {
			slog.Warn("failed to load env vars", "error", err)
		}
	},
}

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.ConfigError)
	}
}
