package exitcode

// Exit codes for the omeka-ingest CLI.
// The operator can use these to decide what to fix before re-running.
const (
	// Success - run completed
	Success = 0

	// ConfigError - missing or invalid configuration
	// Don't re-run: fix the config first
	ConfigError = 1

	// StagingError - staging location unavailable or a file move failed
	// Check the mount, then re-run
	StagingError = 2

	// MetadataError - a filename carried an unknown extension or format code
	// Fix the lookup table or rename the file, then re-run
	MetadataError = 3

	// StorageError - one or more uploads failed
	// Re-run: moves and table builds are safe to repeat
	StorageError = 4

	// ReconcileError - a registry row had no matching export row
	// Investigate the incomplete upload before re-running
	ReconcileError = 5
)
