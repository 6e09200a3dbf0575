// Package staging relocates converted image files into the local upload
// hierarchy that mirrors the bucket layout.
package staging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// UnavailableError reports a directory that is missing or not mounted. It is
// a fatal precondition: no work starts until the operator fixes the mount.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("staging location %s unavailable: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// CheckDir verifies that path exists and is a directory.
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &UnavailableError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return &UnavailableError{Path: path, Err: errors.New("not a directory")}
	}
	return nil
}

// Mover moves conversion batches between local directories.
type Mover struct{}

// MoveBatch moves files with an accepted extension from src into dest,
// creating dest if needed. Existing destination files are never overwritten;
// the source file stays put and is reported with a warning. Returns the
// sorted names of files actually moved.
func (Mover) MoveBatch(src, dest string, exts map[string]bool) ([]string, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("listing conversion directory: %w", err)
	}

	var moved []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if !exts[ext] {
			continue
		}

		target := filepath.Join(dest, name)
		if _, err := os.Stat(target); err == nil {
			slog.Warn("destination file exists, not overwriting", "file", name)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return moved, fmt.Errorf("checking %s: %w", target, err)
		}

		if err := moveFile(filepath.Join(src, name), target); err != nil {
			return moved, fmt.Errorf("moving %s: %w", name, err)
		}
		moved = append(moved, name)
	}

	sort.Strings(moved)
	return moved, nil
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// rename crosses devices (the conversion directory is often on removable
// storage).
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

// ListBatch returns the regular files staged in dir, sorted, skipping
// dotfiles such as .DS_Store.
func ListBatch(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing staging directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
