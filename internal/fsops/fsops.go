// Package fsops wraps filesystem writes behind afero so that dry-run
// mode and tests share a single seam. In dry-run mode every mutating
// call logs the action it would take and touches nothing.
package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/output"
)

// Writer performs filesystem mutations, honoring dry-run mode.
type Writer struct {
	fs     afero.Fs
	dryRun bool
}

// New creates a Writer over the OS filesystem.
func New(dryRun bool) *Writer {
	return &Writer{fs: afero.NewOsFs(), dryRun: dryRun}
}

// NewWithFs creates a Writer over the given filesystem (for testing).
func NewWithFs(fs afero.Fs, dryRun bool) *Writer {
	return &Writer{fs: fs, dryRun: dryRun}
}

// Fs exposes the underlying filesystem.
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// DryRun reports whether the writer is in dry-run mode.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// MkdirAll creates a directory and all parents.
func (w *Writer) MkdirAll(path string, perm os.FileMode) error {
	if w.dryRun {
		output.DryRun("Would create directory: %s", path)
		return nil
	}
	if err := w.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories first.
func (w *Writer) WriteFile(path string, data []byte, perm os.FileMode) error {
	if w.dryRun {
		output.DryRun("Would write %d bytes to: %s", len(data), path)
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(w.fs, path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Copy copies a file from src to dst, creating dst's parent directory.
// The source's permission bits carry over, so a 0600 private key stays
// private at its destination.
func (w *Writer) Copy(src, dst string) error {
	if w.dryRun {
		output.DryRun("Would copy: %s -> %s", src, dst)
		return nil
	}
	info, err := w.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	data, err := afero.ReadFile(w.fs, src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := w.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	perm := info.Mode().Perm()
	if err := afero.WriteFile(w.fs, dst, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	// WriteFile's perm is subject to umask and ignored for existing
	// files; Chmod sets the mode exactly.
	if err := w.fs.Chmod(dst, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", dst, err)
	}
	return nil
}

// RemoveAll removes path and any children it contains. A missing path
// is not an error.
func (w *Writer) RemoveAll(path string) error {
	if w.dryRun {
		output.DryRun("Would remove if exists: %s", path)
		return nil
	}
	exists, err := afero.DirExists(w.fs, path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	if err := w.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func (w *Writer) Exists(path string) (bool, error) {
	return afero.Exists(w.fs, path)
}
