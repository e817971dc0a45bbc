package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/apperr"
)

// writeFileAtomic replaces path with data via a temp file in the same
// directory, so a crash mid-write leaves either the old or the new file.
func writeFileAtomic(path string, data []byte) (err error) {
	perm := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %w", apperr.ErrIO, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing %s: %w", apperr.ErrIO, tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: syncing %s: %w", apperr.ErrIO, tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", apperr.ErrIO, tmpName, err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", apperr.ErrIO, tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", apperr.ErrIO, path, err)
	}
	return nil
}

// edit loads path into an Editor, applies fn and writes the result back.
func edit(path string, fn func(doc Document, ed *Editor) error) error {
	data, err := os.ReadFile(path) //nolint:gosec // manifest path is chosen by the caller
	if err != nil {
		return fmt.Errorf("%w: reading manifest %s: %w", apperr.ErrIO, path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	ed, err := NewEditor(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := fn(doc, ed); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeFileAtomic(path, ed.Bytes())
}
