package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TempFilePrefix starts the name of every temp file an atomic save leaves
// behind if the process dies mid-write. The collection's file name follows it.
const TempFilePrefix = "folio-tmp-"

// writeFileAtomic replaces the collection file with data through a temp file
// in the same directory, so the site build never reads a half-written array.
// The temp file gets perm before any data lands in it.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, TempFilePrefix+base+"-*")
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("atomic write %s: set mode: %w", path, err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("atomic write %s: flush: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic write %s: replace: %w", path, err)
	}

	syncDir(dir)
	return nil
}

// syncDir persists the rename. Directories cannot be synced on Windows.
func syncDir(dir string) {
	if runtime.GOOS == "windows" {
		return
	}
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
}
