package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// writeSnapshot encodes v to path through a temporary file, creating the
// parent directory when needed.
func writeSnapshot(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "save", Path: path, Err: err}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "save", Path: path, Err: err}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &StorageError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// readSnapshot decodes path into v. A missing file reports found=false and
// no error.
func readSnapshot(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "load", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &StorageError{Op: "load", Path: path, Err: err}
	}
	return true, nil
}
