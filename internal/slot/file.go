package slot

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileExt is appended to the slot name to form the document filename.
const FileExt = ".json"

// FileSlot stores the document as <dir>/<name>.json.
type FileSlot struct {
	dir  string
	name string
}

// NewFileSlot creates the data directory if needed and returns a file-backed slot.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if dir == "" {
		return nil, fmt.Errorf("slot: file backend needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("slot: create data dir: %w", err)
	}
	return &FileSlot{dir: dir, name: name}, nil
}

// Name returns the slot name.
func (f *FileSlot) Name() string { return f.name }

// Path returns the absolute path of the document file.
func (f *FileSlot) Path() string {
	return filepath.Join(f.dir, f.name+FileExt)
}

// Read returns the file contents, or ErrAbsent if the file does not exist.
func (f *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAbsent
		}
		return nil, fmt.Errorf("slot: reading %s: %w", f.Path(), err)
	}
	return data, nil
}

// Write replaces the document. The bytes land in a temp file first and are
// renamed over the target, so a failed write never leaves a torn document.
func (f *FileSlot) Write(data []byte) error {
	tmp, err := os.CreateTemp(f.dir, f.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("slot: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("slot: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("slot: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("slot: replacing %s: %w", f.Path(), err)
	}
	return nil
}

// Close is a no-op for files.
func (f *FileSlot) Close() error { return nil }
