// Package slot implements the persistent storage contract for the wardrobe
// catalog: a single named slot holding one serialized document.
//
// Reads return the last written document verbatim, or ErrAbsent when the
// slot has never been written. Writes replace the slot wholesale. There is
// no indexing and no partial update; the catalog package owns the document
// format and this package only moves bytes.
package slot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAbsent is returned by Read when nothing has been written yet.
	ErrAbsent = errors.New("slot: absent")
	// ErrQuotaExceeded is returned by Write when the document does not fit.
	ErrQuotaExceeded = errors.New("slot: quota exceeded")
)

// Slot is one named, wholesale-overwritten storage location.
type Slot interface {
	Name() string
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Dir         string // file and sqlite backends
	Name        string
	DatabaseURL string // postgres backend
	MaxBytes    int    // 0 disables the quota
}

// Open builds the slot described by opts, wrapped with a quota when
// MaxBytes is positive.
func Open(opts Options) (Slot, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, fmt.Errorf("slot: name is required")
	}

	var (
		s   Slot
		err error
	)
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		s, err = NewFileSlot(opts.Dir, name)
	case BackendSQLite:
		s, err = NewSQLiteSlot(opts.Dir, name)
	case BackendPostgres:
		s, err = NewPostgresSlot(opts.DatabaseURL, name)
	case BackendMemory:
		s = NewMemorySlot(name)
	default:
		return nil, fmt.Errorf("slot: unknown backend %q: must be one of: file, sqlite, postgres, memory", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if opts.MaxBytes > 0 {
		s = WithQuota(s, opts.MaxBytes)
	}
	return s, nil
}
