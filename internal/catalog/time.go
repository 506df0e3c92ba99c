package catalog

import (
	"time"

	"github.com/google/uuid"
)

// TimeFormat is RFC3339 with fixed nanosecond width, so that timestamps of
// the same zone also sort correctly as plain strings.
const TimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t the way createdAt is stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// newID returns a UUIDv7: unique, and ordered by creation time.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
