package slot

import "fmt"

// quotaSlot rejects documents larger than max bytes, the way browser
// storage refuses writes past its per-origin cap.
type quotaSlot struct {
	Slot
	max int
}

// WithQuota wraps s so that writes larger than maxBytes fail with
// ErrQuotaExceeded and leave the stored document untouched.
func WithQuota(s Slot, maxBytes int) Slot {
	return &quotaSlot{Slot: s, max: maxBytes}
}

func (q *quotaSlot) Write(data []byte) error {
	if len(data) > q.max {
		return fmt.Errorf("%w: document is %d bytes, limit is %d", ErrQuotaExceeded, len(data), q.max)
	}
	return q.Slot.Write(data)
}
