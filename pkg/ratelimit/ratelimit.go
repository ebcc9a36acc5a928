// Package ratelimit tracks the server-advertised request quota observed on
// successful Pincho API responses.
package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Response headers carrying the quota. All three must be present and parse
// for an observation to be recorded.
const (
	HeaderLimit     = "RateLimit-Limit"
	HeaderRemaining = "RateLimit-Remaining"
	HeaderReset     = "RateLimit-Reset"
)

// Snapshot is one complete rate-limit observation.
type Snapshot struct {
	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// Reset is the absolute time the window resets.
	Reset time.Time
}

// Tracker holds the single most recent snapshot for a client instance.
// Safe for concurrent use; updates replace the snapshot wholesale, so a
// reader never sees a partially updated value.
type Tracker struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// Observe records the quota from a successful response's headers. If any of
// the three headers is absent or does not parse as an integer, the stored
// snapshot is left untouched. Reports whether a snapshot was recorded.
func (t *Tracker) Observe(h http.Header) bool {
	limit, err := headerInt(h, HeaderLimit)
	if err != nil {
		return false
	}
	remaining, err := headerInt(h, HeaderRemaining)
	if err != nil {
		return false
	}
	reset, err := headerInt(h, HeaderReset)
	if err != nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = &Snapshot{
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Unix(int64(reset), 0),
	}
	return true
}

// Last returns the most recent snapshot, or false if no qualifying response
// has been observed yet.
func (t *Tracker) Last() (Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.snap == nil {
		return Snapshot{}, false
	}
	return *t.snap, true
}

func headerInt(h http.Header, name string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(h.Get(name)))
}
