package client

import "sync"

type updateKey struct {
	transferID uint
	status     string
}

// Dedup suppresses duplicate user-visible notifications. The push
// channel and the poller can both surface the same transition; whoever
// records (transferID, status) first wins and the other is dropped.
type Dedup struct {
	mu   sync.Mutex
	seen map[updateKey]struct{}
}

// NewDedup creates an empty de-duplication set.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[updateKey]struct{})}
}

// Observe records the pair and reports whether it was already present.
func (d *Dedup) Observe(transferID uint, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := updateKey{transferID: transferID, status: status}
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}
