package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/guardia-api/internal/models"
)

// slotLocks serializes all coverage work for one (date, hour) slot: the full
// read-roster, read-counters, write-coverage sequence runs under the slot's
// mutex so two concurrent registrations cannot pick the same least-loaded
// teacher twice. Redistribution takes the same lock for its purge+recompute.
type slotLocks struct {
	mu    sync.Mutex
	slots map[string]*sync.Mutex
}

func newSlotLocks() *slotLocks {
	return &slotLocks{slots: make(map[string]*sync.Mutex)}
}

// acquire locks the slot and returns its unlock function.
func (l *slotLocks) acquire(date time.Time, hour int) func() {
	key := fmt.Sprintf("%s#%d", date.Format(models.DateLayout), hour)

	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &sync.Mutex{}
		l.slots[key] = slot
	}
	l.mu.Unlock()

	slot.Lock()
	return slot.Unlock
}
