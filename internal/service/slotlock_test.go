package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotLockSerializesSameSlot(t *testing.T) {
	locks := newSlotLocks()

	var wg sync.WaitGroup
	active := 0
	maxActive := 0
	var mu sync.Mutex

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.acquire(monday, 3)
			defer unlock()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestSlotLockIndependentSlots(t *testing.T) {
	locks := newSlotLocks()

	unlock3 := locks.acquire(monday, 3)
	defer unlock3()

	done := make(chan struct{})
	go func() {
		unlock4 := locks.acquire(monday, 4)
		unlock4()
		close(done)
	}()

	// A different hour must not block behind hour 3.
	<-done
}
