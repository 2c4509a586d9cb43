package mousewheel

import (
	"slices"
	"sync"
)

// lockRegistry is an ordered set of locked slot IDs. Unlock callbacks run
// on the queue worker, so reads and writes are guarded.
type lockRegistry struct {
	mu  sync.RWMutex
	ids []int
}

func (r *lockRegistry) isLocked(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, found := slices.BinarySearch(r.ids, id)
	return found
}

func (r *lockRegistry) lock(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, found := slices.BinarySearch(r.ids, id)
	if !found {
		r.ids = slices.Insert(r.ids, i, id)
	}
}

func (r *lockRegistry) unlock(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, found := slices.BinarySearch(r.ids, id); found {
		r.ids = slices.Delete(r.ids, i, i+1)
	}
}

func (r *lockRegistry) snapshot() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.ids)
}

func (h *Helper) IsSlotLocked(slot Slot) bool { return h.locks.isLocked(slot.ID()) }

// LockSlot locks slot against new interactions. Locking twice has no effect.
func (h *Helper) LockSlot(slot Slot) { h.locks.lock(slot.ID()) }

// UnlockSlot releases slot. Unlocking an unlocked slot is a no-op.
func (h *Helper) UnlockSlot(slot Slot) { h.locks.unlock(slot.ID()) }

// LockedSlots returns the locked slot IDs in ascending order.
func (h *Helper) LockedSlots() []int { return h.locks.snapshot() }
