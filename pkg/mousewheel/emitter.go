package mousewheel

import "github.com/go-mclib/mousewheel/pkg/client/modules/interactions"

// createClickEvent builds a click on slot unless the slot is locked.
func (h *Helper) createClickEvent(slot Slot, button int, action ActionType) interactions.Event {
	if h.IsSlotLocked(slot) {
		return nil
	}
	return h.factory.Create(slot, button, action)
}

// unlockAfter wraps ev so that submitting it also releases slot. The
// wrapper keeps ev's main-thread requirement.
func (h *Helper) unlockAfter(ev interactions.Event, slot Slot) interactions.Event {
	if ev == nil {
		return nil
	}
	return interactions.NewCallbackEvent(func() interactions.Waiter {
		w := ev.Send()
		h.UnlockSlot(slot)
		return w
	}, ev.RunOnMain())
}

// SendSingleItem moves one item out of slot. A single item is quick-moved
// directly; otherwise the stack is picked up, one item put back, the
// cursor stack quick-moved and the rest picked up again.
func (h *Helper) SendSingleItem(slot Slot) {
	if h.IsSlotLocked(slot) {
		return
	}

	if stackCount(slot.Stack()) == 1 {
		h.queue.Push(h.factory.Create(slot, 0, QuickMove))
		return
	}
	h.queue.Push(h.factory.Create(slot, 0, Pickup))
	h.queue.Push(h.factory.Create(slot, 1, Pickup))
	h.queue.Push(h.factory.Create(slot, 0, QuickMove))
	h.queue.Push(h.factory.Create(slot, 0, Pickup))
}

// SendSingleItemLocked is SendSingleItem holding a lock on slot until
// the last click has been submitted.
func (h *Helper) SendSingleItemLocked(slot Slot) {
	if h.IsSlotLocked(slot) {
		return
	}

	h.LockSlot(slot)
	if stackCount(slot.Stack()) == 1 {
		h.queue.Push(h.unlockAfter(h.factory.Create(slot, 0, QuickMove), slot))
		return
	}
	h.queue.Push(h.factory.Create(slot, 0, Pickup))
	h.queue.Push(h.factory.Create(slot, 1, Pickup))
	h.queue.Push(h.factory.Create(slot, 0, QuickMove))
	h.queue.Push(h.unlockAfter(h.factory.Create(slot, 0, Pickup), slot))
}

// SendStack quick-moves the whole stack of slot.
func (h *Helper) SendStack(slot Slot) {
	h.queue.Push(h.createClickEvent(slot, 0, QuickMove))
}

func (h *Helper) SendStackLocked(slot Slot) {
	if h.IsSlotLocked(slot) {
		return
	}

	h.LockSlot(slot)
	h.queue.Push(h.unlockAfter(h.factory.Create(slot, 0, QuickMove), slot))
}

// SendAllOfAKind quick-moves every stack in the reference slot's scope
// holding the same kind of item as the reference slot.
func (h *Helper) SendAllOfAKind(ref Slot) {
	refStack := copyStack(ref.Stack())
	h.RunInScope(h.Scope(ref), func(slot Slot) {
		if h.sameKind(slot.Stack(), refStack) {
			h.SendStack(slot)
		}
	})
}

// SendAllFrom quick-moves every stack in the reference slot's scope.
func (h *Helper) SendAllFrom(ref Slot) {
	h.RunInScopePreferring(h.ScopeOf(ref, true), true, h.SendStack)
}

// DropStack throws the whole stack of slot.
func (h *Helper) DropStack(slot Slot) {
	if h.IsSlotLocked(slot) {
		return
	}

	h.queue.Push(h.createClickEvent(slot, 1, Throw))
}

func (h *Helper) DropStackLocked(slot Slot) {
	if h.IsSlotLocked(slot) {
		return
	}

	h.LockSlot(slot)
	h.queue.Push(h.unlockAfter(h.factory.Create(slot, 1, Throw), slot))
}

func (h *Helper) DropAllOfAKind(ref Slot) {
	refStack := copyStack(ref.Stack())
	h.RunInScope(h.Scope(ref), func(slot Slot) {
		if h.sameKind(slot.Stack(), refStack) {
			h.DropStack(slot)
		}
	})
}

func (h *Helper) DropAllFrom(ref Slot) {
	h.RunInScopePreferring(h.ScopeOf(ref, true), true, h.DropStack)
}
