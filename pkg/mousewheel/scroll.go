package mousewheel

import (
	"math"

	"github.com/go-mclib/data/pkg/data/items"
)

// Scroll handles one wheel step over ref.
//
// Depending on direction and scope the gesture either sends items out of
// ref or pulls matching items into it. Shift moves whole stacks, Control
// moves every matching stack, no modifier moves single items.
func (h *Helper) Scroll(ref Slot, scrollUp bool) {
	var shallSend bool
	if h.settings.DirectionalScrolling() {
		shallSend = h.ShallChangeInventory(ref, scrollUp)
	} else {
		shallSend = !scrollUp
		scrollUp = false
	}

	shift, control := h.modifiers.ShiftDown(), h.modifiers.ControlDown()
	h.logger.Printf("mousewheel: scroll slot %d up=%t send=%t shift=%t control=%t", ref.ID(), scrollUp, shallSend, shift, control)

	if shallSend {
		h.sendFrom(ref, shift, control)
		return
	}
	h.pullInto(ref, scrollUp, shift, control)
}

func (h *Helper) sendFrom(ref Slot, shift, control bool) {
	// output slots are flushed before anything else
	if !ref.CanInsert(items.EmptyStack()) {
		h.SendStack(ref)
	}

	switch {
	case control:
		h.SendAllOfAKind(ref)
	case shift:
		h.SendStack(ref)
	default:
		h.SendSingleItem(ref)
	}
}

func (h *Helper) pullInto(ref Slot, scrollUp, shift, control bool) {
	refStack := copyStack(ref.Stack())
	refScope := h.Scope(ref)

	if shift || control {
		for _, slot := range h.screen.Slots() {
			if h.Scope(slot) == refScope {
				continue
			}
			if h.sameKind(slot.Stack(), refStack) {
				h.SendStack(slot)
				if !control {
					break
				}
			}
		}
		return
	}

	var moveSlot Slot
	smallest := math.MaxInt
	for _, slot := range h.screen.Slots() {
		scope := h.Scope(slot)
		if scope == refScope {
			continue
		}
		if (scope <= 0) != scrollUp {
			continue
		}
		if !h.sameKind(slot.Stack(), refStack) {
			continue
		}
		if n := stackCount(slot.Stack()); n < smallest {
			smallest = n
			moveSlot = slot
			if n == 1 {
				break
			}
		}
	}
	if moveSlot != nil {
		h.SendSingleItem(moveSlot)
	}
}
