package mousewheel

import (
	"math"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/mousewheel/pkg/config"
)

// InvalidScope marks slots that never take part in a gesture.
const InvalidScope = math.MaxInt

const (
	hotbarSize   = 9
	offhandStart = 40
)

// Scope returns the scope of slot.
func (h *Helper) Scope(slot Slot) int {
	return h.scopeFn(slot, false)
}

// ScopeOf returns the scope of slot. With preferSmallerScopes, soft hotbar
// scoping splits the hotbar off the rest of the player inventory.
func (h *Helper) ScopeOf(slot Slot, preferSmallerScopes bool) int {
	return h.scopeFn(slot, preferSmallerScopes)
}

func (h *Helper) IsHotbarSlot(slot Slot) bool {
	return slot.InvSlot() < hotbarSize
}

// ShallChangeInventory reports whether scrolling over slot in the given
// direction moves items out of slot's scope: lower scopes send on scroll
// up, upper scopes on scroll down.
func (h *Helper) ShallChangeInventory(slot Slot, scrollUp bool) bool {
	return (h.Scope(slot) <= 0) == scrollUp
}

// RunInScope calls fn for every slot of the screen in scope, in screen order.
func (h *Helper) RunInScope(scope int, fn func(Slot)) {
	h.RunInScopePreferring(scope, false, fn)
}

func (h *Helper) RunInScopePreferring(scope int, preferSmallerScopes bool, fn func(Slot)) {
	for _, slot := range h.screen.Slots() {
		if h.scopeFn(slot, preferSmallerScopes) == scope {
			fn(slot)
		}
	}
}

func validBinding(slot Slot) bool {
	inv := slot.Inventory()
	if inv == nil || slot.InvSlot() >= inv.Size() {
		return false
	}
	return slot.CanInsert(items.EmptyStack())
}

func (h *Helper) defaultScope(slot Slot, preferSmallerScopes bool) int {
	if !validBinding(slot) {
		return InvalidScope
	}
	inv := slot.Inventory()

	if h.screen.Kind() == InventoryScreen {
		if !inv.IsPlayer() {
			return 2
		}
		switch {
		case h.IsHotbarSlot(slot):
			return 0
		case slot.InvSlot() >= offhandStart:
			return -1
		default:
			return 1
		}
	}

	if !inv.IsPlayer() {
		return 1
	}
	if h.IsHotbarSlot(slot) {
		switch h.settings.HotbarScoping() {
		case config.HotbarScopingHard:
			return -1
		case config.HotbarScopingSoft:
			if preferSmallerScopes {
				return -1
			}
		}
	}
	return 0
}

// creativeScope classifies slots of the creative inventory. Only the
// player's own slots take part; palette and destroy slots are templates.
func (h *Helper) creativeScope(slot Slot, _ bool) int {
	if !validBinding(slot) || !slot.Inventory().IsPlayer() {
		return InvalidScope
	}
	switch {
	case h.IsHotbarSlot(slot):
		return 0
	case slot.InvSlot() >= offhandStart:
		return -1
	default:
		return 1
	}
}
