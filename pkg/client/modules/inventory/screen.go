package inventory

import (
	"sync"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
)

// storage is the inventory a slot is backed by.
type storage struct {
	size   int
	player bool
}

func (s *storage) Size() int      { return s.size }
func (s *storage) IsPlayer() bool { return s.player }

// Screen is the live view of one open window. Slot stacks are read from
// the module on every access; the layout is rebuilt when the container
// size changes.
type Screen struct {
	m        *Module
	windowID int32
	menu     MenuType
	kind     mousewheel.ScreenKind

	mu    sync.Mutex
	count int
	slots []mousewheel.Slot
}

// Screen returns the view of the currently open window: the open
// container, or else the player inventory.
func (m *Module) Screen() *Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.screen != nil {
		return m.screen
	}
	s := &Screen{m: m, menu: menuPlayer, kind: mousewheel.InventoryScreen}
	switch {
	case m.container != nil:
		s.windowID = m.container.windowID
		s.menu = m.container.menuType
		s.kind = mousewheel.ContainerScreen
	case m.creative:
		s.kind = mousewheel.CreativeScreen
	}
	m.screen = s
	return s
}

func (s *Screen) WindowID() int32             { return s.windowID }
func (s *Screen) Kind() mousewheel.ScreenKind { return s.kind }

// MenuType returns the container menu type, or -1 for the player inventory.
func (s *Screen) MenuType() MenuType { return s.menu }

func (s *Screen) Slots() []mousewheel.Slot {
	count := s.containerSlotCount()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil || s.count != count {
		s.slots = s.layout(count)
		s.count = count
	}
	return s.slots
}

// Slot returns the slot at view index idx, or nil.
func (s *Screen) Slot(idx int) *Slot {
	slots := s.Slots()
	if idx < 0 || idx >= len(slots) {
		return nil
	}
	return slots[idx].(*Slot)
}

func (s *Screen) containerSlotCount() int {
	if s.windowID == 0 {
		return 0
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if s.m.container == nil || s.m.container.windowID != s.windowID {
		return 0
	}
	return len(s.m.container.slots)
}

func (s *Screen) layout(containerSlots int) []mousewheel.Slot {
	player := &storage{size: PlayerStorageSize, player: true}

	if s.windowID == 0 {
		result := &storage{size: 1}
		grid := &storage{size: 4}
		out := make([]mousewheel.Slot, 0, TotalSlots)
		for idx := range TotalSlots {
			sl := &Slot{screen: s, index: idx, rule: ruleFor(menuPlayer, idx)}
			switch {
			case idx == SlotCraftingResult:
				sl.inv, sl.invSlot = result, 0
			case idx < SlotArmorHead:
				sl.inv, sl.invSlot = grid, idx-SlotCraftingStart
			default:
				sl.inv, sl.invSlot = player, containerToPlayerInv(idx)
			}
			out = append(out, sl)
		}
		return out
	}

	// nothing is shown until the window content arrives
	if containerSlots == 0 {
		return []mousewheel.Slot{}
	}
	container := &storage{size: containerSlots}
	out := make([]mousewheel.Slot, 0, containerSlots+PlayerInvSlots)
	for idx := range containerSlots {
		out = append(out, &Slot{screen: s, index: idx, inv: container, invSlot: idx, rule: ruleFor(s.menu, idx)})
	}
	if !menuHasPlayerSlots(s.menu) {
		return out
	}
	for k := range PlayerInvSlots {
		invSlot := SlotMainStart + k // main 9-35
		if k >= SlotMainEnd-SlotMainStart {
			invSlot = k - (SlotMainEnd - SlotMainStart) // hotbar 0-8
		}
		out = append(out, &Slot{screen: s, index: containerSlots + k, inv: player, invSlot: invSlot})
	}
	return out
}

// Slot is one cell of a Screen. It implements mousewheel.Slot.
type Slot struct {
	screen  *Screen
	index   int
	inv     *storage
	invSlot int
	rule    slotRule
}

func (s *Slot) ID() int { return s.index }

func (s *Slot) Inventory() mousewheel.Inventory {
	if s.inv == nil {
		return nil
	}
	return s.inv
}

func (s *Slot) InvSlot() int { return s.invSlot }

func (s *Slot) Stack() *items.ItemStack {
	m := s.screen.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, open := m.viewSlot(s.screen.windowID, s.index)
	if !open || e.item == nil {
		return items.EmptyStack()
	}
	return e.item
}

func (s *Slot) CanInsert(stack *items.ItemStack) bool {
	switch s.rule {
	case ruleOutput:
		return false
	case ruleRestricted:
		return stack != nil && !stack.IsEmpty()
	}
	return true
}
