package inventory

import (
	"fmt"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/data/pkg/packets"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// GetSlot returns the item at a player inventory menu slot index (0-45), or nil if empty.
func (m *Module) GetSlot(index int) *items.ItemStack {
	if index < 0 || index >= TotalSlots {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slots[index].item
}

// HeldSlotIndex returns which hotbar slot is selected (0-8).
func (m *Module) HeldSlotIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.heldSlot
}

// CursorItem returns the item currently held on the cursor.
func (m *Module) CursorItem() *items.ItemStack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor.item
}

// FindItem returns the first player inventory menu slot containing the given
// item ID, searching hotbar first then main inventory. Returns -1 if not found.
func (m *Module) FindItem(itemID int32) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := SlotHotbarStart; i < SlotHotbarEnd; i++ {
		if s := m.slots[i].item; s != nil && !s.IsEmpty() && s.ID == itemID {
			return i
		}
	}
	for i := SlotMainStart; i < SlotMainEnd; i++ {
		if s := m.slots[i].item; s != nil && !s.IsEmpty() && s.ID == itemID {
			return i
		}
	}
	return -1
}

// SetHeldSlot changes the selected hotbar slot (0-8) and notifies the server.
func (m *Module) SetHeldSlot(slot int) error {
	if slot < 0 || slot > 8 {
		return fmt.Errorf("invalid hotbar slot %d", slot)
	}

	m.mu.Lock()
	m.heldSlot = slot
	m.mu.Unlock()

	if err := m.writer.WritePacket(&packets.C2SSetCarriedItem{
		Slot: ns.Int16(slot),
	}); err != nil {
		return err
	}

	for _, cb := range m.onHeldSlotChange {
		cb(slot)
	}
	return nil
}
