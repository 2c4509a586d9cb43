package inventory

import (
	"fmt"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// ContainerOpen returns true if a container is currently open.
func (m *Module) ContainerOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.container != nil
}

// ContainerMenuType returns the menu type of the open container, or -1 if none.
func (m *Module) ContainerMenuType() MenuType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return -1
	}
	return m.container.menuType
}

// ContainerTitle returns the title of the open container, or "" if none.
func (m *Module) ContainerTitle() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return ""
	}
	return m.container.title
}

// ContainerSlotCount returns the number of container-specific slots
// (excluding the 36 player inventory slots), or 0 if no container is open.
func (m *Module) ContainerSlotCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return 0
	}
	return len(m.container.slots)
}

// Click sends one container click on viewIndex of window windowID and
// returns a Waiter released by the server's next slot update.
//
// Local state is predicted for the simple cases: a left pickup swaps
// cursor and slot, quick-move and stack throw empty the slot. Right
// pickups are left to the server to resync.
func (m *Module) Click(windowID int32, viewIndex, button int, action mousewheel.ActionType) (interactions.Waiter, error) {
	m.mu.Lock()
	clicked, open := m.viewSlot(windowID, viewIndex)
	if !open {
		m.mu.Unlock()
		return nil, fmt.Errorf("window %d is not open", windowID)
	}
	stateID := m.stateID
	if windowID != 0 {
		stateID = m.container.stateID
	}

	var changed []packets.ChangedSlot
	switch {
	case action == mousewheel.Pickup && button == 0:
		cursor := m.cursor
		if cursor.empty() && clicked.empty() {
			break
		}
		// swap (accurate merge for same-item stacks is left to the server)
		m.setViewSlot(windowID, viewIndex, cursor)
		m.cursor = clicked
		changed = []packets.ChangedSlot{{SlotNum: ns.Int16(viewIndex), Item: slotToHashed(cursor.raw)}}
	case action == mousewheel.QuickMove, action == mousewheel.Throw && button == 1:
		if clicked.empty() {
			break
		}
		m.setViewSlot(windowID, viewIndex, slotEntry{item: items.EmptyStack()})
		changed = []packets.ChangedSlot{{SlotNum: ns.Int16(viewIndex), Item: ns.EmptyHashedSlot()}}
	}
	cursorHashed := slotToHashed(m.cursor.raw)

	ack := make(chan struct{})
	m.acks = append(m.acks, ack)
	m.mu.Unlock()

	err := m.writer.WritePacket(&packets.C2SContainerClick{
		WindowId:     ns.VarInt(windowID),
		StateId:      ns.VarInt(stateID),
		Slot:         ns.Int16(viewIndex),
		Button:       ns.Int8(button),
		Mode:         ns.VarInt(action),
		ChangedSlots: changed,
		CarriedItem:  cursorHashed,
	})
	if err != nil {
		return nil, fmt.Errorf("send container click: %w", err)
	}
	return interactions.ChanWaiter(ack), nil
}

// CloseContainer closes the currently open container.
func (m *Module) CloseContainer() error {
	m.mu.RLock()
	if m.container == nil {
		m.mu.RUnlock()
		return fmt.Errorf("no container open")
	}
	windowID := m.container.windowID
	m.mu.RUnlock()

	m.closeContainer(windowID)
	return m.writer.WritePacket(&packets.C2SContainerClose{
		WindowId: ns.VarInt(windowID),
	})
}
