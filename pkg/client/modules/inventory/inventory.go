package inventory

import (
	"sync"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/data/pkg/data/packet_ids"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/mousewheel/pkg/client"
	"github.com/go-mclib/mousewheel/pkg/client/modules/self"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

type slotEntry struct {
	raw  ns.Slot
	item *items.ItemStack
}

func (e slotEntry) empty() bool { return e.item == nil || e.item.IsEmpty() }

// packetWriter is the part of the client the module sends through.
type packetWriter interface {
	WritePacket(pkt jp.Packet) error
}

type Module struct {
	client *client.Client
	writer packetWriter
	mu     sync.RWMutex

	slots     [TotalSlots]slotEntry
	heldSlot  int
	stateID   int32
	cursor    slotEntry
	container *containerState
	creative  bool

	// screen is the view handed out for the currently open window
	screen *Screen
	// acks are closed by the next slot update from the server
	acks []chan struct{}

	onHeldSlotChange []func(slot int)
	onContainerOpen  []func(windowID int32, menu MenuType, title string)
	onContainerClose []func()
	onScreenChange   []func(s *Screen)
	onContentChange  []func()
}

func New() *Module { return &Module{} }

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) {
	m.client = c
	m.writer = c

	// follow the player's game mode when self is registered first
	if s := self.From(c); s != nil {
		s.OnGamemodeChange(func(mode uint8) {
			m.SetCreative(mode == self.GamemodeCreative)
		})
	}
}

func (m *Module) Reset() {
	m.mu.Lock()
	m.slots = [TotalSlots]slotEntry{}
	m.heldSlot = 0
	m.stateID = 0
	m.cursor = slotEntry{}
	m.container = nil
	m.screen = nil
	m.releaseAcksLocked()
	m.mu.Unlock()
	m.notifyScreenChange()
}

func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

// events

func (m *Module) OnHeldSlotChange(cb func(slot int)) {
	m.onHeldSlotChange = append(m.onHeldSlotChange, cb)
}

func (m *Module) OnContainerOpen(cb func(windowID int32, menu MenuType, title string)) {
	m.onContainerOpen = append(m.onContainerOpen, cb)
}

func (m *Module) OnContainerClose(cb func()) {
	m.onContainerClose = append(m.onContainerClose, cb)
}

// OnScreenChange is called whenever the open screen is replaced: a
// container opens or closes, or creative mode is toggled.
func (m *Module) OnScreenChange(cb func(s *Screen)) {
	m.onScreenChange = append(m.onScreenChange, cb)
}

// OnContentChange is called after any slot or cursor update from the
// server, in any window.
func (m *Module) OnContentChange(cb func()) {
	m.onContentChange = append(m.onContentChange, cb)
}

func (m *Module) notifyContentChange() {
	for _, cb := range m.onContentChange {
		cb()
	}
}

func (m *Module) notifyScreenChange() {
	s := m.Screen()
	for _, cb := range m.onScreenChange {
		cb(s)
	}
}

// SetCreative switches the player inventory between the survival and the
// creative screen.
func (m *Module) SetCreative(creative bool) {
	m.mu.Lock()
	changed := m.creative != creative
	m.creative = creative
	if changed && m.container == nil {
		m.screen = nil
	}
	m.mu.Unlock()
	if changed {
		m.notifyScreenChange()
	}
}

func (m *Module) Creative() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creative
}

func (m *Module) HandlePacket(pkt *jp.WirePacket) {
	switch pkt.PacketID {
	case packet_ids.S2COpenScreenID:
		m.handleOpenScreen(pkt)
	case packet_ids.S2CContainerCloseID:
		m.handleContainerClose(pkt)
	case packet_ids.S2CContainerSetContentID:
		m.handleContainerSetContent(pkt)
	case packet_ids.S2CContainerSetSlotID:
		m.handleContainerSetSlot(pkt)
	case packet_ids.S2CSetHeldSlotID:
		m.handleSetHeldSlot(pkt)
	case packet_ids.S2CSetPlayerInventoryID:
		m.handleSetPlayerInventory(pkt)
	}
}

func (m *Module) handleOpenScreen(pkt *jp.WirePacket) {
	var d packets.S2COpenScreen
	if err := pkt.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory: failed to parse open screen:", err)
		return
	}
	m.openContainer(int32(d.WindowId), MenuType(d.WindowType), d.WindowTitle.Text)
}

func (m *Module) openContainer(windowID int32, menu MenuType, title string) {
	m.mu.Lock()
	m.container = &containerState{windowID: windowID, menuType: menu, title: title}
	m.screen = nil
	m.releaseAcksLocked()
	m.mu.Unlock()

	for _, cb := range m.onContainerOpen {
		cb(windowID, menu, title)
	}
	m.notifyScreenChange()
}

func (m *Module) handleContainerClose(pkt *jp.WirePacket) {
	var d packets.S2CContainerClose
	if err := pkt.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory: failed to parse container close:", err)
		return
	}
	m.closeContainer(int32(d.WindowId))
}

// closeContainer forgets the open container. It reports false when
// windowID is not the open container.
func (m *Module) closeContainer(windowID int32) bool {
	m.mu.Lock()
	if m.container == nil || m.container.windowID != windowID {
		m.mu.Unlock()
		return false
	}
	m.container = nil
	m.screen = nil
	m.releaseAcksLocked()
	m.mu.Unlock()

	for _, cb := range m.onContainerClose {
		cb()
	}
	m.notifyScreenChange()
	return true
}

func (m *Module) handleContainerSetContent(pkt *jp.WirePacket) {
	var d packets.S2CContainerSetContent
	if err := pkt.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory: failed to parse container set content:", err)
		return
	}
	entries := make([]slotEntry, len(d.Slots))
	for i, raw := range d.Slots {
		entries[i] = decodeSlotEntry(raw)
	}
	m.setContent(int32(d.WindowId), int32(d.StateId), entries, decodeSlotEntry(d.CarriedItem))
}

func (m *Module) setContent(windowID, stateID int32, entries []slotEntry, cursor slotEntry) {
	m.mu.Lock()
	switch {
	case windowID == 0:
		m.stateID = stateID
		count := min(len(entries), TotalSlots)
		copy(m.slots[:], entries[:count])
		// clear remaining slots if server sent fewer
		for i := count; i < TotalSlots; i++ {
			m.slots[i] = slotEntry{}
		}
	case m.container != nil && m.container.windowID == windowID:
		c := m.container
		c.stateID = stateID
		n := len(entries)
		if c.hasPlayerSlots() {
			n = max(0, len(entries)-PlayerInvSlots)
		}
		c.slots = append(c.slots[:0], entries[:n]...)
		for i, e := range entries[n:] {
			playerIdx := SlotMainStart + i
			if playerIdx >= SlotHotbarEnd {
				break
			}
			m.slots[playerIdx] = e
		}
	default:
		m.mu.Unlock()
		return
	}
	m.cursor = cursor
	m.releaseAcksLocked()
	m.mu.Unlock()

	m.notifyContentChange()
}

func (m *Module) handleContainerSetSlot(pkt *jp.WirePacket) {
	var d packets.S2CContainerSetSlot
	if err := pkt.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory: failed to parse container set slot:", err)
		return
	}
	m.setSlot(int32(d.WindowId), int32(d.StateId), int(d.Slot), decodeSlotEntry(d.SlotData))
}

func (m *Module) setSlot(windowID, stateID int32, idx int, entry slotEntry) {
	m.mu.Lock()
	switch {
	case windowID == -1 && idx == -1:
		// cursor-only update
		m.stateID = stateID
		m.cursor = entry
	case windowID != 0:
		if m.container != nil && m.container.windowID == windowID {
			m.container.stateID = stateID
			m.setContainerViewSlot(idx, entry)
		}
	case idx >= 0 && idx < TotalSlots:
		m.stateID = stateID
		m.slots[idx] = entry
	}
	m.releaseAcksLocked()
	m.mu.Unlock()

	m.notifyContentChange()
}

func (m *Module) releaseAcksLocked() {
	for _, ack := range m.acks {
		close(ack)
	}
	m.acks = nil
}

func (m *Module) handleSetHeldSlot(pkt *jp.WirePacket) {
	var d packets.S2CSetHeldSlot
	if err := pkt.ReadInto(&d); err != nil {
		return
	}

	slot := int(d.Slot)
	if slot < 0 || slot > 8 {
		return
	}

	m.mu.Lock()
	m.heldSlot = slot
	m.mu.Unlock()

	for _, cb := range m.onHeldSlotChange {
		cb(slot)
	}
}

func (m *Module) handleSetPlayerInventory(pkt *jp.WirePacket) {
	var d packets.S2CSetPlayerInventory
	if err := pkt.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory: failed to parse set player inventory:", err)
		return
	}

	containerIdx := playerInvToContainer(int(d.Slot))
	if containerIdx < 0 || containerIdx >= TotalSlots {
		return
	}

	entry := decodeSlotEntry(d.SlotData)

	m.mu.Lock()
	m.slots[containerIdx] = entry
	m.mu.Unlock()

	m.notifyContentChange()
}

func decodeSlotEntry(raw ns.Slot) slotEntry {
	stack, err := items.FromSlot(raw)
	if err != nil {
		stack = items.EmptyStack()
	}
	return slotEntry{raw: raw, item: stack}
}
