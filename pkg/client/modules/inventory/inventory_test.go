package inventory

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/mousewheel/pkg/client"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var diamond = items.ItemID("minecraft:diamond")

func stackOf(id int32, n int) *items.ItemStack {
	st := &items.ItemStack{ID: id}
	setCount(&st.Count, n)
	return st
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func setCount[T integer](count *T, n int) { *count = T(n) }

type recordingWriter struct {
	mu      sync.Mutex
	packets []jp.Packet
	err     error
}

func (w *recordingWriter) WritePacket(pkt jp.Packet) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.packets = append(w.packets, pkt)
	return nil
}

func (w *recordingWriter) clicks() []*packets.C2SContainerClick {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []*packets.C2SContainerClick
	for _, p := range w.packets {
		if c, ok := p.(*packets.C2SContainerClick); ok {
			out = append(out, c)
		}
	}
	return out
}

type eventList struct{ events []interactions.Event }

func (q *eventList) Push(ev interactions.Event) {
	if ev != nil {
		q.events = append(q.events, ev)
	}
}

func newTestModule(t *testing.T) (*Module, *recordingWriter) {
	t.Helper()
	c := client.New("localhost", "tester", false)
	c.Logger = log.New(io.Discard, "", 0)
	m := New()
	c.Register(m)
	w := &recordingWriter{}
	m.writer = w
	return m, w
}

// openChest opens a single chest whose first slots hold the given stacks.
func openChest(m *Module, windowID int32, stacks ...*items.ItemStack) {
	m.openContainer(windowID, MenuGeneric9x3, "Chest")
	entries := make([]slotEntry, 27+PlayerInvSlots)
	for i, st := range stacks {
		entries[i] = slotEntry{item: st}
	}
	m.setContent(windowID, 1, entries, slotEntry{})
}

func TestSlotMapping(t *testing.T) {
	for invSlot := range PlayerStorageSize {
		idx := playerInvToContainer(invSlot)
		require.GreaterOrEqual(t, idx, 0, "inv slot %d", invSlot)
		assert.Equal(t, invSlot, containerToPlayerInv(idx), "inv slot %d", invSlot)
	}
	for idx := SlotCraftingResult; idx < SlotArmorHead; idx++ {
		assert.Equal(t, -1, containerToPlayerInv(idx))
	}
}

func TestScreenKinds(t *testing.T) {
	m, _ := newTestModule(t)

	var seen []mousewheel.ScreenKind
	m.OnScreenChange(func(s *Screen) { seen = append(seen, s.Kind()) })

	assert.Equal(t, mousewheel.InventoryScreen, m.Screen().Kind())
	assert.Same(t, m.Screen(), m.Screen())

	m.SetCreative(true)
	assert.Equal(t, mousewheel.CreativeScreen, m.Screen().Kind())
	m.SetCreative(true)

	openChest(m, 3)
	assert.Equal(t, mousewheel.ContainerScreen, m.Screen().Kind())
	assert.Equal(t, int32(3), m.Screen().WindowID())
	assert.Equal(t, MenuGeneric9x3, m.Screen().MenuType())

	assert.False(t, m.closeContainer(7))
	assert.True(t, m.closeContainer(3))
	assert.Equal(t, mousewheel.CreativeScreen, m.Screen().Kind())

	assert.Equal(t, []mousewheel.ScreenKind{
		mousewheel.CreativeScreen,
		mousewheel.ContainerScreen,
		mousewheel.CreativeScreen,
	}, seen)
}

func TestInventoryScreenLayout(t *testing.T) {
	m, _ := newTestModule(t)
	slots := m.Screen().Slots()
	require.Len(t, slots, TotalSlots)

	result := slots[SlotCraftingResult]
	assert.False(t, result.Inventory().IsPlayer())
	assert.False(t, result.CanInsert(items.EmptyStack()))
	assert.False(t, result.CanInsert(stackOf(diamond, 1)))

	grid := slots[SlotCraftingStart+2]
	assert.Equal(t, 4, grid.Inventory().Size())
	assert.Equal(t, 2, grid.InvSlot())
	assert.True(t, grid.CanInsert(items.EmptyStack()))

	head := slots[SlotArmorHead]
	assert.True(t, head.Inventory().IsPlayer())
	assert.Equal(t, 39, head.InvSlot())
	assert.False(t, head.CanInsert(items.EmptyStack()))
	assert.True(t, head.CanInsert(stackOf(diamond, 1)))

	assert.Equal(t, 0, slots[SlotHotbarStart].InvSlot())
	assert.Equal(t, 8, slots[SlotHotbarEnd-1].InvSlot())
	assert.Equal(t, 20, slots[20].InvSlot())
	assert.Equal(t, invSlotOffhand, slots[SlotOffhand].InvSlot())
	assert.Equal(t, PlayerStorageSize, slots[SlotOffhand].Inventory().Size())
}

func TestContainerScreenLayout(t *testing.T) {
	m, _ := newTestModule(t)
	openChest(m, 2, stackOf(diamond, 5))

	scr := m.Screen()
	slots := scr.Slots()
	require.Len(t, slots, 27+PlayerInvSlots)

	first := scr.Slot(0)
	require.NotNil(t, first)
	assert.False(t, first.Inventory().IsPlayer())
	assert.Equal(t, 27, first.Inventory().Size())
	assert.Equal(t, 5, int(first.Stack().Count))

	main := scr.Slot(27)
	assert.True(t, main.Inventory().IsPlayer())
	assert.Equal(t, SlotMainStart, main.InvSlot())

	hotbar := scr.Slot(27 + 27)
	assert.Equal(t, 0, hotbar.InvSlot())
	assert.Equal(t, 8, scr.Slot(len(slots)-1).InvSlot())
	assert.Nil(t, scr.Slot(len(slots)))

	// the player half of the view is the player inventory
	m.setSlot(0, 2, SlotHotbarStart, slotEntry{item: stackOf(diamond, 9)})
	assert.Equal(t, 9, int(hotbar.Stack().Count))
}

func TestLecternHasNoPlayerSlots(t *testing.T) {
	m, _ := newTestModule(t)
	m.openContainer(4, MenuLectern, "Book")
	m.setContent(4, 1, make([]slotEntry, 1), slotEntry{})
	assert.Len(t, m.Screen().Slots(), 1)
}

func TestContainerScreenEmptyUntilContent(t *testing.T) {
	m, _ := newTestModule(t)
	m.setSlot(0, 1, SlotMainStart, slotEntry{item: stackOf(diamond, 4)})
	m.openContainer(3, MenuGeneric9x3, "Chest")

	scr := m.Screen()
	assert.Empty(t, scr.Slots())
	assert.Nil(t, scr.Slot(0))

	m.setContent(3, 1, make([]slotEntry, 27+PlayerInvSlots), slotEntry{})
	require.Len(t, scr.Slots(), 27+PlayerInvSlots)
	assert.False(t, scr.Slot(0).Inventory().IsPlayer())
}

func TestRestrictedContainerSlots(t *testing.T) {
	m, _ := newTestModule(t)
	m.openContainer(5, MenuFurnace, "Furnace")
	m.setContent(5, 1, make([]slotEntry, 3+PlayerInvSlots), slotEntry{})

	scr := m.Screen()
	assert.True(t, scr.Slot(0).CanInsert(items.EmptyStack()))
	assert.False(t, scr.Slot(1).CanInsert(items.EmptyStack()))
	assert.False(t, scr.Slot(2).CanInsert(stackOf(diamond, 1)))

	h := mousewheel.New(scr, m.ClickFactory(), &eventList{})
	assert.Equal(t, 1, h.Scope(scr.Slot(0)))
	assert.Equal(t, mousewheel.InvalidScope, h.Scope(scr.Slot(1)))
	assert.Equal(t, mousewheel.InvalidScope, h.Scope(scr.Slot(2)))
	assert.Equal(t, 0, h.Scope(scr.Slot(3)))
}

func TestStaleScreenReadsEmpty(t *testing.T) {
	m, _ := newTestModule(t)
	openChest(m, 2, stackOf(diamond, 5))
	slot := m.Screen().Slot(0)
	m.closeContainer(2)
	assert.True(t, slot.Stack().IsEmpty())
}

func TestClickPickupPredictsSwap(t *testing.T) {
	m, w := newTestModule(t)
	st := stackOf(diamond, 3)
	m.setSlot(0, 4, SlotHotbarStart, slotEntry{item: st})

	waiter, err := m.Click(0, SlotHotbarStart, 0, mousewheel.Pickup)
	require.NoError(t, err)
	require.NotNil(t, waiter)

	assert.Same(t, st, m.CursorItem())
	assert.Nil(t, m.GetSlot(SlotHotbarStart))

	clicks := w.clicks()
	require.Len(t, clicks, 1)
	assert.Equal(t, ns.VarInt(0), clicks[0].WindowId)
	assert.Equal(t, ns.VarInt(4), clicks[0].StateId)
	assert.Equal(t, ns.Int16(SlotHotbarStart), clicks[0].Slot)
	assert.Equal(t, ns.Int8(0), clicks[0].Button)
	assert.Equal(t, ns.VarInt(mousewheel.Pickup), clicks[0].Mode)
	assert.Len(t, clicks[0].ChangedSlots, 1)
}

func TestClickQuickMoveInContainer(t *testing.T) {
	m, w := newTestModule(t)
	openChest(m, 6, stackOf(diamond, 64))

	_, err := m.Click(6, 0, 0, mousewheel.QuickMove)
	require.NoError(t, err)
	assert.True(t, m.Screen().Slot(0).Stack().IsEmpty())

	clicks := w.clicks()
	require.Len(t, clicks, 1)
	assert.Equal(t, ns.VarInt(6), clicks[0].WindowId)
	assert.Equal(t, ns.VarInt(1), clicks[0].StateId)
	assert.Equal(t, ns.VarInt(mousewheel.QuickMove), clicks[0].Mode)
}

func TestClickErrors(t *testing.T) {
	m, w := newTestModule(t)

	_, err := m.Click(9, 0, 0, mousewheel.Pickup)
	assert.Error(t, err)

	w.err = errors.New("connection closed")
	_, err = m.Click(0, SlotMainStart, 0, mousewheel.QuickMove)
	assert.ErrorIs(t, err, w.err)
}

func TestClickWaiterReleasedBySlotUpdate(t *testing.T) {
	m, _ := newTestModule(t)
	waiter, err := m.Click(0, SlotMainStart, 1, mousewheel.Pickup)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, waiter.Wait(ctx), context.DeadlineExceeded)

	m.setSlot(0, 5, SlotMainStart, slotEntry{item: stackOf(diamond, 1)})
	assert.NoError(t, waiter.Wait(context.Background()))
}

func TestClickWaiterReleasedByReset(t *testing.T) {
	m, _ := newTestModule(t)
	waiter, err := m.Click(0, SlotMainStart, 0, mousewheel.Pickup)
	require.NoError(t, err)
	m.Reset()
	assert.NoError(t, waiter.Wait(context.Background()))
}

func TestClickFactory(t *testing.T) {
	m, w := newTestModule(t)
	other, _ := newTestModule(t)
	openChest(m, 2, stackOf(diamond, 5))
	f := m.ClickFactory()

	assert.Nil(t, f.Create(other.Screen().Slot(0), 0, mousewheel.Pickup))

	ev := f.Create(m.Screen().Slot(0), 1, mousewheel.Throw)
	require.NotNil(t, ev)
	assert.True(t, ev.RunOnMain())
	require.NotNil(t, ev.Send())
	require.Len(t, w.clicks(), 1)
	assert.Equal(t, ns.VarInt(mousewheel.Throw), w.clicks()[0].Mode)
	assert.Equal(t, ns.Int8(1), w.clicks()[0].Button)

	stale := f.Create(m.Screen().Slot(0), 0, mousewheel.QuickMove)
	m.closeContainer(2)
	assert.Equal(t, interactions.Done, stale.Send())
	assert.Len(t, w.clicks(), 1)
}

func TestHelperOverLiveScreen(t *testing.T) {
	m, w := newTestModule(t)
	openChest(m, 2, stackOf(diamond, 5), nil, stackOf(diamond, 2))
	scr := m.Screen()
	q := &eventList{}
	h := mousewheel.New(scr, m.ClickFactory(), q)

	h.SendAllOfAKind(scr.Slot(0))
	require.Len(t, q.events, 2)
	for _, ev := range q.events {
		ev.Send()
	}

	clicks := w.clicks()
	require.Len(t, clicks, 2)
	assert.Equal(t, ns.Int16(0), clicks[0].Slot)
	assert.Equal(t, ns.Int16(2), clicks[1].Slot)
	assert.Equal(t, ns.VarInt(mousewheel.QuickMove), clicks[1].Mode)
}

func TestSetHeldSlot(t *testing.T) {
	m, w := newTestModule(t)
	var held []int
	m.OnHeldSlotChange(func(slot int) { held = append(held, slot) })

	require.NoError(t, m.SetHeldSlot(4))
	assert.Error(t, m.SetHeldSlot(9))
	assert.Equal(t, 4, m.HeldSlotIndex())
	assert.Equal(t, []int{4}, held)
	require.Len(t, w.packets, 1)
}

func TestFindItem(t *testing.T) {
	m, _ := newTestModule(t)
	m.setSlot(0, 1, SlotMainStart+3, slotEntry{item: stackOf(diamond, 1)})
	assert.Equal(t, SlotMainStart+3, m.FindItem(diamond))

	m.setSlot(0, 2, SlotHotbarStart+1, slotEntry{item: stackOf(diamond, 1)})
	assert.Equal(t, SlotHotbarStart+1, m.FindItem(diamond))
	assert.Equal(t, -1, m.FindItem(items.ItemID("minecraft:stone")))
}
