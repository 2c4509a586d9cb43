package mousewheel

import (
	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/config"
)

var (
	diamond = items.ItemID("minecraft:diamond")
	stone   = items.ItemID("minecraft:stone")
)

// stackOf builds a stack with a runtime count.
func stackOf(id int32, n int) *items.ItemStack {
	st := &items.ItemStack{ID: id}
	setCount(&st.Count, n)
	return st
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func setCount[T integer](count *T, n int) { *count = T(n) }

type fakeInventory struct {
	size   int
	player bool
}

func (i *fakeInventory) Size() int      { return i.size }
func (i *fakeInventory) IsPlayer() bool { return i.player }

type fakeSlot struct {
	id      int
	inv     Inventory
	invSlot int
	stack   *items.ItemStack
	output  bool
}

func (s *fakeSlot) ID() int                 { return s.id }
func (s *fakeSlot) Inventory() Inventory    { return s.inv }
func (s *fakeSlot) InvSlot() int            { return s.invSlot }
func (s *fakeSlot) Stack() *items.ItemStack { return s.stack }
func (s *fakeSlot) CanInsert(*items.ItemStack) bool {
	return !s.output
}

type fakeScreen struct {
	kind  ScreenKind
	slots []Slot
}

func (s *fakeScreen) Kind() ScreenKind { return s.kind }
func (s *fakeScreen) Slots() []Slot    { return s.slots }

func (s *fakeScreen) add(inv Inventory, invSlot int, stack *items.ItemStack) *fakeSlot {
	slot := &fakeSlot{id: len(s.slots), inv: inv, invSlot: invSlot, stack: stack}
	s.slots = append(s.slots, slot)
	return slot
}

type click struct {
	slot   int
	button int
	action ActionType
}

// clickEvent records itself into the shared host log when submitted.
type clickEvent struct {
	click
	host *[]click
	main bool
}

func (e *clickEvent) Send() interactions.Waiter {
	*e.host = append(*e.host, e.click)
	return interactions.Done
}

func (e *clickEvent) RunOnMain() bool { return e.main }

type fakeFactory struct {
	host []click
	main bool
	// refuse makes Create return nil, as a factory does when the slot
	// vanished between the lock check and creation.
	refuse bool
}

func (f *fakeFactory) Create(slot Slot, button int, action ActionType) interactions.Event {
	if f.refuse {
		return nil
	}
	return &clickEvent{click: click{slot.ID(), button, action}, host: &f.host, main: f.main}
}

type recordingQueue struct {
	events []interactions.Event
}

func (q *recordingQueue) Push(ev interactions.Event) {
	if ev == nil {
		return
	}
	q.events = append(q.events, ev)
}

// clicks returns the clicks of all plain click events in the queue.
// Callback events are reported as a zero click with action -1.
func (q *recordingQueue) clicks() []click {
	out := make([]click, 0, len(q.events))
	for _, ev := range q.events {
		if ce, ok := ev.(*clickEvent); ok {
			out = append(out, ce.click)
		} else {
			out = append(out, click{action: -1})
		}
	}
	return out
}

type staticSettings struct {
	directional bool
	scoping     config.HotbarScoping
}

func (s staticSettings) DirectionalScrolling() bool          { return s.directional }
func (s staticSettings) HotbarScoping() config.HotbarScoping { return s.scoping }

type staticKeys struct{ shift, control bool }

func (k staticKeys) ShiftDown() bool   { return k.shift }
func (k staticKeys) ControlDown() bool { return k.control }

// playerInventory mirrors the 41 storage slots of the vanilla player inventory.
func playerInventory() *fakeInventory { return &fakeInventory{size: 41, player: true} }

// containerLayout builds a container screen: container slots first, then
// the 27 main slots, then the 9 hotbar slots.
func containerLayout(container []*items.ItemStack) (*fakeScreen, *fakeInventory) {
	scr := &fakeScreen{kind: ContainerScreen}
	chest := &fakeInventory{size: len(container)}
	for i, st := range container {
		scr.add(chest, i, st)
	}
	player := playerInventory()
	for i := 9; i < 36; i++ {
		scr.add(player, i, nil)
	}
	for i := range 9 {
		scr.add(player, i, nil)
	}
	return scr, player
}

// hotbar returns the screen slot of hotbar index i in a container layout.
func hotbar(scr *fakeScreen, containerSize, i int) *fakeSlot {
	return scr.slots[containerSize+27+i].(*fakeSlot)
}
