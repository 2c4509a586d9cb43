package mousewheel

import (
	"sync/atomic"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/config"
)

// ScreenKind tells the scope classifier which slot taxonomy a screen uses.
type ScreenKind int

const (
	// ContainerScreen shows an external inventory above the player inventory.
	ContainerScreen ScreenKind = iota
	// InventoryScreen shows only the player inventory (and its crafting grid).
	InventoryScreen
	// CreativeScreen is the creative-mode inventory.
	CreativeScreen
)

func (k ScreenKind) String() string {
	switch k {
	case ContainerScreen:
		return "container"
	case InventoryScreen:
		return "inventory"
	case CreativeScreen:
		return "creative"
	}
	return "unknown"
}

// Inventory is the storage a slot is backed by.
type Inventory interface {
	Size() int
	IsPlayer() bool
}

// Slot is one addressable cell of a screen. Slots are owned by the screen;
// the helper only borrows them for the duration of a gesture.
type Slot interface {
	// ID is the slot's index in the screen.
	ID() int
	// Inventory returns the backing inventory, or nil.
	Inventory() Inventory
	// InvSlot is the position of the slot inside its inventory.
	InvSlot() int
	Stack() *items.ItemStack
	CanInsert(stack *items.ItemStack) bool
}

type Screen interface {
	Kind() ScreenKind
	// Slots returns the screen's slots in their native order.
	Slots() []Slot
}

// ActionType is the click mode of a container click.
type ActionType int

const (
	Pickup    ActionType = 0
	QuickMove ActionType = 1
	Throw     ActionType = 4
)

func (a ActionType) String() string {
	switch a {
	case Pickup:
		return "PICKUP"
	case QuickMove:
		return "QUICK_MOVE"
	case Throw:
		return "THROW"
	}
	return "UNKNOWN"
}

// ClickEventFactory builds one click interaction. It may return nil when
// the click cannot be built, which the queue treats as a no-op.
type ClickEventFactory interface {
	Create(slot Slot, button int, action ActionType) interactions.Event
}

// EventQueue preserves push order. Pushing nil is a no-op.
type EventQueue interface {
	Push(ev interactions.Event)
}

type Settings interface {
	DirectionalScrolling() bool
	HotbarScoping() config.HotbarScoping
}

type Modifiers interface {
	ShiftDown() bool
	ControlDown() bool
}

// KeyState is a Modifiers implementation updated by the input layer.
type KeyState struct {
	shift   atomic.Bool
	control atomic.Bool
}

func (k *KeyState) Set(shift, control bool) {
	k.shift.Store(shift)
	k.control.Store(control)
}

func (k *KeyState) ShiftDown() bool   { return k.shift.Load() }
func (k *KeyState) ControlDown() bool { return k.control.Load() }

// ItemMatcher decides whether two stacks hold the same kind of item.
type ItemMatcher func(a, b *items.ItemStack) bool

func isEmpty(s *items.ItemStack) bool {
	return s == nil || s.IsEmpty()
}

func stackCount(s *items.ItemStack) int {
	if isEmpty(s) {
		return 0
	}
	return int(s.Count)
}

// SameKind reports whether a and b hold the same item. Empty stacks are
// the same kind as each other.
func SameKind(a, b *items.ItemStack) bool {
	if isEmpty(a) || isEmpty(b) {
		return isEmpty(a) && isEmpty(b)
	}
	return a.ID == b.ID
}

func copyStack(s *items.ItemStack) *items.ItemStack {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

type defaultSettings struct{}

func (defaultSettings) DirectionalScrolling() bool { return true }
func (defaultSettings) HotbarScoping() config.HotbarScoping {
	return config.HotbarScopingSoft
}

type noModifiers struct{}

func (noModifiers) ShiftDown() bool   { return false }
func (noModifiers) ControlDown() bool { return false }
