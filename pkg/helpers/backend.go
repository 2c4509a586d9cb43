package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/mousewheel/pkg/client"
	"github.com/go-mclib/mousewheel/pkg/client/modules/inventory"
	"github.com/go-mclib/mousewheel/pkg/client/modules/scrolling"
	"github.com/go-mclib/mousewheel/pkg/client/modules/self"
	"github.com/go-mclib/mousewheel/pkg/config"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
	"github.com/go-mclib/mousewheel/pkg/tui"
)

// Backend adapts a client built by NewClient to the TUI.
type Backend struct {
	*client.Client
	Store      *config.Store
	ConfigPath string
}

func (b *Backend) Snapshot() tui.Snapshot {
	inv := inventory.From(b.Client)
	if inv == nil {
		return tui.Snapshot{}
	}
	scr := inv.Screen()
	slots := scr.Slots()

	snap := tui.Snapshot{
		Title: "Inventory",
		Kind:  scr.Kind().String(),
		Cells: make([]tui.Cell, len(slots)),
		Held:  -1,
	}
	held := inv.HeldSlotIndex()
	if scr.Kind() == mousewheel.ContainerScreen {
		n := inv.ContainerSlotCount()
		snap.Title = inv.ContainerTitle()
		if snap.Title == "" {
			snap.Title = fmt.Sprintf("menu %d", inv.ContainerMenuType())
		}
		snap.Sections = []int{n, 27, 9}
		if len(slots) == n+inventory.PlayerInvSlots {
			snap.Held = n + 27 + held
		}
	} else {
		snap.Sections = []int{9, 27, 9, 1}
		snap.Held = inventory.SlotHotbarStart + held
	}
	if st := inv.CursorItem(); st != nil && !st.IsEmpty() {
		snap.Cursor = cellOf(st)
	}

	for i, slot := range slots {
		var cell tui.Cell
		if st := slot.Stack(); st != nil && !st.IsEmpty() {
			cell = cellOf(st)
		}
		cell.Player = slot.Inventory() != nil && slot.Inventory().IsPlayer()
		snap.Cells[i] = cell
	}

	if s := scrolling.From(b.Client); s != nil {
		if h := s.Helper(); h != nil && h.Screen() == mousewheel.Screen(scr) {
			snap.Locked = h.LockedSlots()
		}
	}
	return snap
}

func cellOf(st *items.ItemStack) tui.Cell {
	return tui.Cell{
		Item:  strings.TrimPrefix(items.ItemName(st.ID), "minecraft:"),
		Count: int(st.Count),
	}
}

func (b *Backend) Scroll(viewIndex int, scrollUp, shift, ctrl bool) bool {
	s := scrolling.From(b.Client)
	if s == nil {
		return false
	}
	return s.Scroll(viewIndex, scrollUp, shift, ctrl)
}

func (b *Backend) SetCreative(on bool) {
	if inv := inventory.From(b.Client); inv != nil {
		inv.SetCreative(on)
	}
}

// SelectHotbar selects hotbar slot 0-8 once the player has spawned.
func (b *Backend) SelectHotbar(slot int) error {
	inv := inventory.From(b.Client)
	if inv == nil {
		return errors.New("inventory module not registered")
	}
	if s := self.From(b.Client); s != nil && !s.Spawned() {
		return errors.New("not spawned yet")
	}
	var err error
	b.RunOnMain(func() { err = inv.SetHeldSlot(slot) })
	return err
}

func (b *Backend) CloseContainer() error {
	inv := inventory.From(b.Client)
	if inv == nil {
		return errors.New("inventory module not registered")
	}
	var err error
	b.RunOnMain(func() { err = inv.CloseContainer() })
	return err
}

func (b *Backend) ReloadConfig() error {
	if b.ConfigPath == "" {
		return errors.New("no config file given (-config)")
	}
	return b.Store.Reload(b.ConfigPath)
}
