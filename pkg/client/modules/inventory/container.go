package inventory

// MenuType represents a Minecraft container menu type from the minecraft:menu registry.
type MenuType int32

const (
	MenuGeneric9x1       MenuType = 0
	MenuGeneric9x2       MenuType = 1
	MenuGeneric9x3       MenuType = 2 // single chest, barrel
	MenuGeneric9x4       MenuType = 3
	MenuGeneric9x5       MenuType = 4
	MenuGeneric9x6       MenuType = 5 // double chest
	MenuGeneric3x3       MenuType = 6 // dispenser, dropper
	MenuCrafter3x3       MenuType = 7
	MenuAnvil            MenuType = 8
	MenuBeacon           MenuType = 9
	MenuBlastFurnace     MenuType = 10
	MenuBrewingStand     MenuType = 11
	MenuCrafting         MenuType = 12
	MenuEnchantment      MenuType = 13
	MenuFurnace          MenuType = 14
	MenuGrindstone       MenuType = 15
	MenuHopper           MenuType = 16
	MenuLectern          MenuType = 17
	MenuLoom             MenuType = 18
	MenuMerchant         MenuType = 19
	MenuShulkerBox       MenuType = 20
	MenuSmithing         MenuType = 21
	MenuSmoker           MenuType = 22
	MenuCartographyTable MenuType = 23
	MenuStonecutter      MenuType = 24

	// menuPlayer is the player's own inventory menu (window 0).
	menuPlayer MenuType = -1
)

// slotRule describes what a slot accepts.
type slotRule int

const (
	ruleAny slotRule = iota
	// ruleRestricted slots only accept specific items (fuel, lapis,
	// potions, armor), so they never accept an empty stack.
	ruleRestricted
	// ruleOutput slots (crafting results, furnace output) accept nothing.
	ruleOutput
)

// menuRules lists the container slots that are not plain storage.
var menuRules = map[MenuType]map[int]slotRule{
	MenuAnvil:            {2: ruleOutput},
	MenuBeacon:           {0: ruleRestricted},
	MenuBlastFurnace:     {1: ruleRestricted, 2: ruleOutput},
	MenuBrewingStand:     {0: ruleRestricted, 1: ruleRestricted, 2: ruleRestricted, 3: ruleRestricted, 4: ruleRestricted},
	MenuCrafting:         {0: ruleOutput},
	MenuEnchantment:      {1: ruleRestricted},
	MenuFurnace:          {1: ruleRestricted, 2: ruleOutput},
	MenuGrindstone:       {2: ruleOutput},
	MenuLoom:             {3: ruleOutput},
	MenuMerchant:         {2: ruleOutput},
	MenuSmithing:         {3: ruleOutput},
	MenuSmoker:           {1: ruleRestricted, 2: ruleOutput},
	MenuCartographyTable: {2: ruleOutput},
	MenuStonecutter:      {1: ruleOutput},
	menuPlayer: {
		SlotCraftingResult: ruleOutput,
		SlotArmorHead:      ruleRestricted,
		SlotArmorChest:     ruleRestricted,
		SlotArmorLegs:      ruleRestricted,
		SlotArmorFeet:      ruleRestricted,
	},
}

func ruleFor(menu MenuType, idx int) slotRule {
	return menuRules[menu][idx]
}

type containerState struct {
	windowID int32
	menuType MenuType
	title    string
	stateID  int32
	slots    []slotEntry // container-only slots (excludes the 36 player inv slots)
}

func (c *containerState) hasPlayerSlots() bool {
	return menuHasPlayerSlots(c.menuType)
}

// menuHasPlayerSlots reports whether the menu appends the player inventory.
func menuHasPlayerSlots(menu MenuType) bool {
	return menu != MenuLectern
}

// containerViewSlot returns the slotEntry at the given absolute container view index.
// Must be called under m.mu lock.
func (m *Module) containerViewSlot(idx int) slotEntry {
	containerSlotCount := len(m.container.slots)
	if idx >= 0 && idx < containerSlotCount {
		return m.container.slots[idx]
	}
	playerIdx := SlotMainStart + (idx - containerSlotCount)
	if m.container.hasPlayerSlots() && playerIdx >= SlotMainStart && playerIdx < SlotHotbarEnd {
		return m.slots[playerIdx]
	}
	return slotEntry{}
}

// setContainerViewSlot sets the slotEntry at the given absolute container view index.
// Must be called under m.mu lock.
func (m *Module) setContainerViewSlot(idx int, entry slotEntry) {
	containerSlotCount := len(m.container.slots)
	if idx >= 0 && idx < containerSlotCount {
		m.container.slots[idx] = entry
		return
	}
	playerIdx := SlotMainStart + (idx - containerSlotCount)
	if m.container.hasPlayerSlots() && playerIdx >= SlotMainStart && playerIdx < SlotHotbarEnd {
		m.slots[playerIdx] = entry
	}
}

// viewSlot returns the entry at idx of window windowID, or false when
// that window is not open. Must be called under m.mu lock.
func (m *Module) viewSlot(windowID int32, idx int) (slotEntry, bool) {
	if windowID == 0 {
		if idx < 0 || idx >= TotalSlots {
			return slotEntry{}, true
		}
		return m.slots[idx], true
	}
	if m.container == nil || m.container.windowID != windowID {
		return slotEntry{}, false
	}
	return m.containerViewSlot(idx), true
}

// setViewSlot is the write counterpart of viewSlot. Must be called under m.mu lock.
func (m *Module) setViewSlot(windowID int32, idx int, entry slotEntry) {
	if windowID == 0 {
		if idx >= 0 && idx < TotalSlots {
			m.slots[idx] = entry
		}
		return
	}
	if m.container != nil && m.container.windowID == windowID {
		m.setContainerViewSlot(idx, entry)
	}
}
