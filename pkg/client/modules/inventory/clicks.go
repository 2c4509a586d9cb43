package inventory

import (
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
)

// ClickFactory builds click interactions for slots of this module's
// screens. It implements mousewheel.ClickEventFactory.
type ClickFactory struct {
	m *Module
}

func (m *Module) ClickFactory() *ClickFactory { return &ClickFactory{m: m} }

// Create returns nil for slots that do not belong to this module.
func (f *ClickFactory) Create(slot mousewheel.Slot, button int, action mousewheel.ActionType) interactions.Event {
	s, ok := slot.(*Slot)
	if !ok || s.screen.m != f.m {
		return nil
	}
	return &clickEvent{m: f.m, windowID: s.screen.windowID, index: s.index, button: button, action: action}
}

type clickEvent struct {
	m        *Module
	windowID int32
	index    int
	button   int
	action   mousewheel.ActionType
}

func (e *clickEvent) Send() interactions.Waiter {
	w, err := e.m.Click(e.windowID, e.index, e.button, e.action)
	if err != nil {
		e.m.client.Logger.Printf("inventory: %s click on slot %d: %v", e.action, e.index, err)
		return interactions.Done
	}
	return w
}

// RunOnMain is true: clicks read and predict module state, which the
// dispatch goroutine also mutates.
func (e *clickEvent) RunOnMain() bool { return true }
