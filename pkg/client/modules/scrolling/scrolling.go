package scrolling

import (
	"sync"

	"github.com/go-mclib/mousewheel/pkg/client"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/client/modules/inventory"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
	jp "github.com/go-mclib/protocol/java_protocol"
)

const ModuleName = "scrolling"

// Settings is read on every gesture. *config.Store implements it.
type Settings interface {
	mousewheel.Settings
	ScrollingEnabled() bool
}

// Module binds a mousewheel.Helper to whatever screen the inventory
// module currently shows. Register it after the inventory and
// interactions modules.
type Module struct {
	client   *client.Client
	settings Settings
	keys     mousewheel.KeyState

	mu     sync.Mutex
	helper *mousewheel.Helper

	// gesture serializes Scroll so modifier state belongs to one gesture
	gesture sync.Mutex
}

func New(settings Settings) *Module { return &Module{settings: settings} }

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) {
	m.client = c

	inv := inventory.From(c)
	if inv != nil {
		inv.OnScreenChange(func(s *inventory.Screen) {
			m.mu.Lock()
			m.helper = m.newHelper(s)
			m.mu.Unlock()
		})
	}
}

func (m *Module) HandlePacket(_ *jp.WirePacket) {}

func (m *Module) Reset() {
	m.mu.Lock()
	m.helper = nil
	m.mu.Unlock()
}

func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

// Helper returns the helper for the current screen, or nil when the
// inventory or interactions module is missing.
func (m *Module) Helper() *mousewheel.Helper {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.helper == nil {
		if inv := inventory.From(m.client); inv != nil {
			m.helper = m.newHelper(inv.Screen())
		}
	}
	return m.helper
}

func (m *Module) newHelper(s *inventory.Screen) *mousewheel.Helper {
	inv := inventory.From(m.client)
	queue := interactions.From(m.client)
	if inv == nil || queue == nil {
		return nil
	}

	opts := []mousewheel.Option{mousewheel.WithModifiers(&m.keys)}
	if m.settings != nil {
		opts = append(opts, mousewheel.WithSettings(m.settings))
	}
	if m.client.Verbose {
		opts = append(opts, mousewheel.WithLogger(m.client.Logger))
	}
	return mousewheel.New(s, inv.ClickFactory(), queue, opts...)
}

// Scroll handles one wheel step over view slot viewIndex of the current
// screen. It reports false when scrolling is disabled or the index does
// not name a slot.
func (m *Module) Scroll(viewIndex int, scrollUp, shift, ctrl bool) bool {
	if m.settings != nil && !m.settings.ScrollingEnabled() {
		return false
	}
	h := m.Helper()
	if h == nil {
		return false
	}
	slot := h.Screen().(*inventory.Screen).Slot(viewIndex)
	if slot == nil {
		return false
	}

	m.gesture.Lock()
	m.keys.Set(shift, ctrl)
	h.Scroll(slot, scrollUp)
	m.keys.Set(false, false)
	m.gesture.Unlock()
	return true
}
