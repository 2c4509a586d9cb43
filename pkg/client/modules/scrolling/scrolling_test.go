package scrolling

import (
	"io"
	"log"
	"testing"

	"github.com/go-mclib/mousewheel/pkg/client"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/client/modules/inventory"
	"github.com/go-mclib/mousewheel/pkg/config"
	"github.com/go-mclib/mousewheel/pkg/mousewheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, store *config.Store) (*client.Client, *Module) {
	t.Helper()
	c := client.New("localhost", "tester", false)
	c.Logger = log.New(io.Discard, "", 0)
	c.Register(inventory.New())
	c.Register(interactions.New(store))
	m := New(store)
	c.Register(m)
	return c, m
}

func TestHelperFollowsScreen(t *testing.T) {
	c, m := newTestClient(t, config.NewStore(nil))

	h := m.Helper()
	require.NotNil(t, h)
	assert.Same(t, h, m.Helper())
	assert.Equal(t, mousewheel.InventoryScreen, h.Screen().Kind())

	inventory.From(c).SetCreative(true)
	creative := m.Helper()
	assert.NotSame(t, h, creative)
	assert.Equal(t, mousewheel.CreativeScreen, creative.Screen().Kind())

	m.Reset()
	assert.NotSame(t, creative, m.Helper())
}

func TestScrollPushesInteractions(t *testing.T) {
	c, m := newTestClient(t, config.NewStore(nil))
	queue := interactions.From(c).Queue()

	// shift and wheel down on a main slot sends its stack
	require.True(t, m.Scroll(inventory.SlotMainStart, false, true, false))
	assert.Equal(t, 1, queue.Len())

	// modifiers do not outlive the gesture
	assert.False(t, m.keys.ShiftDown())
	assert.False(t, m.keys.ControlDown())
}

func TestScrollRejectsUnknownSlot(t *testing.T) {
	c, m := newTestClient(t, config.NewStore(nil))
	assert.False(t, m.Scroll(-1, true, false, false))
	assert.False(t, m.Scroll(inventory.TotalSlots, true, false, false))
	assert.Zero(t, interactions.From(c).Queue().Len())
}

func TestScrollDisabled(t *testing.T) {
	store := config.NewStore(nil)
	cfg := config.Default()
	cfg.Scrolling.Enable = false
	store.Set(cfg)

	c, m := newTestClient(t, store)
	assert.False(t, m.Scroll(inventory.SlotMainStart, true, true, false))
	assert.Zero(t, interactions.From(c).Queue().Len())
}

func TestMissingModules(t *testing.T) {
	c := client.New("localhost", "tester", false)
	c.Logger = log.New(io.Discard, "", 0)
	m := New(nil)
	c.Register(m)

	assert.Nil(t, m.Helper())
	assert.False(t, m.Scroll(0, true, false, false))
}
