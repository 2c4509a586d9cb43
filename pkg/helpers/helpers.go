package helpers

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/go-mclib/mousewheel/pkg/client"
	"github.com/go-mclib/mousewheel/pkg/client/modules/interactions"
	"github.com/go-mclib/mousewheel/pkg/client/modules/inventory"
	"github.com/go-mclib/mousewheel/pkg/client/modules/protocol"
	"github.com/go-mclib/mousewheel/pkg/client/modules/scrolling"
	"github.com/go-mclib/mousewheel/pkg/client/modules/self"
	"github.com/go-mclib/mousewheel/pkg/config"
	"github.com/go-mclib/mousewheel/pkg/tui"
)

// Flags holds common CLI flags for bots.
type Flags struct {
	Address                   string
	Username                  string
	Verbose                   bool
	Online                    bool
	Interactive               bool
	TreatTransferAsDisconnect bool
	MaxReconnectAttempts      int
	ConfigPath                string
}

// RegisterFlags registers the standard CLI flags on the default flag set.
func RegisterFlags(f *Flags) {
	flag.StringVar(&f.Address, "s", "localhost:25565", "server address (host:port)")
	flag.StringVar(&f.Username, "u", "", "username (offline or online)")
	flag.BoolVar(&f.Verbose, "v", false, "verbose logging")
	flag.BoolVar(&f.Online, "online", true, "assume online-mode server")
	flag.BoolVar(&f.Interactive, "i", false, "enable interactive mode with the inventory view")
	flag.BoolVar(&f.TreatTransferAsDisconnect, "d", false, "treat server transfer as disconnect")
	flag.IntVar(&f.MaxReconnectAttempts, "reconnects", 5, "max reconnect attempts (-1 = infinite, 0 = none)")
	flag.StringVar(&f.ConfigPath, "config", "", "path to a YAML config file, reloaded on change")
}

// NewClient creates a client from parsed flags with default modules
// (protocol, self, inventory, interactions, scrolling). The returned store
// holds the config loaded from f.ConfigPath, or the defaults.
func NewClient(f Flags) (*client.Client, *config.Store, error) {
	store := config.NewStore(nil)
	if f.ConfigPath != "" {
		if err := store.Reload(f.ConfigPath); err != nil {
			return nil, nil, err
		}
	}

	c := client.New(f.Address, f.Username, f.Online)
	c.Verbose = f.Verbose
	c.ClientID = os.Getenv("AZURE_CLIENT_ID")
	c.MaxReconnectAttempts = f.MaxReconnectAttempts

	proto := protocol.New()
	proto.TreatTransferAsDisconnect = f.TreatTransferAsDisconnect
	c.Register(proto)
	c.Register(self.New())
	c.Register(inventory.New())
	c.Register(interactions.New(store))
	c.Register(scrolling.New(store))
	proto.OnTransfer(func() { resetForTransfer(c) })

	return c, store, nil
}

// resetForTransfer forgets the old server's player state and windows and
// drops clicks aimed at them. The interaction worker keeps running.
func resetForTransfer(c *client.Client) {
	if n := interactions.From(c).Queue().Clear(); n > 0 {
		c.Logger.Printf("interactions: dropped %d pending events", n)
	}
	self.From(c).Reset()
	inventory.From(c).Reset()
}

// Run connects and starts the client until it gives up or the process is
// interrupted. With f.Interactive the inventory view takes over the
// terminal and receives the log.
func Run(c *client.Client, store *config.Store, f Flags) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if !f.Interactive {
		watchConfig(ctx, c, store, f.ConfigPath)
		if err := c.ConnectAndStart(ctx); err != nil {
			c.Logger.Println(err)
		}
		return
	}

	program, writer := tui.Start(&Backend{Client: c, Store: store, ConfigPath: f.ConfigPath})
	defer writer.Close()
	c.Logger = log.New(writer, "", log.LstdFlags)
	watchConfig(ctx, c, store, f.ConfigPath)

	if s := self.From(c); s != nil {
		s.OnSpawn(writer.EnableInput)
	}
	if inv := inventory.From(c); inv != nil {
		inv.OnContentChange(writer.Refresh)
		inv.OnHeldSlotChange(func(int) { writer.Refresh() })
		inv.OnScreenChange(func(*inventory.Screen) { writer.Refresh() })
	}

	tuiDone := make(chan error, 1)
	go func() {
		_, err := program.Run()
		tuiDone <- err
	}()

	clientDone := make(chan error, 1)
	go func() {
		clientDone <- c.ConnectAndStart(ctx)
	}()

	select {
	case err := <-tuiDone:
		if err != nil {
			fmt.Fprintln(os.Stderr, "tui:", err)
		}
		cancel()
		<-clientDone
	case err := <-clientDone:
		program.Quit()
		<-tuiDone
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func watchConfig(ctx context.Context, c *client.Client, store *config.Store, path string) {
	if path == "" {
		return
	}
	logger := c.Logger
	go func() {
		if err := store.Watch(ctx, path, logger); err != nil {
			logger.Println("config:", err)
		}
	}()
}
