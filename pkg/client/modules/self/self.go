package self

import (
	"github.com/go-mclib/data/pkg/data/packet_ids"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/mousewheel/pkg/client"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

const ModuleName = "self"

// game modes as sent in login and game event packets
const (
	GamemodeSurvival  uint8 = 0
	GamemodeCreative  uint8 = 1
	GamemodeAdventure uint8 = 2
	GamemodeSpectator uint8 = 3
)

// gameEventChangeGamemode is the game event id carrying a new game mode
// in its value.
const gameEventChangeGamemode = 3

// Module tracks the bot's own player: spawn, game mode, health. It
// confirms server teleports and respawns automatically.
type Module struct {
	client *client.Client

	// AutoRespawn automatically respawns on death (default: true).
	AutoRespawn bool

	EntityID ns.VarInt
	Health   ns.Float32
	Food     ns.VarInt
	Gamemode uint8
	spawned  bool

	onSpawn          []func()
	onGamemodeChange []func(mode uint8)
}

func New() *Module {
	return &Module{AutoRespawn: true, Health: 20, Food: 20}
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) { m.client = c }

func (m *Module) Reset() {
	m.Health = 20
	m.Food = 20
	m.spawned = false
	m.setGamemode(GamemodeSurvival)
}

// From retrieves the self module from a client.
func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

func (m *Module) IsDead() bool   { return m.Health <= 0 }
func (m *Module) Spawned() bool  { return m.spawned }
func (m *Module) Respawn() error { return m.client.WritePacket(&packets.C2SClientCommand{ActionId: 0}) }

// events

func (m *Module) OnSpawn(cb func()) { m.onSpawn = append(m.onSpawn, cb) }

// OnGamemodeChange is called when the game mode differs from the last
// known one, including on Reset.
func (m *Module) OnGamemodeChange(cb func(mode uint8)) {
	m.onGamemodeChange = append(m.onGamemodeChange, cb)
}

func (m *Module) HandlePacket(pkt *jp.WirePacket) {
	switch pkt.PacketID {
	case packet_ids.S2CLoginID:
		m.handleLogin(pkt)
	case packet_ids.S2CSetHealthID:
		m.handleSetHealth(pkt)
	case packet_ids.S2CPlayerPositionID:
		m.handlePlayerPosition(pkt)
	case packet_ids.S2CGameEventID:
		m.handleGameEvent(pkt)
	}
}

func (m *Module) setGamemode(mode uint8) {
	if m.Gamemode == mode {
		return
	}
	m.Gamemode = mode
	for _, cb := range m.onGamemodeChange {
		cb(mode)
	}
}

func (m *Module) handleLogin(pkt *jp.WirePacket) {
	var d packets.S2CLogin
	if err := pkt.ReadInto(&d); err != nil {
		m.client.Logger.Println("self: failed to parse login play data:", err)
		return
	}
	m.EntityID = ns.VarInt(d.EntityId)
	m.spawned = true
	m.setGamemode(uint8(d.GameMode))
	m.client.Logger.Printf("self: spawned in gamemode %d; ready", m.Gamemode)

	_ = m.client.WritePacket(&packets.C2SPlayerLoaded{})

	if m.AutoRespawn {
		_ = m.Respawn()
	}

	for _, cb := range m.onSpawn {
		cb()
	}
}

func (m *Module) handleSetHealth(pkt *jp.WirePacket) {
	var d packets.S2CSetHealth
	if err := pkt.ReadInto(&d); err != nil {
		return
	}
	wasDead := m.IsDead()
	m.Health = d.Health
	m.Food = d.Food

	if m.IsDead() && !wasDead {
		m.client.Logger.Println("self: died")
		if m.AutoRespawn {
			_ = m.Respawn()
		}
	}
}

func (m *Module) handlePlayerPosition(pkt *jp.WirePacket) {
	var d packets.S2CPlayerPosition
	if err := pkt.ReadInto(&d); err != nil {
		return
	}

	// confirm teleport (required by protocol)
	_ = m.client.WritePacket(&packets.C2SAcceptTeleportation{
		TeleportId: d.TeleportId,
	})
}

func (m *Module) handleGameEvent(pkt *jp.WirePacket) {
	var d packets.S2CGameEvent
	if err := pkt.ReadInto(&d); err != nil {
		return
	}
	if d.Event == gameEventChangeGamemode {
		m.setGamemode(uint8(d.Value))
	}
}
