package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// HotbarScoping controls whether hotbar slots form their own scope on
// container screens.
type HotbarScoping int

const (
	HotbarScopingOff HotbarScoping = iota
	HotbarScopingSoft
	HotbarScopingHard
)

func (h HotbarScoping) String() string {
	switch h {
	case HotbarScopingOff:
		return "off"
	case HotbarScopingSoft:
		return "soft"
	case HotbarScopingHard:
		return "hard"
	}
	return fmt.Sprintf("HotbarScoping(%d)", int(h))
}

func (h HotbarScoping) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HotbarScoping) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "off":
		*h = HotbarScopingOff
	case "soft":
		*h = HotbarScopingSoft
	case "hard":
		*h = HotbarScopingHard
	default:
		return fmt.Errorf("invalid hotbar scoping %q (want off, soft or hard)", text)
	}
	return nil
}

type General struct {
	HotbarScoping HotbarScoping `yaml:"hotbar_scoping"`
	// InteractionInterval is the pause between two queued interactions.
	InteractionInterval time.Duration `yaml:"interaction_interval"`
	// AckTimeout bounds how long the queue waits for the server to
	// confirm a click before moving on.
	AckTimeout time.Duration `yaml:"ack_timeout"`
}

type Scrolling struct {
	Enable               bool `yaml:"enable"`
	DirectionalScrolling bool `yaml:"directional_scrolling"`
}

type Config struct {
	General   General   `yaml:"general"`
	Scrolling Scrolling `yaml:"scrolling"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		General: General{
			HotbarScoping:       HotbarScopingSoft,
			InteractionInterval: 10 * time.Millisecond,
			AckTimeout:          500 * time.Millisecond,
		},
		Scrolling: Scrolling{
			Enable:               true,
			DirectionalScrolling: true,
		},
	}
}

// Parse decodes YAML on top of the defaults, so omitted keys keep their
// default values.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

func (c *Config) Validate() error {
	if c.General.HotbarScoping < HotbarScopingOff || c.General.HotbarScoping > HotbarScopingHard {
		return fmt.Errorf("invalid hotbar scoping %d", int(c.General.HotbarScoping))
	}
	if c.General.InteractionInterval < 0 {
		return fmt.Errorf("interaction_interval must not be negative")
	}
	if c.General.AckTimeout < 0 {
		return fmt.Errorf("ack_timeout must not be negative")
	}
	return nil
}
